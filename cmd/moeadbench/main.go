// moeadbench runs the MOEA/D engine against one of the bundled benchmark
// problems and reports the outcome. It exists for manual inspection of the
// engine, not as a tuning harness.
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/moead-go/moead/pkg/moead/aggregation"
	"github.com/moead-go/moead/pkg/moead/algorithms"
	"github.com/moead-go/moead/pkg/moead/benchmarks"
	"github.com/moead-go/moead/pkg/moead/constraints"
	"github.com/moead-go/moead/pkg/moead/decomposition"
	"github.com/moead-go/moead/pkg/moead/framework"
	"github.com/moead-go/moead/pkg/moead/neighborhood"
	"github.com/moead-go/moead/pkg/moead/scaling"
	"github.com/moead-go/moead/pkg/moead/update"
	"github.com/moead-go/moead/pkg/moead/util"
	"github.com/moead-go/moead/pkg/moead/variation"
)

var (
	problemName = pflag.String("problem", "zdt1", "benchmark problem: zdt1, dtlz2 or binhkorn")
	numVars     = pflag.Int("variables", 30, "number of decision variables (zdt1/dtlz2)")
	divisions   = pflag.Int("divisions", 99, "simplex-lattice divisions H")
	tSize       = pflag.Int("neighbors", 20, "neighborhood size T")
	deltaP      = pflag.Float64("delta-p", 0.9, "probability of neighborhood-restricted mating/replacement")
	aggName     = pflag.String("aggregation", "wt", "aggregation: ws, wt, awt or pbi")
	theta       = pflag.Float64("theta", 5.0, "PBI penalty parameter")
	nr          = pflag.Int("nr", 2, "restricted update replacement cap")
	tr          = pflag.Int("tr", 0, "replacement neighborhood cap, 0 keeps it equal to the mating scope")
	scalingName = pflag.String("scaling", "none", "objective scaling: none or simple")
	generations = pflag.Int("generations", 200, "maximum number of generations")
	seed        = pflag.Uint64("seed", 42, "random seed")
	plot        = pflag.Bool("plot", false, "write an HTML scatter plot of the final front")
)

func main() {
	klog.InitFlags(goflag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	pflag.Parse()
	defer klog.Flush()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "moeadbench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var problem *framework.Problem
	var trueFront []framework.ObjectiveSpacePoint

	switch *problemName {
	case "zdt1":
		b := benchmarks.NewZDT1(*numVars)
		problem = b.Problem()
		trueFront = b.TrueParetoFront(100)
	case "dtlz2":
		b := benchmarks.NewDTLZ2(*numVars, 2)
		problem = b.Problem()
		trueFront = b.TrueParetoFront(100)
	case "binhkorn":
		b := benchmarks.NewBinhKorn()
		problem = b.Problem()
	default:
		return fmt.Errorf("unknown problem %q", *problemName)
	}

	var agg aggregation.Aggregator
	switch *aggName {
	case "ws":
		agg = aggregation.WeightedSum{}
	case "wt":
		agg = aggregation.Tchebycheff{}
	case "awt":
		agg = aggregation.AWT{}
	case "pbi":
		agg = aggregation.PBI{Theta: *theta}
	default:
		return fmt.Errorf("unknown aggregation %q", *aggName)
	}

	var scale scaling.Scaler
	switch *scalingName {
	case "none":
		scale = scaling.None{}
	case "simple":
		scale = scaling.Simple{}
	default:
		return fmt.Errorf("unknown scaling %q", *scalingName)
	}

	stack, err := variation.NewStack(
		variation.SBX{EtaX: 20, PC: 1.0},
		variation.DifferentialMutation{Basis: variation.BasisRand, Phi: math.NaN()},
		variation.BinomialRecombination{Rho: 0.9},
		variation.PolynomialMutation{EtaM: 20, PM: 1.0 / float64(problem.NumVariables)},
		variation.Truncate{},
	)
	if err != nil {
		return err
	}

	cfg := algorithms.Config{
		Decomposer:     decomposition.SLD{H: *divisions},
		Neighborhood:   neighborhood.ByWeight{T: *tSize, DeltaP: *deltaP},
		Aggregator:     agg,
		Variation:      stack,
		Constraints:    constraints.ViolationRanking{},
		Update:         update.Restricted{Nr: *nr},
		Scaling:        scale,
		Tr:             *tr,
		MaxGenerations: *generations,
		Seed:           *seed,
		WithArchive:    true,
	}

	engine, err := algorithms.NewMOEAD(cfg, problem)
	if err != nil {
		return err
	}

	ctx := klog.NewContext(context.Background(), klog.Background())
	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("problem=%s generations=%d evaluations=%d reason=%s archive=%d\n",
		problem.Name, result.Generations, result.Evaluations, result.Reason, archiveSize(result))

	if *plot {
		front := result.Front()
		if result.Archive != nil && result.Archive.Size() > 0 {
			front = result.Archive.Front()
		}
		return util.PlotResults(front, trueFront, problem.Name, algorithms.Name)
	}
	return nil
}

func archiveSize(r *framework.Result) int {
	if r.Archive == nil {
		return 0
	}
	return r.Archive.Size()
}
