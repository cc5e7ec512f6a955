package framework

import "fmt"

// ConfigError reports a malformed or inconsistent problem/component
// configuration. It is fatal at setup and never retried.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("moead: invalid configuration for %s: %s", e.Component, e.Reason)
}

// Configf builds a ConfigError for the named component.
func Configf(component, format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		Component: component,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// EvalError reports a failed or malformed objective/constraint evaluation.
// It aborts the run; Generation is -1 for the setup probe.
type EvalError struct {
	Op         string // "objective", "constraint" or "probe"
	Generation int
	Err        error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("moead: %s evaluation failed at generation %d: %v", e.Op, e.Generation, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
