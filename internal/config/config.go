package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/primecycle/internal/topology"
)

// Options controls one run. There is no configuration file; options come
// from command-line flags only.
type Options struct {
	Order   topology.Order `yaml:"order"`
	Verbose bool           `yaml:"verbose"`
	DryRun  bool           `yaml:"dry_run"`
}

// ValidationError reports an invalid option.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultOptions returns the behaviour of a bare invocation: enumeration
// order, quiet, commit.
func DefaultOptions() Options {
	return Options{
		Order: topology.OrderEnumeration,
	}
}

// ParseOrder validates an order flag value.
func ParseOrder(s string) (topology.Order, error) {
	order, err := topology.ParseOrder(s)
	if err != nil {
		return "", &ValidationError{Path: "order", Err: err}
	}
	return order, nil
}

// Validate checks the options.
func (o Options) Validate() error {
	switch o.Order {
	case topology.OrderEnumeration, topology.OrderGeometric:
	default:
		return &ValidationError{Path: "order", Err: fmt.Errorf("order must be one of: %s, %s", topology.OrderEnumeration, topology.OrderGeometric)}
	}
	return nil
}

// YAML renders the effective options.
func (o Options) YAML() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}
	return data, nil
}
