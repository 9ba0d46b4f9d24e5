package config

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid configuration field
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors aggregates every invalid field found by Validate
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	b := c.Bench
	if b.Rows < 0 {
		errs = append(errs, ValidationError{"bench.rows", b.Rows, "must be >= 0"})
	}
	if b.Inner < 0 {
		errs = append(errs, ValidationError{"bench.inner", b.Inner, "must be >= 0"})
	}
	if b.Cols < 0 {
		errs = append(errs, ValidationError{"bench.cols", b.Cols, "must be >= 0"})
	}
	if b.Density < 0 || b.Density > 1 {
		errs = append(errs, ValidationError{"bench.density", b.Density, "must be within [0,1]"})
	}
	if b.Workers < 0 {
		errs = append(errs, ValidationError{"bench.workers", b.Workers, "must be >= 0"})
	}
	if b.Grain < 1 {
		errs = append(errs, ValidationError{"bench.grain", b.Grain, "must be >= 1"})
	}
	if b.Repeat < 1 {
		errs = append(errs, ValidationError{"bench.repeat", b.Repeat, "must be >= 1"})
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{"logging.format", c.Logging.Format, "must be text or json"})
	}

	return errs
}
