package domain

import (
	"fmt"

	"github.com/aretw0/cssmachine/pkg/schema"
)

// Limits bounds the machines a network-facing surface accepts.
// A zero field is unbounded.
type Limits struct {
	MaxStates     int
	MaxTapeLength int
}

// DefaultLimits returns limits suited to a public instance.
func DefaultLimits() Limits {
	return Limits{MaxStates: 64, MaxTapeLength: 256}
}

// Check reports every exceeded limit. The error wraps ErrLimitExceeded and an
// *schema.AggregateError holding one ValidationError per field.
func (l Limits) Check(cfg MachineConfig) error {
	var errs []error
	if l.MaxStates > 0 && len(cfg.States) > l.MaxStates {
		errs = append(errs, &schema.ValidationError{
			Key:    "states",
			Reason: fmt.Sprintf("at most %d allowed", l.MaxStates),
			Value:  len(cfg.States),
		})
	}
	if l.MaxTapeLength > 0 && cfg.TapeLength > l.MaxTapeLength {
		errs = append(errs, &schema.ValidationError{
			Key:    "tape_length",
			Reason: fmt.Sprintf("at most %d allowed", l.MaxTapeLength),
			Value:  cfg.TapeLength,
		})
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrLimitExceeded, schema.Aggregate(errs))
}
