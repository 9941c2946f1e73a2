package ports

import (
	"context"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// MachineLibrary defines where named machine definitions come from.
// This allows the storage layer (Loam, Memory) to be decoupled.
type MachineLibrary interface {
	// Get returns the machine stored under id.
	// Returns domain.ErrMachineNotFound if there is none.
	Get(ctx context.Context, id string) (domain.MachineConfig, error)

	// List returns a summary of every machine, sorted by ID.
	List(ctx context.Context) ([]domain.MachineSummary, error)
}
