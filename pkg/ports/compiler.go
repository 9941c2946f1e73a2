package ports

import (
	"context"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// Compiler is the primary port used by adapters (HTTP, MCP, CLI).
type Compiler interface {
	// Compile returns the complete HTML document for cfg.
	// It is deterministic: equal configurations yield byte-identical documents.
	Compile(ctx context.Context, cfg domain.MachineConfig) (string, error)
}
