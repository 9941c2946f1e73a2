package dsl

import (
	"fmt"

	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
)

// Builder manages the machine construction.
// States keep the order in which they were first added.
type Builder struct {
	machine domain.MachineConfig
	states  map[string]*StateBuilder
	order   []*StateBuilder
}

// New creates a new machine builder with the default tape length.
func New(name string) *Builder {
	return &Builder{
		machine: domain.MachineConfig{Name: name, TapeLength: domain.DefaultTapeLength},
		states:  make(map[string]*StateBuilder),
	}
}

// TapeLength sets the number of tape cells.
func (b *Builder) TapeLength(n int) *Builder {
	b.machine.TapeLength = n
	return b
}

// State adds a state to the machine.
// If the state already exists, it returns the existing builder.
// New states start with the editor defaults (see domain.NewState).
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.NewState(name),
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, sb)
	return sb
}

// Build assembles and validates the machine.
func (b *Builder) Build() (domain.MachineConfig, error) {
	cfg := b.machine
	cfg.States = make([]domain.State, 0, len(b.order))
	for _, sb := range b.order {
		cfg.States = append(cfg.States, sb.state)
	}
	if err := cfg.Validate(); err != nil {
		return domain.MachineConfig{}, fmt.Errorf("machine %q: %w", cfg.Name, err)
	}
	return cfg, nil
}

// Library builds every machine into an in-memory library keyed by machine name.
func Library(builders ...*Builder) (*memory.Library, error) {
	machines := make([]domain.MachineConfig, 0, len(builders))
	for _, b := range builders {
		cfg, err := b.Build()
		if err != nil {
			return nil, err
		}
		machines = append(machines, cfg)
	}

	lib, err := memory.NewFromMachines(machines...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory library: %w", err)
	}
	return lib, nil
}
