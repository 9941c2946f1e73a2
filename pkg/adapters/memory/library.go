package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// Library implements ports.MachineLibrary using an in-memory map.
// Safe for concurrent use.
type Library struct {
	machines map[string]domain.MachineConfig
	mu       sync.RWMutex
}

// NewLibrary creates a library holding the given machines keyed by ID.
func NewLibrary(machines map[string]domain.MachineConfig) *Library {
	l := &Library{machines: make(map[string]domain.MachineConfig, len(machines))}
	for id, m := range machines {
		l.machines[id] = m.Clone()
	}
	return l
}

// NewFromMachines creates a library keyed by each machine's Name.
// This improves DX for tests and embedded presets.
func NewFromMachines(machines ...domain.MachineConfig) (*Library, error) {
	l := &Library{machines: make(map[string]domain.MachineConfig, len(machines))}
	for _, m := range machines {
		if m.Name == "" {
			return nil, fmt.Errorf("machine missing name")
		}
		if _, dup := l.machines[m.Name]; dup {
			return nil, fmt.Errorf("duplicate machine %q", m.Name)
		}
		l.machines[m.Name] = m.Clone()
	}
	return l, nil
}

// Put adds or replaces a machine.
func (l *Library) Put(id string, m domain.MachineConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machines[id] = m.Clone()
}

// Get returns a copy of the machine so callers cannot mutate the library.
func (l *Library) Get(ctx context.Context, id string) (domain.MachineConfig, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.machines[id]
	if !ok {
		return domain.MachineConfig{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	return m.Clone(), nil
}

// List returns all machines sorted by ID.
func (l *Library) List(ctx context.Context) ([]domain.MachineSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := make([]domain.MachineSummary, 0, len(l.machines))
	for id, m := range l.machines {
		list = append(list, domain.MachineSummary{
			ID:         id,
			Name:       m.Name,
			States:     len(m.States),
			TapeLength: m.TapeLength,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
