package dsl

import "github.com/aretw0/cssmachine/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.State
	builder *Builder
}

// On0 configures the transition taken when the head reads 0.
func (s *StateBuilder) On0() *TransitionBuilder {
	return &TransitionBuilder{state: s, t: &s.state.Zero}
}

// On1 configures the transition taken when the head reads 1.
func (s *StateBuilder) On1() *TransitionBuilder {
	return &TransitionBuilder{state: s, t: &s.state.One}
}

// State continues with another state of the same machine.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build assembles the machine this state belongs to.
func (s *StateBuilder) Build() (domain.MachineConfig, error) {
	return s.builder.Build()
}

// TransitionBuilder configures one branch of a state.
type TransitionBuilder struct {
	state *StateBuilder
	t     *domain.Transition
}

// Write sets the symbol written under the head.
func (t *TransitionBuilder) Write(sym domain.Symbol) *TransitionBuilder {
	t.t.Write = sym
	return t
}

// Move sets the head direction.
func (t *TransitionBuilder) Move(m domain.Move) *TransitionBuilder {
	t.t.Move = m
	return t
}

// Left moves the head one cell left.
func (t *TransitionBuilder) Left() *TransitionBuilder {
	return t.Move(domain.MoveLeft)
}

// Right moves the head one cell right.
func (t *TransitionBuilder) Right() *TransitionBuilder {
	return t.Move(domain.MoveRight)
}

// Goto sets the next state. The target does not need to exist yet;
// names that are never declared resolve to HALT.
func (t *TransitionBuilder) Goto(name string) *TransitionBuilder {
	t.t.Next = name
	return t
}

// Halt makes the branch enter the halting state.
func (t *TransitionBuilder) Halt() *TransitionBuilder {
	return t.Goto(domain.HaltName)
}

// On0 switches to the 0 branch of the same state.
func (t *TransitionBuilder) On0() *TransitionBuilder {
	return t.state.On0()
}

// On1 switches to the 1 branch of the same state.
func (t *TransitionBuilder) On1() *TransitionBuilder {
	return t.state.On1()
}

// State continues with another state of the same machine.
func (t *TransitionBuilder) State(name string) *StateBuilder {
	return t.state.State(name)
}

// Build assembles the machine.
func (t *TransitionBuilder) Build() (domain.MachineConfig, error) {
	return t.state.Build()
}
