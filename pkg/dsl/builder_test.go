package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BusyBeaver(t *testing.T) {
	m, err := New("busy-beaver").
		TapeLength(6).
		State("A").
		On0().Write(1).Right().Goto("B").
		On1().Write(1).Left().Goto("B").
		State("B").
		On0().Write(1).Left().Goto("A").
		On1().Write(1).Right().Halt().
		Build()
	require.NoError(t, err)

	assert.Equal(t, domain.MachineConfig{
		Name: "busy-beaver",
		States: []domain.State{
			{Name: "A", Zero: domain.Transition{Write: 1, Move: domain.MoveRight, Next: "B"}, One: domain.Transition{Write: 1, Move: domain.MoveLeft, Next: "B"}},
			{Name: "B", Zero: domain.Transition{Write: 1, Move: domain.MoveLeft, Next: "A"}, One: domain.Transition{Write: 1, Move: domain.MoveRight, Next: domain.HaltName}},
		},
		TapeLength: 6,
	}, m)
}

func TestBuilder_Defaults(t *testing.T) {
	m, err := New("defaults").State("A").Build()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTapeLength, m.TapeLength)
	assert.Equal(t, domain.NewState("A"), m.States[0])
}

func TestBuilder_StateReuseKeepsOrder(t *testing.T) {
	b := New("order")
	b.State("A").On0().Goto("B")
	b.State("B")
	b.State("A").On1().Goto("A")

	m, err := b.Build()
	require.NoError(t, err)
	require.Len(t, m.States, 2)
	assert.Equal(t, "A", m.States[0].Name)
	assert.Equal(t, "B", m.States[0].Zero.Next)
	assert.Equal(t, "A", m.States[0].One.Next)
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := New("empty").Build()
	assert.ErrorIs(t, err, domain.ErrNoStates)

	_, err = New("reserved").State(domain.HaltName).Build()
	assert.Error(t, err)

	_, err = New("tape").TapeLength(0).State("A").Build()
	assert.Error(t, err)
}

func TestLibrary(t *testing.T) {
	lib, err := Library(
		New("one").State("A"),
		New("two").State("A").State("B"),
	)
	require.NoError(t, err)

	list, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].ID)
	assert.Equal(t, 2, list[1].States)

	_, err = Library(New("bad"))
	assert.Error(t, err)
}
