package layout_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_PositionsMatchEmissionOrder(t *testing.T) {
	for states := 1; states <= 4; states++ {
		for cells := 1; cells <= 9; cells++ {
			t.Run(fmt.Sprintf("states=%d/cells=%d", states, cells), func(t *testing.T) {
				s, err := layout.Plan(states, cells)
				require.NoError(t, err)

				slots := s.Slots()
				require.Len(t, slots, s.Len())
				for i, slot := range slots {
					pos, ok := s.Position(slot)
					require.True(t, ok, slot.String())
					assert.Equal(t, i, pos, slot.String())
				}
			})
		}
	}
}

func TestPlan_InvalidDimensions(t *testing.T) {
	_, err := layout.Plan(0, 5)
	assert.ErrorIs(t, err, layout.ErrInvalidDimensions)

	_, err = layout.Plan(1, 0)
	assert.ErrorIs(t, err, layout.ErrInvalidDimensions)
}

func TestStream_SmallLayout(t *testing.T) {
	// One declared state and two cells, written out by hand.
	s, err := layout.Plan(1, 2)
	require.NoError(t, err)

	want := []string{
		"g", "d",
		"sa0", "sb0", "sa1", "sb1",
		"for=d",
		// cell 0
		"ha0", "hb0", "ta0", "tb0", "-", "-", "for=ta0", "for=tb0", "va0", "vb0",
		// cell 1
		"ha1", "hb1", "ta1", "tb1", "for=ha0", "for=hb0", "for=ta1", "for=tb1", "va1", "vb1",
		// placeholder block
		"-", "-", "-", "-", "for=ha1", "for=hb1",
		"for=sa0", "for=sb0", "for=sa1", "for=sb1",
		"for=g",
	}

	var got []string
	for _, slot := range s.Slots() {
		switch {
		case slot.ID() != "":
			got = append(got, slot.ID())
		case slot.For() != "":
			got = append(got, "for="+slot.For())
		default:
			got = append(got, "-")
		}
	}
	assert.Equal(t, want, got)
}

func TestStream_Defaults(t *testing.T) {
	tests := []struct {
		cells int
		head  int
	}{
		{1, 0},
		{2, 0},
		{3, 1},
		{8, 3},
		{15, 7},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("cells=%d", tt.cells), func(t *testing.T) {
			s, err := layout.Plan(2, tt.cells)
			require.NoError(t, err)
			assert.Equal(t, tt.head, s.HeadStart())

			var checked []string
			for _, slot := range s.Slots() {
				if s.Checked(slot) {
					checked = append(checked, slot.ID())
				}
			}
			assert.Equal(t, []string{
				"sa0", "sb0",
				fmt.Sprintf("ha%d", tt.head), fmt.Sprintf("hb%d", tt.head),
			}, checked)
		})
	}
}

func TestStream_Position_OutOfRange(t *testing.T) {
	s, err := layout.Plan(2, 4)
	require.NoError(t, err)

	for _, slot := range []layout.Slot{
		layout.State(layout.A, 3),
		layout.State(layout.B, -1),
		layout.Head(layout.A, 5),
		layout.TapeWriteLabel(layout.B, 4),
		layout.TapeDisplay(layout.A, 4),
		layout.StateLabel(layout.A, 3),
		{Kind: layout.KindHead, Buffer: 2, Index: 0},
	} {
		_, ok := s.Position(slot)
		assert.False(t, ok, slot.String())
	}
}

func TestStream_TapeLengthOnlyMovesTapeDependentSlots(t *testing.T) {
	short, err := layout.Plan(3, 6)
	require.NoError(t, err)
	long, err := layout.Plan(3, 7)
	require.NoError(t, err)

	assert.Equal(t, short.Len()+10, long.Len())
	for i := 0; i <= 3; i++ {
		for _, b := range layout.Buffers {
			p1, _ := short.Position(layout.State(b, i))
			p2, _ := long.Position(layout.State(b, i))
			assert.Equal(t, p1, p2)
		}
	}
	p1, _ := short.Position(layout.StateLabel(layout.A, 0))
	p2, _ := long.Position(layout.StateLabel(layout.A, 0))
	assert.Equal(t, p1+10, p2)
}

func TestHopsBetween(t *testing.T) {
	s, err := layout.Plan(2, 5)
	require.NoError(t, err)

	slots := s.Slots()
	for i := 0; i < len(slots); i += 7 {
		for j := i; j < len(slots); j += 5 {
			hops, err := layout.HopsBetween(s, slots[i], slots[j])
			require.NoError(t, err)
			assert.Equal(t, j-i, hops)
		}
	}

	hops, err := layout.HopsBetween(s, layout.Head(layout.A, 2), layout.Tape(layout.A, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, hops)

	hops, err = layout.HopsBetween(s, layout.Head(layout.A, 2), layout.HeadMoveLabel(layout.B, 4))
	require.NoError(t, err)
	assert.Equal(t, 25, hops)
}

func TestHopsBetween_Backward(t *testing.T) {
	s, err := layout.Plan(1, 3)
	require.NoError(t, err)

	_, err = layout.HopsBetween(s, layout.Tape(layout.B, 1), layout.Head(layout.A, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)

	var rangeErr *layout.ArithmeticRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Greater(t, rangeErr.From, rangeErr.To)

	_, err = layout.HopsBetween(s, layout.Head(layout.A, 0), layout.Head(layout.A, 9))
	assert.ErrorIs(t, err, domain.ErrInternal)
}
