package layout

import (
	"errors"
	"fmt"

	"github.com/aretw0/cssmachine/pkg/domain"
)

var (
	// ErrInvalidDimensions is returned by Plan for a state count or tape length below one.
	ErrInvalidDimensions = errors.New("layout needs at least one state and one tape cell")

	// ErrLayoutMismatch means the emission order and the position arithmetic disagree.
	ErrLayoutMismatch = fmt.Errorf("%w: stream order does not match slot arithmetic", domain.ErrInternal)
)

// cellWidth is the number of slots in one tape cell block:
// heads, tapes, head-move labels, write labels and displays, one of each per buffer.
const cellWidth = 10

// Offsets of each kind inside a cell block, before adding the buffer.
const (
	headOffset      = 0
	tapeOffset      = 2
	moveLabelOffset = 4
	writeOffset     = 6
	displayOffset   = 8
)

// placeholderWidth is the width of the block after the last real cell: two head
// placeholders, two tape placeholders and the head-move labels of both buffers.
const placeholderWidth = 6

// Stream is the fixed emission order of every slot for one state count and tape length.
// It depends only on those two numbers, never on transition content.
type Stream struct {
	states int
	cells  int
	slots  []Slot
}

// Plan lays out the stream for states declared states (HALT is added implicitly) and
// cells tape cells.
func Plan(states, cells int) (*Stream, error) {
	if states < 1 || cells < 1 {
		return nil, fmt.Errorf("%w: states=%d cells=%d", ErrInvalidDimensions, states, cells)
	}
	s := &Stream{states: states, cells: cells}
	s.slots = s.emissionOrder()

	if len(s.slots) != s.Len() {
		return nil, fmt.Errorf("%w: emitted %d slots, expected %d", ErrLayoutMismatch, len(s.slots), s.Len())
	}
	for i, slot := range s.slots {
		pos, ok := s.Position(slot)
		if !ok || pos != i {
			return nil, fmt.Errorf("%w: %s emitted at %d, computed %d", ErrLayoutMismatch, slot, i, pos)
		}
	}
	return s, nil
}

// emissionOrder walks the document in the order it is written out. It is kept
// independent of Position so that Plan can compare the two.
func (s *Stream) emissionOrder() []Slot {
	out := make([]Slot, 0, s.Len())
	out = append(out, Started(), Switch())
	for i := 0; i <= s.states; i++ {
		for _, b := range Buffers {
			out = append(out, State(b, i))
		}
	}
	out = append(out, SwitchLabel())

	for c := 0; c <= s.cells; c++ {
		last := c == s.cells
		for _, b := range Buffers {
			h := Head(b, c)
			h.Placeholder = last
			out = append(out, h)
		}
		for _, b := range Buffers {
			t := Tape(b, c)
			t.Placeholder = last
			out = append(out, t)
		}
		for _, b := range Buffers {
			m := HeadMoveLabel(b, c)
			m.Placeholder = c == 0
			out = append(out, m)
		}
		if last {
			break
		}
		for _, b := range Buffers {
			out = append(out, TapeWriteLabel(b, c))
		}
		for _, b := range Buffers {
			out = append(out, TapeDisplay(b, c))
		}
	}

	for i := 0; i <= s.states; i++ {
		for _, b := range Buffers {
			out = append(out, StateLabel(b, i))
		}
	}
	return append(out, StartedLabel())
}

// States returns the number of declared states.
func (s *Stream) States() int { return s.states }

// Cells returns the tape length.
func (s *Stream) Cells() int { return s.cells }

// HaltIndex is the state index of the implicit HALT state.
func (s *Stream) HaltIndex() int { return s.states }

// HeadStart is the cell the head starts on: the middle, rounding left.
func (s *Stream) HeadStart() int { return (s.cells+1)/2 - 1 }

// Len returns the total number of slots.
func (s *Stream) Len() int { return s.stateLabelBase() + 2*(s.states+1) + 1 }

// Slots returns a copy of the stream in emission order.
func (s *Stream) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Checked reports whether a control starts out selected.
func (s *Stream) Checked(slot Slot) bool {
	switch slot.Kind {
	case KindState:
		return slot.Index == 0
	case KindHead:
		return !slot.Placeholder && slot.Index == s.HeadStart()
	}
	return false
}

func (s *Stream) switchLabelPos() int { return 2 + 2*(s.states+1) }
func (s *Stream) tapeBase() int       { return s.switchLabelPos() + 1 }
func (s *Stream) stateLabelBase() int { return s.tapeBase() + cellWidth*s.cells + placeholderWidth }

// Position returns the stream position of slot, computed without walking the stream.
// It reports false for a slot that does not exist in this layout.
func (s *Stream) Position(slot Slot) (int, bool) {
	b := int(slot.Buffer)
	if !slot.Kind.Shared() && b > int(B) {
		return 0, false
	}
	cell := func(offset int, lo, hi int) (int, bool) {
		if slot.Index < lo || slot.Index > hi {
			return 0, false
		}
		return s.tapeBase() + cellWidth*slot.Index + offset + b, true
	}

	switch slot.Kind {
	case KindStarted:
		return 0, true
	case KindSwitch:
		return 1, true
	case KindState:
		if slot.Index < 0 || slot.Index > s.states {
			return 0, false
		}
		return 2 + 2*slot.Index + b, true
	case KindSwitchLabel:
		return s.switchLabelPos(), true
	case KindHead:
		return cell(headOffset, 0, s.cells)
	case KindTape:
		return cell(tapeOffset, 0, s.cells)
	case KindHeadMoveLabel:
		return cell(moveLabelOffset, 0, s.cells)
	case KindTapeWriteLabel:
		return cell(writeOffset, 0, s.cells-1)
	case KindTapeDisplay:
		return cell(displayOffset, 0, s.cells-1)
	case KindStateLabel:
		if slot.Index < 0 || slot.Index > s.states {
			return 0, false
		}
		return s.stateLabelBase() + 2*slot.Index + b, true
	case KindStartedLabel:
		return s.stateLabelBase() + 2*(s.states+1), true
	}
	return 0, false
}
