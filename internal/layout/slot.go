package layout

import (
	"fmt"
	"strconv"
)

// Buffer names one of the two mirrored snapshots of the machine.
type Buffer uint8

const (
	A Buffer = iota
	B
)

// Buffers lists both snapshots in emission order.
var Buffers = [2]Buffer{A, B}

// Other returns the opposite buffer.
func (b Buffer) Other() Buffer {
	return 1 - b
}

func (b Buffer) String() string {
	if b == B {
		return "b"
	}
	return "a"
}

// Kind is the role of a slot in the document.
type Kind uint8

const (
	KindStarted Kind = iota
	KindSwitch
	KindState
	KindSwitchLabel
	KindHead
	KindTape
	KindHeadMoveLabel
	KindTapeWriteLabel
	KindTapeDisplay
	KindStateLabel
	KindStartedLabel
)

var kindNames = [...]string{
	KindStarted:        "started",
	KindSwitch:         "switch",
	KindState:          "state",
	KindSwitchLabel:    "switch-label",
	KindHead:           "head",
	KindTape:           "tape",
	KindHeadMoveLabel:  "head-move-label",
	KindTapeWriteLabel: "tape-write-label",
	KindTapeDisplay:    "tape-display",
	KindStateLabel:     "state-label",
	KindStartedLabel:   "started-label",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Shared reports whether the kind exists once rather than once per buffer.
func (k Kind) Shared() bool {
	switch k {
	case KindStarted, KindSwitch, KindSwitchLabel, KindStartedLabel:
		return true
	}
	return false
}

// IsLabel reports whether slots of this kind are labels pointing at a control.
func (k Kind) IsLabel() bool {
	switch k {
	case KindSwitchLabel, KindHeadMoveLabel, KindTapeWriteLabel, KindStateLabel, KindStartedLabel:
		return true
	}
	return false
}

const (
	startedID = "g"
	switchID  = "d"
)

var kindPrefix = map[Kind]byte{
	KindState:       's',
	KindHead:        'h',
	KindTape:        't',
	KindTapeDisplay: 'v',
}

// IDPrefix returns the identifier prefix shared by every control of kind k in buffer b,
// e.g. "ha" for the heads of buffer A. No other identifier contains it.
func IDPrefix(k Kind, b Buffer) string {
	p, ok := kindPrefix[k]
	if !ok {
		return ""
	}
	return string(p) + b.String()
}

// Slot describes one addressable element of the stream. Index is a state index for
// state slots and a cell index for tape slots; it is ignored for shared slots.
//
// A head-move label at cell c moves the head to c-1, so that the label for the final
// cell lives in the extra placeholder block.
type Slot struct {
	Kind        Kind
	Buffer      Buffer
	Index       int
	Placeholder bool
}

func Started() Slot      { return Slot{Kind: KindStarted} }
func Switch() Slot       { return Slot{Kind: KindSwitch} }
func SwitchLabel() Slot  { return Slot{Kind: KindSwitchLabel} }
func StartedLabel() Slot { return Slot{Kind: KindStartedLabel} }

func State(b Buffer, i int) Slot          { return Slot{Kind: KindState, Buffer: b, Index: i} }
func StateLabel(b Buffer, i int) Slot     { return Slot{Kind: KindStateLabel, Buffer: b, Index: i} }
func Head(b Buffer, c int) Slot           { return Slot{Kind: KindHead, Buffer: b, Index: c} }
func Tape(b Buffer, c int) Slot           { return Slot{Kind: KindTape, Buffer: b, Index: c} }
func HeadMoveLabel(b Buffer, c int) Slot  { return Slot{Kind: KindHeadMoveLabel, Buffer: b, Index: c} }
func TapeWriteLabel(b Buffer, c int) Slot { return Slot{Kind: KindTapeWriteLabel, Buffer: b, Index: c} }
func TapeDisplay(b Buffer, c int) Slot    { return Slot{Kind: KindTapeDisplay, Buffer: b, Index: c} }

// ID returns the element identifier of a control or display slot.
// Labels and placeholders have none.
func (s Slot) ID() string {
	if s.Placeholder {
		return ""
	}
	switch s.Kind {
	case KindStarted:
		return startedID
	case KindSwitch:
		return switchID
	case KindState, KindHead, KindTape, KindTapeDisplay:
		return IDPrefix(s.Kind, s.Buffer) + strconv.Itoa(s.Index)
	}
	return ""
}

// Target returns the control a label toggles.
func (s Slot) Target() (Slot, bool) {
	if s.Placeholder {
		return Slot{}, false
	}
	switch s.Kind {
	case KindSwitchLabel:
		return Switch(), true
	case KindStartedLabel:
		return Started(), true
	case KindStateLabel:
		return State(s.Buffer, s.Index), true
	case KindHeadMoveLabel:
		return Head(s.Buffer, s.Index-1), true
	case KindTapeWriteLabel:
		return Tape(s.Buffer, s.Index), true
	}
	return Slot{}, false
}

// For returns the identifier a label points at, or "" for anything else.
func (s Slot) For() string {
	t, ok := s.Target()
	if !ok {
		return ""
	}
	return t.ID()
}

func (s Slot) String() string {
	switch {
	case s.Kind.Shared():
		return s.Kind.String()
	case s.Placeholder:
		return fmt.Sprintf("%s[%s%d](placeholder)", s.Kind, s.Buffer, s.Index)
	}
	return fmt.Sprintf("%s[%s%d]", s.Kind, s.Buffer, s.Index)
}
