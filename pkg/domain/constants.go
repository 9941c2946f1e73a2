package domain

import "strconv"

// HaltName is the display name of the implicit halting state.
// It is reserved: no declared state may use it.
const HaltName = "HALT"

// DefaultTapeLength is the tape length offered by the editor for a new machine.
const DefaultTapeLength = 15

// Symbol is a binary tape symbol.
type Symbol uint8

const (
	Zero Symbol = 0
	One  Symbol = 1
)

// Symbols lists the read symbols in branch order.
var Symbols = [...]Symbol{Zero, One}

// Valid reports whether s is 0 or 1.
func (s Symbol) Valid() bool {
	return s <= One
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s))
}

// Move is the direction the head travels after writing.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
)

// Valid reports whether m is L or R.
func (m Move) Valid() bool {
	return m == MoveLeft || m == MoveRight
}

// Delta returns the change in head position: -1 for L, +1 for R.
func (m Move) Delta() int {
	if m == MoveLeft {
		return -1
	}
	return 1
}
