package domain

// State is a named machine state with one transition per read symbol.
type State struct {
	Name string     `json:"name" yaml:"name"`
	Zero Transition `json:"zero" yaml:"zero"`
	One  Transition `json:"one" yaml:"one"`
}

// On returns the transition taken when sym is under the head.
func (s State) On(sym Symbol) Transition {
	if sym == One {
		return s.One
	}
	return s.Zero
}

// NewState returns a state with the editor's defaults for an added state:
// reading 0 writes 1 and moves left, reading 1 writes 0 and moves right, and both halt.
func NewState(name string) State {
	return State{
		Name: name,
		Zero: Transition{Write: One, Move: MoveLeft, Next: HaltName},
		One:  Transition{Write: Zero, Move: MoveRight, Next: HaltName},
	}
}

// NextStateName returns the name following prev in the sequence A, B, ..., Z, AA, AB, ...
// The rightmost byte that can be incremented without passing 'Z' is bumped and
// everything after it resets to 'A'; when none can, the name grows by one letter.
func NextStateName(prev string) string {
	if prev == "" {
		return "A"
	}
	b := []byte(prev)
	for i := len(b) - 1; i >= 0; i-- {
		if int(b[i])+1 <= 'Z' {
			b[i]++
			for j := i + 1; j < len(b); j++ {
				b[j] = 'A'
			}
			return string(b)
		}
	}
	next := make([]byte, len(b)+1)
	for i := range next {
		next[i] = 'A'
	}
	return string(next)
}
