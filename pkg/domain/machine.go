package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/cssmachine/pkg/schema"
)

// MachineConfig is the complete input of one compilation.
type MachineConfig struct {
	// Name is a descriptive label used for titles and logs. It has no semantic meaning.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// States are ordered; a state's position is its index.
	States []State `json:"states" yaml:"states"`

	// TapeLength is the number of tape cells. Values below 1 are clamped to 1.
	TapeLength int `json:"tape_length" yaml:"tape_length"`
}

// DefaultMachine returns the machine the editor starts with.
func DefaultMachine() MachineConfig {
	return MachineConfig{
		States: []State{{
			Name: "A",
			Zero: Transition{Write: One, Move: MoveLeft, Next: HaltName},
			One:  Transition{Write: Zero, Move: MoveRight, Next: "A"},
		}},
		TapeLength: DefaultTapeLength,
	}
}

// HaltIndex returns the index of the implicit halting state.
func (m *MachineConfig) HaltIndex() int {
	return len(m.States)
}

// Resolve maps a transition target to a state index.
// Names that are not declared (including HALT and the empty string) resolve to HaltIndex.
func (m *MachineConfig) Resolve(next string) int {
	if next == HaltName {
		return m.HaltIndex()
	}
	for i, s := range m.States {
		if s.Name == next {
			return i
		}
	}
	return m.HaltIndex()
}

// StateName returns the display name of the state at idx, or HaltName for the halting index.
func (m *MachineConfig) StateName(idx int) string {
	if idx >= 0 && idx < len(m.States) {
		return m.States[idx].Name
	}
	return HaltName
}

// Clone returns a deep copy so a compilation can normalize without touching the caller's value.
func (m MachineConfig) Clone() MachineConfig {
	states := make([]State, len(m.States))
	copy(states, m.States)
	m.States = states
	return m
}

// Normalize clamps the tape length to the valid minimum.
// It reports whether the value was changed.
func (m *MachineConfig) Normalize() bool {
	if m.TapeLength < 1 {
		m.TapeLength = 1
		return true
	}
	return false
}

// Validate checks the structural rules the compiler relies on.
// Transition targets are deliberately not checked: unknown names mean HALT.
func (m *MachineConfig) Validate() error {
	if len(m.States) == 0 {
		return schema.Aggregate([]error{fmt.Errorf("%w: %w", ErrNoStates, &schema.ValidationError{
			Key:    "states",
			Reason: "at least one state is required",
		})})
	}

	var errs []error
	if m.TapeLength < 1 {
		errs = append(errs, &schema.ValidationError{Key: "tape_length", Reason: "must be at least 1", Value: m.TapeLength})
	}

	seen := make(map[string]int, len(m.States))
	for i, s := range m.States {
		key := fmt.Sprintf("states[%d]", i)
		switch {
		case strings.TrimSpace(s.Name) == "":
			errs = append(errs, &schema.ValidationError{Key: key + ".name", Reason: "must not be empty"})
		case s.Name == HaltName:
			errs = append(errs, &schema.ValidationError{Key: key + ".name", Reason: "is reserved for the halting state", Value: s.Name})
		default:
			if prev, dup := seen[s.Name]; dup {
				errs = append(errs, &schema.ValidationError{
					Key:    key + ".name",
					Reason: fmt.Sprintf("duplicates states[%d]", prev),
					Value:  s.Name,
				})
			} else {
				seen[s.Name] = i
			}
		}
		for _, sym := range Symbols {
			t := s.On(sym)
			branch := key + "." + branchKey(sym)
			if !t.Write.Valid() {
				errs = append(errs, &schema.ValidationError{Key: branch + ".write", Reason: "must be 0 or 1", Value: t.Write})
			}
			if !t.Move.Valid() {
				errs = append(errs, &schema.ValidationError{Key: branch + ".move", Reason: "must be L or R", Value: t.Move})
			}
		}
	}
	return schema.Aggregate(errs)
}

func branchKey(sym Symbol) string {
	if sym == One {
		return "one"
	}
	return "zero"
}

// AddState appends a state with the editor defaults, named after the last state.
func (m *MachineConfig) AddState() State {
	prev := ""
	if n := len(m.States); n > 0 {
		prev = m.States[n-1].Name
	}
	name := NextStateName(prev)
	for m.Resolve(name) != m.HaltIndex() {
		name = NextStateName(name)
	}
	s := NewState(name)
	m.States = append(m.States, s)
	return s
}

// RemoveState deletes the named state. Transitions that pointed at it are left as they
// are and therefore resolve to HALT from now on. It reports whether a state was removed.
func (m *MachineConfig) RemoveState(name string) bool {
	for i, s := range m.States {
		if s.Name == name {
			m.States = append(m.States[:i:i], m.States[i+1:]...)
			return true
		}
	}
	return false
}

// ParseTapeLength parses the editor's tape length field like the form does: leading
// spaces are skipped and the leading digits are read, so "8.5" is 8 and "12abc" is 12.
// Anything without leading digits, or below 1, becomes 1.
func ParseTapeLength(value string) int {
	value = strings.TrimLeftFunc(value, unicode.IsSpace)
	value = strings.TrimPrefix(value, "+")
	end := strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(value)
	}
	if end == 0 {
		return 1
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		// Only overflow is left; the caller's limits decide what is too long.
		return math.MaxInt
	}
	if n < 1 {
		return 1
	}
	return n
}
