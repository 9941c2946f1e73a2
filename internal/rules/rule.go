package rules

import (
	"strconv"
	"strings"

	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/selector"
)

// Kind is the family a rule belongs to.
type Kind uint8

const (
	KindStateReveal Kind = iota
	KindTapeWrite
	KindHeadMove
	KindSwitch
	KindStateName
	// KindTapeCarry copies cells away from the head into the destination buffer.
	KindTapeCarry
)

var kindNames = [...]string{
	KindStateReveal: "state-reveal",
	KindTapeWrite:   "tape-write",
	KindHeadMove:    "head-move",
	KindSwitch:      "switch",
	KindStateName:   "state-name",
	KindTapeCarry:   "tape-carry",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Branch is the read symbol a rule is gated on.
type Branch uint8

const (
	// BranchAny is used by rules merged across both read symbols, and by rules
	// that do not read the tape at all.
	BranchAny Branch = iota
	BranchZero
	BranchOne
)

func branchOf(sym domain.Symbol) Branch {
	if sym == domain.One {
		return BranchOne
	}
	return BranchZero
}

// Symbol returns the read symbol of a gated branch.
func (b Branch) Symbol() (domain.Symbol, bool) {
	switch b {
	case BranchZero:
		return domain.Zero, true
	case BranchOne:
		return domain.One, true
	}
	return 0, false
}

func (b Branch) String() string {
	if sym, ok := b.Symbol(); ok {
		return sym.String()
	}
	return "*"
}

// Rule is one generated declaration plus what it was generated for.
type Rule struct {
	selector.Rule
	Kind Kind
	// Source is the buffer the rule reads. The switch rule spans both orientations
	// and reports A.
	Source layout.Buffer
	// State is the state index the rule is gated on, or -1.
	State  int
	Branch Branch
}

// Set is an ordered list of rules.
type Set []Rule

// Count returns how many rules of kind k the set holds.
func (s Set) Count(k Kind) int {
	n := 0
	for _, r := range s {
		if r.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the rules of kind k, in order.
func (s Set) Filter(k Kind) Set {
	var out Set
	for _, r := range s {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// CSS renders the set, one declaration per line.
func (s Set) CSS() string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
