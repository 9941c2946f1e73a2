package selector

import (
	"fmt"
	"strings"
)

type checkState uint8

const (
	checkAny checkState = iota
	checkOn
	checkOff
)

// Predicate matches a single element.
type Predicate struct {
	id       string
	attr     string
	value    string
	contains bool
	check    checkState
}

// ID matches the element with the given id.
func ID(id string) Predicate {
	return Predicate{id: id}
}

// Attr matches elements whose attribute equals value.
func Attr(name, value string) Predicate {
	return Predicate{attr: name, value: value}
}

// AttrContains matches elements whose attribute contains value.
func AttrContains(name, value string) Predicate {
	return Predicate{attr: name, value: value, contains: true}
}

// Any matches every element.
func Any() Predicate {
	return Predicate{}
}

// Checked restricts p to checked controls.
func (p Predicate) Checked() Predicate {
	p.check = checkOn
	return p
}

// Unchecked restricts p to elements that are not checked.
func (p Predicate) Unchecked() Predicate {
	p.check = checkOff
	return p
}

// IsAny reports whether p places no constraint on the element.
func (p Predicate) IsAny() bool {
	return p == Predicate{}
}

func (p Predicate) String() string {
	var sb strings.Builder
	if p.id != "" {
		sb.WriteString("#")
		sb.WriteString(p.id)
	}
	if p.attr != "" {
		op := "="
		if p.contains {
			op = "*="
		}
		fmt.Fprintf(&sb, "[%s%s%s]", p.attr, op, quote(p.value))
	}
	switch p.check {
	case checkOn:
		sb.WriteString(":checked")
	case checkOff:
		sb.WriteString(":not(:checked)")
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Selector is a compound structural selector, assembled left to right.
type Selector struct {
	parts []string
}

// Select starts a selector at p.
func Select(p Predicate) Selector {
	return Selector{parts: []string{p.String()}}
}

// Later matches p on any later sibling of the current element.
func (s Selector) Later(p Predicate) Selector {
	return s.with("~", p.String())
}

// Next matches p on the immediately following sibling.
func (s Selector) Next(p Predicate) Selector {
	return s.with("+", p.String())
}

// Hops matches p on the sibling exactly n positions later.
// n must be at least 1; anything else is a programming error.
func (s Selector) Hops(n int, p Predicate) Selector {
	if n < 1 {
		panic(fmt.Sprintf("selector: Hops(%d) must move forward", n))
	}
	for i := 1; i < n; i++ {
		s = s.Next(Any())
	}
	return s.Next(p)
}

func (s Selector) with(combinator, compound string) Selector {
	parts := make([]string, len(s.parts), len(s.parts)+2)
	copy(parts, s.parts)
	return Selector{parts: append(parts, combinator, compound)}
}

func (s Selector) String() string {
	return strings.Join(s.parts, "")
}

// Reveal makes the selected element visible.
func (s Selector) Reveal() Rule {
	return Rule{Selectors: []Selector{s}, Effect: RevealBlock()}
}

// Text sets the generated text of the selected element.
func (s Selector) Text(value string) Rule {
	return Rule{Selectors: []Selector{s}, Effect: SetGeneratedText(value)}
}

// quote renders v as a CSS string literal. '<' is escaped so that a value can never
// terminate the surrounding style element.
func quote(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\a `)
		case '<':
			sb.WriteString(`\3c `)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
