package selector

import "strings"

// Effect is the single declaration a rule applies.
type Effect struct {
	Pseudo   string // pseudo-element the declaration targets, e.g. "::before"
	Property string
	Value    string
}

// RevealBlock sets display to block.
func RevealBlock() Effect {
	return Effect{Property: "display", Value: "block"}
}

// SetGeneratedText sets the generated content of the element's ::before pseudo-slot.
func SetGeneratedText(value string) Effect {
	return Effect{Pseudo: "::before", Property: "content", Value: quote(value)}
}

// Rule is one selector list plus its effect.
type Rule struct {
	Selectors []Selector
	Effect    Effect
}

// Or adds another selector sharing the same effect.
func (r Rule) Or(s Selector) Rule {
	selectors := make([]Selector, len(r.Selectors), len(r.Selectors)+1)
	copy(selectors, r.Selectors)
	r.Selectors = append(selectors, s)
	return r
}

func (r Rule) String() string {
	var sb strings.Builder
	for i, s := range r.Selectors {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s.String())
		sb.WriteString(r.Effect.Pseudo)
	}
	sb.WriteByte('{')
	sb.WriteString(r.Effect.Property)
	sb.WriteByte(':')
	sb.WriteString(r.Effect.Value)
	sb.WriteString(";}")
	return sb.String()
}
