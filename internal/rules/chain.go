package rules

import (
	"fmt"
	"slices"

	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/selector"
)

// term is one predicate of a rule. Fixed terms name a single element and are joined
// with "~". Linked terms match generically and take their meaning from their exact
// distance to the neighbouring linked term; slot is a representative instance used
// to measure that distance.
type term struct {
	slot   layout.Slot
	pred   selector.Predicate
	linked bool
}

type placedTerm struct {
	term
	pos int
}

// assemble orders terms by stream position, since combinators only reach forward,
// and joins them into one selector.
func (g *generator) assemble(terms ...term) (selector.Selector, error) {
	if len(terms) == 0 {
		return selector.Selector{}, fmt.Errorf("%w: empty rule", domain.ErrInternal)
	}
	placed := make([]placedTerm, 0, len(terms))
	for _, t := range terms {
		pos, ok := g.stream.Position(t.slot)
		if !ok {
			return selector.Selector{}, fmt.Errorf("%w: %s is outside the layout", domain.ErrInternal, t.slot)
		}
		placed = append(placed, placedTerm{term: t, pos: pos})
	}
	slices.SortStableFunc(placed, func(a, b placedTerm) int { return a.pos - b.pos })

	if err := checkContiguous(placed); err != nil {
		return selector.Selector{}, err
	}

	sel := selector.Select(placed[0].pred)
	for i := 1; i < len(placed); i++ {
		prev, cur := placed[i-1], placed[i]
		if !prev.linked || !cur.linked {
			sel = sel.Later(cur.pred)
			continue
		}
		hops, err := layout.HopsBetween(g.stream, prev.slot, cur.slot)
		if err != nil {
			return selector.Selector{}, err
		}
		if hops == 0 {
			return selector.Selector{}, fmt.Errorf("%w: %s appears twice in one chain", domain.ErrInternal, cur.slot)
		}
		sel = sel.Hops(hops, cur.pred)
	}
	return sel, nil
}

// checkContiguous rejects a fixed term landing inside a chain, which would cut the
// chain in two and lose the distance between its halves.
func checkContiguous(placed []placedTerm) error {
	seen, ended := false, false
	for _, p := range placed {
		switch {
		case p.linked && ended:
			return fmt.Errorf("%w: chain interrupted before %s", domain.ErrInternal, p.slot)
		case p.linked:
			seen = true
		case seen:
			ended = true
		}
	}
	return nil
}

func fixed(slot layout.Slot, pred selector.Predicate) term {
	return term{slot: slot, pred: pred}
}

func linked(slot layout.Slot, pred selector.Predicate) term {
	return term{slot: slot, pred: pred, linked: true}
}

// orientation matches the switch position in which src is read.
func orientation(src layout.Buffer) term {
	p := selector.ID(layout.Switch().ID()).Unchecked()
	if src == layout.B {
		p = selector.ID(layout.Switch().ID()).Checked()
	}
	return fixed(layout.Switch(), p)
}

func stateIs(b layout.Buffer, i int, selected bool) term {
	slot := layout.State(b, i)
	return fixed(slot, checked(selector.ID(slot.ID()), selected))
}

func checked(p selector.Predicate, on bool) selector.Predicate {
	if on {
		return p.Checked()
	}
	return p.Unchecked()
}

func anyOf(k layout.Kind, b layout.Buffer) selector.Predicate {
	return selector.AttrContains("id", layout.IDPrefix(k, b))
}

func labelFor(k layout.Kind, b layout.Buffer) selector.Predicate {
	return selector.AttrContains("for", layout.IDPrefix(k, b))
}

func labelOf(target layout.Slot) selector.Predicate {
	return selector.Attr("for", target.ID())
}

// Generic terms, positioned relative to cell p.

func headAt(b layout.Buffer, p int, on bool) term {
	return linked(layout.Head(b, p), checked(anyOf(layout.KindHead, b), on))
}

func tapeIs(b layout.Buffer, p int, sym domain.Symbol) term {
	return linked(layout.Tape(b, p), checked(anyOf(layout.KindTape, b), sym == domain.One))
}

func writeLabelAt(b layout.Buffer, p int) term {
	return linked(layout.TapeWriteLabel(b, p), labelFor(layout.KindTape, b))
}

func moveLabelAt(b layout.Buffer, c int) term {
	return linked(layout.HeadMoveLabel(b, c), labelFor(layout.KindHead, b))
}

// Fixed terms for one known cell.

func headOn(b layout.Buffer, c int, on bool) term {
	slot := layout.Head(b, c)
	return fixed(slot, checked(selector.ID(slot.ID()), on))
}

func tapeOn(b layout.Buffer, c int, sym domain.Symbol) term {
	slot := layout.Tape(b, c)
	return fixed(slot, checked(selector.ID(slot.ID()), sym == domain.One))
}
