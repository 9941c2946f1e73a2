package rules

import (
	"fmt"

	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/selector"
)

type generator struct {
	cfg    *domain.MachineConfig
	stream *layout.Stream
	out    Set
}

// Generate compiles the transition table of cfg into rules addressed against stream.
// The stream must have been planned for the machine's state count and tape length.
//
// Rules are produced in a fixed order: for each orientation (A read, then B read),
// the transition rules of every state followed by the tape carry; then the switch
// rule; then the state names.
func Generate(cfg domain.MachineConfig, stream *layout.Stream) (Set, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: no layout", domain.ErrInternal)
	}
	if stream.States() != len(cfg.States) || stream.Cells() != cfg.TapeLength {
		return nil, fmt.Errorf("%w: layout planned for %d states and %d cells, machine has %d and %d",
			domain.ErrInternal, stream.States(), stream.Cells(), len(cfg.States), cfg.TapeLength)
	}

	g := &generator{cfg: &cfg, stream: stream}
	for _, src := range layout.Buffers {
		for i, st := range cfg.States {
			if err := g.transition(src, i, st); err != nil {
				return nil, err
			}
		}
		if err := g.carry(src); err != nil {
			return nil, err
		}
	}
	if err := g.switchRule(); err != nil {
		return nil, err
	}
	if err := g.stateNames(); err != nil {
		return nil, err
	}
	return g.out, nil
}

func (g *generator) emit(kind Kind, src layout.Buffer, state int, branch Branch, terms ...term) error {
	sel, err := g.assemble(terms...)
	if err != nil {
		return fmt.Errorf("%s rule (source %s, state %d, read %s): %w", kind, src, state, branch, err)
	}
	g.out = append(g.out, Rule{Rule: sel.Reveal(), Kind: kind, Source: src, State: state, Branch: branch})
	return nil
}

// branches returns the single merged branch when both read symbols agree,
// and one branch per symbol otherwise.
func branches(merged bool) []Branch {
	if merged {
		return []Branch{BranchAny}
	}
	return []Branch{BranchZero, BranchOne}
}

// pick returns the transition a branch follows. A merged branch may use either.
func pick(st domain.State, br Branch) domain.Transition {
	if sym, ok := br.Symbol(); ok {
		return st.On(sym)
	}
	return st.Zero
}

func (g *generator) transition(src layout.Buffer, i int, st domain.State) error {
	if err := g.stateReveal(src, i, st); err != nil {
		return err
	}
	if err := g.tapeWrite(src, i, st); err != nil {
		return err
	}
	return g.headMove(src, i, st)
}

// stateReveal shows the destination state label until the destination state matches
// the transition's target.
func (g *generator) stateReveal(src layout.Buffer, i int, st domain.State) error {
	dst := src.Other()
	merged := g.cfg.Resolve(st.Zero.Next) == g.cfg.Resolve(st.One.Next)

	for _, br := range branches(merged) {
		next := g.cfg.Resolve(pick(st, br).Next)
		terms := []term{
			orientation(src),
			stateIs(src, i, true),
			stateIs(dst, next, false),
			fixed(layout.StateLabel(dst, next), labelOf(layout.State(dst, next))),
		}
		if sym, ok := br.Symbol(); ok {
			terms = append(terms, headAt(src, 0, true), tapeIs(src, 0, sym))
		}
		if err := g.emit(KindStateReveal, src, i, br, terms...); err != nil {
			return err
		}
	}
	return nil
}

// tapeWrite shows the destination write label of the cell under the source head
// while the destination cell does not yet hold the written symbol.
func (g *generator) tapeWrite(src layout.Buffer, i int, st domain.State) error {
	dst := src.Other()
	merged := st.Zero.Write == st.One.Write

	for _, br := range branches(merged) {
		write := pick(st, br).Write
		terms := []term{
			orientation(src),
			stateIs(src, i, true),
			headAt(src, 0, true),
			tapeIs(dst, 0, flip(write)),
			writeLabelAt(dst, 0),
		}
		if sym, ok := br.Symbol(); ok {
			terms = append(terms, tapeIs(src, 0, sym))
		}
		if err := g.emit(KindTapeWrite, src, i, br, terms...); err != nil {
			return err
		}
	}
	return nil
}

// headMove shows the destination head-move label that puts the destination head one
// cell further than the source head. Each branch gets a generic rule for the cells
// that can move, and a rule for the edge cell that keeps the head where it is.
// A single cell tape never moves.
func (g *generator) headMove(src layout.Buffer, i int, st domain.State) error {
	cells := g.stream.Cells()
	if cells < 2 {
		return nil
	}
	dst := src.Other()
	merged := st.Zero.Move == st.One.Move

	for _, br := range branches(merged) {
		sym, gated := br.Symbol()
		var generic, edge []term

		switch move := pick(st, br).Move; move {
		case domain.MoveLeft:
			// Reading cell p, the label at cell p targets head p-1.
			generic = []term{headAt(dst, 0, false), headAt(src, 1, true), moveLabelAt(dst, 1)}
			edge = []term{headOn(src, 0, true), headOn(dst, 0, false),
				fixed(layout.HeadMoveLabel(dst, 1), labelOf(layout.Head(dst, 0)))}
			if gated {
				generic = append(generic, tapeIs(src, 1, sym))
				edge = append(edge, tapeOn(src, 0, sym))
			}
		case domain.MoveRight:
			// Reading cell p, the label at cell p+2 targets head p+1.
			last := cells - 1
			generic = []term{headAt(src, 0, true), headAt(dst, 1, false), moveLabelAt(dst, 2)}
			edge = []term{headOn(src, last, true), headOn(dst, last, false),
				fixed(layout.HeadMoveLabel(dst, cells), labelOf(layout.Head(dst, last)))}
			if gated {
				generic = append(generic, tapeIs(src, 0, sym))
				edge = append(edge, tapeOn(src, last, sym))
			}
		default:
			return fmt.Errorf("state %q: unknown move %q", st.Name, move)
		}

		gate := []term{orientation(src), stateIs(src, i, true)}
		if err := g.emit(KindHeadMove, src, i, br, append(gate, generic...)...); err != nil {
			return err
		}
		if err := g.emit(KindHeadMove, src, i, br, append(gate, edge...)...); err != nil {
			return err
		}
	}
	return nil
}

// carry keeps the cells away from the source head in step: while the source is running,
// a destination cell that differs from its source cell shows its write label.
// Branch records the symbol being copied.
func (g *generator) carry(src layout.Buffer) error {
	dst := src.Other()
	halt := g.stream.HaltIndex()
	for _, sym := range domain.Symbols {
		err := g.emit(KindTapeCarry, src, -1, branchOf(sym),
			orientation(src),
			stateIs(src, halt, false),
			headAt(src, 0, false),
			tapeIs(src, 0, sym),
			tapeIs(dst, 0, flip(sym)),
			writeLabelAt(dst, 0),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// switchRule shows the buffer switch while the source buffer has not halted.
// Both orientations share one declaration.
func (g *generator) switchRule() error {
	halt := g.stream.HaltIndex()
	var rule selector.Rule
	for n, src := range layout.Buffers {
		sel, err := g.assemble(
			orientation(src),
			stateIs(src, halt, false),
			fixed(layout.SwitchLabel(), labelOf(layout.Switch())),
		)
		if err != nil {
			return fmt.Errorf("%s rule: %w", KindSwitch, err)
		}
		if n == 0 {
			rule = sel.Reveal()
			continue
		}
		rule = rule.Or(sel)
	}
	g.out = append(g.out, Rule{Rule: rule, Kind: KindSwitch, Source: layout.A, State: -1})
	return nil
}

// stateNames prints the selected state of each buffer in front of its tape.
func (g *generator) stateNames() error {
	for _, b := range layout.Buffers {
		display := layout.TapeDisplay(b, 0)
		for i := 0; i <= g.stream.HaltIndex(); i++ {
			sel, err := g.assemble(stateIs(b, i, true), fixed(display, selector.ID(display.ID())))
			if err != nil {
				return fmt.Errorf("%s rule: %w", KindStateName, err)
			}
			g.out = append(g.out, Rule{Rule: sel.Text(g.cfg.StateName(i)), Kind: KindStateName, Source: b, State: i})
		}
	}
	return nil
}

func flip(sym domain.Symbol) domain.Symbol {
	return 1 - sym
}
