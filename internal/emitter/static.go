package emitter

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/pkg/domain"
)

//go:embed assets/machine.css.tmpl
var staticSource string

var staticTemplate = template.Must(template.New("machine.css").Parse(staticSource))

type staticData struct {
	Machine string
	Cells   int
	// Combinator chains from a control to an element of the same cell, ending in "+".
	HeadToDisplay string
	TapeToDisplay string
	TapeToWrite   string
}

// StaticCSS renders the rules that do not depend on the transition table: the grid,
// tape values, the head highlight and the start screen.
func StaticCSS(s *layout.Stream) (string, error) {
	data := staticData{Machine: MachineID, Cells: s.Cells()}

	var err error
	if data.HeadToDisplay, err = sameCellChain(s, layout.Head, layout.TapeDisplay); err != nil {
		return "", err
	}
	if data.TapeToDisplay, err = sameCellChain(s, layout.Tape, layout.TapeDisplay); err != nil {
		return "", err
	}
	if data.TapeToWrite, err = sameCellChain(s, layout.Tape, layout.TapeWriteLabel); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := staticTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render static styles: %w", err)
	}
	return buf.String(), nil
}

// sameCellChain measures the distance between two slots of one cell. The static rules
// are written once for both buffers, so the distance must not depend on the buffer.
func sameCellChain(s *layout.Stream, from, to func(layout.Buffer, int) layout.Slot) (string, error) {
	hops := -1
	for _, b := range layout.Buffers {
		n, err := layout.HopsBetween(s, from(b, 0), to(b, 0))
		if err != nil {
			return "", err
		}
		if hops >= 0 && n != hops {
			return "", fmt.Errorf("%w: %s and %s are %d apart in one buffer and %d in the other",
				domain.ErrInternal, from(b, 0).Kind, to(b, 0).Kind, hops, n)
		}
		hops = n
	}
	if hops < 1 {
		return "", fmt.Errorf("%w: empty chain", domain.ErrInternal)
	}
	return strings.Repeat("+*", hops-1) + "+", nil
}
