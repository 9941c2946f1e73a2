package emitter

import (
	"fmt"
	"strings"

	"github.com/aretw0/cssmachine/internal/layout"
)

// MachineID is the id of the element wrapping the stream.
const MachineID = "machine"

// Body renders every slot of the stream, in stream order, inside the machine element.
// The element written for each slot is what the rule offsets count, so nothing else
// may be emitted between them.
func Body(s *layout.Stream) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div id=%q>", MachineID)
	for i, slot := range s.Slots() {
		if err := writeSlot(&sb, s, slot); err != nil {
			return "", fmt.Errorf("slot %d: %w", i, err)
		}
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

func writeSlot(sb *strings.Builder, s *layout.Stream, slot layout.Slot) error {
	if slot.Placeholder {
		sb.WriteString("<i></i>")
		return nil
	}
	checked := ""
	if s.Checked(slot) {
		checked = " checked"
	}

	switch slot.Kind {
	case layout.KindStarted:
		fmt.Fprintf(sb, `<input type="radio" id="%s">`, slot.ID())
	case layout.KindSwitch, layout.KindTape:
		fmt.Fprintf(sb, `<input type="checkbox" id="%s">`, slot.ID())
	case layout.KindState, layout.KindHead:
		fmt.Fprintf(sb, `<input type="radio" name="%s" id="%s"%s>`, layout.IDPrefix(slot.Kind, slot.Buffer), slot.ID(), checked)
	case layout.KindTapeDisplay:
		fmt.Fprintf(sb, `<span id="%s"></span>`, slot.ID())
	default:
		if !slot.Kind.IsLabel() {
			return fmt.Errorf("no element for %s", slot)
		}
		fmt.Fprintf(sb, `<label for="%s"></label>`, slot.For())
	}
	return nil
}
