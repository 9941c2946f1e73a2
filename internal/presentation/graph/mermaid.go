package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the machine's transition table.
// Shapes:
// - Initial state: ((Circle))
// - HALT: [[Subroutine]]
// - Other states: [Rectangle]
// Edges are labelled "read/write,move". States that cannot be reached from the
// initial state are drawn dashed.
func GenerateMermaid(cfg domain.MachineConfig) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	halt := cfg.HaltIndex()
	for i, st := range cfg.States {
		opener, closer := "[", "]"
		if i == 0 {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(i, halt), opener, sanitizeLabel(st.Name), closer))
	}
	sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", nodeID(halt, halt), domain.HaltName))

	for i, st := range cfg.States {
		for _, sym := range domain.Symbols {
			tr := st.On(sym)
			next := cfg.Resolve(tr.Next)
			sb.WriteString(fmt.Sprintf("    %s -- \"%s/%s,%s\" --> %s\n", nodeID(i, halt), sym, tr.Write, tr.Move, nodeID(next, halt)))
		}
	}

	reachable := Reachable(cfg)
	var unreachable []string
	for i := range cfg.States {
		if !reachable[i] {
			unreachable = append(unreachable, nodeID(i, halt))
		}
	}
	if len(unreachable) > 0 {
		sb.WriteString("\n    %% Unreachable states\n")
		sb.WriteString("    classDef unreachable stroke-dasharray:4 4,color:#888;\n")
		sb.WriteString(fmt.Sprintf("    class %s unreachable;\n", strings.Join(unreachable, ",")))
	}

	return sb.String()
}

// Reachable marks the state indices reachable from the initial state, HALT included.
func Reachable(cfg domain.MachineConfig) []bool {
	seen := make([]bool, cfg.HaltIndex()+1)
	if len(cfg.States) == 0 {
		return seen
	}
	stack := []int{0}
	seen[0] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i == cfg.HaltIndex() {
			continue
		}
		for _, sym := range domain.Symbols {
			next := cfg.Resolve(cfg.States[i].On(sym).Next)
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return seen
}

func nodeID(i, halt int) string {
	if i == halt {
		return "halt"
	}
	return fmt.Sprintf("s%d", i)
}

func sanitizeLabel(name string) string {
	return strings.ReplaceAll(name, "\"", "#quot;")
}
