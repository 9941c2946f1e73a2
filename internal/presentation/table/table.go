// Package table renders a machine's transition table as Markdown.
package table

import (
	"strings"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// Markdown renders one row per state and read symbol. Targets that no longer exist
// are shown as HALT, which is where the compiled machine sends them.
func Markdown(cfg domain.MachineConfig) string {
	var sb strings.Builder
	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|:---:|:---:|:---:|:---:|:---:|\n")
	for _, st := range cfg.States {
		for _, sym := range domain.Symbols {
			tr := st.On(sym)
			sb.WriteString("| ")
			sb.WriteString(Escape(st.Name))
			sb.WriteString(" | ")
			sb.WriteString(sym.String())
			sb.WriteString(" | ")
			sb.WriteString(tr.Write.String())
			sb.WriteString(" | ")
			sb.WriteString(string(tr.Move))
			sb.WriteString(" | ")
			sb.WriteString(Escape(cfg.StateName(cfg.Resolve(tr.Next))))
			sb.WriteString(" |\n")
		}
	}
	return sb.String()
}

// Escape backslash-escapes ASCII punctuation so a state name is always literal text.
func Escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
