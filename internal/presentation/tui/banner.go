package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cssmachine banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   ___ ___ ___   __  __         _    _`, "#38bdf8"},
		{`  / __/ __/ __| |  \/  |__ _ __| |_ (_)_ _  ___`, "#60a5fa"},
		{` | (__\__ \__ \ | |\/| / _' / _| ' \| | ' \/ -_)`, "#818cf8"},
		{`  \___|___/___/ |_|  |_\__,_\__|_||_|_|_||_\___|`, "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colours a short verdict: green when ok, red otherwise.
func Status(ok bool, text string) string {
	p := termenv.ColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
