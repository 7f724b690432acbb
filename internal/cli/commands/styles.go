package commands

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// styles holds the REPL's output styles, bound to one writer.
type styles struct {
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
}

// newStyles creates styles for w. Colour is only emitted when w is a
// terminal.
func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	if !isTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &styles{
		Error:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Header: r.NewStyle().Bold(true),
	}
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
