// Package ui renders dash output for terminals: themes, framed panels,
// progress bars and the one-line OK / Fail status messages.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewRenderer returns a lipgloss renderer for w honoring the color mode.
// In auto mode the profile is detected from w, so pipes and buffers get
// plain text.
func NewRenderer(w io.Writer, color string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// Printer writes themed output to a pair of streams.
type Printer struct {
	out, errOut io.Writer
	theme       Theme
}

// NewPrinter builds a Printer. Styling is decided from out.
func NewPrinter(out, errOut io.Writer, theme, color string) *Printer {
	r := NewRenderer(out, color)
	if strings.EqualFold(theme, "mono") {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, errOut: errOut, theme: NewTheme(theme, r)}
}

// Theme returns the active theme.
func (p *Printer) Theme() Theme { return p.theme }

// OK prints a success line to out.
func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.theme.Success.Render(p.theme.SymOK+" "+msg))
}

// Fail prints an error line to errOut.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}

// Hint prints a muted helper line to errOut.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Muted.Render(msg))
}

// Panel prints lines inside a framed box.
func (p *Printer) Panel(lines []string) {
	fmt.Fprintln(p.out, p.theme.Panel(lines))
}
