package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Help                          lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending, SymOK, SymFail           string

	r *lipgloss.Renderer
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// NewTheme builds the named theme against r. Unknown names get classic.
func NewTheme(name string, r *lipgloss.Renderer) Theme {
	t := baseTheme(name, r)
	t.r = r
	return t
}

func baseTheme(name string, r *lipgloss.Renderer) Theme {
	st := r.NewStyle
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        st().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        st().Faint(true),
			Accent:       st().Foreground(lipgloss.Color("14")),
			Success:      st().Foreground(lipgloss.Color("10")),
			Error:        st().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      st().Foreground(lipgloss.Color("11")),
			Done:         st().Faint(true).Strikethrough(true),
			Selected:     st().Bold(true).Foreground(lipgloss.Color("13")),
			Help:         st().Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		plain := st()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Done: plain, Selected: plain, Help: plain,
			Border:       asciiBorder,
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-", SymOK: "ok:", SymFail: "error:",
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        st().Bold(true),
			Muted:        st().Faint(true),
			Accent:       st().Foreground(lipgloss.Color("12")),
			Success:      st().Foreground(lipgloss.Color("42")),
			Error:        st().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      st().Foreground(lipgloss.Color("214")),
			Done:         st().Faint(true).Strikethrough(true),
			Selected:     st().Bold(true).Reverse(true),
			Help:         st().Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
		}
	}
}

// Box returns the checkbox symbol for a completion state.
func (t Theme) Box(done bool) string {
	if done {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}
