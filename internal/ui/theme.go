package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Selected lipgloss.Style
	Border                                         lipgloss.Border
	BorderColor                                    lipgloss.TerminalColor
	SymDone, SymCross, SymEdit, SymCursor          string
}

var current = themeFor("classic")

// SetTheme selects classic (default), neon or mono.
func SetTheme(name string) {
	current = themeFor(name)
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymDone:     "✔", SymCross: "✖", SymEdit: "✎", SymCursor: "❯",
		}
	case "mono":
		return Theme{
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle(),
			Accent:      lipgloss.NewStyle(),
			Success:     lipgloss.NewStyle(),
			Error:       lipgloss.NewStyle(),
			Selected:    lipgloss.NewStyle().Reverse(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymDone:     "ok", SymCross: "x", SymEdit: "*", SymCursor: ">",
		}
	default: // classic
		return Theme{
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymDone:     "✔", SymCross: "✖", SymEdit: "✎", SymCursor: ">",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
