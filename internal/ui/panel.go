package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames lines in the current theme's border.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// PrintPanel writes Panel(lines) to stdout.
func PrintPanel(lines []string) {
	fmt.Fprintln(stdout, Panel(lines))
}
