package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/catalog/internal/catalog"
)

// outcomeMsg carries a finished backend call back into Update.
type outcomeMsg struct{ catalog.Outcome }

// issue runs the pre-request state change now and the call in a command.
// The command goroutine only touches the controller through Perform.
func issue(ctx context.Context, ctrl *catalog.Controller, req catalog.Request) tea.Cmd {
	ctrl.Begin(req)
	return func() tea.Msg {
		return outcomeMsg{ctrl.Perform(ctx, req)}
	}
}
