// ABOUTME: TUI initialization
// ABOUTME: Wraps the bubbletea program around the inspector model
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Resonate-Protocol/resonate-scope/internal/app"
)

// NewModel creates a new TUI model drawing the given plots
func NewModel(actions Actions, input, output *Plot) Model {
	return Model{
		actions: actions,
		plots:   [2]*Plot{app.Input: input, app.Output: output},
	}
}

// NewProgram creates the TUI program; the caller starts it with Run
func NewProgram(actions Actions, input, output *Plot) *tea.Program {
	return tea.NewProgram(NewModel(actions, input, output), tea.WithAltScreen())
}
