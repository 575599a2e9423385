package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayazhan/wrkt/internal/workout"
)

// RunStartWizard starts the interactive session setup wizard. It returns
// the chosen activity and goal, with ok=false when the user cancelled.
func RunStartWizard(activity workout.ActivityKind, goalText string) (workout.ActivityKind, workout.Goal, bool, error) {
	model := NewStartModel(activity, goalText)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return activity, workout.Goal{}, false, err
	}

	if m, ok := finalModel.(StartModel); ok {
		if m.cancelled {
			fmt.Println("❌ Session setup cancelled.")
			return activity, workout.Goal{}, false, nil
		}
		return m.Activity(), m.Goal(), true, nil
	}

	return activity, workout.Goal{}, false, nil
}
