package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayazhan/wrkt/internal/parser"
	"github.com/ayazhan/wrkt/internal/workout"
)

// startStep represents the current step in the start wizard
type startStep int

const (
	stepActivity startStep = iota
	stepGoal
	stepConfirm
)

// StartModel represents the TUI model for the session start wizard
type StartModel struct {
	currentStep startStep
	goalInput   textinput.Model
	width       int
	height      int

	// Session setup
	activityIdx int
	goal        workout.Goal
	goalText    string

	// State
	confirmed     bool
	cancelled     bool
	validationErr string

	// Shimmer effect for the activity preview
	shimmer *ShimmerState
}

// NewStartModel creates a new start wizard TUI model
func NewStartModel(activity workout.ActivityKind, goalText string) StartModel {
	input := textinput.New()
	input.Width = 60
	input.Placeholder = "7.5km, 300kcal or 45m (Enter to skip - no goal)"
	input.CharLimit = 20
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := StartModel{
		goalInput: input,
		shimmer:   NewShimmerState(DefaultShimmerConfig()),
	}

	// Pre-filled values from flags
	for i, kind := range workout.Activities {
		if kind == activity {
			m.activityIdx = i
		}
	}
	if goalText != "" {
		m.goalInput.SetValue(goalText)
	}

	return m
}

// Init initializes the model
func (m StartModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if m.shimmer.ShouldTick() {
		cmds = append(cmds, tea.Tick(m.shimmer.GetTickInterval(), func(time.Time) tea.Msg {
			return shimmerTickMsg{}
		}))
	}

	return tea.Batch(cmds...)
}

// shimmerTickMsg is sent when shimmer should update
type shimmerTickMsg struct{}

// Update handles messages
func (m StartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if m.shimmer.ShouldTick() {
			return m, tea.Tick(m.shimmer.GetTickInterval(), func(time.Time) tea.Msg {
				return shimmerTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		maxInputWidth := (m.width * 2 / 3) - 10
		if maxInputWidth < 30 {
			maxInputWidth = 30
		}
		if maxInputWidth > 80 {
			maxInputWidth = 80
		}
		m.goalInput.Width = maxInputWidth

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up", "k":
			if m.currentStep == stepActivity {
				m.activityIdx = (m.activityIdx + len(workout.Activities) - 1) % len(workout.Activities)
				m.shimmer.Reset()
				return m, nil
			}
			return m.prevStep()

		case "down", "j":
			if m.currentStep == stepActivity {
				m.activityIdx = (m.activityIdx + 1) % len(workout.Activities)
				m.shimmer.Reset()
				return m, nil
			}
			return m.nextStep()

		case "shift+tab":
			return m.prevStep()

		case "tab":
			return m.nextStep()
		}
	}

	// Only the goal step has a live text input
	var cmd tea.Cmd
	if m.currentStep == stepGoal {
		m.goalInput, cmd = m.goalInput.Update(msg)
		m.goalText = m.goalInput.Value()
	}

	return m, cmd
}

// handleEnter processes the Enter key
func (m StartModel) handleEnter() (StartModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case stepActivity:
		return m.nextStep()

	case stepGoal:
		goal, err := parser.ParseGoal(m.goalInput.Value())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.goal = goal
		m.goalText = strings.TrimSpace(m.goalInput.Value())
		return m.nextStep()

	case stepConfirm:
		m.confirmed = true
		return m, tea.Quit
	}

	return m, nil
}

// nextStep moves to the next step
func (m StartModel) nextStep() (StartModel, tea.Cmd) {
	if m.currentStep < stepConfirm {
		// Leaving the goal step re-validates whatever is typed
		if m.currentStep == stepGoal {
			goal, err := parser.ParseGoal(m.goalInput.Value())
			if err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
			m.goal = goal
			m.goalInput.Blur()
		}
		m.currentStep++
		if m.currentStep == stepGoal {
			m.goalInput.Focus()
		}
		m.shimmer.Reset()
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m StartModel) prevStep() (StartModel, tea.Cmd) {
	if m.currentStep > stepActivity {
		if m.currentStep == stepGoal {
			m.goalInput.Blur()
		}
		m.currentStep--
		if m.currentStep == stepGoal {
			m.goalInput.Focus()
		}
		m.shimmer.Reset()
	}
	return m, textinput.Blink
}

// Activity returns the chosen activity
func (m StartModel) Activity() workout.ActivityKind {
	return workout.Activities[m.activityIdx]
}

// Goal returns the parsed session goal
func (m StartModel) Goal() workout.Goal {
	return m.goal
}

// View renders the TUI
func (m StartModel) View() string {
	if m.cancelled || m.confirmed {
		return "" // Don't show anything, let TUI handle exit message
	}

	if m.width < 85 {
		return m.renderSmallLayout()
	}

	rightWidth := (m.width * 35) / 100
	if rightWidth < 46 {
		rightWidth = 46
	}
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)

	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1)

	leftPanel := leftStyle.Render(m.renderWizard())
	rightPanel := rightStyle.Render(m.renderPreview(rightWidth))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		" ",
		rightPanel,
	)
}

// renderWizard renders the step-by-step wizard
func (m StartModel) renderWizard() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("🏁 Start Workout"))
	b.WriteString("\n\n")

	// Step indicator
	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	futureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	skippedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	stepLabels := []string{"Activity", "Goal", "Start"}
	for i, label := range stepLabels {
		step := startStep(i)
		switch {
		case step == m.currentStep:
			b.WriteString(currentStyle.Render("▶ " + label))
		case step < m.currentStep:
			if m.stepHasValue(step) {
				b.WriteString(doneStyle.Render("✓ " + label))
			} else {
				b.WriteString(skippedStyle.Render("  " + label))
			}
		default:
			b.WriteString(futureStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Current step content
	switch m.currentStep {
	case stepActivity:
		b.WriteString("🚴 Activity\n")
		for i, kind := range workout.Activities {
			if i == m.activityIdx {
				line := fmt.Sprintf("› %s %s", activityIcon(kind), kind.Label())
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(ColorAccentBright)).
					Bold(true).
					Render(line))
			} else {
				b.WriteString(fmt.Sprintf("  %s %s", activityIcon(kind), kind.Label()))
			}
			b.WriteString("\n")
		}

	case stepGoal:
		b.WriteString("🎯 Session Goal\n")
		b.WriteString(m.goalInput.View())

	case stepConfirm:
		b.WriteString("🏁 Ready\n")
		b.WriteString("Press Enter to start the session")
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString(errorStyle.Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	helpText := "Enter: Next | Tab: Next | Shift+Tab: Back | Esc: Cancel"
	if m.currentStep == stepActivity {
		helpText = "↑/↓: Choose | Enter: Next | Esc: Cancel"
	}
	b.WriteString(helpStyle.Render(helpText))

	return b.String()
}

// stepHasValue checks if a step has been filled with a value (not skipped)
func (m StartModel) stepHasValue(step startStep) bool {
	switch step {
	case stepActivity:
		return true // Always has a selection
	case stepGoal:
		return m.goal.Kind != workout.GoalNone
	default:
		return false
	}
}

// renderPreview renders the live session preview card
func (m StartModel) renderPreview(panelWidth int) string {
	var b strings.Builder

	cardWidth := 40

	// Vertical centering
	verticalPadding := (m.height - 20) / 2
	if verticalPadding < 0 {
		verticalPadding = 0
	}
	for i := 0; i < verticalPadding; i++ {
		b.WriteString("\n")
	}

	var cardContent strings.Builder

	cardContent.WriteString(renderLogo(cardWidth - 2))
	cardContent.WriteString("\n")

	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Align(lipgloss.Center).
		Width(cardWidth - 4)
	cardContent.WriteString(separatorStyle.Render(strings.Repeat("═", cardWidth-6)))
	cardContent.WriteString("\n")

	// Activity box with shimmered label
	activity := m.Activity()
	shimmerLabel := m.shimmer.RenderShimmerText(activity.Label(), cardWidth-8)
	activityBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Center).
		Width(cardWidth - 4)
	// Reset ANSI codes so the border displays properly after the shimmer
	cardContent.WriteString(activityBoxStyle.Render(fmt.Sprintf("%s %s\033[0m", activityIcon(activity), shimmerLabel)))
	cardContent.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDisabledText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(cardWidth - 4)
	cardContent.WriteString(statusStyle.Render("● not started"))
	cardContent.WriteString("\n")

	cardContent.WriteString(separatorStyle.Render(strings.Repeat("─", cardWidth-6)))
	cardContent.WriteString("\n")

	metadataStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		Padding(0, 1)

	var metadata strings.Builder
	if m.goal.Kind != workout.GoalNone {
		goalStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Bold(true)
		metadata.WriteString(fmt.Sprintf("🎯 Goal: %s\n", goalStyle.Render(m.goal.String())))
	} else {
		metadata.WriteString("🎯 Goal: open session\n")
	}
	metadata.WriteString("📟 Metrics: distance, energy, heart rate\n")
	cardContent.WriteString(metadataStyle.Render(metadata.String()))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(cardWidth).
		Padding(1).
		Align(lipgloss.Center)

	cardContainer := lipgloss.NewStyle().
		Width(panelWidth).
		Align(lipgloss.Center)

	b.WriteString(cardContainer.Render(cardStyle.Render(cardContent.String())))

	return b.String()
}

// renderSmallLayout renders the entire wizard for very small terminals
func (m StartModel) renderSmallLayout() string {
	style := lipgloss.NewStyle().
		Width(m.width - 2).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)

	var b strings.Builder
	b.WriteString(m.renderWizard())
	b.WriteString("\n═══ SESSION ═══\n")
	b.WriteString(fmt.Sprintf("%s %s\n", activityIcon(m.Activity()), m.Activity().Label()))
	if m.goal.Kind != workout.GoalNone {
		b.WriteString(fmt.Sprintf("🎯 %s\n", m.goal))
	}
	b.WriteString("💡 Tip: Stretch terminal for better UI\n")

	return style.Render(b.String())
}

// activityIcon returns the emoji for an activity
func activityIcon(kind workout.ActivityKind) string {
	switch kind {
	case workout.ActivityCycling:
		return "🚴"
	case workout.ActivityRunning:
		return "🏃"
	case workout.ActivityWheelchair:
		return "♿"
	default:
		return "🏋"
	}
}
