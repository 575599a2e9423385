package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayazhan/wrkt/internal/workout"
)

// SessionModel represents the TUI model for a live workout session
type SessionModel struct {
	width  int
	height int

	tracker *workout.Tracker
	sink    workout.RecordSink
	status  workout.Status

	goalBar progress.Model

	// Animation state
	pulse int

	// UI state
	saveFailed bool // handoff failed, offering retry
	saveErr    error
	saved      bool
	record     workout.Record
	discarded  bool // user quit without ending
}

// statusTickMsg refreshes the live readings every second
type statusTickMsg struct{}

// pulseTickMsg drives the header animation
type pulseTickMsg struct{}

// NewSessionModel creates a new live session TUI model
func NewSessionModel(tracker *workout.Tracker, sink workout.RecordSink) SessionModel {
	bar := progress.New(
		progress.WithGradient(ColorAccentMain, ColorAccentBright),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return SessionModel{
		tracker: tracker,
		sink:    sink,
		status:  tracker.Status(),
		goalBar: bar,
	}
}

// Init starts the status and animation tickers
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return statusTickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return pulseTickMsg{}
		}),
	)
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		m.status = m.tracker.Status()

		if !m.saved {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return statusTickMsg{}
			})
		}
		return m, nil

	case pulseTickMsg:
		m.pulse = (m.pulse + 1) % 4

		if !m.saved {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return pulseTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.goalBar.Width = min(msg.Width-24, 40)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p", "P":
			if m.saveFailed || m.saved {
				return m, nil
			}
			switch m.status.State {
			case workout.StateRunning:
				m.tracker.Pause()
			case workout.StatePaused:
				m.tracker.Resume()
			}
			m.status = m.tracker.Status()
			return m, nil

		case "tab", "m", "M":
			if m.saveFailed || m.saved {
				return m, nil
			}
			m.tracker.CycleDisplay()
			m.status = m.tracker.Status()
			return m, nil

		case "e", "E":
			if m.saved {
				return m, nil
			}
			return m.finishSession()

		case "r", "R":
			// Retry a failed handoff with the retained record
			if !m.saveFailed {
				return m, nil
			}
			return m.finishSession()

		case "ctrl+c", "esc", "q":
			if !m.saveFailed && !m.saved {
				m.discarded = true
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// finishSession ends the session if it is still live and hands the record
// off. The tracker keeps the record across failed saves, so pressing retry
// hands off the same one.
func (m SessionModel) finishSession() (tea.Model, tea.Cmd) {
	rec, err := m.tracker.Finalize(m.sink)
	if err != nil {
		m.saveFailed = true
		m.saveErr = err
		m.status = m.tracker.Status()
		return m, nil
	}
	m.record = rec
	m.saved = true
	m.saveFailed = false
	m.saveErr = nil
	return m, tea.Quit
}

// View renders the session TUI
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	helpBarHeight := 1

	contentHeight := m.height - helpBarHeight - 1

	// Narrow view: just the metric panel, full width
	if m.width < 90 {
		metricPanel := m.renderMetricPanel(m.width, contentHeight)

		return lipgloss.JoinVertical(
			lipgloss.Left,
			metricPanel,
			helpBar,
		)
	}

	// Wide view: split screen
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2 // -2 for gap

	leftPanel := m.renderMetricPanel(leftWidth, contentHeight)
	rightPanel := m.renderSessionDetailsPanel(rightWidth, contentHeight)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		"  ", // Gap
		rightPanel,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		helpBar,
	)
}

// renderMetricPanel renders the big live reading for the current display
// mode
func (m SessionModel) renderMetricPanel(width, height int) string {
	var components []string

	components = append(components, m.renderHeader(width))

	// Big value for the current display mode
	bigValue := renderBigValue(m.status.Display.Value)
	valueLines := strings.Split(bigValue, "\n")
	valueContent := ""
	for _, line := range valueLines {
		centeredLine := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(line)
		valueContent += centeredLine + "\n"
	}
	components = append(components, strings.TrimRight(valueContent, "\n"))

	// Unit label under the value
	unitStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, unitStyle.Render(strings.ToUpper(m.status.Display.Unit)))

	// Elapsed and moving time
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Align(lipgloss.Center).
		Width(width)
	clockLine := fmt.Sprintf("%s elapsed · %s moving",
		formatClock(m.status.Elapsed), formatClock(m.status.Active))
	components = append(components, clockStyle.Render(clockLine))

	// Goal progress
	if m.status.Goal.Kind != workout.GoalNone {
		goalStyle := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width)
		goalLine := fmt.Sprintf("%s\n%.0f%% of %s",
			m.goalBar.ViewAs(m.status.GoalDone), m.status.GoalDone*100, m.status.Goal)
		components = append(components, goalStyle.Render(goalLine))
	}

	// Session start time
	sessionInfo := fmt.Sprintf("Started at %s", m.status.StartedAt.Format("15:04:05"))
	sessionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, sessionStyle.Render(sessionInfo))

	content := strings.Join(components, "\n\n")

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(content)
}

// renderHeader renders the animated state banner
func (m SessionModel) renderHeader(width int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(width)

	switch {
	case m.saveFailed:
		return headerStyle.
			Foreground(lipgloss.Color(ColorError)).
			Render(fmt.Sprintf("⚠  SAVE FAILED: %v", m.saveErr))
	case m.status.State == workout.StatePaused:
		return headerStyle.
			Foreground(lipgloss.Color(ColorWarning)).
			Render("⏸  PAUSED")
	default:
		animChars := []string{"⏱", "⏲", "⏱", "⏲"}
		animChar := animChars[m.pulse]
		headerText := fmt.Sprintf("%s  %s  %s", animChar, strings.ToUpper(m.status.Activity.Label()), animChar)
		return headerStyle.
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render(headerText)
	}
}

// bigDigits is the ASCII art glyph set for the live reading (5 rows per
// glyph)
var bigDigits = map[rune][]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	'.': {"     ", "     ", "     ", "     ", "  █  "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigValue renders a metric reading as big ASCII art
func renderBigValue(value string) string {
	var lines [5]strings.Builder

	for _, char := range value {
		digitArt, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(digitArt[i])
			lines[i].WriteString(" ") // Space between glyphs
		}
	}

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(valueStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// renderSessionDetailsPanel renders the right panel with every live total
func (m SessionModel) renderSessionDetailsPanel(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")

	b.WriteString(renderLogo(width - 8))
	b.WriteString("\n\n")

	// Separator line
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center).
		Width(width - 8)
	separatorLine := strings.Repeat("─", min(width-12, 40))
	b.WriteString(separatorStyle.Render(separatorLine))
	b.WriteString("\n\n")

	// Activity in bordered box
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s session", m.status.Activity.Label())))
	b.WriteString("\n\n")

	lineStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 8)

	// State with icon
	stateIcon := "▶"
	stateColor := ColorSuccess
	stateText := "running"
	switch m.status.State {
	case workout.StatePaused:
		stateIcon = "⏸"
		stateColor = ColorWarning
		stateText = "paused"
	case workout.StateEnded:
		stateIcon = "⏹"
		stateColor = ColorDisabledText
		stateText = "ended"
	}
	stateLine := fmt.Sprintf("%s State: %s", stateIcon,
		lipgloss.NewStyle().Foreground(lipgloss.Color(stateColor)).Bold(true).Render(stateText))
	b.WriteString(lineStyle.Render(stateLine))
	b.WriteString("\n")

	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	distanceLine := fmt.Sprintf("📏 Distance: %s",
		valueStyle.Render(fmt.Sprintf("%.2f km", m.status.Totals.DistanceMeters/1000)))
	b.WriteString(lineStyle.Render(distanceLine))
	b.WriteString("\n")

	energyLine := fmt.Sprintf("🔥 Energy: %s",
		valueStyle.Render(fmt.Sprintf("%.0f kcal", m.status.Totals.EnergyKcal)))
	b.WriteString(lineStyle.Render(energyLine))
	b.WriteString("\n")

	heartLine := fmt.Sprintf("💓 Heart rate: %s",
		valueStyle.Render(fmt.Sprintf("%.0f bpm", m.status.Totals.HeartRateBPM)))
	b.WriteString(lineStyle.Render(heartLine))
	b.WriteString("\n")

	// Goal
	goalValue := "none"
	goalColor := ColorDisabledText
	if m.status.Goal.Kind != workout.GoalNone {
		goalValue = fmt.Sprintf("%s (%.0f%%)", m.status.Goal, m.status.GoalDone*100)
		goalColor = ColorAccentBright
	}
	goalLine := fmt.Sprintf("🎯 Goal: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(goalColor)).Render(goalValue))
	b.WriteString(lineStyle.Render(goalLine))
	b.WriteString("\n")

	samplesLine := fmt.Sprintf("📶 Samples: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(fmt.Sprintf("%d applied · %d dropped", m.status.Applied, m.status.Rejected.Total())))
	b.WriteString(lineStyle.Render(samplesLine))
	b.WriteString("\n")

	deviceLine := fmt.Sprintf("⌚ Device: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.status.DeviceID))
	b.WriteString(lineStyle.Render(deviceLine))

	return b.String()
}

// renderLogo renders the WRKT ASCII logo
func renderLogo(width int) string {
	logoLines := []string{
		"██╗    ██╗██████╗ ██╗  ██╗████████╗",
		"██║    ██║██╔══██╗██║ ██╔╝╚══██╔══╝",
		"██║ █╗ ██║██████╔╝█████╔╝    ██║   ",
		"██║███╗██║██╔══██╗██╔═██╗    ██║   ",
		"╚███╔███╔╝██║  ██║██║  ██╗   ██║   ",
		" ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ",
	}

	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)

	return logoStyle.Render(strings.Join(logoLines, "\n"))
}

// renderHelpBar renders the help bar at the bottom
func (m SessionModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "space pause/resume · tab next metric · e end & save · q discard"
	if m.saveFailed {
		helpText = "r retry save · q quit without saving"
	}

	return helpStyle.Render(helpText)
}

// RunSessionTUI drives a live session until the user ends or discards it
func RunSessionTUI(tracker *workout.Tracker, sink workout.RecordSink) error {
	model := NewSessionModel(tracker, sink)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m := finalModel.(SessionModel)
	switch {
	case m.saved:
		rec := m.record
		fmt.Printf("⏹️  Ended %s session\n", rec.Activity)
		fmt.Printf("📊 %.2f km · %.0f kcal · avg %.0f bpm\n",
			rec.DistanceMeters/1000, rec.EnergyKcal, rec.AvgHeartRateBPM)
		fmt.Printf("🕐 Duration: %s (moving %s)\n", formatDuration(rec.Elapsed), formatDuration(rec.Active))
		fmt.Println("💾 Saved to workout log")
	case m.saveErr != nil:
		fmt.Printf("⚠️  Session ended but could not be saved: %v\n", m.saveErr)
	case m.discarded:
		fmt.Println("❌ Session discarded, nothing saved.")
	}

	return nil
}

// formatClock formats a duration as mm:ss, or hh:mm:ss past an hour
func formatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
