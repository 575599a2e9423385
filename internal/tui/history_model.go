package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayazhan/wrkt/internal/models"
	"github.com/ayazhan/wrkt/internal/workout"
)

// ExportFunc exports one workout and returns the path it was written to
type ExportFunc func(models.Workout) (string, error)

// HistoryModel represents the TUI model for browsing finished workouts
type HistoryModel struct {
	width  int
	height int

	// Workout data
	all      []models.Workout // full history
	workouts []models.Workout // current filtered view
	selected int              // index in workouts slice

	// UI state
	focus        Focus
	searchActive bool
	searchQuery  string

	// Shimmer effect for the selected row
	shimmer *ShimmerState

	// Pagination
	currentPage int
	rowsPerPage int

	// Export
	exporter  ExportFunc
	statusMsg string
	statusErr bool
}

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
)

// NewHistoryModel creates a new history TUI model
func NewHistoryModel(workouts []models.Workout, exporter ExportFunc) HistoryModel {
	return HistoryModel{
		all:         workouts,
		workouts:    workouts,
		focus:       FocusTable,
		shimmer:     NewShimmerState(DefaultShimmerConfig()),
		exporter:    exporter,
		rowsPerPage: 10, // until the first WindowSizeMsg arrives
	}
}

// Init initializes the model
func (m HistoryModel) Init() tea.Cmd {
	if m.shimmer.ShouldTick() {
		return tea.Tick(m.shimmer.GetTickInterval(), func(time.Time) tea.Msg {
			return shimmerTickMsg{}
		})
	}
	return nil
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if m.focus == FocusTable && m.shimmer.ShouldTick() {
			return m, tea.Tick(m.shimmer.GetTickInterval(), func(time.Time) tea.Msg {
				return shimmerTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(2) - column header(2) - pagination(1) - help(1) -
		// borders and margins = usable rows
		availableHeight := m.height - 12
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.rowsPerPage = availableHeight

		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}

		m.statusMsg = ""
		m.statusErr = false

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if msg.String() == "esc" && m.searchQuery != "" {
				// Clear the filter before quitting
				m.searchQuery = ""
				m.applyFilter()
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			return m.moveSelectionUp(), nil

		case "down", "j":
			return m.moveSelectionDown(), nil

		case "left", "h":
			return m.prevPage(), nil

		case "right", "l":
			return m.nextPage(), nil

		case "/":
			m.focus = FocusSearch
			m.searchActive = true
			m.shimmer.SetActive(false)
			return m, nil

		case "e":
			return m.exportSelected(), nil
		}
	}

	return m, nil
}

// handleSearchKeys handles key input when in filter mode
func (m HistoryModel) handleSearchKeys(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusTable
		m.searchActive = false
		m.searchQuery = ""
		m.applyFilter()
		m.shimmer.SetActive(true)
		return m, nil

	case "enter":
		// Keep the filter and return to the table
		m.focus = FocusTable
		m.searchActive = false
		m.shimmer.SetActive(true)
		return m, nil

	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
			m.applyFilter()
		}
		return m, nil

	default:
		// Single printable characters only, so navigation keys don't leak in
		if len(msg.String()) == 1 {
			m.searchQuery += msg.String()
			m.applyFilter()
		}
		return m, nil
	}
}

// applyFilter narrows the view to workouts whose activity matches the query
func (m *HistoryModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.searchQuery))
	if query == "" {
		m.workouts = m.all
	} else {
		filtered := make([]models.Workout, 0, len(m.all))
		for _, w := range m.all {
			if strings.Contains(strings.ToLower(w.Activity), query) {
				filtered = append(filtered, w)
			}
		}
		m.workouts = filtered
	}
	m.selected = 0
	m.currentPage = 0
}

// exportSelected writes the selected workout as a FIT file
func (m HistoryModel) exportSelected() HistoryModel {
	if m.exporter == nil || len(m.workouts) == 0 || m.selected >= len(m.workouts) {
		return m
	}

	w := m.workouts[m.selected]
	path, err := m.exporter(w)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Export failed: %v", err)
		m.statusErr = true
		return m
	}

	now := time.Now()
	for i := range m.workouts {
		if m.workouts[i].ID == w.ID {
			m.workouts[i].ExportedAt = &now
		}
	}
	for i := range m.all {
		if m.all[i].ID == w.ID {
			m.all[i].ExportedAt = &now
		}
	}

	m.statusMsg = fmt.Sprintf("Exported workout #%d to %s", w.ID, path)
	return m
}

// moveSelectionUp moves the selection up
func (m HistoryModel) moveSelectionUp() HistoryModel {
	if m.selected > 0 {
		m.selected--
		m.shimmer.Reset()

		// Auto-pagination: if we scrolled above the current page, go back
		currentPageStart := m.currentPage * m.rowsPerPage
		if m.selected < currentPageStart && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m HistoryModel) moveSelectionDown() HistoryModel {
	if m.selected < len(m.workouts)-1 {
		m.selected++
		m.shimmer.Reset()

		// Auto-pagination: if we scrolled below the current page, advance
		currentPageEnd := min((m.currentPage+1)*m.rowsPerPage-1, len(m.workouts)-1)
		maxPages := (len(m.workouts) + m.rowsPerPage - 1) / m.rowsPerPage
		if m.selected > currentPageEnd && m.currentPage < maxPages-1 {
			m.currentPage++
		}
	}
	return m
}

// prevPage goes to the previous page
func (m HistoryModel) prevPage() HistoryModel {
	if m.currentPage > 0 {
		m.currentPage--
		minIndex := m.currentPage * m.rowsPerPage
		maxIndex := min((m.currentPage+1)*m.rowsPerPage-1, len(m.workouts)-1)
		if m.selected > maxIndex {
			m.selected = maxIndex
		}
		if m.selected < minIndex {
			m.selected = minIndex
		}
		m.shimmer.Reset()
	}
	return m
}

// nextPage goes to the next page
func (m HistoryModel) nextPage() HistoryModel {
	maxPages := (len(m.workouts) + m.rowsPerPage - 1) / m.rowsPerPage
	if m.currentPage < maxPages-1 {
		m.currentPage++
		minIndex := m.currentPage * m.rowsPerPage
		maxIndex := min((m.currentPage+1)*m.rowsPerPage-1, len(m.workouts)-1)
		if m.selected < minIndex {
			m.selected = minIndex
		}
		if m.selected > maxIndex {
			m.selected = maxIndex
		}
		m.shimmer.Reset()
	}
	return m
}

// View renders the TUI
func (m HistoryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	leftPanel := m.renderWorkoutTable(leftWidth)
	rightPanel := m.renderWorkoutDetails(rightWidth)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		" ",
		rightPanel,
	)

	var bottomBar string
	switch {
	case m.searchActive:
		bottomBar = m.renderSearchBar()
	case m.statusMsg != "":
		bottomBar = m.renderStatusBar()
	default:
		bottomBar = m.renderHistoryHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"", // Small top margin to show border
		content,
		"",
		bottomBar,
	)
}

// renderWorkoutTable renders the left panel with the workout table
func (m HistoryModel) renderWorkoutTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	title := "📒 Workout Log"
	if m.searchQuery != "" {
		title = fmt.Sprintf("📒 Workout Log (filter: %s)", m.searchQuery)
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.workouts) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		if m.searchQuery != "" {
			b.WriteString(emptyStyle.Render("No workouts match the filter"))
		} else {
			b.WriteString(emptyStyle.Render("No workouts yet. Start one with: wrkt start"))
		}
	} else {
		b.WriteString(m.renderRows(width))
	}

	outerBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return outerBorderStyle.Render(b.String())
}

// renderRows renders the column headers and the rows of the current page
func (m HistoryModel) renderRows(width int) string {
	var b strings.Builder

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)

	// Column widths for the available space
	availableWidth := width - 4
	idWidth := 4
	dateWidth := 11
	distWidth := 9
	timeWidth := 6
	fitWidth := 5
	activityWidth := availableWidth - idWidth - dateWidth - distWidth - timeWidth - fitWidth - 7
	if activityWidth < 10 {
		activityWidth = 10
	}

	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
		idWidth, "ID",
		dateWidth, "DATE",
		activityWidth, "ACTIVITY",
		distWidth, "DISTANCE",
		timeWidth, "TIME",
		fitWidth, "FIT")
	b.WriteString(columnHeaderStyle.Render(headers))
	b.WriteString("\n\n")

	startIndex := m.currentPage * m.rowsPerPage
	endIndex := min(startIndex+m.rowsPerPage, len(m.workouts))

	for i := startIndex; i < endIndex; i++ {
		w := m.workouts[i]
		isSelected := i == m.selected

		id := fmt.Sprintf("#%d", w.ID)
		date := w.StartedAt.Format("02/01 15:04")

		activity := w.Activity
		if len(activity) > activityWidth-1 {
			activity = activity[:activityWidth-1]
		}
		if isSelected {
			activity = m.shimmer.RenderShimmerText(activity, activityWidth)
		}

		dist := fmt.Sprintf("%.2f km", w.DistanceMeters/1000)
		elapsed := formatDuration(time.Duration(w.ElapsedSeconds) * time.Second)

		fitText := "-"
		if w.ExportedAt != nil {
			fitText = "✓"
		}
		coloredFit := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(fitText)
		if w.ExportedAt != nil {
			coloredFit = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(fitText)
		}

		rowContent := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
			idWidth, id,
			dateWidth, date,
			activityWidth, activity,
			distWidth, dist,
			timeWidth, elapsed,
			fitWidth, coloredFit)

		if isSelected {
			selectedBorder := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selectedBorder.Render(rowContent))
		} else {
			b.WriteString(" " + rowContent)
		}
		b.WriteString("\n")
	}

	// Pagination info
	if m.rowsPerPage < len(m.workouts) {
		totalPages := (len(m.workouts) + m.rowsPerPage - 1) / m.rowsPerPage
		pageInfo := fmt.Sprintf("Page %d/%d (%d workouts)", m.currentPage+1, totalPages, len(m.workouts))
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(m.width*60/100 - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(pageInfo))
	}

	return b.String()
}

// renderWorkoutDetails renders the right panel with details for the
// selected workout
func (m HistoryModel) renderWorkoutDetails(width int) string {
	var b strings.Builder

	if len(m.workouts) == 0 || m.selected >= len(m.workouts) {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("wrkt"))

		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(width).
			MarginTop(2)
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("Select a workout to view details"))
	} else {
		w := m.workouts[m.selected]
		kind := workout.ActivityKind(w.Activity)

		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width)
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s · %s",
			activityIcon(kind), kind.Label(), w.StartedAt.Format("2 Jan 2006"))))
		b.WriteString("\n\n")

		valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

		b.WriteString("Distance: ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f km", w.DistanceMeters/1000)))
		b.WriteString("\n")

		b.WriteString("Energy: ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f kcal", w.EnergyKcal)))
		b.WriteString("\n")

		if w.AvgHeartRate > 0 {
			b.WriteString("Avg heart rate: ")
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f bpm", w.AvgHeartRate)))
			b.WriteString("\n")
		}

		elapsed := time.Duration(w.ElapsedSeconds) * time.Second
		active := time.Duration(w.ActiveSeconds) * time.Second
		b.WriteString("Duration: ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s (moving %s)", formatDuration(elapsed), formatDuration(active))))
		b.WriteString("\n")

		b.WriteString("Window: ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s",
			w.StartedAt.Format("15:04:05"), w.EndedAt.Format("15:04:05"))))
		b.WriteString("\n")

		goal := workout.Goal{Kind: workout.ParseGoalKind(w.GoalKind), Target: w.GoalTarget}
		if goal.Kind != workout.GoalNone {
			b.WriteString("Goal: ")
			b.WriteString(valueStyle.Render(goal.String()))
			b.WriteString("\n")
		}

		b.WriteString("Samples: ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d applied · %d dropped", w.SamplesApplied, w.SamplesRejected)))
		b.WriteString("\n")

		if w.DeviceID != "" {
			b.WriteString("Device: ")
			b.WriteString(mutedStyle.Render(w.DeviceID))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if w.ExportedAt != nil {
			exportStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
			b.WriteString(exportStyle.Render(fmt.Sprintf("✓ Exported %s", w.ExportedAt.Format("02/01 15:04"))))
		} else {
			exportStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDisabledText)).
				Italic(true)
			b.WriteString(exportStyle.Render("Not exported (press e)"))
		}
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return borderStyle.Render(b.String())
}

// renderSearchBar renders the filter bar when active
func (m HistoryModel) renderSearchBar() string {
	searchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2)

	prompt := "Filter by activity: " + m.searchQuery + "█"
	return searchStyle.Render(prompt)
}

// renderStatusBar renders transient export feedback
func (m HistoryModel) renderStatusBar() string {
	color := ColorSuccess
	icon := "📦"
	if m.statusErr {
		color = ColorError
		icon = "❌"
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Align(lipgloss.Center).
		Width(m.width)

	return statusStyle.Render(fmt.Sprintf("%s %s", icon, m.statusMsg))
}

// renderHistoryHelpBar renders the help bar with hotkey hints
func (m HistoryModel) renderHistoryHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "↑/↓ nav · ←/→ page · / filter · e export FIT · q/esc quit"
	return helpStyle.Render(helpText)
}

// RunHistoryTUI starts the interactive workout history browser
func RunHistoryTUI(workouts []models.Workout, exporter ExportFunc) error {
	model := NewHistoryModel(workouts, exporter)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
