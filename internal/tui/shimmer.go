package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerConfig holds the tuning for the sweep highlight animation
type ShimmerConfig struct {
	Enabled        bool
	ReduceMotion   bool    // if true → use static highlight
	SpeedMs        int     // tick interval (default 100)
	WidthRatio     float64 // highlight width relative to text (default 0.25)
	CycleMs        int     // time for one full sweep in ms (default 1800)
	PauseBetweenMs int     // rest between sweeps in ms (default 500)
}

// ShimmerState holds the current state of a shimmer effect
type ShimmerState struct {
	Center            float64   // current center position
	LastUpdate        time.Time // last tick time
	Active            bool
	Config            ShimmerConfig
	SupportsTrueColor bool
	IsPaused          bool      // whether we're in the rest between sweeps
	PauseStart        time.Time // when the current rest started
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:        true,
		ReduceMotion:   false,
		SpeedMs:        100,
		WidthRatio:     0.25,
		CycleMs:        1800,
		PauseBetweenMs: 500,
	}
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		LastUpdate:        time.Now(),
		Active:            config.Enabled && !config.ReduceMotion,
		Config:            config,
		SupportsTrueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Update advances the shimmer animation
func (s *ShimmerState) Update(visibleLen int) {
	if !s.Active || s.Config.ReduceMotion {
		return
	}

	now := time.Now()
	if now.Sub(s.LastUpdate).Milliseconds() < int64(s.Config.SpeedMs) {
		return
	}
	if visibleLen <= 0 {
		return
	}

	// Rest between sweeps
	if s.IsPaused {
		if now.Sub(s.PauseStart).Milliseconds() >= int64(s.Config.PauseBetweenMs) {
			s.IsPaused = false
			s.Center = -float64(visibleLen) * s.Config.WidthRatio // Restart before the first glyph
		}
		s.LastUpdate = now
		return
	}

	// The sweep travels from before the text to beyond it, so the
	// highlight fades in and out at the edges
	ticksPerCycle := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	totalDistance := float64(visibleLen) * (1.0 + 2.0*s.Config.WidthRatio)
	s.Center += totalDistance / ticksPerCycle

	maxCenter := float64(visibleLen) * (1.0 + s.Config.WidthRatio)
	if s.Center >= maxCenter {
		s.IsPaused = true
		s.PauseStart = now
		s.Center = maxCenter
	}

	s.LastUpdate = now
}

// Reset resets the shimmer position (call when selection changes)
func (s *ShimmerState) Reset() {
	s.Center = 0
	s.LastUpdate = time.Now()
	s.IsPaused = false
	s.PauseStart = time.Time{}
}

// SetActive enables/disables shimmer
func (s *ShimmerState) SetActive(active bool) {
	s.Active = active && s.Config.Enabled && !s.Config.ReduceMotion
}

// RenderShimmerText renders text with the sweep highlight
func (s *ShimmerState) RenderShimmerText(text string, maxWidth int) string {
	visibleText := text
	if len(text) > maxWidth {
		visibleText = text[:maxWidth-3] + "..."
	}
	if len(visibleText) == 0 {
		return ""
	}

	s.Update(len(visibleText))

	if !s.Active {
		// Static accent color for reduced motion
		return fmt.Sprintf("\033[38;2;45;212;191m%s\033[0m", visibleText)
	}
	if !s.SupportsTrueColor {
		return renderFallbackShimmerText(visibleText, s.Center, s.Config.WidthRatio)
	}
	return s.renderTrueColorShimmer(visibleText)
}

// renderTrueColorShimmer renders the full truecolor shimmer effect
func (s *ShimmerState) renderTrueColorShimmer(text string) string {
	var b strings.Builder
	textLen := len(text)

	// Base color: #A9C3BC (rgb 169,195,188)
	baseR, baseG, baseB := 169, 195, 188

	// Highlight color: #D8FFF6 (lightest of the teal ramp)
	highlightR, highlightG, highlightB := 216, 255, 246

	// Bell curve width
	sigma := s.Config.WidthRatio * float64(textLen) / 2.0
	if sigma < 1.0 {
		sigma = 1.0
	}

	for i, char := range text {
		dx := float64(i) - s.Center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		if weight > 1.0 {
			weight = 1.0
		}

		// Linear blend: out = base*(1-w) + highlight*w
		finalR := int(float64(baseR)*(1-weight) + float64(highlightR)*weight)
		finalG := int(float64(baseG)*(1-weight) + float64(highlightG)*weight)
		finalB := int(float64(baseB)*(1-weight) + float64(highlightB)*weight)

		b.WriteString(fmt.Sprintf("\033[38;2;%d;%d;%dm%c", finalR, finalG, finalB, char))
	}

	b.WriteString("\033[0m")

	return b.String()
}

// renderFallbackShimmerText renders a simple shimmer for non-truecolor
// terminals
func renderFallbackShimmerText(text string, center float64, widthRatio float64) string {
	textLen := len(text)
	if textLen == 0 {
		return text
	}

	highlightWidth := int(widthRatio * float64(textLen))
	if highlightWidth < 1 {
		highlightWidth = 1
	}

	startHighlight := int(center) - highlightWidth/2
	endHighlight := startHighlight + highlightWidth

	var b strings.Builder
	for i, char := range text {
		if i >= startHighlight && i < endHighlight {
			// 256-color approximation of the teal accent
			b.WriteString(fmt.Sprintf("\033[38;5;86m%c", char))
		} else {
			b.WriteString(fmt.Sprintf("\033[38;5;250m%c", char))
		}
	}

	b.WriteString("\033[0m")

	return b.String()
}

// GetTickInterval returns the interval for tea.Tick commands
func (s *ShimmerState) GetTickInterval() time.Duration {
	if !s.Active {
		return 0
	}
	return time.Duration(s.Config.SpeedMs) * time.Millisecond
}

// ShouldTick returns true if shimmer should be ticking
func (s *ShimmerState) ShouldTick() bool {
	return s.Active && s.Config.Enabled && !s.Config.ReduceMotion
}
