package system

import "github.com/younwookim/starfall/internal/infrastructure/config"

// NarrativeSystem shows dialogue lines one at a time. A line advances after
// LineDuration or when the player presses the skip key.
type NarrativeSystem struct {
	config   config.NarrativeConfig
	controls *Controls

	active  bool
	index   int
	elapsed float64
}

// NewNarrativeSystem creates a new narrative system
func NewNarrativeSystem(cfg config.NarrativeConfig, controls *Controls) *NarrativeSystem {
	return &NarrativeSystem{config: cfg, controls: controls}
}

// StartDialogue rewinds to the first line
func (s *NarrativeSystem) StartDialogue() {
	s.active = true
	s.index = 0
	s.elapsed = 0
}

// CleanupNarrative hides whatever line is showing
func (s *NarrativeSystem) CleanupNarrative() {
	s.active = false
	s.index = len(s.config.Lines)
	s.elapsed = 0
}

// Update advances the dialogue and reports whether every line has been shown
func (s *NarrativeSystem) Update(dt float64) bool {
	if !s.active || s.index >= len(s.config.Lines) {
		return true
	}

	s.elapsed += dt
	if s.controls.Advance || s.elapsed >= s.config.LineDuration {
		s.index++
		s.elapsed = 0
	}
	return s.index >= len(s.config.Lines)
}

// Line returns the line on screen, if any
func (s *NarrativeSystem) Line() (string, bool) {
	if !s.active || s.index >= len(s.config.Lines) {
		return "", false
	}
	return s.config.Lines[s.index], true
}
