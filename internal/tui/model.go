package tui

import (
	"time"

	"github.com/berth-dev/deckhand/internal/config"
)

// Screen is the demo screen on display.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCarousel
	ScreenFeatured
	ScreenSheet
	ScreenQuestionnaire
	ScreenRecommendation
	ScreenToasts
	ScreenSkeleton
)

var screenNames = map[Screen]string{
	ScreenMenu:           "menu",
	ScreenCarousel:       "carousel",
	ScreenFeatured:       "featured",
	ScreenSheet:          "sheet",
	ScreenQuestionnaire:  "questionnaire",
	ScreenRecommendation: "recommendation",
	ScreenToasts:         "toasts",
	ScreenSkeleton:       "skeleton",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// Model holds the state shared across demo screens.
type Model struct {
	Screen Screen
	Err    error

	// Configuration
	Cfg         *config.Config
	ProjectRoot string

	// Questionnaire session in progress, if any
	SessionID string

	// Terminal dimensions
	Width  int
	Height int

	Started time.Time

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a Model on the menu screen.
func NewModel(cfg *config.Config, projectRoot string) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Model{
		Screen:      ScreenMenu,
		Cfg:         cfg,
		ProjectRoot: projectRoot,
		Width:       80,
		Height:      24,
		Started:     time.Now(),
	}
}
