// Package tui holds the pieces shared by every deckhand component: styles,
// key bindings, common messages and the program runner.
package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotInteractive is returned by Run when stdout is not a terminal.
var ErrNotInteractive = errors.New("stdout is not a terminal")

// Common key binding constants.
const (
	KeyCtrlC    = "ctrl+c"
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeySpace    = " "
	KeyUp       = "up"
	KeyDown     = "down"
	KeyLeft     = "left"
	KeyRight    = "right"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewProgram builds a Bubble Tea program in alternate screen mode with mouse
// motion reporting so components can receive drag gestures.
func NewProgram(m tea.Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(m, opts...)
}

// Run starts the TUI program with the given model. Callers check IsTTY
// first and use a FallbackRunner otherwise.
func Run(m tea.Model) error {
	if !IsTTY() {
		return ErrNotInteractive
	}
	_, err := NewProgram(m).Run()
	return err
}
