package tui

import (
	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/config"
)

// GoHomeMsg asks the app to return to the component menu.
type GoHomeMsg struct{}

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}

// EscResetMsg clears a component's pending Esc confirmation.
type EscResetMsg struct{}

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}

// ToastMsg asks the app's toast controller to show a message.
type ToastMsg struct {
	Text  string
	Level string // "info" | "success" | "warning" | "error"
}

// ConfigReloadedMsg carries a re-read config.yaml into the running program.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// SessionOpenedMsg reports the session a questionnaire run is saved under.
type SessionOpenedMsg struct {
	Questionnaire string
	SessionID     string
	Answers       answers.Store
	Resumed       bool
	Err           error
}

// AnswersSavedMsg reports the result of persisting answers.
type AnswersSavedMsg struct {
	SessionID string
	Completed bool
	Err       error
}

// AnswersExportedMsg reports where answers were exported.
type AnswersExportedMsg struct {
	Path string
	Err  error
}

// RecommendationMsg carries the prompt built from a finished questionnaire.
type RecommendationMsg struct {
	System   string
	Prompt   string
	Rendered string
	Err      error
}
