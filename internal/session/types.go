// Package session provides SQLite-backed persistence for questionnaire runs.
package session

import "time"

// Status values for a session.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Session is one run through a questionnaire.
type Session struct {
	ID            string
	Questionnaire string
	Status        string // active, completed
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AnswerRow is one stored answer. Value holds the JSON encoding of the
// exported answer (a string, a number or a sorted list of strings).
type AnswerRow struct {
	SessionID  string
	QuestionID string
	Kind       string
	Value      string
	UpdatedAt  time.Time
}

// Summary provides a high-level view of a session for listing.
type Summary struct {
	ID            string
	Questionnaire string
	Status        string
	Answered      int
	UpdatedAt     time.Time
}
