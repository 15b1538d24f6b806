// Package commands provides Bubble Tea commands for TUI operations that
// touch the disk, so Update never blocks on I/O.
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/session"
	"github.com/berth-dev/deckhand/internal/tui"
)

// OpenSessionCmd resumes the latest active session for a questionnaire, or
// starts a new one. With no store the questionnaire runs unsaved.
func OpenSessionCmd(store *session.Store, questionnaire string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return tui.SessionOpenedMsg{Questionnaire: questionnaire, Answers: answers.New()}
		}

		sess, err := store.GetLatestActive(questionnaire)
		if err != nil {
			return tui.SessionOpenedMsg{Questionnaire: questionnaire, Err: err}
		}
		if sess != nil {
			saved, err := store.GetAnswers(sess.ID)
			if err != nil {
				return tui.SessionOpenedMsg{Questionnaire: questionnaire, Err: err}
			}
			return tui.SessionOpenedMsg{
				Questionnaire: questionnaire,
				SessionID:     sess.ID,
				Answers:       saved,
				Resumed:       saved.Len() > 0,
			}
		}

		sess, err = store.CreateSession(questionnaire)
		if err != nil {
			return tui.SessionOpenedMsg{Questionnaire: questionnaire, Err: err}
		}
		return tui.SessionOpenedMsg{
			Questionnaire: questionnaire,
			SessionID:     sess.ID,
			Answers:       answers.New(),
		}
	}
}

// SaveAnswersCmd stores the answers of an active session.
func SaveAnswersCmd(store *session.Store, sessionID string, a answers.Store) tea.Cmd {
	if store == nil || sessionID == "" {
		return nil
	}
	return func() tea.Msg {
		if err := store.SaveAnswers(sessionID, a); err != nil {
			return tui.AnswersSavedMsg{SessionID: sessionID, Err: err}
		}
		return tui.AnswersSavedMsg{SessionID: sessionID}
	}
}

// CompleteSessionCmd stores the final answers and closes the session.
func CompleteSessionCmd(store *session.Store, sessionID string, a answers.Store) tea.Cmd {
	if store == nil || sessionID == "" {
		return nil
	}
	return func() tea.Msg {
		if err := store.SaveAnswers(sessionID, a); err != nil {
			return tui.AnswersSavedMsg{SessionID: sessionID, Err: err}
		}
		if err := store.SetStatus(sessionID, session.StatusCompleted); err != nil {
			return tui.AnswersSavedMsg{SessionID: sessionID, Err: fmt.Errorf("completing session: %w", err)}
		}
		return tui.AnswersSavedMsg{SessionID: sessionID, Completed: true}
	}
}
