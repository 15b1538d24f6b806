package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/tui"
)

// ExportFile is the JSON document written by an export.
type ExportFile struct {
	Questionnaire string         `json:"questionnaire"`
	SessionID     string         `json:"session,omitempty"`
	ExportedAt    time.Time      `json:"exported_at"`
	Answers       map[string]any `json:"answers"`
}

// ExportPath returns where the answers of a run are exported.
func ExportPath(projectRoot, questionnaire, sessionID string) string {
	name := questionnaire
	if sessionID != "" {
		name += "-" + sessionID
	}
	return filepath.Join(config.Dir(projectRoot), "exports", name+".json")
}

// ExportAnswersCmd writes the answers as JSON under .deckhand/exports and
// records an answers_exported event.
func ExportAnswersCmd(projectRoot string, logger *log.Logger, questionnaire, sessionID string, a answers.Store) tea.Cmd {
	return func() tea.Msg {
		path := ExportPath(projectRoot, questionnaire, sessionID)
		if err := WriteExport(path, questionnaire, sessionID, a); err != nil {
			return tui.AnswersExportedMsg{Err: err}
		}

		_ = logger.Append(log.LogEvent{
			Event:         log.EventAnswersExported,
			SessionID:     sessionID,
			Questionnaire: questionnaire,
			Answered:      a.Len(),
			Data:          map[string]any{"path": path},
		})
		return tui.AnswersExportedMsg{Path: path}
	}
}

// WriteExport writes one export file, creating its directory.
func WriteExport(path, questionnaire, sessionID string, a answers.Store) error {
	doc := ExportFile{
		Questionnaire: questionnaire,
		SessionID:     sessionID,
		ExportedAt:    time.Now().UTC(),
		Answers:       a.Export(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
