// Package testutil provides test helper utilities for deckhand tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/session"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// TastingQuestionnaire is a small questionnaire covering every question kind.
const TastingQuestionnaire = `id: tasting
title: Tasting notes
questions:
  - id: body
    text: How full should the body be?
    kind: single
    options:
      - id: light
        label: Light
      - id: full
        label: Full
  - id: aromas
    text: Which aromas do you like?
    kind: multi
    options:
      - id: citrus
        label: Citrus
      - id: oak
        label: Oak
      - id: berry
        label: Berry
  - id: sweetness
    text: How sweet?
    kind: slider
    min_label: Dry
    max_label: Sweet
`

// ConfiguredProject returns files for a project with a config and one
// custom questionnaire.
func ConfiguredProject() map[string]string {
	return map[string]string{
		".deckhand/config.yaml": `version: 1
paging:
  velocity_threshold: 250
  spacing: 8
sheet:
  small_floor: 100
  detents: [small, "60%", large]
toast:
  duration_ms: 1500
`,
		".deckhand/questionnaires/tasting.yaml": TastingQuestionnaire,
	}
}

// TastingAnswers returns a complete set of answers for TastingQuestionnaire.
func TastingAnswers() answers.Store {
	return answers.New().
		Select("full", "body", false).
		Select("citrus", "aromas", true).
		Select("berry", "aromas", true).
		SetSlider(0.25, "sweetness")
}

// SeededStore opens a session store in root's .deckhand directory holding
// one completed tasting session. It returns the store and the session id.
func SeededStore(t *testing.T, root string) (*session.Store, string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, ".deckhand"), 0755); err != nil {
		t.Fatalf("creating .deckhand: %v", err)
	}
	store, err := session.NewStore(filepath.Join(root, ".deckhand", "sessions.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sess, err := store.CreateSession("tasting")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if err := store.SaveAnswers(sess.ID, TastingAnswers()); err != nil {
		t.Fatalf("saving answers: %v", err)
	}
	if err := store.SetStatus(sess.ID, session.StatusCompleted); err != nil {
		t.Fatalf("completing session: %v", err)
	}
	return store, sess.ID
}
