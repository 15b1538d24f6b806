package report

import (
	"strings"
	"testing"
	"time"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/session"
)

func coffee(t *testing.T) *questionnaire.Questionnaire {
	t.Helper()
	qn, err := questionnaire.BuiltinByID("coffee-match")
	if err != nil {
		t.Fatalf("BuiltinByID: %v", err)
	}
	return qn
}

func TestGenerateReport(t *testing.T) {
	qn := coffee(t)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sess := &session.Session{
		ID:            "abc",
		Questionnaire: qn.ID,
		Status:        session.StatusCompleted,
		CreatedAt:     start,
		UpdatedAt:     start.Add(95 * time.Second),
	}
	a := answers.New().
		Select("dark", "roast", false).
		Select("nutty", "notes", true).
		Select("chocolate", "notes", true).
		SetSlider(0.7, "strength")
	events := []log.LogEvent{
		{Event: log.EventAnswersExported, SessionID: "abc"},
		{Event: log.EventAnswersExported, SessionID: "other"},
		{Event: log.EventConfigReloaded},
	}

	r := GenerateReport(qn, sess, a, events)
	if r.Title != qn.Title || r.Total != len(qn.Questions) || r.Answered != 3 {
		t.Fatalf("report header = %+v", r)
	}
	if r.Exports != 1 {
		t.Errorf("Exports = %d, want 1", r.Exports)
	}

	md := FormatReport(r)
	for _, want := range []string{
		"# " + qn.Title,
		"- Answered: 3 of",
		"- Time spent: 1m 35s",
		"| Roast | Dark |",
		"| Notes | Chocolate, Nutty |",
		"| Strength | 70% (Mild → Intense) |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestGenerateReportMarksMissing(t *testing.T) {
	qn := coffee(t)
	sess := &session.Session{ID: "x", Questionnaire: qn.ID, Status: session.StatusActive}

	md := FormatReport(GenerateReport(qn, sess, answers.New().Select("light", "roast", false), nil))
	if !strings.Contains(md, "| Notes | _still needed_ |") {
		t.Errorf("missing answer not marked:\n%s", md)
	}
	if strings.Contains(md, "Time spent") {
		t.Error("no duration expected without timestamps")
	}
}

func TestGenerateReportUnknownQuestionnaire(t *testing.T) {
	sess := &session.Session{ID: "x", Questionnaire: "gone", Status: session.StatusActive}
	a := answers.New().Select("b", "q2", false).Select("a", "q1", false)

	r := GenerateReport(nil, sess, a, nil)
	if r.Title != "gone" || len(r.Lines) != 2 {
		t.Fatalf("report = %+v", r)
	}
	if r.Lines[0].Question != "q1" || r.Lines[0].Answer != "a" {
		t.Errorf("first line = %+v", r.Lines[0])
	}

	empty := FormatReport(GenerateReport(nil, sess, answers.New(), nil))
	if !strings.Contains(empty, "No answers yet.") {
		t.Errorf("empty report:\n%s", empty)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 32*time.Second, "5m 32s"},
		{time.Hour + 12*time.Minute + 5*time.Second, "1h 12m 5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
