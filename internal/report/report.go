// Package report summarises a saved questionnaire session.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/session"
)

// Line is one question with its answer as shown in a report.
type Line struct {
	Question string
	Answer   string
	Missing  bool
}

// Report holds what is known about one questionnaire session.
type Report struct {
	Title     string
	SessionID string
	Status    string
	Answered  int
	Total     int
	Lines     []Line
	Started   time.Time
	Updated   time.Time
	Exports   int
}

// GenerateReport builds a report for sess. qn may be nil when the
// questionnaire is no longer available, in which case answers are listed by
// question id. Log events add the number of exports.
func GenerateReport(qn *questionnaire.Questionnaire, sess *session.Session, a answers.Store, events []log.LogEvent) *Report {
	r := &Report{
		Title:     sess.Questionnaire,
		SessionID: sess.ID,
		Status:    sess.Status,
		Answered:  a.Len(),
		Started:   sess.CreatedAt,
		Updated:   sess.UpdatedAt,
	}

	if qn != nil {
		r.Title = qn.Title
		r.Total = len(qn.Questions)
		for _, q := range qn.Questions {
			line := Line{Question: q.Label()}
			if questionnaire.Answered(q, a) {
				line.Answer = describe(q, a)
			} else {
				line.Missing = !q.Optional
			}
			r.Lines = append(r.Lines, line)
		}
	} else {
		exp := a.Export()
		for _, id := range a.QuestionIDs() {
			r.Lines = append(r.Lines, Line{Question: id, Answer: fmt.Sprint(exp[id])})
		}
	}

	for _, e := range events {
		if e.Event == log.EventAnswersExported && e.SessionID == sess.ID {
			r.Exports++
		}
	}
	return r
}

func describe(q questionnaire.Question, a answers.Store) string {
	if q.Kind == questionnaire.KindSlider {
		v, _ := a.SliderValue(q.ID)
		s := fmt.Sprintf("%.0f%%", v*100)
		if q.MinLabel != "" && q.MaxLabel != "" {
			s += fmt.Sprintf(" (%s → %s)", q.MinLabel, q.MaxLabel)
		}
		return s
	}
	var labels []string
	for _, o := range q.Options {
		if a.IsSelected(o.ID, q.ID) {
			labels = append(labels, o.Label)
		}
	}
	return strings.Join(labels, ", ")
}

// FormatReport produces the report as markdown.
func FormatReport(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "- Session: `%s`\n", r.SessionID)
	fmt.Fprintf(&b, "- Status: %s\n", r.Status)
	if r.Total > 0 {
		fmt.Fprintf(&b, "- Answered: %d of %d\n", r.Answered, r.Total)
	} else {
		fmt.Fprintf(&b, "- Answered: %d\n", r.Answered)
	}
	if !r.Updated.IsZero() && r.Updated.After(r.Started) {
		fmt.Fprintf(&b, "- Time spent: %s\n", formatDuration(r.Updated.Sub(r.Started)))
	}
	if r.Exports > 0 {
		fmt.Fprintf(&b, "- Exports: %d\n", r.Exports)
	}
	b.WriteString("\n")

	if len(r.Lines) == 0 {
		b.WriteString("No answers yet.\n")
		return b.String()
	}

	b.WriteString("| Question | Answer |\n|---|---|\n")
	for _, l := range r.Lines {
		answer := l.Answer
		switch {
		case l.Missing:
			answer = "_still needed_"
		case answer == "":
			answer = "_skipped_"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(l.Question), escapeCell(answer))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
