package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/tui"
)

// RecommendCmd builds the recommendation prompt for a finished
// questionnaire and renders it as terminal markdown.
func RecommendCmd(qn *questionnaire.Questionnaire, a answers.Store, width int) tea.Cmd {
	return func() tea.Msg {
		rec, err := questionnaire.Recommend(qn, a)
		if err != nil {
			return tui.RecommendationMsg{Err: err}
		}
		return tui.RecommendationMsg{
			System:   rec.System,
			Prompt:   rec.Prompt,
			Rendered: RenderMarkdown(rec.Prompt, width),
		}
	}
}

// RenderMarkdown renders md with glamour, falling back to the raw text.
func RenderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
