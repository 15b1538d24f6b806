package questionnaire

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/prompts"
)

// promptItem is one answered question as rendered in the prompt.
type promptItem struct {
	Question string
	Choices  []string
	Scalar   string
	Skipped  bool
}

// promptData holds the template data for the answers prompt.
type promptData struct {
	Title string
	Items []promptItem
}

// Recommendation is the prompt pair handed to a recommender model.
type Recommendation struct {
	System string
	Prompt string
}

// Recommend aggregates the answers into a recommendation prompt. Questions
// appear in questionnaire order and multi-choice options in option order,
// so equal stores always produce identical prompts.
func Recommend(qn *Questionnaire, store answers.Store) (Recommendation, error) {
	data := promptData{Title: qn.Title}
	for _, q := range qn.Questions {
		data.Items = append(data.Items, describe(q, store))
	}

	tmpl, err := template.New("recommend_answers").Parse(prompts.RecommendAnswersTemplate)
	if err != nil {
		return Recommendation{}, fmt.Errorf("parsing answers template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Recommendation{}, fmt.Errorf("executing answers template: %w", err)
	}

	return Recommendation{
		System: strings.TrimSpace(prompts.RecommendSystemPrompt),
		Prompt: strings.TrimSpace(buf.String()) + "\n",
	}, nil
}

func describe(q Question, store answers.Store) promptItem {
	item := promptItem{Question: q.Text}
	if !Answered(q, store) {
		item.Skipped = true
		return item
	}

	switch q.Kind {
	case KindSlider:
		v, _ := store.SliderValue(q.ID)
		item.Scalar = describeScalar(q, v)
	default:
		for _, o := range q.Options {
			if store.IsSelected(o.ID, q.ID) {
				item.Choices = append(item.Choices, o.Label)
			}
		}
	}
	return item
}

func describeScalar(q Question, v float64) string {
	pct := fmt.Sprintf("%.0f%%", v*100)
	switch {
	case q.MinLabel != "" && q.MaxLabel != "":
		return fmt.Sprintf("%s of the way from %q to %q", pct, q.MinLabel, q.MaxLabel)
	case q.MaxLabel != "":
		return fmt.Sprintf("%s toward %q", pct, q.MaxLabel)
	}
	return pct
}
