package questionnaire

import (
	"strings"
	"testing"

	"github.com/berth-dev/deckhand/internal/answers"
)

func TestRecommendPrompt(t *testing.T) {
	qn, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Options selected out of order still render in option order.
	store := answers.New().
		Select("olives", "toppings", true).
		Select("cheese", "toppings", true).
		Select("blue", "color", false).
		SetSlider(0.75, "spice")

	rec, err := Recommend(qn, store)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.System == "" {
		t.Error("empty system prompt")
	}

	wantInOrder := []string{
		"# Sample",
		"## Pick a colour",
		"- Blue",
		"## Pick toppings",
		"- Cheese",
		"- Olives",
		"## How spicy?",
		`75% of the way from "Mild" to "Hot"`,
		"## Anything else?",
		"(no answer)",
	}
	rest := rec.Prompt
	for _, want := range wantInOrder {
		i := strings.Index(rest, want)
		if i < 0 {
			t.Fatalf("prompt missing %q after previous items:\n%s", want, rec.Prompt)
		}
		rest = rest[i+len(want):]
	}
}

func TestRecommendDeterministic(t *testing.T) {
	qn, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := answers.New().Select("cheese", "toppings", true).Select("olives", "toppings", true)
	b := answers.New().Select("olives", "toppings", true).Select("cheese", "toppings", true)

	ra, err := Recommend(qn, a)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := Recommend(qn, b)
	if err != nil {
		t.Fatal(err)
	}
	if ra.Prompt != rb.Prompt {
		t.Errorf("prompts differ:\n%s\n---\n%s", ra.Prompt, rb.Prompt)
	}
}

func TestDescribeScalar(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		v    float64
		want string
	}{
		{"both labels", Question{MinLabel: "Low", MaxLabel: "High"}, 0.5, `50% of the way from "Low" to "High"`},
		{"max only", Question{MaxLabel: "High"}, 1, `100% toward "High"`},
		{"no labels", Question{}, 0.2, "20%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeScalar(tt.q, tt.v); got != tt.want {
				t.Errorf("describeScalar = %q, want %q", got, tt.want)
			}
		})
	}
}
