// Package questionnaire defines questionnaires, loads them from YAML and
// presents them as a Bubble Tea view backed by an answers.Store.
package questionnaire

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/berth-dev/deckhand/internal/answers"
)

// Kind is the input style of a question.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
	KindSlider Kind = "slider"
)

// Validation errors.
var (
	ErrNoQuestions       = errors.New("questionnaire has no questions")
	ErrMissingID         = errors.New("missing id")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrDuplicateOption   = errors.New("duplicate option id")
	ErrNoOptions         = errors.New("choice question has no options")
	ErrUnknownKind       = errors.New("unknown question kind")
)

// Option is one selectable answer.
type Option struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Recommended bool   `yaml:"recommended,omitempty"`
}

// Question is one step of a questionnaire.
type Question struct {
	ID         string   `yaml:"id"`
	Text       string   `yaml:"text"`
	ShortLabel string   `yaml:"short_label,omitempty"`
	Kind       Kind     `yaml:"kind"`
	Options    []Option `yaml:"options,omitempty"`
	MinLabel   string   `yaml:"min_label,omitempty"`
	MaxLabel   string   `yaml:"max_label,omitempty"`
	Optional   bool     `yaml:"optional,omitempty"`
}

// Questionnaire is an ordered list of questions.
type Questionnaire struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Questions   []Question `yaml:"questions"`
}

// Label returns the short label if set, otherwise the question text.
func (q Question) Label() string {
	if q.ShortLabel != "" {
		return q.ShortLabel
	}
	return q.Text
}

// OptionLabel returns the label of option id, or id itself if unknown.
func (q Question) OptionLabel(id string) string {
	for _, o := range q.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// Question looks up a question by id.
func (qn *Questionnaire) Question(id string) (Question, bool) {
	for _, q := range qn.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks ids are present and unique and that every choice
// question has options.
func (qn *Questionnaire) Validate() error {
	if qn.ID == "" {
		return fmt.Errorf("questionnaire: %w", ErrMissingID)
	}
	if len(qn.Questions) == 0 {
		return fmt.Errorf("questionnaire %s: %w", qn.ID, ErrNoQuestions)
	}

	seen := make(map[string]bool, len(qn.Questions))
	for i, q := range qn.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: %w", i+1, ErrMissingID)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %s: %w", q.ID, ErrDuplicateQuestion)
		}
		seen[q.ID] = true

		switch q.Kind {
		case KindSingle, KindMulti:
			if len(q.Options) == 0 {
				return fmt.Errorf("question %s: %w", q.ID, ErrNoOptions)
			}
			opts := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if o.ID == "" {
					return fmt.Errorf("question %s option: %w", q.ID, ErrMissingID)
				}
				if opts[o.ID] {
					return fmt.Errorf("question %s option %s: %w", q.ID, o.ID, ErrDuplicateOption)
				}
				opts[o.ID] = true
			}
		case KindSlider:
		default:
			return fmt.Errorf("question %s kind %q: %w", q.ID, q.Kind, ErrUnknownKind)
		}
	}
	return nil
}

// Complete reports whether every required question has an answer. A
// multi-choice question needs at least one selected option.
func (qn *Questionnaire) Complete(store answers.Store) bool {
	return len(qn.Missing(store)) == 0
}

// Missing returns the ids of required questions that are still unanswered.
func (qn *Questionnaire) Missing(store answers.Store) []string {
	var missing []string
	for _, q := range qn.Questions {
		if q.Optional {
			continue
		}
		if !Answered(q, store) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Answered reports whether store holds a usable answer for q.
func Answered(q Question, store answers.Store) bool {
	switch q.Kind {
	case KindMulti:
		return len(store.SelectedSet(q.ID)) > 0
	case KindSingle:
		_, ok := store.SelectedOption(q.ID)
		return ok
	case KindSlider:
		_, ok := store.SliderValue(q.ID)
		return ok
	}
	return false
}

// Parse decodes and validates a questionnaire from YAML.
func Parse(data []byte) (*Questionnaire, error) {
	var qn Questionnaire
	if err := yaml.Unmarshal(data, &qn); err != nil {
		return nil, fmt.Errorf("parsing questionnaire: %w", err)
	}
	if err := qn.Validate(); err != nil {
		return nil, err
	}
	return &qn, nil
}

// Load reads and validates a questionnaire file.
func Load(file string) (*Questionnaire, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}
	return Parse(data)
}

// LoadDir loads every .yaml and .yml file in dir. A missing directory
// yields no questionnaires.
func LoadDir(dir string) ([]*Questionnaire, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire directory: %w", err)
	}

	var out []*Questionnaire
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		qn, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, qn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the questionnaires shipped with the demo, sorted by id.
func Builtin() ([]*Questionnaire, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin questionnaires: %w", err)
	}

	var out []*Questionnaire
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		qn, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, qn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BuiltinByID returns the shipped questionnaire with the given id.
func BuiltinByID(id string) (*Questionnaire, error) {
	all, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, qn := range all {
		if qn.ID == id {
			return qn, nil
		}
	}
	return nil, fmt.Errorf("questionnaire %q not found", id)
}
