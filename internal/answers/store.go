// Package answers accumulates questionnaire responses independent of how
// the questions are presented.
//
// A Store is a value: every mutating method returns a new Store and leaves
// the receiver untouched, so a view can hold its answers without worrying
// about another view aliasing the same map. Operations never fail. Unknown
// question ids and kind mismatches read as empty, absent or false.
package answers

import (
	"math"
	"sort"
)

// Kind identifies what sort of value a question holds.
type Kind int

const (
	KindNone   Kind = iota // Unanswered
	KindMulti              // Set of option ids
	KindSingle             // One option id
	KindSlider             // Scalar in [0,1]
)

// String returns the lowercase name used in exports and logs.
func (k Kind) String() string {
	switch k {
	case KindMulti:
		return "multi"
	case KindSingle:
		return "single"
	case KindSlider:
		return "slider"
	default:
		return "none"
	}
}

// Value is the stored answer for one question. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind   Kind
	Set    map[string]struct{}
	Option string
	Scalar float64
}

func (v Value) clone() Value {
	if v.Kind != KindMulti {
		return v
	}
	set := make(map[string]struct{}, len(v.Set))
	for k := range v.Set {
		set[k] = struct{}{}
	}
	v.Set = set
	return v
}

// Store maps question ids to their answers. The zero value is empty and
// ready to use.
type Store struct {
	values map[string]Value
}

// New returns an empty Store.
func New() Store {
	return Store{}
}

// with copies the store and applies fn to the copy.
func (s Store) with(fn func(values map[string]Value)) Store {
	values := make(map[string]Value, len(s.values)+1)
	for id, v := range s.values {
		values[id] = v
	}
	fn(values)
	return Store{values: values}
}

// Select records option for questionID. When multi is true the option's
// membership is toggled; otherwise the option replaces whatever was stored.
// A question that previously held a different kind of value is overwritten.
func (s Store) Select(option, questionID string, multi bool) Store {
	return s.with(func(values map[string]Value) {
		if !multi {
			values[questionID] = Value{Kind: KindSingle, Option: option}
			return
		}

		cur, ok := values[questionID]
		if !ok || cur.Kind != KindMulti {
			cur = Value{Kind: KindMulti, Set: map[string]struct{}{}}
		} else {
			cur = cur.clone()
		}

		if _, present := cur.Set[option]; present {
			delete(cur.Set, option)
		} else {
			cur.Set[option] = struct{}{}
		}
		values[questionID] = cur
	})
}

// SetSlider stores value for questionID, clamped to [0,1]. NaN stores 0.
func (s Store) SetSlider(value float64, questionID string) Store {
	return s.with(func(values map[string]Value) {
		values[questionID] = Value{Kind: KindSlider, Scalar: clamp01(value)}
	})
}

// IsSelected reports whether option is part of the answer to questionID.
func (s Store) IsSelected(option, questionID string) bool {
	v, ok := s.values[questionID]
	if !ok {
		return false
	}
	switch v.Kind {
	case KindMulti:
		_, present := v.Set[option]
		return present
	case KindSingle:
		return v.Option == option
	}
	return false
}

// SelectedSet returns a copy of the options selected for questionID. A
// single-choice answer is a selection of one. Slider and unanswered
// questions return an empty set; a scalar is never coerced into options.
func (s Store) SelectedSet(questionID string) map[string]struct{} {
	v, ok := s.values[questionID]
	if !ok {
		return map[string]struct{}{}
	}
	switch v.Kind {
	case KindMulti:
		return v.clone().Set
	case KindSingle:
		return map[string]struct{}{v.Option: {}}
	}
	return map[string]struct{}{}
}

// SelectedOptions is SelectedSet as a sorted slice.
func (s Store) SelectedOptions(questionID string) []string {
	return sortedKeys(s.SelectedSet(questionID))
}

// SelectedOption returns the option stored for a single-choice question.
func (s Store) SelectedOption(questionID string) (string, bool) {
	v, ok := s.values[questionID]
	if !ok || v.Kind != KindSingle {
		return "", false
	}
	return v.Option, true
}

// SliderValue returns the scalar stored for a slider question.
func (s Store) SliderValue(questionID string) (float64, bool) {
	v, ok := s.values[questionID]
	if !ok || v.Kind != KindSlider {
		return 0, false
	}
	return v.Scalar, true
}

// KindOf returns the kind of value stored for questionID.
func (s Store) KindOf(questionID string) Kind {
	return s.values[questionID].Kind
}

// Answered reports whether questionID has any stored value, including an
// empty multi-choice set.
func (s Store) Answered(questionID string) bool {
	_, ok := s.values[questionID]
	return ok
}

// Len returns the number of answered questions.
func (s Store) Len() int {
	return len(s.values)
}

// QuestionIDs returns the answered question ids in sorted order.
func (s Store) QuestionIDs() []string {
	ids := make([]string, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset clears every stored answer.
func (s Store) Reset() Store {
	return Store{}
}

// Export flattens the store for serialization. Multi-choice answers become
// sorted []string, single-choice answers string, sliders float64.
func (s Store) Export() map[string]any {
	out := make(map[string]any, len(s.values))
	for id, v := range s.values {
		switch v.Kind {
		case KindMulti:
			out[id] = sortedKeys(v.Set)
		case KindSingle:
			out[id] = v.Option
		case KindSlider:
			out[id] = v.Scalar
		}
	}
	return out
}

// Import rebuilds a Store from an Export result (for example after a JSON
// round trip, where numbers decode as float64 and lists as []any).
// Entries of unrecognised types are skipped.
func Import(exported map[string]any) Store {
	s := Store{values: make(map[string]Value, len(exported))}
	for id, raw := range exported {
		switch v := raw.(type) {
		case string:
			s.values[id] = Value{Kind: KindSingle, Option: v}
		case float64:
			s.values[id] = Value{Kind: KindSlider, Scalar: clamp01(v)}
		case []string:
			s.values[id] = multiValue(v)
		case []any:
			opts := make([]string, 0, len(v))
			for _, item := range v {
				if str, ok := item.(string); ok {
					opts = append(opts, str)
				}
			}
			s.values[id] = multiValue(opts)
		}
	}
	return s
}

func multiValue(opts []string) Value {
	set := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		set[o] = struct{}{}
	}
	return Value{Kind: KindMulti, Set: set}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
