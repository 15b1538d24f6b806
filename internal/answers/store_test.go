package answers

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectMultiToggleIsIdempotent(t *testing.T) {
	s := New().Select("A", "Q1", true)
	before := s.SelectedOptions("Q1")

	s = s.Select("B", "Q1", true).Select("B", "Q1", true)

	if diff := cmp.Diff(before, s.SelectedOptions("Q1")); diff != "" {
		t.Errorf("toggle twice changed selection (-want +got):\n%s", diff)
	}
}

func TestSelectMultiRemovesPresentOption(t *testing.T) {
	s := New().Select("A", "Q1", true).Select("B", "Q1", true).Select("A", "Q1", true)

	if s.IsSelected("A", "Q1") {
		t.Error("A should have been toggled off")
	}
	if !s.IsSelected("B", "Q1") {
		t.Error("B should still be selected")
	}
}

func TestSelectSingleReplaces(t *testing.T) {
	s := New().Select("A", "Q1", false).Select("B", "Q1", false)

	got, ok := s.SelectedOption("Q1")
	if !ok || got != "B" {
		t.Fatalf("SelectedOption = %q, %v; want B, true", got, ok)
	}
	if s.IsSelected("A", "Q1") {
		t.Error("A should have been replaced")
	}
	if diff := cmp.Diff([]string{"B"}, s.SelectedOptions("Q1")); diff != "" {
		t.Errorf("SelectedOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectMultiAfterSingleSwitchesKind(t *testing.T) {
	// A single select followed by a multi select switches the question kind.
	s := New().Select("A", "Q1", false).Select("B", "Q1", true)

	if diff := cmp.Diff([]string{"B"}, s.SelectedOptions("Q1")); diff != "" {
		t.Errorf("SelectedOptions mismatch (-want +got):\n%s", diff)
	}
	if s.KindOf("Q1") != KindMulti {
		t.Errorf("KindOf = %v, want multi", s.KindOf("Q1"))
	}
}

func TestStoreIsValueType(t *testing.T) {
	orig := New().Select("A", "Q1", true)
	changed := orig.Select("B", "Q1", true)

	if orig.IsSelected("B", "Q1") {
		t.Error("mutation leaked into original store")
	}
	if !changed.IsSelected("B", "Q1") {
		t.Error("new store is missing B")
	}

	set := changed.SelectedSet("Q1")
	delete(set, "A")
	if !changed.IsSelected("A", "Q1") {
		t.Error("SelectedSet returned the internal map")
	}
}

func TestSetSliderClamps(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"in range", 0.4, 0.4},
		{"below", -3, 0},
		{"above", 1.7, 1},
		{"lower bound", 0, 0},
		{"upper bound", 1, 1},
		{"positive infinity", math.Inf(1), 1},
		{"negative infinity", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New().SetSlider(tt.input, "S")
			got, ok := s.SliderValue("S")
			if !ok {
				t.Fatal("SliderValue absent after SetSlider")
			}
			if got != tt.want {
				t.Errorf("SliderValue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPermissiveReads(t *testing.T) {
	s := New().Select("A", "multi", true).Select("X", "single", false).SetSlider(0.5, "slider")

	if s.IsSelected("A", "unknown") {
		t.Error("IsSelected on unknown question should be false")
	}
	if s.IsSelected("A", "slider") {
		t.Error("IsSelected on slider question should be false")
	}
	if _, ok := s.SliderValue("multi"); ok {
		t.Error("SliderValue on multi question should be absent")
	}
	if _, ok := s.SliderValue("unknown"); ok {
		t.Error("SliderValue on unknown question should be absent")
	}
	if _, ok := s.SelectedOption("multi"); ok {
		t.Error("SelectedOption on multi question should be absent")
	}
	if opts := s.SelectedOptions("slider"); len(opts) != 0 {
		t.Errorf("SelectedOptions on slider = %v, want empty", opts)
	}
}

func TestReset(t *testing.T) {
	s := New().Select("A", "Q1", true).SetSlider(0.2, "Q2")
	s = s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", s.Len())
	}
	s = s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after second reset = %d, want 0", s.Len())
	}
}

func TestExportDeterministic(t *testing.T) {
	a := New().Select("c", "Q1", true).Select("a", "Q1", true).Select("b", "Q1", true)
	b := New().Select("b", "Q1", true).Select("c", "Q1", true).Select("a", "Q1", true)

	if diff := cmp.Diff(a.Export(), b.Export()); diff != "" {
		t.Errorf("exports differ (-a +b):\n%s", diff)
	}

	ja, err := json.Marshal(a.Export())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, err := json.Marshal(b.Export())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(ja) != string(jb) {
		t.Errorf("JSON exports differ: %s vs %s", ja, jb)
	}
	if string(ja) != `{"Q1":["a","b","c"]}` {
		t.Errorf("JSON export = %s", ja)
	}
}

func TestExportKinds(t *testing.T) {
	s := New().
		Select("wifi", "features", true).
		Select("gps", "features", true).
		Select("budget", "tier", false).
		SetSlider(0.75, "battery")

	want := map[string]any{
		"features": []string{"gps", "wifi"},
		"tier":     "budget",
		"battery":  0.75,
	}
	if diff := cmp.Diff(want, s.Export()); diff != "" {
		t.Errorf("Export mismatch (-want +got):\n%s", diff)
	}
}

func TestImportAfterJSONRoundTrip(t *testing.T) {
	s := New().
		Select("wifi", "features", true).
		Select("budget", "tier", false).
		SetSlider(0.25, "battery")

	data, err := json.Marshal(s.Export())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Import(decoded)
	if diff := cmp.Diff(s.Export(), got.Export()); diff != "" {
		t.Errorf("Import mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionIDsSorted(t *testing.T) {
	s := New().SetSlider(1, "z").Select("a", "m", false).Select("a", "b", true)
	if diff := cmp.Diff([]string{"b", "m", "z"}, s.QuestionIDs()); diff != "" {
		t.Errorf("QuestionIDs mismatch (-want +got):\n%s", diff)
	}
}
