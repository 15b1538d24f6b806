package session

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/berth-dev/deckhand/internal/answers"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.CreateSession("phone-finder")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" || sess.Status != StatusActive {
		t.Fatalf("CreateSession returned %+v", sess)
	}

	got, err := s.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.Questionnaire != "phone-finder" {
		t.Fatalf("GetSession = %+v", got)
	}

	missing, err := s.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("GetSession(missing) = %+v, want nil", missing)
	}
}

func TestSaveAndGetAnswers(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.CreateSession("phone-finder")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	store := answers.New().
		Select("camera", "priorities", true).
		Select("battery", "priorities", true).
		Select("android", "platform", false).
		SetSlider(0.6, "budget")

	if err := s.SaveAnswers(sess.ID, store); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}

	got, err := s.GetAnswers(sess.ID)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if diff := cmp.Diff(store.Export(), got.Export()); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}

	rows, err := s.GetAnswerRows(sess.ID)
	if err != nil {
		t.Fatalf("GetAnswerRows: %v", err)
	}
	kinds := map[string]string{}
	for _, r := range rows {
		kinds[r.QuestionID] = r.Kind
	}
	wantKinds := map[string]string{"priorities": "multi", "platform": "single", "budget": "slider"}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAnswersReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateSession("q")

	first := answers.New().Select("a", "q1", false).Select("b", "q2", false)
	if err := s.SaveAnswers(sess.ID, first); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}
	second := first.Reset().Select("c", "q1", false)
	if err := s.SaveAnswers(sess.ID, second); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}

	got, err := s.GetAnswers(sess.ID)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Len() = %d, want 1", got.Len())
	}
	if opt, _ := got.SelectedOption("q1"); opt != "c" {
		t.Errorf("q1 = %q, want c", opt)
	}
}

func TestListSessionsAndStatus(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateSession("first")
	b, _ := s.CreateSession("second")

	if err := s.SaveAnswers(b.ID, answers.New().SetSlider(1, "x").SetSlider(0, "y")); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}
	if err := s.SetStatus(a.ID, StatusCompleted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	summaries, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	byID := map[string]Summary{}
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	if byID[a.ID].Status != StatusCompleted {
		t.Errorf("status of first = %q", byID[a.ID].Status)
	}
	if byID[b.ID].Answered != 2 {
		t.Errorf("answered of second = %d, want 2", byID[b.ID].Answered)
	}

	active, err := s.GetLatestActive("first")
	if err != nil {
		t.Fatalf("GetLatestActive: %v", err)
	}
	if active != nil {
		t.Errorf("completed session returned as active: %+v", active)
	}
	active, err = s.GetLatestActive("second")
	if err != nil {
		t.Fatalf("GetLatestActive: %v", err)
	}
	if active == nil || active.ID != b.ID {
		t.Errorf("GetLatestActive(second) = %+v", active)
	}
}
