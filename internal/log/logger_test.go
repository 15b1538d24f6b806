package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	if err := l.Append(LogEvent{Event: EventDemoStarted, Component: "carousel"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(LogEvent{Event: EventQuestionnaireCompleted, Answered: 3, Total: 4}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Component != "carousel" {
		t.Errorf("events[0].Component = %q", events[0].Component)
	}
	if events[1].Answered != 3 || events[1].Total != 4 {
		t.Errorf("events[1] = %+v", events[1])
	}
	if events[0].Time.IsZero() {
		t.Error("Append should stamp a time")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestReadAllMalformedLine(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	path := filepath.Join(dir, ".deckhand", "log.jsonl")
	if err := os.WriteFile(path, []byte("{\"event\":\"ok\"}\nnot json\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := l.ReadAll(); err == nil {
		t.Error("ReadAll should fail on a malformed line")
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	if err := l.Append(LogEvent{Event: EventDemoFinished}); err != nil {
		t.Errorf("nil Append returned %v", err)
	}
}

func TestAppendConcurrent(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Append(LogEvent{Event: EventAnswersExported})
		}()
	}
	wg.Wait()

	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 20 {
		t.Errorf("got %d events, want 20", len(events))
	}
}
