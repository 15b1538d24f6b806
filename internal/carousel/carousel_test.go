package carousel

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/paging"
	"github.com/berth-dev/deckhand/internal/ui"
)

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Title: fmt.Sprintf("Card %d", i+1), Body: "Some body text for the card."}
	}
	return items
}

func testOptions() Options {
	return Options{
		CellWidth:         8,
		Sizing:            paging.Fraction(0.8),
		Spacing:           16,
		VelocityThreshold: paging.DefaultVelocityThreshold,
		SettleFrames:      4,
		Indicator:         ui.NewIndicator(ui.StyleNumbers, 20),
	}
}

// newSized builds a carousel with an 80-column viewport (640 points):
// items are 512 points with a 528 point stride.
func newSized(t *testing.T, n int, opts Options) Model {
	t.Helper()
	m := New(testItems(n), opts)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 84, Height: 24})
	if got := m.Pager().Stride(); got != 528 {
		t.Fatalf("Stride = %v, want 528", got)
	}
	return m
}

// settle feeds animation frames until the pager is idle.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.Pager().Phase() == paging.PhaseSettling; i++ {
		if i > 100 {
			t.Fatal("settle did not finish")
		}
		m, _ = m.Update(frameMsg{id: m.id, seq: m.settleSeq})
	}
	return m
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func mouse(action tea.MouseAction, x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: 3, Action: action, Button: tea.MouseButtonLeft}
}

func TestKeyboardPaging(t *testing.T) {
	m := newSized(t, 4, testOptions())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("right did not start the settle animation")
	}
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 1 {
		t.Errorf("Index = %d, want 1", idx)
	}
	if m.Pager().Offset() != 528 {
		t.Errorf("Offset = %v, want 528", m.Pager().Offset())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Index = %d, want 0 (no wrap)", idx)
	}
}

func TestSettleTakesConfiguredFrames(t *testing.T) {
	m := newSized(t, 4, testOptions())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	frames := 0
	for m.Pager().Phase() == paging.PhaseSettling {
		m, _ = m.Update(frameMsg{id: m.id, seq: m.settleSeq})
		frames++
	}
	if frames != 4 {
		t.Errorf("settled in %d frames, want 4", frames)
	}
}

func TestStaleFramesIgnored(t *testing.T) {
	m := newSized(t, 4, testOptions())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	stale := m.settleSeq

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	before := m.Pager().Offset()
	m, _ = m.Update(frameMsg{id: m.id, seq: stale})
	if m.Pager().Offset() != before {
		t.Error("frame from a superseded settle moved the strip")
	}

	m = settle(t, m)
	if idx, _ := m.Index(); idx != 2 {
		t.Errorf("Index = %d, want 2 after two presses", idx)
	}
}

func TestFlickAdvances(t *testing.T) {
	m := newSized(t, 4, testOptions())
	clock := &fakeClock{t: time.Unix(0, 0)}
	m.now = clock.now

	m, _ = m.Update(mouse(tea.MouseActionPress, 50))
	clock.advance(50 * time.Millisecond)
	m, _ = m.Update(mouse(tea.MouseActionMotion, 40))
	if got := m.Pager().Offset(); got != 80 {
		t.Errorf("Offset during drag = %v, want 80", got)
	}
	clock.advance(10 * time.Millisecond)
	m, _ = m.Update(mouse(tea.MouseActionRelease, 38))

	// 96 points in 60ms is well above the threshold: one page ahead.
	if target, ok := m.Pager().Target(); !ok || target != 1 {
		t.Errorf("Target = %d, %v; want 1", target, ok)
	}
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 1 {
		t.Errorf("Index = %d, want 1", idx)
	}
}

func TestSlowDragSnapsBack(t *testing.T) {
	m := newSized(t, 4, testOptions())
	clock := &fakeClock{t: time.Unix(0, 0)}
	m.now = clock.now

	m, _ = m.Update(mouse(tea.MouseActionPress, 50))
	clock.advance(time.Second)
	m, _ = m.Update(mouse(tea.MouseActionMotion, 40))
	clock.advance(time.Second)
	m, _ = m.Update(mouse(tea.MouseActionRelease, 38))

	if target, _ := m.Pager().Target(); target != 0 {
		t.Errorf("Target = %d, want 0", target)
	}
}

func TestDragPastHalfChangesIndexLive(t *testing.T) {
	m := newSized(t, 4, testOptions())
	m, _ = m.Update(mouse(tea.MouseActionPress, 70))
	// 34 cells = 272 points, just past half of the 528 point stride.
	m, cmd := m.Update(mouse(tea.MouseActionMotion, 36))
	if idx, _ := m.Index(); idx != 1 {
		t.Errorf("Index during drag = %d, want 1", idx)
	}
	got := indexChanges(cmd)
	want := []IndexChangedMsg{{ID: m.ID(), Index: 1, Total: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("index messages mismatch (-want +got):\n%s", diff)
	}

	// Moving within the same item reports nothing.
	m, cmd = m.Update(mouse(tea.MouseActionMotion, 35))
	if got := indexChanges(cmd); len(got) != 0 {
		t.Errorf("unexpected index messages %v", got)
	}
}

func TestIndexFollowsPagerObserver(t *testing.T) {
	m := newSized(t, 3, testOptions())
	m.Pager().ScrollTo(2)
	m.Pager().Settle()
	if idx, ok := m.Index(); !ok || idx != 2 {
		t.Fatalf("Index = %d, %v after ScrollTo, want 2", idx, ok)
	}
	if !strings.Contains(m.View(), "3 / 3") {
		t.Error("indicator does not show the observed index")
	}

	// The next update drains the notification as a message.
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 84, Height: 24})
	want := []IndexChangedMsg{{ID: m.ID(), Index: 2, Total: 3}}
	if diff := cmp.Diff(want, indexChanges(cmd)); diff != "" {
		t.Errorf("index messages mismatch (-want +got):\n%s", diff)
	}

	m.SetItems(testItems(0))
	if _, ok := m.Index(); ok {
		t.Error("empty carousel reported an index")
	}
}

// indexChanges runs cmd and collects the IndexChangedMsgs it produces. It
// must only be used on commands that carry no timers.
func indexChanges(cmd tea.Cmd) []IndexChangedMsg {
	if cmd == nil {
		return nil
	}
	var out []IndexChangedMsg
	switch msg := cmd().(type) {
	case IndexChangedMsg:
		out = append(out, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, indexChanges(c)...)
		}
	}
	return out
}

func TestAutoAdvance(t *testing.T) {
	opts := testOptions()
	opts.AutoAdvance = time.Second
	opts.ResumeDelay = 2 * time.Second
	opts.Wrap = true
	m := newSized(t, 3, opts)

	if m.Init() == nil {
		t.Fatal("Init did not arm the auto-advance timer")
	}
	m, _ = m.Update(advanceMsg{id: m.id, gen: m.autoGen})
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 1 {
		t.Fatalf("Index = %d after auto-advance, want 1", idx)
	}

	// A drag cancels the pending tick.
	gen := m.autoGen
	m, _ = m.Update(mouse(tea.MouseActionPress, 40))
	m, _ = m.Update(advanceMsg{id: m.id, gen: gen})
	if m.Pager().Phase() != paging.PhaseDragging {
		t.Errorf("Phase = %v, stale tick interrupted the drag", m.Pager().Phase())
	}

	// Releasing re-arms with a new generation.
	m, cmd := m.Update(mouse(tea.MouseActionRelease, 40))
	if cmd == nil || m.autoGen == gen {
		t.Error("release did not restart the timer")
	}
	m = settle(t, m)

	// Wraps from the last card to the first.
	m, _ = m.Update(advanceMsg{id: m.id, gen: m.autoGen})
	m = settle(t, m)
	m, _ = m.Update(advanceMsg{id: m.id, gen: m.autoGen})
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Index = %d, want wrap to 0", idx)
	}
}

func TestToggleAutoAdvance(t *testing.T) {
	opts := testOptions()
	opts.AutoAdvance = time.Second
	m := newSized(t, 3, opts)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.AutoAdvancing() {
		t.Fatal("a did not pause auto-advance")
	}
	m, _ = m.Update(advanceMsg{id: m.id, gen: m.autoGen})
	if m.Pager().Phase() != paging.PhaseIdle {
		t.Error("paused carousel advanced")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !m.AutoAdvancing() {
		t.Error("a did not resume auto-advance")
	}
}

func TestResizeKeepsIndex(t *testing.T) {
	m := newSized(t, 4, testOptions())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = settle(t, m)
	if idx, _ := m.Index(); idx != 3 {
		t.Fatalf("Index = %d, want 3", idx)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 124, Height: 30})
	if idx, _ := m.Index(); idx != 3 {
		t.Errorf("Index after resize = %d, want 3", idx)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Indicator.Style = "bar"
	opts := OptionsFromConfig(cfg)
	if opts.Indicator.Style() != ui.StyleBar {
		t.Errorf("Indicator = %q", opts.Indicator.Style())
	}
	if opts.VelocityThreshold != 300 || opts.CellWidth != 8 {
		t.Errorf("opts = %+v", opts)
	}
	if !opts.Wrap {
		t.Error("auto-advancing carousel should wrap")
	}
}

func TestView(t *testing.T) {
	m := newSized(t, 3, testOptions())
	v := m.View()
	if !strings.Contains(v, "Card 1") {
		t.Errorf("view missing first card:\n%s", v)
	}
	if !strings.Contains(v, "1 / 3") {
		t.Errorf("view missing indicator:\n%s", v)
	}

	empty := New(nil, testOptions())
	if !strings.Contains(empty.View(), "No items") {
		t.Error("empty carousel view")
	}
}

func TestCustomCardRenderer(t *testing.T) {
	opts := testOptions()
	var widths []int
	opts.RenderCard = func(it Item, width int, active bool) string {
		widths = append(widths, width)
		if active {
			return "[" + it.Title + "]"
		}
		return it.Title
	}
	m := newSized(t, 2, opts)

	v := m.View()
	if !strings.Contains(v, "[Card 1]") {
		t.Errorf("custom renderer not used for the active card:\n%s", v)
	}
	if len(widths) != 2 || widths[0] != 64 {
		t.Errorf("card widths = %v, want two cards of 64 cells", widths)
	}
}
