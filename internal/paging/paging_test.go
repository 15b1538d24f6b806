package paging

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fiveCards() *Model {
	return New(Config{
		ItemCount: 5,
		Viewport:  320,
		Sizing:    Fixed(100),
		Spacing:   10,
	})
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantLength  float64
		wantContent float64
	}{
		{
			name:        "fixed",
			cfg:         Config{ItemCount: 5, Viewport: 320, Sizing: Fixed(100), Spacing: 10},
			wantLength:  100,
			wantContent: 540,
		},
		{
			name:        "fraction",
			cfg:         Config{ItemCount: 3, Viewport: 200, Sizing: Fraction(0.8), Spacing: 8},
			wantLength:  160,
			wantContent: 3*168 - 8,
		},
		{
			name:        "empty",
			cfg:         Config{ItemCount: 0, Viewport: 200, Sizing: Fixed(50), Spacing: 8},
			wantLength:  50,
			wantContent: 0,
		},
		{
			name:        "negative length corrected",
			cfg:         Config{ItemCount: 2, Viewport: 200, Sizing: Fixed(-40), Spacing: 5},
			wantLength:  0,
			wantContent: 5,
		},
		{
			name:        "negative spacing overlaps",
			cfg:         Config{ItemCount: 3, Viewport: 200, Sizing: Fixed(100), Spacing: -20},
			wantLength:  100,
			wantContent: 3*80 + 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg)
			if got := m.ItemLength(); got != tt.wantLength {
				t.Errorf("ItemLength() = %v, want %v", got, tt.wantLength)
			}
			if got := m.ContentLength(); got != tt.wantContent {
				t.Errorf("ContentLength() = %v, want %v", got, tt.wantContent)
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	m := fiveCards()
	want := []float64{0, 110, 220, 330, 440}
	if diff := cmp.Diff(want, m.Offsets()); diff != "" {
		t.Errorf("Offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexAt(t *testing.T) {
	m := fiveCards()
	tests := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{54, 0},
		{55, 1}, // half rounds up
		{164.9, 1},
		{165, 2},
		{440, 4},
		{-500, 0},
		{10000, 4},
		{math.Inf(1), 4},
		{math.Inf(-1), 0},
		{math.MaxFloat64, 4},
	}
	for _, tt := range tests {
		got, ok := m.IndexAt(tt.offset)
		if !ok {
			t.Fatalf("IndexAt(%v) reported no index", tt.offset)
		}
		if got != tt.want {
			t.Errorf("IndexAt(%v) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestIndexBoundsForAnyOffset(t *testing.T) {
	for n := 1; n <= 6; n++ {
		m := New(Config{ItemCount: n, Viewport: 300, Sizing: Fraction(0.5), Spacing: 12})
		for offset := -2000.0; offset <= 2000; offset += 37.5 {
			got, ok := m.IndexAt(offset)
			if !ok || got < 0 || got > n-1 {
				t.Fatalf("n=%d IndexAt(%v) = %d, %v; out of [0,%d]", n, offset, got, ok, n-1)
			}
		}
	}
}

func TestEmptyCarouselHasNoIndex(t *testing.T) {
	m := New(Config{ItemCount: 0, Viewport: 300, Sizing: Fixed(100)})
	if _, ok := m.Index(); ok {
		t.Error("empty carousel should not report an index")
	}

	m.BeginDrag()
	m.DragBy(50)
	if m.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", m.Phase())
	}
	if m.Offset() != 0 {
		t.Errorf("offset = %v, want 0", m.Offset())
	}
	if _, ok := m.Release(1000); ok {
		t.Error("Release on empty carousel should report no target")
	}
	m.Next(true)
	if m.Phase() != PhaseIdle {
		t.Errorf("Next on empty carousel changed phase to %v", m.Phase())
	}
}

func TestSingleItemAlwaysIndexZero(t *testing.T) {
	m := New(Config{ItemCount: 1, Viewport: 300, Sizing: Fixed(100), Overscroll: true})
	m.BeginDrag()
	m.DragBy(500)
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Index() = %d, want 0", idx)
	}
	target, ok := m.Release(5000)
	if !ok || target != 0 {
		t.Errorf("Release() = %d, %v; want 0, true", target, ok)
	}
}

func TestSnapVelocityLookAhead(t *testing.T) {
	m := fiveCards()
	atTwo := m.ItemOffset(2)

	tests := []struct {
		name     string
		offset   float64
		velocity float64
		want     int
	}{
		{"flick forward", atTwo, 400, 3},
		{"slow forward", atTwo, 200, 2},
		{"at threshold", atTwo, 300, 2},
		{"flick back", atTwo, -400, 1},
		{"slightly past two, slow", atTwo + 30, 100, 2},
		{"flick forward at end", m.ItemOffset(4), 900, 4},
		{"flick back at start", 0, -900, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.SnapTarget(tt.offset, tt.velocity)
			if !ok {
				t.Fatal("SnapTarget reported no target")
			}
			if got != tt.want {
				t.Errorf("SnapTarget(%v, %v) = %d, want %d", tt.offset, tt.velocity, got, tt.want)
			}
		})
	}
}

func TestCustomVelocityThreshold(t *testing.T) {
	m := New(Config{ItemCount: 5, Viewport: 320, Sizing: Fixed(100), Spacing: 10, VelocityThreshold: 1000})
	if got, _ := m.SnapTarget(220, 400); got != 2 {
		t.Errorf("SnapTarget with threshold 1000 = %d, want 2", got)
	}
	if got, _ := m.SnapTarget(220, 1200); got != 3 {
		t.Errorf("SnapTarget with threshold 1000 = %d, want 3", got)
	}
}

func TestDragCycle(t *testing.T) {
	m := fiveCards()

	var changes []int
	m.OnIndexChange = func(index int, ok bool) {
		if ok {
			changes = append(changes, index)
		}
	}

	m.BeginDrag()
	if m.Phase() != PhaseDragging {
		t.Fatalf("phase = %v, want dragging", m.Phase())
	}
	for i := 0; i < 12; i++ {
		m.DragBy(20)
	}
	// Offset 240 is nearest item 2; the index was reported live on the way.
	if diff := cmp.Diff([]int{1, 2}, changes); diff != "" {
		t.Errorf("live index changes mismatch (-want +got):\n%s", diff)
	}

	target, ok := m.Release(0)
	if !ok || target != 2 {
		t.Fatalf("Release(0) = %d, %v; want 2, true", target, ok)
	}
	if m.Phase() != PhaseSettling {
		t.Fatalf("phase = %v, want settling", m.Phase())
	}

	for i := 0; i < 100 && !m.Step(0.5); i++ {
	}
	if m.Phase() != PhaseIdle {
		t.Fatalf("phase after settling = %v, want idle", m.Phase())
	}
	if m.Offset() != 220 {
		t.Errorf("offset after settle = %v, want 220", m.Offset())
	}
}

func TestDragClampsWithoutOverscroll(t *testing.T) {
	m := fiveCards()
	m.BeginDrag()
	m.DragBy(-300)
	if m.Offset() != 0 {
		t.Errorf("offset = %v, want 0", m.Offset())
	}
	m.DragBy(5000)
	if m.Offset() != 440 {
		t.Errorf("offset = %v, want 440", m.Offset())
	}
}

func TestOverscrollFollowsFinger(t *testing.T) {
	m := New(Config{ItemCount: 3, Viewport: 300, Sizing: Fixed(100), Overscroll: true})
	m.BeginDrag()
	m.DragBy(-80)
	if m.Offset() != -80 {
		t.Errorf("offset = %v, want -80", m.Offset())
	}
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Index() = %d, want 0", idx)
	}
}

func TestNewDragInterruptsSettle(t *testing.T) {
	m := fiveCards()
	m.BeginDrag()
	m.DragBy(100)
	m.Release(1000) // target 2
	m.Step(0.5)
	interrupted := m.Offset()

	m.BeginDrag()
	if m.Phase() != PhaseDragging {
		t.Fatalf("phase = %v, want dragging", m.Phase())
	}
	if m.Offset() != interrupted {
		t.Errorf("offset moved on interrupt: %v -> %v", interrupted, m.Offset())
	}
	if _, ok := m.Target(); ok {
		t.Error("Target should be absent while dragging")
	}

	target, _ := m.Release(0)
	want, _ := m.IndexAt(interrupted)
	if target != want {
		t.Errorf("target after interrupt = %d, want %d", target, want)
	}
}

func TestNextPrevWrap(t *testing.T) {
	m := fiveCards()
	m.Prev(false)
	m.Settle()
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Prev without wrap at start = %d, want 0", idx)
	}

	m.Prev(true)
	m.Settle()
	if idx, _ := m.Index(); idx != 4 {
		t.Errorf("Prev with wrap at start = %d, want 4", idx)
	}

	m.Next(true)
	m.Settle()
	if idx, _ := m.Index(); idx != 0 {
		t.Errorf("Next with wrap at end = %d, want 0", idx)
	}

	m.Next(false)
	m.Next(false) // queued on top of the pending target
	m.Settle()
	if idx, _ := m.Index(); idx != 2 {
		t.Errorf("two Next calls = %d, want 2", idx)
	}
}

func TestSetItemCountReclamps(t *testing.T) {
	m := fiveCards()
	m.ScrollTo(4)
	m.Settle()

	var last int
	m.OnIndexChange = func(index int, ok bool) { last = index }
	m.SetItemCount(2)

	if idx, _ := m.Index(); idx != 1 {
		t.Errorf("Index() after shrink = %d, want 1", idx)
	}
	if last != 1 {
		t.Errorf("OnIndexChange reported %d, want 1", last)
	}

	m.SetItemCount(0)
	if _, ok := m.Index(); ok {
		t.Error("Index should be absent after removing all items")
	}
}

func TestSetViewportKeepsFractionIndex(t *testing.T) {
	m := New(Config{ItemCount: 4, Viewport: 200, Sizing: Fraction(0.5)})
	m.ScrollTo(3)
	m.Settle()

	m.SetViewport(400)
	if idx, _ := m.Index(); idx != 3 {
		t.Errorf("Index() after resize = %d, want 3", idx)
	}
	if m.Offset() != 600 {
		t.Errorf("Offset() after resize = %v, want 600", m.Offset())
	}
}

func TestZeroStride(t *testing.T) {
	m := New(Config{ItemCount: 3, Viewport: 100, Sizing: Fixed(0)})
	if idx, ok := m.IndexAt(50); !ok || idx != 0 {
		t.Errorf("IndexAt with zero stride = %d, %v; want 0, true", idx, ok)
	}
}

func TestLookAhead(t *testing.T) {
	if LookAhead(301, 300) != 1 || LookAhead(-301, 300) != -1 || LookAhead(300, 300) != 0 {
		t.Error("LookAhead does not honor a strict threshold")
	}
}
