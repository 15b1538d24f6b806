package ui

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/deckhand/internal/tui"
)

const (
	shimmerInterval = 60 * time.Millisecond
	shimmerBand     = 6
)

var lastSkeletonID int64

// ShimmerMsg advances one skeleton's shimmer by a frame.
type ShimmerMsg struct {
	ID int
}

// Skeleton is a placeholder of grey bars with a highlight sweeping across
// them while content loads.
type Skeleton struct {
	id      int
	widths  []int
	phase   int
	label   string
	spinner spinner.Model
}

// NewSkeleton creates a skeleton with one bar per width.
func NewSkeleton(label string, widths ...int) Skeleton {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.DimStyle

	return Skeleton{
		id:      int(atomic.AddInt64(&lastSkeletonID, 1)),
		widths:  widths,
		label:   label,
		spinner: sp,
	}
}

// ID identifies the skeleton's shimmer ticks.
func (s Skeleton) ID() int { return s.id }

// Phase returns the shimmer frame counter.
func (s Skeleton) Phase() int { return s.phase }

// Init starts the shimmer and spinner.
func (s Skeleton) Init() tea.Cmd {
	return tea.Batch(s.tick(), s.spinner.Tick)
}

func (s Skeleton) tick() tea.Cmd {
	id := s.id
	return tea.Tick(shimmerInterval, func(time.Time) tea.Msg {
		return ShimmerMsg{ID: id}
	})
}

// Update advances the shimmer on its own ticks and ignores everyone else's.
func (s Skeleton) Update(msg tea.Msg) (Skeleton, tea.Cmd) {
	switch msg := msg.(type) {
	case ShimmerMsg:
		if msg.ID != s.id {
			return s, nil
		}
		s.phase++
		return s, s.tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s Skeleton) span() int {
	widest := 0
	for _, w := range s.widths {
		widest = max(widest, w)
	}
	return widest + shimmerBand
}

// View renders the bars. Cells inside the moving band are highlighted.
func (s Skeleton) View() string {
	var b strings.Builder
	if s.label != "" {
		b.WriteString(s.spinner.View() + " " + tui.DimStyle.Render(s.label) + "\n\n")
	}

	head := 0
	if span := s.span(); span > 0 {
		head = s.phase % span
	}
	for n, w := range s.widths {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(bar(w, head))
	}
	return b.String()
}

// bar renders a bar of width cells with the band ending at head.
func bar(width, head int) string {
	lo := head - shimmerBand
	var b strings.Builder
	for c := range width {
		if c > lo && c <= head {
			b.WriteString(tui.ShimmerStyle.Render("▓"))
		} else {
			b.WriteString(tui.SkeletonStyle.Render("░"))
		}
	}
	return b.String()
}
