// Package carousel renders a horizontally paged strip of cards driven by a
// paging.Model. Mouse drags move the strip 1:1, releases snap with velocity
// look-ahead, and an optional auto-advance timer pages on its own.
package carousel

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/paging"
	"github.com/berth-dev/deckhand/internal/tui"
	"github.com/berth-dev/deckhand/internal/ui"
)

const (
	frameInterval  = 30 * time.Millisecond
	velocityWindow = 100 * time.Millisecond
	cardHeight     = 7
)

var lastID int64

// Item is one card.
type Item struct {
	Title string
	Body  string
}

// Options configures a carousel.
type Options struct {
	CellWidth         float64 // points per terminal column
	Sizing            paging.Sizing
	Spacing           float64
	VelocityThreshold float64
	SettleFrames      int
	AutoAdvance       time.Duration // 0 disables
	ResumeDelay       time.Duration
	Wrap              bool
	Indicator         ui.Indicator
	// RenderCard draws one card at the given width. Nil uses the stock
	// bordered card.
	RenderCard func(it Item, width int, active bool) string
}

// OptionsFromConfig builds options from the paging and indicator sections.
func OptionsFromConfig(cfg *config.Config) Options {
	style, err := ui.ParseStyle(cfg.Indicator.Style)
	if err != nil {
		style = ui.StyleDots
	}
	return Options{
		CellWidth:         cfg.Paging.CellWidth,
		Sizing:            cfg.ItemSizing(),
		Spacing:           cfg.Paging.Spacing,
		VelocityThreshold: cfg.Paging.VelocityThreshold,
		SettleFrames:      cfg.Paging.SettleFrames,
		AutoAdvance:       cfg.AutoAdvance(),
		ResumeDelay:       cfg.ResumeDelay(),
		Wrap:              cfg.AutoAdvance() > 0,
		Indicator:         ui.NewIndicator(style, 24),
	}
}

// IndexChangedMsg reports that the item under the leading edge changed.
// ID identifies the carousel that sent it.
type IndexChangedMsg struct {
	ID    int
	Index int
	Total int
}

// indexTracker receives the pager's index notifications. It is shared by
// every copy of a Model, like the pager itself.
type indexTracker struct {
	index   int
	pending bool
}

func (t *indexTracker) observe(index int, ok bool) {
	if !ok {
		return
	}
	t.index = index
	t.pending = true
}

type frameMsg struct{ id, seq int }

type advanceMsg struct{ id, gen int }

type sample struct {
	x  float64
	at time.Time
}

// Model is the carousel component.
type Model struct {
	id    int
	items []Item
	opts  Options
	keys  tui.KeyMap
	pager *paging.Model

	width  int
	height int

	dragging bool
	lastX    int
	samples  []sample

	settleSeq int
	frames    int

	autoGen int
	autoOn  bool

	tracker *indexTracker
	now     func() time.Time
}

// New creates a carousel over items. The viewport is set by the first
// WindowSizeMsg.
func New(items []Item, opts Options) Model {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.SettleFrames <= 0 {
		opts.SettleFrames = 1
	}
	m := Model{
		id:     int(atomic.AddInt64(&lastID, 1)),
		items:  items,
		opts:   opts,
		keys:   tui.DefaultKeyMap,
		autoOn:  opts.AutoAdvance > 0,
		tracker: &indexTracker{},
		now:     time.Now,
	}
	m.pager = paging.New(paging.Config{
		ItemCount:         len(items),
		Viewport:          float64(m.viewportCells()) * opts.CellWidth,
		Sizing:            opts.Sizing,
		Spacing:           opts.Spacing,
		VelocityThreshold: opts.VelocityThreshold,
	})
	m.pager.OnIndexChange = m.tracker.observe
	return m
}

// ID identifies this carousel in the messages it sends.
func (m Model) ID() int { return m.id }

// Pager exposes the underlying paging model.
func (m Model) Pager() *paging.Model { return m.pager }

// Index returns the current item index.
func (m Model) Index() (int, bool) {
	if len(m.items) == 0 {
		return 0, false
	}
	return m.tracker.index, true
}

// AutoAdvancing reports whether the auto-advance timer is enabled.
func (m Model) AutoAdvancing() bool { return m.autoOn }

// Init starts the auto-advance timer when configured.
func (m Model) Init() tea.Cmd {
	if !m.autoOn {
		return nil
	}
	return m.scheduleAdvance(m.opts.AutoAdvance)
}

// SetAutoAdvance turns the timer on or off. Any outstanding tick is
// invalidated either way.
func (m *Model) SetAutoAdvance(on bool) tea.Cmd {
	m.autoGen++
	m.autoOn = on && m.opts.AutoAdvance > 0
	if !m.autoOn {
		return nil
	}
	return m.scheduleAdvance(m.opts.AutoAdvance)
}

// SetItems replaces the cards, keeping the position where possible.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.pager.SetItemCount(len(items))
}

// SetOptions applies new tuning, for example after a config reload.
func (m *Model) SetOptions(opts Options) {
	if opts.CellWidth <= 0 {
		opts.CellWidth = m.opts.CellWidth
	}
	if opts.SettleFrames <= 0 {
		opts.SettleFrames = 1
	}
	m.opts = opts
	m.autoOn = m.autoOn && opts.AutoAdvance > 0
	cfg := m.pager.Config()
	pager := paging.New(paging.Config{
		ItemCount:         cfg.ItemCount,
		Viewport:          float64(m.viewportCells()) * opts.CellWidth,
		Sizing:            opts.Sizing,
		Spacing:           opts.Spacing,
		VelocityThreshold: opts.VelocityThreshold,
	})
	idx, _ := m.pager.Index()
	pager.ScrollTo(idx)
	pager.Settle()
	pager.OnIndexChange = m.tracker.observe
	m.pager = pager
}

func (m Model) scheduleAdvance(d time.Duration) tea.Cmd {
	id, gen := m.id, m.autoGen
	return tea.Tick(d, func(time.Time) tea.Msg { return advanceMsg{id: id, gen: gen} })
}

// restartAuto cancels the running timer and re-arms it after the resume
// delay.
func (m *Model) restartAuto() tea.Cmd {
	if !m.autoOn {
		return nil
	}
	m.autoGen++
	return m.scheduleAdvance(m.opts.ResumeDelay)
}

// startSettle begins a settle animation, superseding any running one.
func (m *Model) startSettle() tea.Cmd {
	m.settleSeq++
	m.frames = 0
	return m.frame()
}

func (m Model) frame() tea.Cmd {
	id, seq := m.id, m.settleSeq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{id: id, seq: seq} })
}

// Update handles messages for the carousel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pager.SetViewport(float64(m.viewportCells()) * m.opts.CellWidth)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case frameMsg:
		if msg.id != m.id || msg.seq != m.settleSeq || m.pager.Phase() != paging.PhaseSettling {
			break
		}
		m.frames++
		remaining := m.opts.SettleFrames - m.frames + 1
		if !m.pager.Step(1 / float64(max(remaining, 1))) {
			cmds = append(cmds, m.frame())
		}

	case advanceMsg:
		if msg.id != m.id || msg.gen != m.autoGen || !m.autoOn || m.dragging {
			break
		}
		m.pager.Next(true)
		cmds = append(cmds, m.startSettle(), m.scheduleAdvance(m.opts.AutoAdvance))
	}

	if m.tracker.pending {
		m.tracker.pending = false
		changed := IndexChangedMsg{ID: m.id, Index: m.tracker.index, Total: len(m.items)}
		cmds = append(cmds, func() tea.Msg { return changed })
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.pager.Prev(m.opts.Wrap)
	case key.Matches(msg, m.keys.Right):
		m.pager.Next(m.opts.Wrap)
	case msg.String() == "home":
		m.pager.ScrollTo(0)
	case msg.String() == "end":
		m.pager.ScrollTo(len(m.items) - 1)
	case key.Matches(msg, m.keys.Auto):
		return m.SetAutoAdvance(!m.autoOn)
	default:
		return nil
	}
	return tea.Batch(m.startSettle(), m.restartAuto())
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.dragging = true
			m.lastX = msg.X
			m.samples = nil
			m.record(msg.X)
			m.pager.BeginDrag()
			// Cancel the auto-advance timer for the duration of the drag.
			m.autoGen++
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.pager.Next(m.opts.Wrap)
			return tea.Batch(m.startSettle(), m.restartAuto())
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.pager.Prev(m.opts.Wrap)
			return tea.Batch(m.startSettle(), m.restartAuto())
		}

	case tea.MouseActionMotion:
		if !m.dragging {
			return nil
		}
		m.dragTo(msg.X)

	case tea.MouseActionRelease:
		if !m.dragging {
			return nil
		}
		m.dragTo(msg.X)
		m.dragging = false
		m.pager.Release(m.velocity())
		return tea.Batch(m.startSettle(), m.restartAuto())
	}
	return nil
}

// dragTo moves the strip with the pointer. Moving the pointer left reveals
// later cards, so the offset grows.
func (m *Model) dragTo(x int) {
	dx := x - m.lastX
	m.lastX = x
	m.record(x)
	if dx != 0 {
		m.pager.DragBy(-float64(dx) * m.opts.CellWidth)
	}
}

func (m *Model) record(x int) {
	m.samples = append(m.samples, sample{x: float64(x) * m.opts.CellWidth, at: m.now()})
}

// velocity estimates the release velocity in points per second from the
// samples inside the trailing window, in offset direction.
func (m Model) velocity() float64 {
	if len(m.samples) < 2 {
		return 0
	}
	last := m.samples[len(m.samples)-1]
	first := last
	for i := len(m.samples) - 1; i >= 0; i-- {
		if last.at.Sub(m.samples[i].at) > velocityWindow {
			break
		}
		first = m.samples[i]
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return -(last.x - first.x) / dt
}

func (m Model) viewportCells() int {
	return max(m.width-4, 10)
}

func (m Model) cells(points float64) int {
	return int(math.Round(points / m.opts.CellWidth))
}

// column maps an offset in points to a strip column. Card i starts at
// column i*strideCells, so offsets are scaled by the rounded stride rather
// than converted independently.
func (m Model) column(offset float64, strideCells int) int {
	stride := m.pager.Stride()
	if stride <= 0 {
		return 0
	}
	return int(math.Round(offset / stride * float64(strideCells)))
}

// View renders the visible window of the card strip and the indicator.
func (m Model) View() string {
	if len(m.items) == 0 {
		return tui.DimStyle.Render("No items")
	}

	gapW := max(m.cells(m.opts.Spacing), 0)
	cardW := max(m.cells(m.pager.Stride())-gapW, 8)
	current, _ := m.Index()
	render := m.opts.RenderCard
	if render == nil {
		render = renderCard
	}

	parts := make([]string, 0, 2*len(m.items))
	for i, it := range m.items {
		if i > 0 && gapW > 0 {
			parts = append(parts, lipgloss.NewStyle().Width(gapW).Height(cardHeight).Render(""))
		}
		parts = append(parts, render(it, cardW, i == current))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	left := m.column(m.pager.Offset(), cardW+gapW)
	view := m.viewportCells()
	lines := strings.Split(strip, "\n")
	for i, line := range lines {
		cut := ""
		if left < 0 {
			cut = strings.Repeat(" ", min(-left, view)) + ansi.Cut(line, 0, view+left)
		} else {
			cut = ansi.Cut(line, left, left+view)
		}
		lines[i] = cut
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.opts.Indicator.Render(current, len(m.items)))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	hints := "←→ page · drag to swipe · home/end"
	if m.opts.AutoAdvance > 0 {
		if m.autoOn {
			hints += " · a: pause"
		} else {
			hints += " · a: play"
		}
	}
	return tui.DimStyle.Render(hints)
}

func renderCard(it Item, width int, active bool) string {
	style := tui.CardStyle
	if active {
		style = tui.ActiveCardStyle
	}
	inner := max(width-4, 1)
	body := tui.TitleStyle.Render(ansi.Truncate(it.Title, inner, "…")) + "\n\n" +
		wordwrap.String(it.Body, inner)
	return style.Width(width - 2).Height(cardHeight - 2).MaxHeight(cardHeight).Render(body)
}
