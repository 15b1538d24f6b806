// Package sheet renders a bottom sheet that rests on detents. The grabber
// row can be dragged or clicked; arrow keys step between detents.
package sheet

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/detent"
	"github.com/berth-dev/deckhand/internal/tui"
)

const velocityWindow = 100 * time.Millisecond

// Options configures a sheet.
type Options struct {
	Resolver   detent.Resolver
	Detents    []detent.Detent
	CellHeight float64 // points per terminal row
}

// OptionsFromConfig builds options from the sheet section.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	detents, err := cfg.Detents()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Resolver:   cfg.Resolver(),
		Detents:    detents,
		CellHeight: cfg.Sheet.CellHeight,
	}, nil
}

// DismissedMsg is sent when the user closes the sheet.
type DismissedMsg struct{}

// DetentChangedMsg reports the detent the sheet came to rest on.
type DetentChangedMsg struct {
	Index  int
	Height float64
}

type sample struct {
	y  float64
	at time.Time
}

// restTracker records the detent the sheet last came to rest on. Copies of
// a Model share it along with the detent.Sheet.
type restTracker struct {
	index   int
	pending bool
}

func (r *restTracker) observe(index int) {
	r.index = index
	r.pending = true
}

// Model is the bottom sheet component.
type Model struct {
	sheet   *detent.Sheet
	opts    Options
	keys    tui.KeyMap
	title   string
	content string

	width  int
	height int

	dragging bool
	moved    bool
	lastY    int
	samples  []sample

	rest *restTracker
	now  func() time.Time
}

// New creates a sheet showing content under title.
func New(title, content string, opts Options) Model {
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	m := Model{
		sheet:   detent.NewSheet(opts.Resolver, opts.Detents),
		opts:    opts,
		keys:    tui.DefaultKeyMap,
		title:   title,
		content: content,
		rest:    &restTracker{},
		now:     time.Now,
	}
	m.sheet.OnDetentChange = m.rest.observe
	return m
}

// Sheet exposes the underlying detent state.
func (m Model) Sheet() *detent.Sheet { return m.sheet }

// Rows returns the sheet height in terminal rows.
func (m Model) Rows() int {
	return int(math.Round(m.sheet.Height() / m.opts.CellHeight))
}

// SetOptions applies new tuning, for example after a config reload.
func (m *Model) SetOptions(opts Options) {
	if opts.CellHeight <= 0 {
		opts.CellHeight = m.opts.CellHeight
	}
	m.opts = opts
	idx, _ := m.sheet.Current()
	m.sheet = detent.NewSheet(opts.Resolver, opts.Detents)
	m.sheet.SetContainer(float64(m.height) * opts.CellHeight)
	m.sheet.SnapTo(idx)
	m.sheet.OnDetentChange = m.rest.observe
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// visibleRows is the number of rows the sheet occupies on screen: the top
// border plus at least the grabber, and never more than the window.
func (m Model) visibleRows() int {
	return min(max(m.Rows(), 2), max(m.height, 2))
}

// grabberRow is the screen row of the sheet's handle, just below the top
// border drawn by View.
func (m Model) grabberRow() int {
	return max(m.height, 2) - m.visibleRows() + 1
}

// Update handles messages for the sheet.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sheet.SetContainer(float64(msg.Height) * m.opts.CellHeight)

	case tea.KeyMsg:
		cur, _ := m.sheet.Current()
		switch {
		case key.Matches(msg, m.keys.Escape):
			return m, func() tea.Msg { return DismissedMsg{} }
		case key.Matches(msg, m.keys.Up):
			m.sheet.SnapTo(cur + 1)
		case key.Matches(msg, m.keys.Down):
			m.sheet.SnapTo(cur - 1)
		case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Toggle):
			m.sheet.Tap()
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.rest.pending {
		m.rest.pending = false
		changed := DetentChangedMsg{Index: m.rest.index, Height: m.sheet.Height()}
		cmd = func() tea.Msg { return changed }
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != m.grabberRow() {
			return
		}
		m.dragging = true
		m.moved = false
		m.lastY = msg.Y
		m.samples = nil
		m.record(msg.Y)
		m.sheet.BeginDrag()

	case tea.MouseActionMotion:
		if m.dragging {
			m.dragTo(msg.Y)
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragTo(msg.Y)
		m.dragging = false
		if !m.moved {
			// A click on the grabber without movement behaves like a tap.
			m.sheet.Release(0)
			m.sheet.Tap()
			return
		}
		m.sheet.Release(m.velocity())
	}
}

// dragTo follows the pointer. Moving up (smaller y) grows the sheet.
func (m *Model) dragTo(y int) {
	dy := y - m.lastY
	m.lastY = y
	m.record(y)
	if dy != 0 {
		m.moved = true
		m.sheet.DragBy(-float64(dy) * m.opts.CellHeight)
	}
}

func (m *Model) record(y int) {
	m.samples = append(m.samples, sample{y: float64(y) * m.opts.CellHeight, at: m.now()})
}

// velocity is the upward release speed in points per second.
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
	return -(last.y - first.y) / dt
}

// View renders the area above the sheet and the sheet itself, filling the
// window height.
func (m Model) View() string {
	width := max(m.width, 20)
	rows := m.visibleRows()

	var above []string
	for range max(m.height-rows, 0) {
		above = append(above, "")
	}
	if len(above) > 1 {
		above[1] = tui.DimStyle.Render("  ↑↓ detents · enter/click grabber cycle · drag grabber · esc close")
	}

	grabber := lipgloss.PlaceHorizontal(width-6, lipgloss.Center, tui.GrabberStyle.Render("━━━━━━"))
	lines := []string{grabber, tui.TitleStyle.Render(m.title)}
	inner := max(width-6, 10)
	for _, line := range strings.Split(wordwrap.String(m.content, inner), "\n") {
		if len(lines) >= rows {
			break
		}
		lines = append(lines, line)
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}

	// The top border takes one of the rows.
	body := tui.SheetStyle.Width(width - 2).Render(strings.Join(lines[:rows-1], "\n"))
	if len(above) == 0 {
		return body
	}
	return strings.Join(above, "\n") + "\n" + body
}
