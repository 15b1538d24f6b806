package questionnaire

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"

	"github.com/berth-dev/deckhand/internal/answers"
	"github.com/berth-dev/deckhand/internal/tui"
)

const (
	maxWidth   = 90
	sliderStep = 0.05
	sliderBar  = 30
)

// ChangedMsg is emitted after every answer mutation.
type ChangedMsg struct {
	QuestionID string
	Answers    answers.Store
}

// CompletedMsg is emitted when the user submits a complete questionnaire.
type CompletedMsg struct {
	Questionnaire *Questionnaire
	Answers       answers.Store
}

// Model walks the user through a questionnaire one question at a time.
type Model struct {
	qn      *Questionnaire
	store   answers.Store
	keys    tui.KeyMap
	current int
	cursor  int

	filter    textinput.Model
	filtering bool
	visible   []int

	missing    []string
	escPending bool
	width      int
	height     int
}

// New creates a Model positioned on the first question. qn must have
// passed Validate.
func New(qn *Questionnaire) Model {
	ti := textinput.New()
	ti.Placeholder = "filter options"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = maxWidth - 12

	m := Model{
		qn:     qn,
		store:  answers.New(),
		keys:   tui.DefaultKeyMap,
		filter: ti,
	}
	m.refilter()
	return m
}

// WithAnswers returns a copy of m that starts from store, for resuming a
// saved session.
func (m Model) WithAnswers(store answers.Store) Model {
	m.store = store
	return m
}

// Questionnaire returns the questionnaire being answered.
func (m Model) Questionnaire() *Questionnaire { return m.qn }

// Answers returns the current answers.
func (m Model) Answers() answers.Store { return m.store }

// Current returns the index of the question on screen.
func (m Model) Current() int { return m.current }

// Cursor returns the highlighted option index within the question's options,
// or -1 when nothing is highlighted.
func (m Model) Cursor() int {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return -1
	}
	return m.visible[m.cursor]
}

// Filtering reports whether the option filter has focus.
func (m Model) Filtering() bool { return m.filtering }

// Missing returns the required questions flagged by the last failed submit.
func (m Model) Missing() []string { return m.missing }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

func (m Model) question() Question { return m.qn.Questions[m.current] }

// Update handles messages for the questionnaire view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.EscResetMsg:
		m.escPending = false
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refilter()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	q := m.question()

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.escPending {
			return m, func() tea.Msg { return tui.GoHomeMsg{} }
		}
		m.escPending = true
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return tui.EscResetMsg{}
		})

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Left):
		if q.Kind == KindSlider {
			return m.nudge(-sliderStep)
		}
	case key.Matches(msg, m.keys.Right):
		if q.Kind == KindSlider {
			return m.nudge(sliderStep)
		}

	case key.Matches(msg, m.keys.Next):
		m.goTo(m.current + 1)
	case key.Matches(msg, m.keys.Prev):
		m.goTo(m.current - 1)

	case key.Matches(msg, m.keys.Filter):
		if q.Kind != KindSlider {
			m.filtering = true
			cmd := m.filter.Focus()
			return m, cmd
		}

	case key.Matches(msg, m.keys.Toggle):
		return m.choose(m.Cursor())

	case key.Matches(msg, m.keys.Enter):
		return m.submit()

	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' && q.Kind != KindSlider {
			idx := int(s[0] - '1')
			if idx < len(m.visible) {
				m.cursor = idx
				return m.choose(m.visible[idx])
			}
		}
	}
	return m, nil
}

// choose applies option i of the current question to the store.
func (m Model) choose(i int) (Model, tea.Cmd) {
	q := m.question()
	if q.Kind == KindSlider || i < 0 || i >= len(q.Options) {
		return m, nil
	}
	m.store = m.store.Select(q.Options[i].ID, q.ID, q.Kind == KindMulti)
	m.recheck()
	return m, m.changed(q.ID)
}

// nudge moves the slider by delta. An unanswered slider starts from the
// midpoint.
func (m Model) nudge(delta float64) (Model, tea.Cmd) {
	q := m.question()
	v, ok := m.store.SliderValue(q.ID)
	if !ok {
		v = 0.5
	}
	v = math.Round((v+delta)*100) / 100
	m.store = m.store.SetSlider(v, q.ID)
	m.recheck()
	return m, m.changed(q.ID)
}

// submit confirms the current question. Single-choice questions take the
// highlighted option if none was picked yet; untouched sliders take their
// displayed midpoint. On the last question the whole questionnaire is
// checked and either completed or the first missing question is shown.
func (m Model) submit() (Model, tea.Cmd) {
	q := m.question()
	var cmd tea.Cmd
	switch q.Kind {
	case KindSingle:
		if _, ok := m.store.SelectedOption(q.ID); !ok && !q.Optional {
			m, cmd = m.choose(m.Cursor())
		}
	case KindSlider:
		if _, ok := m.store.SliderValue(q.ID); !ok {
			m.store = m.store.SetSlider(0.5, q.ID)
			cmd = m.changed(q.ID)
		}
	}

	if m.current < len(m.qn.Questions)-1 {
		m.goTo(m.current + 1)
		return m, cmd
	}

	m.missing = m.qn.Missing(m.store)
	if len(m.missing) > 0 {
		for i, other := range m.qn.Questions {
			if other.ID == m.missing[0] {
				m.goTo(i)
				break
			}
		}
		return m, cmd
	}

	done := CompletedMsg{Questionnaire: m.qn, Answers: m.store}
	complete := func() tea.Msg { return done }
	if cmd == nil {
		return m, complete
	}
	return m, tea.Sequence(cmd, complete)
}

// recheck refreshes the missing list once a failed submit has shown it.
func (m *Model) recheck() {
	if len(m.missing) > 0 {
		m.missing = m.qn.Missing(m.store)
	}
}

func (m Model) changed(qid string) tea.Cmd {
	store := m.store
	return func() tea.Msg { return ChangedMsg{QuestionID: qid, Answers: store} }
}

func (m *Model) goTo(i int) {
	if i < 0 || i >= len(m.qn.Questions) || i == m.current {
		return
	}
	m.current = i
	m.cursor = 0
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
	m.refilter()
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.cursor = next
}

// refilter recomputes the visible options from the filter text. Fuzzy
// matches are ranked best first.
func (m *Model) refilter() {
	q := m.question()
	pattern := strings.TrimSpace(m.filter.Value())
	m.visible = make([]int, 0, len(q.Options))

	if pattern == "" {
		for i := range q.Options {
			m.visible = append(m.visible, i)
		}
	} else {
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Label
		}
		for _, match := range fuzzy.Find(pattern, labels) {
			m.visible = append(m.visible, match.Index)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// View renders the questionnaire.
func (m Model) View() string {
	q := m.question()
	width := maxWidth
	if m.width > 0 && m.width-8 < width {
		width = max(m.width-8, 20)
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render(m.qn.Title))
	b.WriteString("  ")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d of %d", m.current+1, len(m.qn.Questions))))
	b.WriteString("\n\n")

	b.WriteString(tui.QuestionStyle.Render(wordwrap.String(q.Text, width)))
	if q.Optional {
		b.WriteString(tui.DimStyle.Render("  (optional)"))
	}
	b.WriteString("\n\n")

	if q.Kind == KindSlider {
		b.WriteString(m.renderSlider(q))
	} else {
		b.WriteString(m.renderOptions(q, width))
	}
	b.WriteString("\n")

	if len(m.missing) > 0 {
		labels := make([]string, 0, len(m.missing))
		for _, id := range m.missing {
			if mq, ok := m.qn.Question(id); ok {
				labels = append(labels, mq.Label())
			}
		}
		b.WriteString(tui.WarningStyle.Render("Still needed: " + strings.Join(labels, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(q))
	return tui.BoxStyle.Width(width + 4).Render(b.String())
}

func (m Model) renderOptions(q Question, width int) string {
	var b strings.Builder
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(tui.DimStyle.Render("  no matching options"))
		b.WriteString("\n")
		return b.String()
	}

	for n, i := range m.visible {
		o := q.Options[i]
		focused := n == m.cursor

		pointer := "  "
		if focused {
			pointer = "❯ "
		}
		mark := "( )"
		if q.Kind == KindMulti {
			mark = "[ ]"
		}
		if m.store.IsSelected(o.ID, q.ID) {
			if q.Kind == KindMulti {
				mark = "[x]"
			} else {
				mark = "(•)"
			}
		}

		label := o.Label
		if o.Recommended {
			label += " (Recommended)"
		}
		switch {
		case focused:
			label = tui.SelectedStyle.Render(label)
		case o.Recommended:
			label = tui.SuccessStyle.Render(label)
		default:
			label = tui.NormalStyle.Render(label)
		}

		prefix := "   "
		if n < 9 {
			prefix = fmt.Sprintf("%d. ", n+1)
		}
		b.WriteString(pointer + prefix + mark + " " + label + "\n")

		if focused && o.Description != "" {
			desc := wordwrap.String(o.Description, width-9)
			for _, line := range strings.Split(desc, "\n") {
				b.WriteString("         " + tui.DimStyle.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) renderSlider(q Question) string {
	v, ok := m.store.SliderValue(q.ID)
	if !ok {
		v = 0.5
	}
	pos := int(math.Round(v * float64(sliderBar-1)))
	bar := tui.ProgressFullStyle.Render(strings.Repeat("━", pos)) +
		tui.SelectedStyle.Render("●") +
		tui.ProgressEmptyStyle.Render(strings.Repeat("─", sliderBar-1-pos))

	value := fmt.Sprintf("%3.0f%%", v*100)
	if !ok {
		value = tui.DimStyle.Render("unset")
	}
	return fmt.Sprintf("  %s %s %s  %s\n",
		tui.DimStyle.Render(q.MinLabel), bar, tui.DimStyle.Render(q.MaxLabel), value)
}

func (m Model) renderFooter(q Question) string {
	hints := []string{"↑↓ navigate", "space select", "enter next", "tab/shift+tab jump"}
	switch {
	case q.Kind == KindSlider:
		hints = []string{"←→ adjust", "enter next", "tab/shift+tab jump"}
	case m.filtering:
		hints = []string{"type to filter", "enter keep", "esc clear"}
	default:
		hints = append(hints, "/ filter")
	}
	footer := tui.DimStyle.Render(strings.Join(hints, " · "))

	footer += " · "
	if m.escPending {
		footer += tui.WarningStyle.Render("Press Esc again to go back to the menu")
	} else {
		footer += tui.DimStyle.Render("Esc: Menu")
	}
	return footer
}
