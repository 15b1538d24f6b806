// Package menu implements a type-to-filter list of entries.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/berth-dev/deckhand/internal/tui"
)

// Entry is one menu row.
type Entry struct {
	ID          string
	Title       string
	Description string
}

// SelectedMsg reports the entry chosen with enter.
type SelectedMsg struct {
	Entry Entry
}

// entries adapts a slice for fuzzy.FindFrom, matching on title and
// description together.
type entries []Entry

func (e entries) String(i int) string { return e[i].Title + " " + e[i].Description }
func (e entries) Len() int            { return len(e) }

// Model is the menu view.
type Model struct {
	title   string
	entries entries
	input   textinput.Model
	matches []int
	cursor  int
	width   int
	height  int
}

// New creates a menu over es. The filter input starts focused.
func New(title string, es []Entry) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := Model{title: title, entries: es, input: ti}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Matches returns the visible entries, best match first.
func (m Model) Matches() []Entry {
	out := make([]Entry, len(m.matches))
	for i, idx := range m.matches {
		out[i] = m.entries[idx]
	}
	return out
}

// Selected returns the highlighted entry.
func (m Model) Selected() (Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return Entry{}, false
	}
	return m.entries[m.matches[m.cursor]], true
}

// Filter returns the current filter text.
func (m Model) Filter() string { return m.input.Value() }

// Update handles messages for the menu.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp, tea.KeyShiftTab:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyTab:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			e, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectedMsg{Entry: e} }
		case tea.KeyEsc:
			m.input.SetValue("")
			m.refilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *Model) refilter() {
	pattern := strings.TrimSpace(m.input.Value())
	m.matches = make([]int, 0, len(m.entries))
	if pattern == "" {
		for i := range m.entries {
			m.matches = append(m.matches, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(pattern, m.entries) {
			m.matches = append(m.matches, match.Index)
		}
	}
	m.cursor = 0
}

// View renders the menu.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(tui.DimStyle.Render("  nothing matches"))
		b.WriteString("\n")
	}
	for i, idx := range m.matches {
		e := m.entries[idx]
		if i == m.cursor {
			b.WriteString("❯ " + tui.SelectedStyle.Render(e.Title))
		} else {
			b.WriteString("  " + tui.NormalStyle.Render(e.Title))
		}
		if e.Description != "" {
			b.WriteString("  " + tui.DimStyle.Render(e.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("↑↓ navigate · enter open · esc clear · ctrl+c quit"))
	return tui.BoxStyle.Render(b.String())
}
