// Package toast shows transient notifications one at a time.
//
// A Controller is owned by the root model and handed to whatever needs to
// raise a toast. Components that do not hold the controller can return a
// tui.ToastMsg instead; the root forwards it through Update.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/berth-dev/deckhand/internal/tui"
)

// DefaultDuration is used when the controller is built with a zero duration.
const DefaultDuration = 3 * time.Second

const maxWidth = 48

// Level sets the toast's accent colour.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one queued notification.
type Toast struct {
	ID       int
	Text     string
	Level    Level
	Duration time.Duration
}

// ExpireMsg ends the toast with the matching id. Ticks for toasts that were
// already dismissed are ignored.
type ExpireMsg struct {
	ID int
}

// Controller queues toasts FIFO and shows the head of the queue.
type Controller struct {
	duration time.Duration
	queue    []Toast
	visible  bool
	nextID   int
}

// NewController creates a controller whose toasts last d.
func NewController(d time.Duration) *Controller {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Controller{duration: d}
}

// SetDuration changes the duration for toasts shown from now on.
func (c *Controller) SetDuration(d time.Duration) {
	if d > 0 {
		c.duration = d
	}
}

// Show enqueues a toast with the controller's duration.
func (c *Controller) Show(text string, level Level) tea.Cmd {
	return c.ShowFor(text, level, c.duration)
}

// ShowFor enqueues a toast that stays up for d once visible. The returned
// command schedules its expiry when it becomes visible immediately.
func (c *Controller) ShowFor(text string, level Level, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = c.duration
	}
	if level == "" {
		level = LevelInfo
	}
	c.nextID++
	c.queue = append(c.queue, Toast{ID: c.nextID, Text: text, Level: level, Duration: d})
	if c.visible {
		return nil
	}
	return c.activate()
}

// activate shows the head of the queue.
func (c *Controller) activate() tea.Cmd {
	if len(c.queue) == 0 {
		c.visible = false
		return nil
	}
	c.visible = true
	head := c.queue[0]
	return tea.Tick(head.Duration, func(time.Time) tea.Msg {
		return ExpireMsg{ID: head.ID}
	})
}

// Dismiss hides the visible toast and shows the next one.
func (c *Controller) Dismiss() tea.Cmd {
	if !c.visible {
		return nil
	}
	c.queue = c.queue[1:]
	return c.activate()
}

// Current returns the visible toast.
func (c *Controller) Current() (Toast, bool) {
	if !c.visible {
		return Toast{}, false
	}
	return c.queue[0], true
}

// Pending is the number of toasts waiting behind the visible one.
func (c *Controller) Pending() int {
	if !c.visible {
		return 0
	}
	return len(c.queue) - 1
}

// Update handles expiry ticks and toast requests.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ExpireMsg:
		if cur, ok := c.Current(); ok && cur.ID == msg.ID {
			return c.Dismiss()
		}
	case tui.ToastMsg:
		return c.Show(msg.Text, Level(msg.Level))
	}
	return nil
}

// View renders the visible toast, or nothing.
func (c *Controller) View() string {
	cur, ok := c.Current()
	if !ok {
		return ""
	}
	text := wordwrap.String(strings.TrimSpace(cur.Text), maxWidth)
	if n := c.Pending(); n > 0 {
		text += "\n" + tui.DimStyle.Render(strings.Repeat("·", min(n, 5)))
	}
	return tui.ToastStyle.
		BorderForeground(tui.LevelColor(string(cur.Level))).
		Render(text)
}
