// Package ui provides small rendering components shared by the deckhand
// views: page indicators and skeleton placeholders.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/berth-dev/deckhand/internal/tui"
)

// Style selects how an Indicator draws the current page.
type Style string

const (
	StyleDots    Style = "dots"
	StyleNumbers Style = "numbers"
	StyleBar     Style = "bar"
)

// ParseStyle validates an indicator style name.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleDots, "":
		return StyleDots, nil
	case StyleNumbers:
		return StyleNumbers, nil
	case StyleBar:
		return StyleBar, nil
	}
	return "", fmt.Errorf("unknown indicator style %q (want dots, numbers or bar)", s)
}

// Indicator renders the position of a pager.
type Indicator struct {
	style Style
	dots  paginator.Model
	bar   progress.Model
	isTTY bool
}

// NewIndicator creates an indicator. width only affects the bar style.
func NewIndicator(style Style, width int) Indicator {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = tui.SelectedStyle.Render("•")
	dots.InactiveDot = tui.DimStyle.Render("○")

	bar := progress.New(
		progress.WithSolidFill(tui.PrimaryColor),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)

	return Indicator{
		style: style,
		dots:  dots,
		bar:   bar,
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Style returns the indicator style.
func (i Indicator) Style() Style { return i.style }

// Render draws page index of count. Nothing is drawn for an empty pager.
func (i Indicator) Render(index, count int) string {
	if count <= 0 {
		return ""
	}
	index = min(max(index, 0), count-1)

	switch i.style {
	case StyleNumbers:
		return tui.DimStyle.Render(fmt.Sprintf("%d / %d", index+1, count))
	case StyleBar:
		return i.bar.ViewAs(Fraction(index, count))
	default:
		p := i.dots
		p.TotalPages = count
		p.Page = index
		return p.View()
	}
}

// Plain renders the indicator without styling, for piped output.
func (i Indicator) Plain(index, count int) string {
	if count <= 0 {
		return ""
	}
	index = min(max(index, 0), count-1)

	switch i.style {
	case StyleNumbers:
		return fmt.Sprintf("%d / %d", index+1, count)
	case StyleBar:
		const width = 20
		filled := int(Fraction(index, count) * width)
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
	default:
		var b strings.Builder
		for n := range count {
			if n == index {
				b.WriteString("●")
			} else {
				b.WriteString("○")
			}
		}
		return b.String()
	}
}

// Auto picks Render on a terminal and Plain otherwise.
func (i Indicator) Auto(index, count int) string {
	if i.isTTY {
		return i.Render(index, count)
	}
	return i.Plain(index, count)
}

// Fraction is the share of the pager reached at index, in (0, 1].
func Fraction(index, count int) float64 {
	if count <= 0 {
		return 0
	}
	index = min(max(index, 0), count-1)
	return float64(index+1) / float64(count)
}
