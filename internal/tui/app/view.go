package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/berth-dev/deckhand/internal/carousel"
	"github.com/berth-dev/deckhand/internal/tui"
)

const sheetContent = `Standard delivery arrives in three to five working days. Express delivery arrives the next working day when ordered before 2pm.

Drag the grabber up for more detail, or press up and down to move between detents. Clicking the grabber cycles through them.

Returns are free within thirty days. Items must be unused and in their original packaging. Refunds are issued to the original payment method within five days of the return being received.

Press esc to close the sheet.`

func galleryItems() []carousel.Item {
	return []carousel.Item{
		{Title: "Harbour", Body: "Drag the strip with the mouse. A quick flick moves one page."},
		{Title: "Lighthouse", Body: "A slow release snaps to the nearest page."},
		{Title: "Tugboat", Body: "Arrow keys page one at a time. Home and end jump."},
		{Title: "Buoy", Body: "The wheel pages too."},
		{Title: "Anchor", Body: "The last page rests against the trailing edge."},
	}
}

func featuredItems() []carousel.Item {
	return []carousel.Item{
		{Title: "New arrivals", Body: "Pages advance on a timer and wrap around."},
		{Title: "Weekend sale", Body: "Dragging pauses the timer until you let go."},
		{Title: "Free shipping", Body: "Press a to stop or restart auto-advance."},
	}
}

// featuredCard draws promotional cards with a highlighted banner line.
func featuredCard(it carousel.Item, width int, active bool) string {
	border := lipgloss.Color(tui.MutedColor)
	if active {
		border = lipgloss.Color(tui.WarningColor)
	}
	inner := max(width-4, 1)
	banner := tui.WarningStyle.Bold(true).Render(ansi.Truncate(strings.ToUpper(it.Title), inner, "…"))
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Height(5).
		MaxHeight(7).
		Render(banner + "\n\n" + it.Body)
}

// View renders the current screen with the toast overlay and status bar.
func (a *App) View() string {
	var content string
	var needsCentering bool

	switch a.model.Screen {
	case tui.ScreenMenu:
		content = a.menuView.View()
		needsCentering = true
	case tui.ScreenCarousel:
		content = a.carouselView.View()
	case tui.ScreenFeatured:
		content = a.featuredView.View()
	case tui.ScreenSheet:
		content = a.sheetView.View()
	case tui.ScreenQuestionnaire:
		content = a.questionnaireView.View()
	case tui.ScreenRecommendation:
		content = a.renderRecommendation()
		needsCentering = a.recommendation.Prompt == ""
	case tui.ScreenToasts:
		content = a.renderToastHelp()
		needsCentering = true
	case tui.ScreenSkeleton:
		content = a.skeletonView.View()
		needsCentering = true
	default:
		content = "Unknown screen"
	}

	bodyHeight := max(a.model.Height-1, 1)
	if needsCentering {
		content = lipgloss.Place(a.model.Width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	}
	content = a.overlayToast(content)

	return lipgloss.JoinVertical(lipgloss.Left, content, a.renderStatusBar())
}

// overlayToast draws the visible toast over the top right corner.
func (a *App) overlayToast(content string) string {
	t := a.toasts.View()
	if t == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, tl := range strings.Split(t, "\n") {
		for len(lines) <= i {
			lines = append(lines, "")
		}
		tw := ansi.StringWidth(tl)
		left := max(a.model.Width-tw-1, 0)
		base := lines[i]
		if w := ansi.StringWidth(base); w < left {
			base += strings.Repeat(" ", left-w)
		}
		lines[i] = ansi.Truncate(base, left, "") + tl
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatusBar() string {
	left := a.model.Screen.String()
	if pos, ok := a.carouselPosition(); ok {
		left += fmt.Sprintf("  card %d/%d", pos.Index+1, pos.Total)
	}
	if a.model.SessionID != "" {
		left += "  session " + shortID(a.model.SessionID)
	}

	right := "esc back  ctrl+c quit"
	if a.model.CtrlCPending {
		right = "Press Ctrl+C again to exit"
	}

	gap := max(a.model.Width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return tui.StatusBarStyle.Width(a.model.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// carouselPosition is the last reported position of the carousel on
// screen.
func (a *App) carouselPosition() (carousel.IndexChangedMsg, bool) {
	var id int
	switch a.model.Screen {
	case tui.ScreenCarousel:
		id = a.carouselView.ID()
	case tui.ScreenFeatured:
		id = a.featuredView.ID()
	default:
		return carousel.IndexChangedMsg{}, false
	}
	pos, ok := a.positions[id]
	return pos, ok
}

func (a *App) renderRecommendation() string {
	if a.recommendation.Prompt == "" {
		if a.recommendation.Err != nil {
			return tui.ErrorStyle.Render(a.recommendation.Err.Error())
		}
		return a.skeletonView.View()
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Recommendation prompt"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(a.recommendation.System))
	b.WriteString("\n")
	b.WriteString(a.recommendation.Rendered)
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("e export answers  enter/esc back to menu"))
	return b.String()
}

func (a *App) renderToastHelp() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Toasts"))
	b.WriteString("\n\n")
	b.WriteString("t  show a toast\n")
	b.WriteString("b  queue a burst of three\n")
	b.WriteString("d  dismiss the current toast\n\n")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d waiting  ·  shown for %s", a.toasts.Pending(), a.model.Cfg.ToastDuration())))
	return tui.BoxStyle.Render(b.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
