package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every component.
const (
	PrimaryColor   = "#7C3AED" // Purple
	SecondaryColor = "#10B981" // Green
	WarningColor   = "#F59E0B" // Amber
	ErrorColor     = "#EF4444" // Red
	DimColor       = "#6B7280" // Gray
	SurfaceColor   = "#1F2937"
	MutedColor     = "#374151"
	TextColor      = "#E5E7EB"
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(PrimaryColor)).
			Padding(1, 2)

	// CardStyle is the unselected carousel card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(MutedColor)).
			Padding(0, 1)

	// ActiveCardStyle highlights the current carousel card.
	ActiveCardStyle = CardStyle.
			BorderForeground(lipgloss.Color(PrimaryColor))

	// SheetStyle draws the bottom sheet surface.
	SheetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(lipgloss.Color(PrimaryColor)).
			Padding(0, 2)

	// GrabberStyle draws the sheet handle.
	GrabberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(DimColor))

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(PrimaryColor)).
			Bold(true)

	// QuestionStyle renders questionnaire prompts.
	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TextColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(PrimaryColor)).
			Bold(true)

	// NormalStyle renders regular list items.
	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(DimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(SecondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ErrorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(WarningColor))

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(SurfaceColor)).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	// ToastStyle is the base toast surface; the level picks the border.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	// SkeletonStyle is the resting colour of a skeleton block.
	SkeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(MutedColor))

	// ShimmerStyle is the highlight sweeping across a skeleton block.
	ShimmerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4B5563"))

	// ProgressFullStyle renders filled progress indicators.
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(SecondaryColor))

	// ProgressEmptyStyle renders empty progress indicators.
	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(DimColor))
)

// LevelColor maps a toast level to its border colour.
func LevelColor(level string) lipgloss.Color {
	switch level {
	case "success":
		return lipgloss.Color(SecondaryColor)
	case "warning":
		return lipgloss.Color(WarningColor)
	case "error":
		return lipgloss.Color(ErrorColor)
	default:
		return lipgloss.Color(PrimaryColor)
	}
}
