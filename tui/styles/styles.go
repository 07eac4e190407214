package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	UpColor      = lipgloss.Color("#10B981") // Green
	DownColor    = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))
)

// Text styles
var (
	UpStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(UpColor)

	DownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DownColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	// News impact styles
	NewsPositiveStyle = lipgloss.NewStyle().
				Foreground(UpColor)

	NewsNegativeStyle = lipgloss.NewStyle().
				Foreground(DownColor)

	NewsNeutralStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)

	// Win/lose banners
	WinStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(UpColor)

	LoseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DownColor)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)
)

// RenderTitle renders a panel title bar.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}
