package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/news"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/tui/styles"
)

// newsShown caps how many headlines the panel displays.
const newsShown = 6

// NewsPanel displays the most recent headlines.
type NewsPanel struct {
	snap   sim.Snapshot
	width  int
	height int
}

// NewNewsPanel creates a news panel.
func NewNewsPanel() *NewsPanel {
	return &NewsPanel{}
}

// SetSnapshot updates the rendered state.
func (p *NewsPanel) SetSnapshot(snap sim.Snapshot) {
	p.snap = snap
}

// View renders the panel.
func (p *NewsPanel) View() string {
	var content strings.Builder

	log := p.snap.NewsLog
	if len(log) == 0 {
		content.WriteString(styles.MutedStyle.Render("No news yet."))
	}

	start := 0
	if len(log) > newsShown {
		start = len(log) - newsShown
	}
	for i := len(log) - 1; i >= start; i-- {
		ev := log[i]

		style := styles.NewsNeutralStyle
		marker := "·"
		switch ev.Impact {
		case news.ImpactPositive:
			style = styles.NewsPositiveStyle
			marker = "▲"
		case news.ImpactNegative:
			style = styles.NewsNegativeStyle
			marker = "▼"
		}

		content.WriteString(styles.MutedStyle.Render(fmt.Sprintf("Day %-3d", ev.Day)))
		content.WriteString(style.Render(fmt.Sprintf(" %s %s", marker, ev.Headline)))
		content.WriteString("\n")
		affected := make([]string, 0, len(ev.Affected))
		for _, id := range ev.Affected {
			affected = append(affected, string(id))
		}
		detail := ev.Description
		if len(affected) > 0 {
			detail += " (" + strings.Join(affected, ", ") + ")"
		}
		content.WriteString(styles.MutedStyle.Render("       " + detail))
		if i > start {
			content.WriteString("\n")
		}
	}

	title := styles.RenderTitle("📰 News", false)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return styles.PanelStyle.Width(p.width - 2).Render(panel)
}

// SetSize sets the panel dimensions.
func (p *NewsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
