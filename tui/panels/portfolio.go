package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/tui/styles"
)

// sparkline characters, lowest to highest.
var sparks = []rune("▁▂▃▄▅▆▇█")

// PortfolioPanel displays the portfolio value history and risk metrics.
type PortfolioPanel struct {
	snap   sim.Snapshot
	width  int
	height int
}

// NewPortfolioPanel creates a portfolio panel.
func NewPortfolioPanel() *PortfolioPanel {
	return &PortfolioPanel{}
}

// SetSnapshot updates the rendered state.
func (p *PortfolioPanel) SetSnapshot(snap sim.Snapshot) {
	p.snap = snap
}

// View renders the panel.
func (p *PortfolioPanel) View() string {
	var content strings.Builder

	value := p.snap.PortfolioValue.Round(0)
	cash := p.snap.Cash.Round(0)

	content.WriteString(fmt.Sprintf("Value %s   Cash %s   Day %d/%d\n",
		styles.BadgeStyle.Render("$"+value.String()),
		styles.SecondaryStyle.Render("$"+cash.String()),
		p.snap.Day, p.snap.Level.MaxDays))

	content.WriteString(sparkline(p.snap.History, 40))
	content.WriteString("\n")

	metrics := []string{fmt.Sprintf("Trades %d", p.snap.TradeCount)}
	if p.snap.Level.WinConditions.MaxDrawdown > 0 {
		metrics = append(metrics, fmt.Sprintf("Drawdown %.1f%%", p.snap.MaxDrawdown*100))
	}
	if p.snap.Level.WinConditions.MinPortfolioValue > 0 {
		metrics = append(metrics, "Low $"+p.snap.MinPortfolioValue.Round(0).String())
	}
	if p.snap.Level.MarketRegime == level.RegimeRandom && p.snap.Phase != sim.PhaseNotStarted {
		metrics = append(metrics, "Mood "+strings.ToUpper(string(p.snap.Mood)))
	}
	content.WriteString(styles.SecondaryStyle.Render(strings.Join(metrics, "   ")))

	title := styles.RenderTitle("📊 Portfolio", false)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return styles.PanelStyle.Width(p.width - 2).Render(panel)
}

// sparkline renders the history as a fixed-width run of block characters.
func sparkline(history []sim.HistoryPoint, width int) string {
	if len(history) == 0 {
		return styles.MutedStyle.Render("(not started)")
	}

	points := history
	if len(points) > width {
		points = points[len(points)-width:]
	}

	min, max := points[0].Value, points[0].Value
	for _, pt := range points[1:] {
		if pt.Value.LessThan(min) {
			min = pt.Value
		}
		if pt.Value.GreaterThan(max) {
			max = pt.Value
		}
	}

	span := max.Sub(min)
	var b strings.Builder
	for _, pt := range points {
		idx := 0
		if span.IsPositive() {
			frac, _ := pt.Value.Sub(min).Div(span).Float64()
			idx = int(frac * float64(len(sparks)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(sparks) {
				idx = len(sparks) - 1
			}
		}
		b.WriteRune(sparks[idx])
	}

	line := b.String()
	last := points[len(points)-1].Value
	first := points[0].Value
	if last.GreaterThanOrEqual(first) {
		return styles.UpStyle.Render(line)
	}
	return styles.DownStyle.Render(line)
}

// SetSize sets the panel dimensions.
func (p *PortfolioPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
