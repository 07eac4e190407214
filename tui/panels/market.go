package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/tui/styles"
)

// MarketPanel displays current prices and daily moves for the level's
// instruments.
type MarketPanel struct {
	instruments []catalog.Instrument
	snap        sim.Snapshot
	width       int
	height      int
}

// NewMarketPanel creates a market panel.
func NewMarketPanel(instruments []catalog.Instrument) *MarketPanel {
	return &MarketPanel{instruments: instruments}
}

// SetInstruments replaces the instrument list (on level change).
func (p *MarketPanel) SetInstruments(instruments []catalog.Instrument) {
	p.instruments = instruments
}

// SetSnapshot updates the rendered state.
func (p *MarketPanel) SetSnapshot(snap sim.Snapshot) {
	p.snap = snap
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-6s %-18s %10s %9s %10s", "Ticker", "Name", "Price", "Change", "Invested")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, ins := range p.instruments {
		price := p.snap.CurrentPrices[ins.ID]
		prev := p.snap.PreviousPrices[ins.ID]

		change := price - prev
		changeStr := fmt.Sprintf("%+.2f", change)
		changeStyle := styles.MutedStyle
		switch {
		case change > 0:
			changeStyle = styles.UpStyle
		case change < 0:
			changeStyle = styles.DownStyle
		}

		invested := "-"
		if amt, ok := p.snap.Allocations[ins.ID]; ok && amt.IsPositive() {
			invested = "$" + amt.Round(0).String()
		}

		row := fmt.Sprintf("%-6s %-18s %10.2f %9s %10s",
			ins.Ticker, ins.Name, price, changeStyle.Render(changeStr), invested)
		content.WriteString(styles.RowStyle.Render(row))
		if i < len(p.instruments)-1 {
			content.WriteString("\n")
		}
	}

	if p.snap.Level.ShowETF {
		content.WriteString("\n")
		etf := "-"
		if p.snap.ETFAllocation.IsPositive() {
			etf = "$" + p.snap.ETFAllocation.Round(0).String()
		}
		row := fmt.Sprintf("%-6s %-18s %10s %9s %10s", "ETF", "Diversified Bundle", "", "", etf)
		content.WriteString(styles.SecondaryStyle.Render(row))
	}

	title := styles.RenderTitle("📈 Market", false)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return styles.PanelStyle.Width(p.width - 2).Render(panel)
}

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
