// Package tutor builds the read-only context digest for the external chat
// tutor and carries the thin HTTP client that talks to it. The digest is a
// pure function of a simulation snapshot; nothing here may touch engine
// state.
package tutor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/sim"
)

// guidance maps each level to its learning objective, surfaced to the
// model so answers stay on-topic for the concept the level teaches.
var guidance = map[level.Number]string{
	1: "Learning Objective: Understand basic market mechanics. The market has a slight upward bias to help you learn. Think about: What happens when you spread your money across multiple stocks vs putting it all in one?",
	2: "Learning Objective: Understand how information affects prices. Think about: When news says a company is doing well, what might happen to its stock price? How can you use this information?",
	3: "Learning Objective: Learn about risk management through diversification. Think about: What happens if you put all your money in one stock and it drops? How can spreading your investments help?",
	4: "Learning Objective: Learn patience and avoid overreacting. Think about: Is every piece of news worth acting on? What happens if you trade too frequently?",
	5: "Learning Objective: Learn to survive market regimes and preserve capital. Think about: What happens during a crash? Which stocks might be safer?",
	6: "Learning Objective: Understand true diversification across sectors. Think about: If all tech stocks drop together, is having 5 different tech stocks really diversified? What other sectors exist?",
	7: "Learning Objective: Advanced risk and strategy. Think about: How do you beat the market average while keeping drawdowns small?",
}

// Summarize renders the system-prompt context digest from a snapshot. The
// output is plain text intended to be appended to the tutor's system
// prompt; it exposes nothing the render surface doesn't already show.
func Summarize(snap sim.Snapshot) string {
	def := snap.Level

	var b strings.Builder
	fmt.Fprintf(&b, "Level %d: %s\n", def.Number, def.Name)
	fmt.Fprintf(&b, "Description: %s\n", def.Description)
	if g, ok := guidance[def.Number]; ok {
		b.WriteString(g)
		b.WriteString("\n")
	}

	b.WriteString("\nWin Conditions: ")
	b.WriteString(describeWinConditions(def.WinConditions))
	b.WriteString("\n")

	names := make([]string, 0, len(def.Instruments))
	for _, id := range def.Instruments {
		names = append(names, string(id))
	}
	fmt.Fprintf(&b, "\nAvailable Stocks: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Has News: %s\n", yesNo(def.ShowNews))
	fmt.Fprintf(&b, "Has ETF: %s\n", yesNo(def.ShowETF))

	fmt.Fprintf(&b, "Current portfolio value: $%s. Day %d of %d.\n",
		snap.PortfolioValue.Round(0), snap.Day, def.MaxDays)

	b.WriteString("Current Allocations: ")
	b.WriteString(describeAllocations(snap))
	b.WriteString("\n")
	fmt.Fprintf(&b, "ETF Allocation: $%s\n", snap.ETFAllocation.Round(0))
	fmt.Fprintf(&b, "Total Trades: %d\n", snap.TradeCount)

	if snap.MaxDrawdown > 0 {
		fmt.Fprintf(&b, "Max Drawdown: %.1f%%\n", snap.MaxDrawdown*100)
	}
	if def.MarketRegime == level.RegimeRandom {
		fmt.Fprintf(&b, "Market Mood: %s\n", strings.ToUpper(string(snap.Mood)))
	}
	if def.WinConditions.MinPortfolioValue > 0 {
		fmt.Fprintf(&b, "Minimum Portfolio Value: $%s\n", snap.MinPortfolioValue.Round(0))
	}

	return b.String()
}

func describeWinConditions(wc level.WinConditions) string {
	var parts []string
	if wc.PortfolioValue > 0 {
		parts = append(parts, fmt.Sprintf("final portfolio >= $%.0f", wc.PortfolioValue))
	}
	if wc.BullPortfolioValue > 0 {
		parts = append(parts, fmt.Sprintf("bull market: final portfolio >= $%.0f", wc.BullPortfolioValue))
	}
	if wc.BearPortfolioValue > 0 {
		parts = append(parts, fmt.Sprintf("bear market: final portfolio >= $%.0f", wc.BearPortfolioValue))
	}
	if wc.OrSurvive {
		parts = append(parts, "or simply finish all days without going bankrupt")
	}
	if wc.MaxDrawdown > 0 {
		parts = append(parts, fmt.Sprintf("max drawdown <= %.0f%%", wc.MaxDrawdown*100))
	}
	if wc.MaxTrades > 0 {
		parts = append(parts, fmt.Sprintf("total trades <= %d", wc.MaxTrades))
	}
	if wc.MinPortfolioValue > 0 {
		parts = append(parts, fmt.Sprintf("never drop below $%.0f", wc.MinPortfolioValue))
	}
	if wc.MaxStockAllocation > 0 {
		parts = append(parts, fmt.Sprintf("no single stock above %.0f%% of portfolio", wc.MaxStockAllocation*100))
	}
	if wc.MaxSectorAllocation > 0 {
		parts = append(parts, fmt.Sprintf("no sector above %.0f%% of allocations", wc.MaxSectorAllocation*100))
	}
	if wc.OutperformETF {
		parts = append(parts, "finish at or above the ETF's value")
	}
	if wc.OutperformETFBy > 0 {
		parts = append(parts, fmt.Sprintf("beat the ETF's return by at least %.1f%%", wc.OutperformETFBy*100))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

func describeAllocations(snap sim.Snapshot) string {
	if len(snap.Allocations) == 0 {
		return "No allocations yet"
	}
	ids := make([]string, 0, len(snap.Allocations))
	for id := range snap.Allocations {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: $%s", id, snap.Allocations[catalog.InstrumentID(id)].Round(0)))
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
