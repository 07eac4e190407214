package sim

import (
	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/news"
)

// Snapshot is the read-only render surface: a deep copy of everything the
// UI and the tutor digest need. Mutating a Snapshot never touches the
// simulation.
type Snapshot struct {
	ID    string
	Level level.Definition
	Phase Phase
	Day   int
	Mood  level.Mood

	Cash          decimal.Decimal
	Allocations   map[catalog.InstrumentID]decimal.Decimal
	ETFAllocation decimal.Decimal

	CurrentPrices  map[catalog.InstrumentID]float64
	PreviousPrices map[catalog.InstrumentID]float64

	NewsLog []news.Event
	History []HistoryPoint

	PortfolioValue    decimal.Decimal
	PortfolioPeak     decimal.Decimal
	MaxDrawdown       float64
	MinPortfolioValue decimal.Decimal

	TradeCount      int
	DailyTradeCount int
}

// Snapshot captures the current state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		ID:    s.id,
		Level: s.def,
		Phase: s.phase,
		Day:   s.day,
		Mood:  s.mood,

		Cash:          s.ledger.Cash(),
		Allocations:   s.ledger.Allocations(),
		ETFAllocation: s.ledger.ETF(),

		CurrentPrices:  make(map[catalog.InstrumentID]float64, len(s.current)),
		PreviousPrices: make(map[catalog.InstrumentID]float64, len(s.previous)),

		PortfolioValue:    s.Value(),
		PortfolioPeak:     s.peak,
		MaxDrawdown:       s.maxDrawdown,
		MinPortfolioValue: s.minValue,

		TradeCount:      s.tradeCount,
		DailyTradeCount: s.dailyTradeCount,
	}

	for id, p := range s.current {
		snap.CurrentPrices[id] = p
	}
	for id, p := range s.previous {
		snap.PreviousPrices[id] = p
	}
	snap.NewsLog = append(snap.NewsLog, s.newsLog...)
	snap.History = append(snap.History, s.history...)

	return snap
}

// LatestNews returns the most recent headline, or nil if none yet.
func (sn Snapshot) LatestNews() *news.Event {
	if len(sn.NewsLog) == 0 {
		return nil
	}
	ev := sn.NewsLog[len(sn.NewsLog)-1]
	return &ev
}
