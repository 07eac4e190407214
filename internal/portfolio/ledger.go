// Package portfolio implements the cost-basis ledger: cash, per-instrument
// allocations and the synthetic ETF bundle. All money is decimal, rounded
// to cents at every mutation boundary; float64 appears only as a valuation
// ratio coming from the price engine.
package portfolio

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
)

var (
	// ErrInsufficientCash rejects a purchase that would overdraw cash.
	ErrInsufficientCash = errors.New("portfolio: insufficient cash")
	// ErrConcentrationLimit rejects an allocation violating the level's
	// per-instrument cap.
	ErrConcentrationLimit = errors.New("portfolio: concentration limit exceeded")
	// ErrUnknownInstrument rejects a trade in an instrument the market
	// cannot price.
	ErrUnknownInstrument = errors.New("portfolio: unknown instrument")
)

// epsilon absorbs cents-level rounding noise in solvency and limit checks.
var epsilon = decimal.NewFromFloat(0.01)

// minCounted is the smallest allocation treated as a real position when
// marking to market.
var minCounted = decimal.NewFromFloat(0.01)

// etfMinCounted: the bundle only contributes value above one dollar.
var etfMinCounted = decimal.NewFromInt(1)

// Market supplies today's valuation ratios. Implemented by the simulation
// state, which owns current prices.
type Market interface {
	// Ratio returns currentPrice/basePrice for the instrument.
	Ratio(id catalog.InstrumentID) (float64, bool)
	// ETFRatio is the mean instrument ratio, used when trading the bundle.
	ETFRatio() float64
	// ETFValuationRatio is the ratio used to mark the bundle to market;
	// some levels penalize it relative to ETFRatio.
	ETFValuationRatio() float64
}

// Policy carries the level parameters the ledger enforces on each trade.
type Policy struct {
	// MaxStockShare caps a single instrument's share of total portfolio
	// value (fraction); zero means unchecked.
	MaxStockShare float64
	// Fee is the transaction fee as a fraction of the trade's cash flow;
	// zero means no fee.
	Fee float64
}

// Ledger holds one play-through's money. It is exclusively owned by a
// single simulation and never shared.
type Ledger struct {
	startingCash decimal.Decimal
	cash         decimal.Decimal
	allocations  map[catalog.InstrumentID]decimal.Decimal
	etf          decimal.Decimal
	started      bool
}

// New creates a Ledger holding the starting endowment in cash.
func New(startingCash decimal.Decimal) *Ledger {
	l := &Ledger{startingCash: startingCash}
	l.Reset()
	return l
}

// Reset restores the starting endowment and clears every position.
func (l *Ledger) Reset() {
	l.cash = l.startingCash
	l.allocations = make(map[catalog.InstrumentID]decimal.Decimal)
	l.etf = decimal.Zero
	l.started = false
}

// Start moves the ledger from budgeting to trading: reserved allocations
// are deducted from cash, and subsequent trades settle at market ratios.
func (l *Ledger) Start() {
	l.cash = l.cash.Sub(l.TotalAllocated()).Round(2)
	if l.cash.IsNegative() {
		l.cash = decimal.Zero
	}
	l.started = true
}

// Started reports whether Start has been called since the last Reset.
func (l *Ledger) Started() bool { return l.started }

// Cash returns remaining uninvested cash. Before Start the reservations
// are already spoken for, so they are excluded from the remainder.
func (l *Ledger) Cash() decimal.Decimal {
	if !l.started {
		cash := l.cash.Sub(l.TotalAllocated())
		if cash.IsNegative() {
			return decimal.Zero
		}
		return cash
	}
	return l.cash
}

// StartingCash returns the endowment the ledger was created with.
func (l *Ledger) StartingCash() decimal.Decimal { return l.startingCash }

// Allocation returns the cost-basis amount invested in an instrument.
func (l *Ledger) Allocation(id catalog.InstrumentID) decimal.Decimal {
	return l.allocations[id]
}

// Allocations returns a copy of all non-zero cost-basis allocations.
func (l *Ledger) Allocations() map[catalog.InstrumentID]decimal.Decimal {
	out := make(map[catalog.InstrumentID]decimal.Decimal, len(l.allocations))
	for id, amt := range l.allocations {
		if !amt.IsZero() {
			out[id] = amt
		}
	}
	return out
}

// ETF returns the cost-basis amount invested in the bundle.
func (l *Ledger) ETF() decimal.Decimal { return l.etf }

// TotalAllocated sums all cost-basis allocations including the bundle.
func (l *Ledger) TotalAllocated() decimal.Decimal {
	total := l.etf
	for _, amt := range l.allocations {
		total = total.Add(amt)
	}
	return total.Round(2)
}

// Allocate moves the instrument's cost-basis allocation to target dollars.
// Before Start it is a pure budget reservation against cash; after Start
// the change settles at the current market ratio. A rejected trade leaves
// the ledger untouched.
func (l *Ledger) Allocate(id catalog.InstrumentID, target decimal.Decimal, m Market, p Policy) error {
	target = target.Round(2)
	if target.IsNegative() {
		target = decimal.Zero
	}

	if !l.started {
		return l.reserve(id, target, p)
	}

	ratioF, ok := m.Ratio(id)
	if !ok {
		return ErrUnknownInstrument
	}
	ratio := decimal.NewFromFloat(ratioF)

	old := l.allocations[id]
	diff := target.Sub(old)

	switch {
	case diff.IsPositive():
		cost := diff.Mul(ratio).Round(2)
		cost = l.withFee(cost, p)
		if cost.GreaterThan(l.cash.Add(epsilon)) {
			return ErrInsufficientCash
		}
		if p.MaxStockShare > 0 {
			limit := l.Value(m).Mul(decimal.NewFromFloat(p.MaxStockShare))
			if target.Mul(ratio).GreaterThan(limit.Add(epsilon)) {
				return ErrConcentrationLimit
			}
		}
		l.cash = l.cash.Sub(cost).Round(2)
		if l.cash.IsNegative() {
			l.cash = decimal.Zero
		}
	case diff.IsNegative():
		proceeds := diff.Neg().Mul(ratio).Round(2)
		proceeds = proceeds.Sub(l.fee(proceeds, p))
		l.cash = l.cash.Add(proceeds).Round(2)
	default:
		return nil
	}

	l.allocations[id] = target
	return nil
}

// AllocateETF moves the bundle's cost-basis allocation to target dollars.
// The bundle trades at the mean instrument ratio.
func (l *Ledger) AllocateETF(target decimal.Decimal, m Market, p Policy) error {
	target = target.Round(2)
	if target.IsNegative() {
		target = decimal.Zero
	}

	if !l.started {
		others := l.TotalAllocated().Sub(l.etf)
		if target.Add(others).GreaterThan(l.cash.Add(epsilon)) {
			return ErrInsufficientCash
		}
		l.etf = target
		return nil
	}

	ratio := decimal.NewFromFloat(m.ETFRatio())
	diff := target.Sub(l.etf)

	switch {
	case diff.IsPositive():
		cost := diff.Mul(ratio).Round(2)
		cost = l.withFee(cost, p)
		if cost.GreaterThan(l.cash.Add(epsilon)) {
			return ErrInsufficientCash
		}
		l.cash = l.cash.Sub(cost).Round(2)
		if l.cash.IsNegative() {
			l.cash = decimal.Zero
		}
	case diff.IsNegative():
		proceeds := diff.Neg().Mul(ratio).Round(2)
		proceeds = proceeds.Sub(l.fee(proceeds, p))
		l.cash = l.cash.Add(proceeds).Round(2)
	default:
		return nil
	}

	l.etf = target
	return nil
}

// reserve is the pre-start budgeting path: allocations are earmarked
// against cash without settling.
func (l *Ledger) reserve(id catalog.InstrumentID, target decimal.Decimal, p Policy) error {
	others := l.etf
	for oid, amt := range l.allocations {
		if oid != id {
			others = others.Add(amt)
		}
	}
	if target.Add(others).GreaterThan(l.cash.Add(epsilon)) {
		return ErrInsufficientCash
	}
	if p.MaxStockShare > 0 {
		limit := l.cash.Mul(decimal.NewFromFloat(p.MaxStockShare))
		if target.GreaterThan(limit.Add(epsilon)) {
			return ErrConcentrationLimit
		}
	}
	l.allocations[id] = target
	return nil
}

func (l *Ledger) fee(flow decimal.Decimal, p Policy) decimal.Decimal {
	if p.Fee <= 0 {
		return decimal.Zero
	}
	return flow.Mul(decimal.NewFromFloat(p.Fee)).Round(2)
}

func (l *Ledger) withFee(cost decimal.Decimal, p Policy) decimal.Decimal {
	return cost.Add(l.fee(cost, p))
}

// Value marks the whole portfolio to market: remaining cash plus each
// counted position at today's ratio plus the bundle at its valuation
// ratio. Full precision; callers round for display.
func (l *Ledger) Value(m Market) decimal.Decimal {
	if !l.started {
		// Reservations are still cash held at base prices: the remainder
		// plus the reserved amounts is exactly the endowment.
		return l.cash
	}
	total := l.cash
	for id, amt := range l.allocations {
		if amt.LessThanOrEqual(minCounted) {
			continue
		}
		ratio, ok := m.Ratio(id)
		if !ok || ratio <= 0 {
			continue
		}
		total = total.Add(amt.Mul(decimal.NewFromFloat(ratio)))
	}
	if l.etf.GreaterThan(etfMinCounted) {
		total = total.Add(l.etf.Mul(decimal.NewFromFloat(m.ETFValuationRatio())))
	}
	return total
}

// MaxStockShare returns the largest single-instrument share of total
// portfolio value, as a fraction. Zero when nothing is held.
func (l *Ledger) MaxStockShare(m Market) float64 {
	total := l.Value(m)
	if !total.IsPositive() {
		return 0
	}
	var max decimal.Decimal
	for id, amt := range l.allocations {
		if amt.LessThanOrEqual(minCounted) {
			continue
		}
		ratio, ok := m.Ratio(id)
		if !ok {
			continue
		}
		v := amt.Mul(decimal.NewFromFloat(ratio))
		if v.GreaterThan(max) {
			max = v
		}
	}
	share, _ := max.Div(total).Float64()
	return share
}

// SectorShares returns each sector's share of allocated cost basis (the
// bundle excluded), as fractions of the total allocated amount.
func (l *Ledger) SectorShares(resolve func(catalog.InstrumentID) (catalog.Instrument, bool)) map[string]float64 {
	totals := make(map[string]decimal.Decimal)
	sum := decimal.Zero
	for id, amt := range l.allocations {
		if !amt.IsPositive() {
			continue
		}
		ins, ok := resolve(id)
		if !ok {
			continue
		}
		totals[ins.Sector] = totals[ins.Sector].Add(amt)
		sum = sum.Add(amt)
	}
	out := make(map[string]float64, len(totals))
	if !sum.IsPositive() {
		return out
	}
	for sector, amt := range totals {
		share, _ := amt.Div(sum).Float64()
		out[sector] = share
	}
	return out
}
