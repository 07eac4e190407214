// Package sim owns the per-play-through simulation state and the single
// day-step transition. One Simulation is exclusively owned by one
// play-through; the catalog and level registry it reads are shared,
// read-only reference data.
package sim

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/news"
	"github.com/fintutor/marketsim/internal/portfolio"
	"github.com/fintutor/marketsim/internal/pricing"
)

var (
	// ErrNotRunning rejects a day advance outside the Running phase.
	ErrNotRunning = errors.New("sim: simulation not running")
	// ErrSimulationOver rejects a day advance past the level horizon.
	ErrSimulationOver = errors.New("sim: all days elapsed")
	// ErrAlreadyStarted rejects a second Start without a Reset.
	ErrAlreadyStarted = errors.New("sim: simulation already started")
	// ErrNothingAllocated rejects starting with an empty portfolio.
	ErrNothingAllocated = errors.New("sim: nothing allocated")
	// ErrETFUnavailable rejects bundle trades on levels without the ETF.
	ErrETFUnavailable = errors.New("sim: etf not available on this level")
)

// Phase is the play-through lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// HistoryPoint is one day's marked-to-market portfolio value, rounded to
// whole dollars for display and evaluation.
type HistoryPoint struct {
	Day   int
	Value decimal.Decimal
}

// Simulation is the mutable state of one play-through plus the pure
// engines that advance it. All mutation goes through Allocate,
// AllocateETF, Start, AdvanceDay and Reset; each call is atomic with
// respect to the state.
type Simulation struct {
	id          string
	def         level.Definition
	instruments []catalog.Instrument
	byID        map[catalog.InstrumentID]catalog.Instrument

	ledger  *portfolio.Ledger
	gen     *news.Generator
	evolver *pricing.Evolver
	rng     *rand.Rand

	phase Phase
	day   int
	mood  level.Mood

	current  map[catalog.InstrumentID]float64
	previous map[catalog.InstrumentID]float64

	newsLog []news.Event
	history []HistoryPoint

	tradeCount      int
	dailyTradeCount int

	peak        decimal.Decimal
	maxDrawdown float64
	minValue    decimal.Decimal
}

// New creates a Simulation for one level with the given starting cash.
// All stochastic draws (news selection, price noise, mood sampling) come
// from rng, so a seeded source makes the whole play-through reproducible.
func New(def level.Definition, cat *catalog.Catalog, startingCash decimal.Decimal, rng *rand.Rand) *Simulation {
	instruments := cat.Select(def.Instruments)
	byID := make(map[catalog.InstrumentID]catalog.Instrument, len(instruments))
	for _, ins := range instruments {
		byID[ins.ID] = ins
	}

	s := &Simulation{
		def:         def,
		instruments: instruments,
		byID:        byID,
		ledger:      portfolio.New(startingCash),
		gen:         news.NewGenerator(rng),
		evolver:     pricing.NewEvolver(rng),
		rng:         rng,
	}
	s.Reset()
	return s
}

// ID returns the play-through session id.
func (s *Simulation) ID() string { return s.id }

// Level returns the level definition the simulation runs under.
func (s *Simulation) Level() level.Definition { return s.def }

// Phase returns the current lifecycle phase.
func (s *Simulation) Phase() Phase { return s.phase }

// Day returns the current day counter.
func (s *Simulation) Day() int { return s.day }

// Mood returns the market regime for this play-through.
func (s *Simulation) Mood() level.Mood { return s.mood }

// Instrument resolves a level instrument by id.
func (s *Simulation) Instrument(id catalog.InstrumentID) (catalog.Instrument, bool) {
	ins, ok := s.byID[id]
	return ins, ok
}

// Instruments returns the level's instruments in catalog order.
func (s *Simulation) Instruments() []catalog.Instrument { return s.instruments }

// Reset restores the starting endowment, base prices and day zero. Any
// phase transitions back to NotStarted, and a fresh session id is issued
// so retries are distinguishable in logs.
func (s *Simulation) Reset() {
	s.id = uuid.NewString()
	s.phase = PhaseNotStarted
	s.day = 0
	s.mood = level.MoodBull
	s.ledger.Reset()
	s.newsLog = nil
	s.history = nil
	s.tradeCount = 0
	s.dailyTradeCount = 0
	s.peak = decimal.Zero
	s.maxDrawdown = 0
	s.minValue = decimal.Zero

	s.current = make(map[catalog.InstrumentID]float64, len(s.instruments))
	s.previous = make(map[catalog.InstrumentID]float64, len(s.instruments))
	for _, ins := range s.instruments {
		s.current[ins.ID] = ins.BasePrice
		s.previous[ins.ID] = ins.BasePrice
	}
}

// policy builds the ledger policy from the level definition.
func (s *Simulation) policy() portfolio.Policy {
	return portfolio.Policy{
		MaxStockShare: s.def.WinConditions.MaxStockAllocation,
		Fee:           s.def.TransactionFee,
	}
}

// tradeThreshold: changes at or below a cent are slider jitter, not trades.
var tradeThreshold = decimal.NewFromFloat(0.01)

// Allocate moves an instrument's cost-basis allocation to target dollars.
// Rejections (insufficient cash, concentration limit) leave state
// unchanged and are reported as errors the caller may ignore.
func (s *Simulation) Allocate(id catalog.InstrumentID, target decimal.Decimal) error {
	if s.phase == PhaseCompleted {
		return ErrNotRunning
	}
	if _, ok := s.byID[id]; !ok {
		return portfolio.ErrUnknownInstrument
	}

	old := s.ledger.Allocation(id)
	if err := s.ledger.Allocate(id, target, s, s.policy()); err != nil {
		return err
	}
	s.countTrade(old, s.ledger.Allocation(id))
	return nil
}

// AllocateETF moves the bundle allocation to target dollars.
func (s *Simulation) AllocateETF(target decimal.Decimal) error {
	if s.phase == PhaseCompleted {
		return ErrNotRunning
	}
	if !s.def.ShowETF {
		return ErrETFUnavailable
	}

	old := s.ledger.ETF()
	if err := s.ledger.AllocateETF(target, s, s.policy()); err != nil {
		return err
	}
	s.countTrade(old, s.ledger.ETF())
	return nil
}

func (s *Simulation) countTrade(old, new decimal.Decimal) {
	if new.Sub(old).Abs().GreaterThan(tradeThreshold) {
		s.tradeCount++
		s.dailyTradeCount++
	}
}

// Start transitions NotStarted -> Running: samples the market mood for
// regime levels, settles the reserved allocations and records the day-0
// history point.
func (s *Simulation) Start() error {
	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	if !s.ledger.TotalAllocated().IsPositive() {
		return ErrNothingAllocated
	}

	if s.def.MarketRegime == level.RegimeRandom {
		moods := []level.Mood{level.MoodBull, level.MoodBear, level.MoodSideways}
		s.mood = moods[s.rng.Intn(len(moods))]
	}

	s.ledger.Start()
	s.phase = PhaseRunning
	s.day = 0
	s.tradeCount = 0
	s.dailyTradeCount = 0

	value := s.Value().Round(0)
	s.history = []HistoryPoint{{Day: 0, Value: value}}
	s.peak = value
	s.minValue = value
	return nil
}

// AdvanceDay runs one simulation day: news, then prices, then valuation
// and metrics, then the history append. The whole step is a single
// synchronous transition; nothing else may mutate state while it runs.
func (s *Simulation) AdvanceDay() error {
	if s.phase != PhaseRunning {
		return ErrNotRunning
	}
	if s.day >= s.def.MaxDays {
		return ErrSimulationOver
	}

	s.day++
	s.dailyTradeCount = 0

	// News first so pricing can read the same day's headline.
	ev := s.gen.Generate(s.def, s.instruments, s.day)
	if ev != nil {
		s.newsLog = append(s.newsLog, *ev)
	}

	next := s.evolver.Evolve(s.current, s.instruments, s.def, s.mood, ev)
	s.previous = s.current
	s.current = next

	value := s.Value().Round(0)

	// Extrema are tracked for every level; the evaluator only consults
	// them when the level's win conditions say so.
	if value.LessThan(s.minValue) {
		s.minValue = value
	}
	if value.GreaterThan(s.peak) {
		s.peak = value
	}
	if s.peak.IsPositive() {
		dd, _ := s.peak.Sub(value).Div(s.peak).Float64()
		if dd > s.maxDrawdown {
			s.maxDrawdown = dd
		}
	}

	s.history = append(s.history, HistoryPoint{Day: s.day, Value: value})

	if s.day >= s.def.MaxDays {
		s.phase = PhaseCompleted
	}
	return nil
}

// Value marks the portfolio to market at full precision.
func (s *Simulation) Value() decimal.Decimal {
	return s.ledger.Value(s)
}

// Cash returns remaining uninvested cash.
func (s *Simulation) Cash() decimal.Decimal { return s.ledger.Cash() }

// TradeCount returns the total number of accepted trades.
func (s *Simulation) TradeCount() int { return s.tradeCount }

// Ratio implements portfolio.Market.
func (s *Simulation) Ratio(id catalog.InstrumentID) (float64, bool) {
	ins, ok := s.byID[id]
	if !ok || ins.BasePrice <= 0 {
		return 0, false
	}
	price, ok := s.current[id]
	if !ok || price <= 0 {
		return 0, false
	}
	return price / ins.BasePrice, true
}

// ETFRatio implements portfolio.Market: the arithmetic mean of every
// level instrument's price ratio, whether or not the player holds it.
func (s *Simulation) ETFRatio() float64 {
	if len(s.instruments) == 0 {
		return 1
	}
	var sum float64
	for _, ins := range s.instruments {
		if ratio, ok := s.Ratio(ins.ID); ok {
			sum += ratio
		}
	}
	return sum / float64(len(s.instruments))
}

// ETFValuationRatio implements portfolio.Market: the mean ratio with the
// level's bundle penalty applied, if any.
func (s *Simulation) ETFValuationRatio() float64 {
	ratio := s.ETFRatio()
	if adj := s.def.ETFValuation; !adj.IsZero() {
		ratio = ratio*adj.Scale + adj.Offset
	}
	return ratio
}

// etfReturn is the bundle's own return over the horizon: the mean
// per-instrument price return, independent of the player's holdings and
// of any valuation penalty.
func (s *Simulation) etfReturn() float64 {
	if len(s.instruments) == 0 {
		return 0
	}
	var sum float64
	for _, ins := range s.instruments {
		if ins.BasePrice <= 0 {
			continue
		}
		sum += (s.current[ins.ID] - ins.BasePrice) / ins.BasePrice
	}
	return sum / float64(len(s.instruments))
}
