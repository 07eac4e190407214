package level

import "github.com/fintutor/marketsim/internal/catalog"

// Number identifies a level.
type Number int

// Mood is the market regime fixed for one play-through.
type Mood string

const (
	MoodBull     Mood = "bull"
	MoodBear     Mood = "bear"
	MoodSideways Mood = "sideways"
)

// Regime controls how the market mood is chosen when a simulation starts.
type Regime string

const (
	// RegimeFixed keeps the default bull mood.
	RegimeFixed Regime = ""
	// RegimeRandom samples bull/bear/sideways uniformly at start.
	RegimeRandom Regime = "random"
)

// Bias is a uniform random nudge in [Min, Max], applied once per day.
type Bias struct {
	Min float64
	Max float64
}

// IsZero reports whether the bias is unset.
func (b Bias) IsZero() bool { return b.Min == 0 && b.Max == 0 }

// Drift is the deterministic-per-level price drift policy. All fields are
// optional; a zero Drift means pure noise.
type Drift struct {
	// Constant applies to every instrument regardless of conditions.
	Constant Bias
	// ByMood applies the bias matching the play-through's market mood.
	ByMood map[Mood]Bias
	// BySector applies the bias for the instrument's sector. Default, if
	// present, covers sectors not listed explicitly.
	BySector map[string]Bias
	// SectorDefault is applied to sectors absent from BySector.
	SectorDefault Bias
}

// NewsPolicy damps or skews news impact for a level.
type NewsPolicy struct {
	// BearPositiveScale scales positive news impact while the mood is
	// bear. Zero means no damping.
	BearPositiveScale float64
	// SectorPositive rescales positive news impact for instruments in the
	// named sector: impact = impact*Scale + Offset.
	SectorPositive map[string]ImpactAdjust
}

// ImpactAdjust is a linear adjustment of a news impact magnitude.
type ImpactAdjust struct {
	Scale  float64
	Offset float64
}

// ETFValuation skews the bundle's mark-to-market ratio for levels where
// the bundle is designed to underperform: ratio = ratio*Scale + Offset.
// A zero value means the plain mean ratio.
type ETFValuation struct {
	Scale  float64
	Offset float64
}

// IsZero reports whether the valuation adjustment is unset.
func (e ETFValuation) IsZero() bool { return e.Scale == 0 && e.Offset == 0 }

// WinConditions is the structured threshold set for one level. Zero-valued
// fields are not checked.
type WinConditions struct {
	// PortfolioValue is the absolute final-value target in dollars.
	PortfolioValue float64
	// OrSurvive passes the level if the horizon is reached with value > 0,
	// regardless of the value target.
	OrSurvive bool
	// BullPortfolioValue / BearPortfolioValue replace PortfolioValue when
	// set: the target depends on the sampled mood (sideways uses the bull
	// target, matching the original game).
	BullPortfolioValue float64
	BearPortfolioValue float64
	// MaxDrawdown is the fractional drawdown ceiling (e.g. 0.10).
	MaxDrawdown float64
	// MaxTrades is the total trade-count ceiling.
	MaxTrades int
	// MinPortfolioValue is a floor the value must never breach.
	MinPortfolioValue float64
	// MaxStockAllocation caps any single instrument's share of total
	// portfolio value (fraction, e.g. 0.40).
	MaxStockAllocation float64
	// MaxSectorAllocation caps any sector's share of allocated cost basis.
	MaxSectorAllocation float64
	// OutperformETF requires final value >= the ETF's own value over the
	// same horizon.
	OutperformETF bool
	// OutperformETFBy requires the portfolio return to beat the ETF return
	// by at least this margin (fraction, e.g. 0.015).
	OutperformETFBy float64
}

// Definition is an immutable level configuration.
type Definition struct {
	Number      Number
	Name        string
	Description string

	Instruments []catalog.InstrumentID
	MaxDays     int

	VolatilityMultiplier float64
	ShowNews             bool
	ShowETF              bool

	MarketRegime   Regime
	TransactionFee float64 // fraction of trade cash flow, 0 = none

	Drift        Drift
	News         NewsPolicy
	ETFValuation ETFValuation

	WinConditions WinConditions
}

// Registry is the read-only set of level definitions.
type Registry struct {
	byNumber map[Number]Definition
	order    []Number
}

// NewRegistry builds a Registry preserving definition order.
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{byNumber: make(map[Number]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := r.byNumber[d.Number]; dup {
			continue
		}
		r.byNumber[d.Number] = d
		r.order = append(r.order, d.Number)
	}
	return r
}

// Default returns the registry with the standard seven levels.
func Default() *Registry {
	return NewRegistry(defaultLevels)
}

// Get returns the definition for a level number.
func (r *Registry) Get(n Number) (Definition, bool) {
	d, ok := r.byNumber[n]
	return d, ok
}

// All returns every definition in order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byNumber[n])
	}
	return out
}

// Len returns the number of levels.
func (r *Registry) Len() int { return len(r.order) }
