package pricing

import (
	"math/rand"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/news"
)

// Evolver advances instrument prices by one simulated day. Prices are
// synthetic game quantities and stay float64; money never passes through
// this package.
type Evolver struct {
	rng *rand.Rand
}

// NewEvolver creates an Evolver drawing noise from rng.
func NewEvolver(rng *rand.Rand) *Evolver {
	return &Evolver{rng: rng}
}

// Floor returns the lowest price an instrument may reach: 10% of its base
// price, but never below 1.
func Floor(ins catalog.Instrument) float64 {
	floor := ins.BasePrice * 0.10
	if floor < 1 {
		return 1
	}
	return floor
}

// Evolve computes the next day's price for every instrument given the
// current prices, the level's drift and news policies, the play-through
// mood, and the day's headline (nil for a quiet day). The input map is not
// modified.
func (e *Evolver) Evolve(
	current map[catalog.InstrumentID]float64,
	instruments []catalog.Instrument,
	def level.Definition,
	mood level.Mood,
	ev *news.Event,
) map[catalog.InstrumentID]float64 {
	next := make(map[catalog.InstrumentID]float64, len(instruments))

	for _, ins := range instruments {
		vol := ins.Volatility * def.VolatilityMultiplier
		delta := (e.rng.Float64() - 0.5) * 2 * vol * 10

		delta += e.drift(def.Drift, ins, mood)
		delta += e.newsImpact(def.News, ins, mood, ev)

		price := current[ins.ID] + delta
		if floor := Floor(ins); price < floor {
			price = floor
		}
		next[ins.ID] = price
	}

	return next
}

func (e *Evolver) drift(d level.Drift, ins catalog.Instrument, mood level.Mood) float64 {
	var out float64

	if !d.Constant.IsZero() {
		out += e.sample(d.Constant)
	}
	if b, ok := d.ByMood[mood]; ok && !b.IsZero() {
		out += e.sample(b)
	}
	if b, ok := d.BySector[ins.Sector]; ok {
		out += e.sample(b)
	} else if !d.SectorDefault.IsZero() {
		out += e.sample(d.SectorDefault)
	}

	return out
}

func (e *Evolver) newsImpact(p level.NewsPolicy, ins catalog.Instrument, mood level.Mood, ev *news.Event) float64 {
	if !ev.Mentions(ins.ID) {
		return 0
	}

	var impact float64
	switch ev.Impact {
	case news.ImpactPositive:
		impact = 8 + e.rng.Float64()*7
	case news.ImpactNegative:
		impact = -(8 + e.rng.Float64()*7)
	default:
		return 0
	}

	// Good news lands softer in a bear market.
	if impact > 0 && mood == level.MoodBear && p.BearPositiveScale > 0 {
		impact *= p.BearPositiveScale
	}
	// Sector-specific headwinds can mute or even invert good news.
	if impact > 0 {
		if adj, ok := p.SectorPositive[ins.Sector]; ok {
			impact = impact*adj.Scale + adj.Offset
		}
	}

	return impact
}

func (e *Evolver) sample(b level.Bias) float64 {
	return b.Min + e.rng.Float64()*(b.Max-b.Min)
}
