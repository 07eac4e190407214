package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/news"
)

var testInstruments = []catalog.Instrument{
	{ID: "aapl", BasePrice: 175, Volatility: 0.18, Sector: "tech"},
	{ID: "jpm", BasePrice: 160, Volatility: 0.15, Sector: "finance"},
}

func prices(instruments []catalog.Instrument) map[catalog.InstrumentID]float64 {
	out := make(map[catalog.InstrumentID]float64, len(instruments))
	for _, ins := range instruments {
		out[ins.ID] = ins.BasePrice
	}
	return out
}

func TestFloor(t *testing.T) {
	assert.Equal(t, 17.5, Floor(catalog.Instrument{BasePrice: 175}))
	assert.Equal(t, 1.0, Floor(catalog.Instrument{BasePrice: 5}), "floor never drops below 1")
}

func TestEvolveWithoutForcesHoldsStill(t *testing.T) {
	e := NewEvolver(rand.New(rand.NewSource(1)))

	// Zero volatility multiplier, no drift, no news: prices are frozen.
	def := level.Definition{VolatilityMultiplier: 0}
	next := e.Evolve(prices(testInstruments), testInstruments, def, level.MoodBull, nil)

	assert.Equal(t, 175.0, next["aapl"])
	assert.Equal(t, 160.0, next["jpm"])
}

func TestEvolveDoesNotMutateInput(t *testing.T) {
	e := NewEvolver(rand.New(rand.NewSource(1)))
	current := prices(testInstruments)

	def := level.Definition{VolatilityMultiplier: 1.0, Drift: level.Drift{Constant: level.Bias{Min: 5, Max: 10}}}
	_ = e.Evolve(current, testInstruments, def, level.MoodBull, nil)

	assert.Equal(t, 175.0, current["aapl"], "input map must stay untouched")
	assert.Equal(t, 160.0, current["jpm"])
}

func TestConstantDriftBounds(t *testing.T) {
	e := NewEvolver(rand.New(rand.NewSource(3)))
	def := level.Definition{
		VolatilityMultiplier: 0,
		Drift:                level.Drift{Constant: level.Bias{Min: 1.5, Max: 2.5}},
	}

	current := prices(testInstruments)
	for day := 0; day < 50; day++ {
		next := e.Evolve(current, testInstruments, def, level.MoodBull, nil)
		for id, price := range next {
			delta := price - current[id]
			assert.GreaterOrEqual(t, delta, 1.5)
			assert.LessOrEqual(t, delta, 2.5)
		}
		current = next
	}
}

func TestMoodDriftSelectsByMood(t *testing.T) {
	def := level.Definition{
		VolatilityMultiplier: 0,
		Drift: level.Drift{ByMood: map[level.Mood]level.Bias{
			level.MoodBull: {Min: 2.0, Max: 3.0},
			level.MoodBear: {Min: -4.0, Max: -2.5},
		}},
	}
	current := prices(testInstruments)

	e := NewEvolver(rand.New(rand.NewSource(9)))
	bull := e.Evolve(current, testInstruments, def, level.MoodBull, nil)
	assert.Greater(t, bull["aapl"], current["aapl"])

	bear := e.Evolve(current, testInstruments, def, level.MoodBear, nil)
	assert.Less(t, bear["aapl"], current["aapl"])

	// Sideways has no entry, so no drift applies at all.
	side := e.Evolve(current, testInstruments, def, level.MoodSideways, nil)
	assert.Equal(t, current["aapl"], side["aapl"])
}

func TestSectorDriftFallsBackToDefault(t *testing.T) {
	def := level.Definition{
		VolatilityMultiplier: 0,
		Drift: level.Drift{
			BySector:      map[string]level.Bias{"tech": {Min: -6.0, Max: -4.0}},
			SectorDefault: level.Bias{Min: 1.0, Max: 1.5},
		},
	}
	current := prices(testInstruments)

	e := NewEvolver(rand.New(rand.NewSource(5)))
	next := e.Evolve(current, testInstruments, def, level.MoodBull, nil)

	techDelta := next["aapl"] - current["aapl"]
	assert.GreaterOrEqual(t, techDelta, -6.0)
	assert.LessOrEqual(t, techDelta, -4.0)

	otherDelta := next["jpm"] - current["jpm"]
	assert.GreaterOrEqual(t, otherDelta, 1.0)
	assert.LessOrEqual(t, otherDelta, 1.5)
}

func TestNewsImpactBounds(t *testing.T) {
	def := level.Definition{VolatilityMultiplier: 0}
	current := prices(testInstruments)
	ev := &news.Event{Impact: news.ImpactPositive, Affected: []catalog.InstrumentID{"aapl"}}

	e := NewEvolver(rand.New(rand.NewSource(11)))
	for i := 0; i < 50; i++ {
		next := e.Evolve(current, testInstruments, def, level.MoodBull, ev)

		delta := next["aapl"] - current["aapl"]
		assert.GreaterOrEqual(t, delta, 8.0)
		assert.LessOrEqual(t, delta, 15.0)

		assert.Equal(t, current["jpm"], next["jpm"], "unmentioned instrument unaffected")
	}
}

func TestPositiveNewsRaisesExpectedMove(t *testing.T) {
	// With real noise in play a single day proves nothing; over many trials
	// the mentioned instrument's mean move must beat the no-news baseline.
	def := level.Definition{VolatilityMultiplier: 1.0}
	current := prices(testInstruments)
	ev := &news.Event{Impact: news.ImpactPositive, Affected: []catalog.InstrumentID{"aapl"}}

	const trials = 2000
	withNews := NewEvolver(rand.New(rand.NewSource(23)))
	without := NewEvolver(rand.New(rand.NewSource(23)))

	var sumNews, sumQuiet float64
	for i := 0; i < trials; i++ {
		sumNews += withNews.Evolve(current, testInstruments, def, level.MoodBull, ev)["aapl"] - current["aapl"]
		sumQuiet += without.Evolve(current, testInstruments, def, level.MoodBull, nil)["aapl"] - current["aapl"]
	}

	// The impact term adds 8..15; noise alone is zero-mean within ±1.8.
	assert.Greater(t, sumNews/trials, sumQuiet/trials+5.0)
}

func TestNeutralNewsMovesNothing(t *testing.T) {
	def := level.Definition{VolatilityMultiplier: 0}
	current := prices(testInstruments)
	ev := &news.Event{Impact: news.ImpactNeutral, Affected: []catalog.InstrumentID{"aapl"}}

	e := NewEvolver(rand.New(rand.NewSource(2)))
	next := e.Evolve(current, testInstruments, def, level.MoodBull, ev)
	assert.Equal(t, current["aapl"], next["aapl"])
}

func TestBearMarketDampsGoodNews(t *testing.T) {
	def := level.Definition{
		VolatilityMultiplier: 0,
		News:                 level.NewsPolicy{BearPositiveScale: 0.3},
	}
	current := prices(testInstruments)
	ev := &news.Event{Impact: news.ImpactPositive, Affected: []catalog.InstrumentID{"aapl"}}

	e := NewEvolver(rand.New(rand.NewSource(13)))
	for i := 0; i < 50; i++ {
		next := e.Evolve(current, testInstruments, def, level.MoodBear, ev)

		delta := next["aapl"] - current["aapl"]
		assert.GreaterOrEqual(t, delta, 8.0*0.3)
		assert.LessOrEqual(t, delta, 15.0*0.3)
	}
}

func TestSectorHeadwindCanInvertGoodNews(t *testing.T) {
	def := level.Definition{
		VolatilityMultiplier: 0,
		News: level.NewsPolicy{SectorPositive: map[string]level.ImpactAdjust{
			"tech": {Scale: 0.2, Offset: -2},
		}},
	}
	current := prices(testInstruments)
	ev := &news.Event{Impact: news.ImpactPositive, Affected: []catalog.InstrumentID{"aapl", "jpm"}}

	e := NewEvolver(rand.New(rand.NewSource(17)))
	for i := 0; i < 50; i++ {
		next := e.Evolve(current, testInstruments, def, level.MoodBull, ev)

		// Tech impact is rescaled into [8*0.2-2, 15*0.2-2].
		techDelta := next["aapl"] - current["aapl"]
		assert.GreaterOrEqual(t, techDelta, -0.4)
		assert.LessOrEqual(t, techDelta, 1.0)

		// Other sectors take the raw impact.
		otherDelta := next["jpm"] - current["jpm"]
		assert.GreaterOrEqual(t, otherDelta, 8.0)
	}
}

func TestFloorClampsCollapse(t *testing.T) {
	def := level.Definition{
		VolatilityMultiplier: 0,
		Drift:                level.Drift{Constant: level.Bias{Min: -500, Max: -400}},
	}

	e := NewEvolver(rand.New(rand.NewSource(19)))
	next := e.Evolve(prices(testInstruments), testInstruments, def, level.MoodBull, nil)

	require.Equal(t, Floor(testInstruments[0]), next["aapl"])
	require.Equal(t, Floor(testInstruments[1]), next["jpm"])
}
