package sim

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
)

func levelOne(t *testing.T) level.Definition {
	t.Helper()
	def, ok := level.Default().Get(1)
	require.True(t, ok)
	return def
}

func newSim(t *testing.T, def level.Definition, seed int64) *Simulation {
	t.Helper()
	return New(def, catalog.Default(), decimal.NewFromInt(10000), rand.New(rand.NewSource(seed)))
}

func TestNewStartsFresh(t *testing.T) {
	s := newSim(t, levelOne(t), 1)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.Equal(t, 0, s.Day())
	assert.True(t, s.Value().Equal(decimal.NewFromInt(10000)))
	assert.Len(t, s.Instruments(), 3)

	for _, ins := range s.Instruments() {
		ratio, ok := s.Ratio(ins.ID)
		require.True(t, ok)
		assert.Equal(t, 1.0, ratio, "prices start at base")
	}
}

func TestStartRequiresAllocation(t *testing.T) {
	s := newSim(t, levelOne(t), 1)

	assert.ErrorIs(t, s.Start(), ErrNothingAllocated)
	assert.ErrorIs(t, s.AdvanceDay(), ErrNotRunning)
}

func TestLifecycle(t *testing.T) {
	def := levelOne(t)
	s := newSim(t, def, 1)

	for _, ins := range s.Instruments() {
		require.NoError(t, s.Allocate(ins.ID, decimal.NewFromInt(3000)))
	}

	require.NoError(t, s.Start())
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
	assert.True(t, s.Cash().Equal(decimal.NewFromInt(1000)))

	snap := s.Snapshot()
	require.Len(t, snap.History, 1)
	assert.Equal(t, 0, snap.History[0].Day)
	assert.True(t, snap.History[0].Value.Equal(decimal.NewFromInt(10000)))

	for day := 1; day <= def.MaxDays; day++ {
		require.NoError(t, s.AdvanceDay())
		assert.Equal(t, day, s.Day())
	}

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.ErrorIs(t, s.AdvanceDay(), ErrNotRunning)

	snap = s.Snapshot()
	assert.Len(t, snap.History, def.MaxDays+1, "one history point per day plus day zero")
	for i, pt := range snap.History {
		assert.Equal(t, i, pt.Day, "history days are contiguous")
	}
}

func TestPreStartSnapshotHoldsEndowment(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(3000)))

	// Reserved money is not double-counted: cash shrinks by the
	// reservation and the marked value stays at the endowment.
	snap := s.Snapshot()
	assert.True(t, snap.Cash.Equal(decimal.NewFromInt(7000)), "got %s", snap.Cash)
	assert.True(t, snap.PortfolioValue.Equal(decimal.NewFromInt(10000)), "got %s", snap.PortfolioValue)

	total := snap.Cash
	for _, amt := range snap.Allocations {
		total = total.Add(amt)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(10000)), "cash plus allocations is the endowment")
}

func TestTradeCountingStartsAtLaunch(t *testing.T) {
	s := newSim(t, levelOne(t), 1)

	// Budgeting moves don't count once the run starts.
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(3000)))
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(2000)))
	require.NoError(t, s.Start())
	assert.Equal(t, 0, s.TradeCount())

	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(2500)))
	assert.Equal(t, 1, s.TradeCount())

	// A no-op target is not a trade.
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(2500)))
	assert.Equal(t, 1, s.TradeCount())
}

func TestAllocateUnknownInstrument(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	err := s.Allocate("jpm", decimal.NewFromInt(100))
	assert.Error(t, err, "jpm is not in level 1")
}

func TestETFUnavailableOnLevelOne(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	assert.ErrorIs(t, s.AllocateETF(decimal.NewFromInt(100)), ErrETFUnavailable)
}

func TestNewsAccumulates(t *testing.T) {
	def := levelOne(t)
	s := newSim(t, def, 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(5000)))
	require.NoError(t, s.Start())

	for day := 1; day <= def.MaxDays; day++ {
		require.NoError(t, s.AdvanceDay())
	}

	snap := s.Snapshot()
	assert.Len(t, snap.NewsLog, def.MaxDays, "one headline per day")
	latest := snap.LatestNews()
	require.NotNil(t, latest)
	assert.Equal(t, def.MaxDays, latest.Day)
}

func TestPricesNeverBreachFloor(t *testing.T) {
	def := levelOne(t)
	// Crank volatility to hunt for floor violations.
	def.VolatilityMultiplier = 50

	for seed := int64(0); seed < 10; seed++ {
		s := newSim(t, def, seed)
		require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(5000)))
		require.NoError(t, s.Start())

		for day := 1; day <= def.MaxDays; day++ {
			require.NoError(t, s.AdvanceDay())
			snap := s.Snapshot()
			for _, ins := range s.Instruments() {
				floor := ins.BasePrice * 0.10
				if floor < 1 {
					floor = 1
				}
				assert.GreaterOrEqual(t, snap.CurrentPrices[ins.ID], floor,
					"seed %d day %d instrument %s", seed, day, ins.ID)
			}
		}
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	def := levelOne(t)

	run := func(seed int64) []HistoryPoint {
		s := newSim(t, def, seed)
		require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(4000)))
		require.NoError(t, s.Allocate("tsla", decimal.NewFromInt(4000)))
		require.NoError(t, s.Start())
		for day := 1; day <= def.MaxDays; day++ {
			require.NoError(t, s.AdvanceDay())
		}
		return s.Snapshot().History
	}

	a := run(42)
	b := run(42)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Value.Equal(b[i].Value), "day %d", i)
	}
}

func TestResetRestoresEverything(t *testing.T) {
	def := levelOne(t)
	s := newSim(t, def, 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(5000)))
	require.NoError(t, s.Start())
	require.NoError(t, s.AdvanceDay())

	s.Reset()

	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.Equal(t, 0, s.Day())
	assert.Equal(t, 0, s.TradeCount())
	assert.True(t, s.Value().Equal(decimal.NewFromInt(10000)), "reset round-trips to the endowment")

	snap := s.Snapshot()
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.NewsLog)
	assert.Empty(t, snap.Allocations)
	for _, ins := range s.Instruments() {
		assert.Equal(t, ins.BasePrice, snap.CurrentPrices[ins.ID])
	}
}

func TestResetIssuesNewSession(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	first := s.ID()
	require.NotEmpty(t, first)

	s.Reset()
	assert.NotEmpty(t, s.ID())
	assert.NotEqual(t, first, s.ID(), "a retry gets its own session id")
}

func TestExtremaTrackedWithoutMatchingConditions(t *testing.T) {
	// Level 1 has neither a drawdown ceiling nor a value floor, yet the
	// render surface still reports honest extrema.
	def := levelOne(t)
	def.Drift = level.Drift{Constant: level.Bias{Min: -40, Max: -30}}
	def.VolatilityMultiplier = 0

	s := newSim(t, def, 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(8000)))
	require.NoError(t, s.Start())
	for day := 1; day <= def.MaxDays; day++ {
		require.NoError(t, s.AdvanceDay())
	}

	snap := s.Snapshot()
	assert.Greater(t, snap.MaxDrawdown, 0.0)
	assert.True(t, snap.MinPortfolioValue.LessThan(decimal.NewFromInt(10000)),
		"got %s", snap.MinPortfolioValue)
	assert.True(t, snap.MinPortfolioValue.Equal(snap.History[len(snap.History)-1].Value),
		"a strictly falling run bottoms out on the last day")
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(5000)))

	snap := s.Snapshot()
	snap.Allocations["aapl"] = decimal.NewFromInt(1)
	snap.CurrentPrices["aapl"] = 0

	fresh := s.Snapshot()
	assert.True(t, fresh.Allocations["aapl"].Equal(decimal.NewFromInt(5000)))
	assert.NotZero(t, fresh.CurrentPrices["aapl"])
}

func TestMoodFixedUnlessRegimeRandom(t *testing.T) {
	s := newSim(t, levelOne(t), 1)
	require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(5000)))
	require.NoError(t, s.Start())
	assert.Equal(t, level.MoodBull, s.Mood())
}

func TestRegimeRandomSamplesAllMoods(t *testing.T) {
	def, ok := level.Default().Get(5)
	require.True(t, ok)

	seen := make(map[level.Mood]bool)
	for seed := int64(0); seed < 50; seed++ {
		s := newSim(t, def, seed)
		require.NoError(t, s.Allocate("aapl", decimal.NewFromInt(1000)))
		require.NoError(t, s.Start())
		seen[s.Mood()] = true
	}

	assert.True(t, seen[level.MoodBull])
	assert.True(t, seen[level.MoodBear])
	assert.True(t, seen[level.MoodSideways])
}
