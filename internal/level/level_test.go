package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintutor/marketsim/internal/catalog"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	require.Equal(t, 7, r.Len())

	cat := catalog.Default()
	for _, def := range r.All() {
		assert.NotEmpty(t, def.Name, "level %d", def.Number)
		assert.NotEmpty(t, def.Description, "level %d", def.Number)
		assert.Greater(t, def.MaxDays, 0, "level %d", def.Number)
		assert.Greater(t, def.VolatilityMultiplier, 0.0, "level %d", def.Number)
		require.NotEmpty(t, def.Instruments, "level %d", def.Number)

		// Every referenced instrument must exist in the catalog.
		for _, id := range def.Instruments {
			_, ok := cat.Get(id)
			assert.True(t, ok, "level %d references unknown instrument %s", def.Number, id)
		}
	}
}

func TestProgressionOrder(t *testing.T) {
	r := Default()
	all := r.All()
	for i, def := range all {
		assert.Equal(t, Number(i+1), def.Number)
	}
}

func TestGet(t *testing.T) {
	r := Default()

	def, ok := r.Get(5)
	require.True(t, ok)
	assert.Equal(t, RegimeRandom, def.MarketRegime)
	assert.Equal(t, 0.01, def.TransactionFee)
	assert.Equal(t, 11000.0, def.WinConditions.BullPortfolioValue)
	assert.Equal(t, 9800.0, def.WinConditions.BearPortfolioValue)

	_, ok = r.Get(99)
	assert.False(t, ok)
}

func TestLevelOneIsForgiving(t *testing.T) {
	r := Default()
	def, ok := r.Get(1)
	require.True(t, ok)

	assert.True(t, def.WinConditions.OrSurvive)
	assert.False(t, def.ShowETF)
	assert.False(t, def.Drift.Constant.IsZero(), "level 1 carries an upward drift")
	assert.Positive(t, def.Drift.Constant.Min)
}

func TestSectorPoliciesReferenceRealSectors(t *testing.T) {
	r := Default()
	cat := catalog.Default()

	sectors := make(map[string]bool)
	for _, ins := range cat.All() {
		sectors[ins.Sector] = true
	}

	for _, def := range r.All() {
		for sector := range def.Drift.BySector {
			assert.True(t, sectors[sector], "level %d drift names unknown sector %s", def.Number, sector)
		}
		for sector := range def.News.SectorPositive {
			assert.True(t, sectors[sector], "level %d news policy names unknown sector %s", def.Number, sector)
		}
	}
}

func TestRegistryDropsDuplicates(t *testing.T) {
	r := NewRegistry([]Definition{
		{Number: 1, Name: "first"},
		{Number: 1, Name: "second"},
	})
	require.Equal(t, 1, r.Len())

	def, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "first", def.Name)
}
