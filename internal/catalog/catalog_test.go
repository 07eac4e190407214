package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 13, c.Len())

	for _, ins := range c.All() {
		assert.NotEmpty(t, ins.ID)
		assert.NotEmpty(t, ins.Name)
		assert.NotEmpty(t, ins.Ticker)
		assert.NotEmpty(t, ins.Sector)
		assert.Greater(t, ins.BasePrice, 0.0, "instrument %s", ins.ID)
		assert.Greater(t, ins.Volatility, 0.0, "instrument %s", ins.ID)
		assert.LessOrEqual(t, ins.Volatility, 1.0, "instrument %s", ins.ID)
	}
}

func TestGet(t *testing.T) {
	c := Default()

	ins, ok := c.Get("aapl")
	require.True(t, ok)
	assert.Equal(t, "AAPL", ins.Ticker)
	assert.Equal(t, "tech", ins.Sector)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestSelectSkipsUnknown(t *testing.T) {
	c := Default()

	selected := c.Select([]InstrumentID{"aapl", "ghost", "tsla"})
	require.Len(t, selected, 2)
	assert.Equal(t, InstrumentID("aapl"), selected[0].ID)
	assert.Equal(t, InstrumentID("tsla"), selected[1].ID)
}

func TestNewDropsDuplicates(t *testing.T) {
	c := New([]Instrument{
		{ID: "a", BasePrice: 10},
		{ID: "a", BasePrice: 20},
		{ID: "b", BasePrice: 30},
	})
	require.Equal(t, 2, c.Len())

	ins, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10.0, ins.BasePrice, "first definition wins")
}
