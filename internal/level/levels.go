package level

import "github.com/fintutor/marketsim/internal/catalog"

func ids(ss ...string) []catalog.InstrumentID {
	out := make([]catalog.InstrumentID, len(ss))
	for i, s := range ss {
		out[i] = catalog.InstrumentID(s)
	}
	return out
}

// defaultLevels is the progression table. Adding a level is a data change:
// the engine never branches on the level number.
var defaultLevels = []Definition{
	{
		Number:               1,
		Name:                 "Basics",
		Description:          "Learn mechanics without stress",
		Instruments:          ids("aapl", "tsla", "nvda"),
		MaxDays:              10,
		VolatilityMultiplier: 0.3,
		ShowNews:             true,
		ShowETF:              false,
		// Gentle upward drift so an even split can win.
		Drift: Drift{Constant: Bias{Min: 1.5, Max: 2.5}},
		WinConditions: WinConditions{
			PortfolioValue: 10500,
			OrSurvive:      true,
		},
	},
	{
		Number:               2,
		Name:                 "News & Volatility",
		Description:          "React intelligently to information",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl"),
		MaxDays:              15,
		VolatilityMultiplier: 0.6,
		ShowNews:             true,
		ShowETF:              false,
		WinConditions: WinConditions{
			PortfolioValue: 10200,
		},
	},
	{
		Number:               3,
		Name:                 "Diversification",
		Description:          "Manage risk, not chase returns",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl", "amzn", "meta", "jpm"),
		MaxDays:              20,
		VolatilityMultiplier: 0.8,
		ShowNews:             true,
		ShowETF:              true,
		WinConditions: WinConditions{
			PortfolioValue: 10800,
			MaxDrawdown:    0.10,
		},
	},
	{
		Number:               4,
		Name:                 "Signal vs Noise",
		Description:          "Avoid overreacting",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl", "amzn", "meta", "jpm", "v", "jnj"),
		MaxDays:              20,
		VolatilityMultiplier: 1.0,
		ShowNews:             true,
		ShowETF:              true,
		WinConditions: WinConditions{
			OutperformETF: true,
			MaxTrades:     10,
		},
	},
	{
		Number:               5,
		Name:                 "Pressure & Regimes",
		Description:          "Adapt under constraints",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl", "amzn", "meta", "jpm", "v", "jnj", "wmt"),
		MaxDays:              30,
		VolatilityMultiplier: 1.2,
		ShowNews:             true,
		ShowETF:              true,
		MarketRegime:         RegimeRandom,
		TransactionFee:       0.01,
		Drift: Drift{
			ByMood: map[Mood]Bias{
				MoodBull: {Min: 2.0, Max: 3.0},
				MoodBear: {Min: -4.0, Max: -2.5},
			},
		},
		News: NewsPolicy{BearPositiveScale: 0.3},
		WinConditions: WinConditions{
			BullPortfolioValue: 11000,
			BearPortfolioValue: 9800,
			MinPortfolioValue:  7500,
			MaxStockAllocation: 0.40,
		},
	},
	{
		Number:               6,
		Name:                 "True Diversification",
		Description:          "Beyond timing and correlation",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl", "amzn", "meta", "amd", "jpm", "v", "wmt", "jnj", "nflx"),
		MaxDays:              35,
		VolatilityMultiplier: 1.0,
		ShowNews:             true,
		ShowETF:              true,
		// Tech sinks, everything else gets a modest tailwind: the only way
		// through is spreading across sectors.
		Drift: Drift{
			BySector:      map[string]Bias{"tech": {Min: -6.0, Max: -4.0}},
			SectorDefault: Bias{Min: 1.0, Max: 1.5},
		},
		News: NewsPolicy{
			SectorPositive: map[string]ImpactAdjust{
				"tech": {Scale: 0.2, Offset: -2},
			},
		},
		WinConditions: WinConditions{
			PortfolioValue:      10800,
			MaxSectorAllocation: 0.40,
		},
	},
	{
		Number:               7,
		Name:                 "Master Level",
		Description:          "Advanced risk & strategy",
		Instruments:          ids("aapl", "tsla", "nvda", "msft", "googl", "amzn", "meta", "jpm", "v", "jnj", "wmt", "nflx", "amd"),
		MaxDays:              45,
		VolatilityMultiplier: 1.1,
		ShowNews:             true,
		ShowETF:              true,
		// The bundle drags tech exposure with it and bleeds a little daily.
		ETFValuation: ETFValuation{Scale: 0.98, Offset: -0.01},
		WinConditions: WinConditions{
			PortfolioValue:  11200,
			MaxDrawdown:     0.15,
			OutperformETFBy: 0.015,
		},
	},
}
