package sim

import "github.com/fintutor/marketsim/internal/level"

// shareEpsilon absorbs float noise in allocation-share comparisons.
const shareEpsilon = 1e-4

// Evaluate applies the level's win conditions to the accumulated state.
// It is a pure function of the state: calling it repeatedly on an
// unchanged Completed simulation always returns the same answer. Before
// completion it returns false.
func (s *Simulation) Evaluate() bool {
	if s.phase != PhaseCompleted || len(s.history) == 0 {
		return false
	}

	wc := s.def.WinConditions
	final, _ := s.history[len(s.history)-1].Value.Float64()
	starting, _ := s.history[0].Value.Float64()

	if target := s.valueTarget(wc); target > 0 {
		meets := final >= target
		if wc.OrSurvive && final > 0 && s.day >= s.def.MaxDays {
			meets = true
		}
		if !meets {
			return false
		}
	}

	if wc.MaxDrawdown > 0 && s.maxDrawdown > wc.MaxDrawdown {
		return false
	}

	if wc.MaxTrades > 0 && s.tradeCount > wc.MaxTrades {
		return false
	}

	if wc.MinPortfolioValue > 0 {
		min, _ := s.minValue.Float64()
		if min < wc.MinPortfolioValue {
			return false
		}
	}

	if wc.MaxStockAllocation > 0 {
		if s.ledger.MaxStockShare(s) > wc.MaxStockAllocation+shareEpsilon {
			return false
		}
	}

	if wc.MaxSectorAllocation > 0 {
		shares := s.ledger.SectorShares(s.Instrument)
		for _, share := range shares {
			if share > wc.MaxSectorAllocation+shareEpsilon {
				return false
			}
		}
	}

	if wc.OutperformETF {
		etfValue := starting * (1 + s.etfReturn())
		if final < etfValue {
			return false
		}
	}

	if wc.OutperformETFBy > 0 {
		if starting <= 0 {
			return false
		}
		portfolioReturn := (final - starting) / starting
		if portfolioReturn-s.etfReturn() < wc.OutperformETFBy {
			return false
		}
	}

	return true
}

// valueTarget resolves the absolute final-value target, preferring the
// mood-conditional pair when the level defines one. Sideways regimes use
// the bull target.
func (s *Simulation) valueTarget(wc level.WinConditions) float64 {
	if wc.BullPortfolioValue > 0 || wc.BearPortfolioValue > 0 {
		if s.mood == level.MoodBear {
			return wc.BearPortfolioValue
		}
		return wc.BullPortfolioValue
	}
	return wc.PortfolioValue
}
