package game

import (
	"github.com/shopspring/decimal"
)

// Config holds configuration for the game.
type Config struct {
	// StartingCash is the endowment for every play-through.
	StartingCash decimal.Decimal
	// DataDir is where progress records are stored.
	DataDir string
	// UserID keys the progress record.
	UserID string
	// Seed seeds the simulation's random source; zero means time-derived.
	Seed int64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		StartingCash: decimal.NewFromInt(10000),
		DataDir:      ".marketsim",
		UserID:       "local",
	}
}
