// Package game wires the engine subsystems together for the UI: catalog,
// level registry, the active simulation, progress persistence and the
// tutor client. Rejected trades and invalid day advances are absorbed
// here (logged, state unchanged) per the slider-clamp interaction model.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/progress"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/internal/tutor"
)

// Game owns all the game subsystems and manages their lifecycle.
type Game struct {
	cfg Config
	log zerolog.Logger

	Catalog  *catalog.Catalog
	Levels   *level.Registry
	Progress *progress.Store
	Tutor    *tutor.Client

	rng *rand.Rand
	sim *sim.Simulation
}

// NewGame creates a new Game with the given configuration.
func NewGame(cfg Config, log zerolog.Logger) (*Game, error) {
	store, err := progress.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		Catalog:  catalog.Default(),
		Levels:   level.Default(),
		Progress: store,
		Tutor:    tutor.NewClient(),
		rng:      rand.New(rand.NewSource(seed)),
	}

	// Start on the first level so the UI always has a simulation.
	if err := g.SelectLevel(1); err != nil {
		return nil, err
	}
	return g, nil
}

// SelectLevel discards the current play-through and starts fresh on the
// given level.
func (g *Game) SelectLevel(n level.Number) error {
	def, ok := g.Levels.Get(n)
	if !ok {
		return fmt.Errorf("game: unknown level %d", n)
	}
	g.sim = sim.New(def, g.Catalog, g.cfg.StartingCash, g.rng)
	g.log.Info().
		Int("level", int(n)).
		Str("session", g.sim.ID()).
		Msg("level selected")
	return nil
}

// Sim returns the active simulation.
func (g *Game) Sim() *sim.Simulation { return g.sim }

// Snapshot returns the active simulation's render snapshot.
func (g *Game) Snapshot() sim.Snapshot { return g.sim.Snapshot() }

// Allocate moves an instrument allocation to target dollars. A rejection
// is absorbed: the state is unchanged and false is returned.
func (g *Game) Allocate(id catalog.InstrumentID, target decimal.Decimal) bool {
	if err := g.sim.Allocate(id, target); err != nil {
		g.log.Debug().
			Err(err).
			Str("instrument", string(id)).
			Str("target", target.String()).
			Msg("allocation rejected")
		return false
	}
	return true
}

// AllocateETF moves the bundle allocation to target dollars.
func (g *Game) AllocateETF(target decimal.Decimal) bool {
	if err := g.sim.AllocateETF(target); err != nil {
		g.log.Debug().
			Err(err).
			Str("target", target.String()).
			Msg("etf allocation rejected")
		return false
	}
	return true
}

// Start begins the simulation.
func (g *Game) Start() bool {
	if err := g.sim.Start(); err != nil {
		g.log.Debug().Err(err).Msg("start rejected")
		return false
	}
	g.log.Info().
		Str("session", g.sim.ID()).
		Str("mood", string(g.sim.Mood())).
		Msg("simulation started")
	return true
}

// AdvanceDay steps one day. Advancing a finished or unstarted simulation
// is an absorbed no-op.
func (g *Game) AdvanceDay() bool {
	if err := g.sim.AdvanceDay(); err != nil {
		g.log.Debug().Err(err).Int("day", g.sim.Day()).Msg("day advance ignored")
		return false
	}

	if g.sim.Phase() == sim.PhaseCompleted {
		g.finish()
	}
	return true
}

// Reset restores the play-through to its starting endowment.
func (g *Game) Reset() {
	g.sim.Reset()
	g.log.Info().Str("session", g.sim.ID()).Msg("simulation reset")
}

// finish evaluates the completed run and writes progress through on a win.
func (g *Game) finish() {
	won := g.sim.Evaluate()
	n := int(g.sim.Level().Number)
	g.log.Info().
		Int("level", n).
		Bool("won", won).
		Str("final_value", g.sim.Value().Round(0).String()).
		Int("trades", g.sim.TradeCount()).
		Msg("level finished")

	if !won {
		return
	}
	if err := g.Progress.MarkLevelComplete(g.cfg.UserID, n); err != nil {
		g.log.Error().Err(err).Int("level", n).Msg("failed to persist progress")
	}
}

// LevelCompleted reports whether the user has beaten the level before.
func (g *Game) LevelCompleted(n level.Number) bool {
	return g.Progress.IsLevelComplete(g.cfg.UserID, int(n))
}

// AskTutor sends a question to the external tutor with the current
// snapshot digest attached. Failures are the tutor's own; they never
// affect the simulation.
func (g *Game) AskTutor(ctx context.Context, history []tutor.Message, question string) (string, error) {
	digest := tutor.Summarize(g.sim.Snapshot())
	return g.Tutor.Ask(ctx, digest, history, question)
}
