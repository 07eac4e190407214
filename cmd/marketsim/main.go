package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fintutor/marketsim/internal/game"
	"github.com/fintutor/marketsim/tui"
)

func main() {
	// Missing .env is fine; the tutor just stays offline.
	_ = godotenv.Load()

	cfg := game.DefaultConfig()

	logPath := cfg.DataDir + "/marketsim.log"
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Logs go to a file so they never tear the alternate screen.
	log := zerolog.New(logFile).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if os.Getenv("MARKETSIM_DEBUG") != "" {
		log = log.Level(zerolog.DebugLevel)
	}

	g, err := game.NewGame(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("ui crashed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
