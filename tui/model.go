// Package tui implements the terminal interface: a level-select screen
// and the main game screen with market, allocation, news, portfolio and
// tutor panels.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/game"
	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/tui/panels"
	"github.com/fintutor/marketsim/tui/styles"
)

// screen identifies which top-level view is active.
type screen int

const (
	screenLevelSelect screen = iota
	screenGame
)

// focus identifies which game panel has the keyboard.
type focus int

const (
	focusAllocations focus = iota
	focusTutor
)

// tutorTimeout bounds a single tutor round-trip.
const tutorTimeout = 30 * time.Second

// Model is the root bubbletea model.
type Model struct {
	game *game.Game

	screen screen
	focus  focus

	levelSelect *panels.LevelSelectPanel
	market      *panels.MarketPanel
	allocation  *panels.AllocationPanel
	news        *panels.NewsPanel
	portfolio   *panels.PortfolioPanel
	tutor       *panels.TutorPanel

	width  int
	height int
}

// NewModel creates the root model over a game instance.
func NewModel(g *game.Game) Model {
	instruments := g.Sim().Instruments()
	m := Model{
		game:        g,
		screen:      screenLevelSelect,
		levelSelect: panels.NewLevelSelectPanel(g.Levels.All()),
		market:      panels.NewMarketPanel(instruments),
		allocation:  panels.NewAllocationPanel(instruments),
		news:        panels.NewNewsPanel(),
		portfolio:   panels.NewPortfolioPanel(),
		tutor:       panels.NewTutorPanel(g.Tutor.Configured()),
	}
	m.refreshCompleted()
	m.allocation.SetFocus(true)
	m.syncSnapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case panels.AllocateRequestMsg:
		if msg.ETF {
			m.game.AllocateETF(msg.Target)
		} else {
			m.game.Allocate(msg.ID, msg.Target)
		}
		m.syncSnapshot()
		return m, nil

	case panels.TutorAskMsg:
		g := m.game
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), tutorTimeout)
			defer cancel()
			answer, err := g.AskTutor(ctx, msg.History, msg.Question)
			return panels.TutorReplyMsg{Answer: answer, Err: err}
		}

	case panels.TutorReplyMsg:
		var cmd tea.Cmd
		m.tutor, cmd = m.tutor.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenLevelSelect {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if err := m.game.SelectLevel(m.levelSelect.Selected()); err == nil {
				m.enterGame()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.levelSelect, cmd = m.levelSelect.Update(msg)
		return m, cmd
	}

	typing := (m.focus == focusAllocations && m.allocation.Typing()) ||
		(m.focus == focusTutor && m.tutor.Typing())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !typing {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.cycleFocus()
			return m, nil
		case "s":
			m.game.Start()
			m.syncSnapshot()
			return m, nil
		case "n", " ":
			if m.game.AdvanceDay() {
				m.refreshCompleted()
			}
			m.syncSnapshot()
			return m, nil
		case "r":
			m.game.Reset()
			m.syncSnapshot()
			return m, nil
		case "l":
			m.screen = screenLevelSelect
			m.refreshCompleted()
			return m, nil
		}
	} else if msg.String() == "tab" {
		m.cycleFocus()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusAllocations:
		m.allocation, cmd = m.allocation.Update(msg)
	case focusTutor:
		m.tutor, cmd = m.tutor.Update(msg)
	}
	m.syncSnapshot()
	return m, cmd
}

func (m *Model) cycleFocus() {
	if m.focus == focusAllocations {
		m.focus = focusTutor
	} else {
		m.focus = focusAllocations
	}
	m.allocation.SetFocus(m.focus == focusAllocations)
	m.tutor.SetFocus(m.focus == focusTutor)
}

// enterGame switches to the game screen after a level was selected.
func (m *Model) enterGame() {
	instruments := m.game.Sim().Instruments()
	m.market.SetInstruments(instruments)
	m.allocation.SetInstruments(instruments)
	m.tutor.Clear()
	m.screen = screenGame
	m.focus = focusAllocations
	m.allocation.SetFocus(true)
	m.tutor.SetFocus(false)
	m.syncSnapshot()
}

// syncSnapshot pushes the engine state into every display panel.
func (m *Model) syncSnapshot() {
	snap := m.game.Snapshot()
	m.market.SetSnapshot(snap)
	m.allocation.SetSnapshot(snap)
	m.news.SetSnapshot(snap)
	m.portfolio.SetSnapshot(snap)
}

func (m *Model) refreshCompleted() {
	completed := make(map[level.Number]bool)
	for _, def := range m.game.Levels.All() {
		if m.game.LevelCompleted(def.Number) {
			completed[def.Number] = true
		}
	}
	m.levelSelect.SetCompleted(completed)
}

// layout distributes the window across panels.
func (m *Model) layout() {
	w := m.width
	if w < 60 {
		w = 60
	}
	half := w / 2

	m.levelSelect.SetSize(w, m.height)
	m.market.SetSize(half, 0)
	m.allocation.SetSize(half, 0)
	m.news.SetSize(half, 0)
	m.portfolio.SetSize(half, 0)
	m.tutor.SetSize(half, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.screen == screenLevelSelect {
		hint := styles.StatusBarStyle.Render(
			styles.StatusBarKeyStyle.Render("↑/↓") + " choose  " +
				styles.StatusBarKeyStyle.Render("enter") + " play  " +
				styles.StatusBarKeyStyle.Render("q") + " quit")
		return lipgloss.JoinVertical(lipgloss.Left, m.levelSelect.View(), hint)
	}

	snap := m.game.Snapshot()

	header := styles.TitleStyle.Render(fmt.Sprintf("Level %d: %s", snap.Level.Number, snap.Level.Name))
	banner := m.banner(snap)

	left := lipgloss.JoinVertical(lipgloss.Left, m.market.View(), m.allocation.View())
	right := lipgloss.JoinVertical(lipgloss.Left, m.portfolio.View(), m.news.View(), m.tutor.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var parts []string
	parts = append(parts, header)
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body, m.statusBar(snap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// banner renders the win/lose line once the run has completed.
func (m Model) banner(snap sim.Snapshot) string {
	if snap.Phase != sim.PhaseCompleted {
		return ""
	}
	if m.game.Sim().Evaluate() {
		return styles.WinStyle.Render("  🏆 Level complete! Final value $" + snap.PortfolioValue.Round(0).String())
	}
	return styles.LoseStyle.Render("  ❌ Goal missed. Final value $" + snap.PortfolioValue.Round(0).String() + " — press r to retry")
}

// statusBar renders the context-sensitive key hints.
func (m Model) statusBar(snap sim.Snapshot) string {
	keys := []string{}
	switch snap.Phase {
	case sim.PhaseNotStarted:
		keys = append(keys, key("s", "start"))
	case sim.PhaseRunning:
		keys = append(keys, key("n/space", "next day"))
	}
	keys = append(keys,
		key("tab", "focus"),
		key("r", "reset"),
		key("l", "levels"),
		key("q", "quit"),
	)
	return styles.StatusBarStyle.Render(strings.Join(keys, "  "))
}

func key(k, label string) string {
	return styles.StatusBarKeyStyle.Render(k) + " " + label
}
