package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/level"
	"github.com/fintutor/marketsim/tui/styles"
)

// LevelSelectPanel lists the levels and lets the player pick one.
type LevelSelectPanel struct {
	levels    []level.Definition
	completed map[level.Number]bool
	selected  int
	width     int
	height    int
}

// NewLevelSelectPanel creates a level select panel.
func NewLevelSelectPanel(levels []level.Definition) *LevelSelectPanel {
	return &LevelSelectPanel{
		levels:    levels,
		completed: make(map[level.Number]bool),
	}
}

// SetCompleted marks which levels the player has already beaten.
func (p *LevelSelectPanel) SetCompleted(completed map[level.Number]bool) {
	p.completed = completed
}

// Selected returns the highlighted level number.
func (p *LevelSelectPanel) Selected() level.Number {
	if p.selected >= 0 && p.selected < len(p.levels) {
		return p.levels[p.selected].Number
	}
	return 1
}

// Update handles key messages.
func (p *LevelSelectPanel) Update(msg tea.Msg) (*LevelSelectPanel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selected > 0 {
				p.selected--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selected < len(p.levels)-1 {
				p.selected++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *LevelSelectPanel) View() string {
	var content strings.Builder

	for i, def := range p.levels {
		check := "  "
		if p.completed[def.Number] {
			check = styles.UpStyle.Render("✓ ")
		}

		features := []string{fmt.Sprintf("%d days", def.MaxDays), fmt.Sprintf("%d stocks", len(def.Instruments))}
		if def.ShowETF {
			features = append(features, "ETF")
		}
		if def.MarketRegime == level.RegimeRandom {
			features = append(features, "regimes")
		}

		row := fmt.Sprintf("%sLevel %d: %-22s %s", check, def.Number, def.Name,
			styles.MutedStyle.Render(strings.Join(features, " · ")))

		style := styles.RowStyle
		if i == p.selected {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		content.WriteString("\n")
		if i == p.selected {
			content.WriteString(styles.SecondaryStyle.Render("    " + def.Description))
			content.WriteString("\n")
		}
	}

	title := styles.RenderTitle("🎮 Market Simulator — Choose a Level", true)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return styles.FocusedPanelStyle.Width(p.width - 2).Render(panel)
}

// SetSize sets the panel dimensions.
func (p *LevelSelectPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
