package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/sim"
	"github.com/fintutor/marketsim/tui/styles"
)

// allocStep is the dollar step for +/- adjustments.
var allocStep = decimal.NewFromInt(100)

// AllocationPanel lets the player move cost-basis allocations. It never
// mutates the engine: every change is emitted as an AllocateRequestMsg
// and the engine's accept/reject decides what actually happens.
type AllocationPanel struct {
	instruments []catalog.Instrument
	snap        sim.Snapshot
	selected    int
	input       textinput.Model
	typing      bool
	focused     bool
	width       int
	height      int
}

// NewAllocationPanel creates an allocation panel.
func NewAllocationPanel(instruments []catalog.Instrument) *AllocationPanel {
	ti := textinput.New()
	ti.Placeholder = "amount in $"
	ti.CharLimit = 8
	ti.Width = 12
	return &AllocationPanel{instruments: instruments, input: ti}
}

// SetInstruments replaces the instrument list (on level change).
func (p *AllocationPanel) SetInstruments(instruments []catalog.Instrument) {
	p.instruments = instruments
	p.selected = 0
	p.typing = false
	p.input.Reset()
}

// SetSnapshot updates the rendered state.
func (p *AllocationPanel) SetSnapshot(snap sim.Snapshot) {
	p.snap = snap
}

// rowCount includes the ETF row when the level offers it.
func (p *AllocationPanel) rowCount() int {
	n := len(p.instruments)
	if p.snap.Level.ShowETF {
		n++
	}
	return n
}

// selectedTarget returns the current row's instrument (or the ETF).
func (p *AllocationPanel) selectedTarget() (catalog.InstrumentID, bool) {
	if p.selected < len(p.instruments) {
		return p.instruments[p.selected].ID, false
	}
	return "", true
}

// current returns the row's present cost-basis allocation.
func (p *AllocationPanel) current() decimal.Decimal {
	id, etf := p.selectedTarget()
	if etf {
		return p.snap.ETFAllocation
	}
	return p.snap.Allocations[id]
}

func (p *AllocationPanel) request(target decimal.Decimal) tea.Cmd {
	id, etf := p.selectedTarget()
	msg := AllocateRequestMsg{ID: id, ETF: etf, Target: target}
	return func() tea.Msg { return msg }
}

// Update handles key messages.
func (p *AllocationPanel) Update(msg tea.Msg) (*AllocationPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	if p.typing {
		switch keyMsg.String() {
		case "enter":
			raw := strings.TrimSpace(p.input.Value())
			p.typing = false
			p.input.Blur()
			p.input.Reset()
			if amount, err := decimal.NewFromString(raw); err == nil {
				return p, p.request(amount)
			}
			return p, nil
		case "esc":
			p.typing = false
			p.input.Blur()
			p.input.Reset()
			return p, nil
		default:
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.selected < p.rowCount()-1 {
			p.selected++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("+", "right"))):
		return p, p.request(p.current().Add(allocStep))
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("-", "left"))):
		target := p.current().Sub(allocStep)
		if target.IsNegative() {
			target = decimal.Zero
		}
		return p, p.request(target)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "i"))):
		p.typing = true
		p.input.Focus()
		return p, textinput.Blink
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("0"))):
		return p, p.request(decimal.Zero)
	}
	return p, nil
}

// View renders the panel.
func (p *AllocationPanel) View() string {
	var content strings.Builder

	rows := p.rowCount()
	for i := 0; i < rows; i++ {
		var name string
		var amt decimal.Decimal
		if i < len(p.instruments) {
			ins := p.instruments[i]
			name = fmt.Sprintf("%-6s %-18s", ins.Ticker, ins.Name)
			amt = p.snap.Allocations[ins.ID]
		} else {
			name = fmt.Sprintf("%-6s %-18s", "ETF", "Diversified Bundle")
			amt = p.snap.ETFAllocation
		}

		bar := allocationBar(amt, p.snap.Cash.Add(amt))
		row := fmt.Sprintf("%s %-12s %8s", name, bar, "$"+amt.Round(0).String())

		style := styles.RowStyle
		if i == p.selected && p.focused {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		if i < rows-1 {
			content.WriteString("\n")
		}
	}

	if p.typing {
		content.WriteString("\n")
		content.WriteString(styles.SecondaryStyle.Render("Set amount: "))
		content.WriteString(p.input.View())
	}

	title := styles.RenderTitle("💰 Allocations", p.focused)
	hint := styles.MutedStyle.Render("+/- adjust · enter type amount · 0 clear")
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String(), hint)

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}
	return panelStyle.Width(p.width - 2).Render(panel)
}

// allocationBar draws a coarse gauge of amt against amt+cash headroom.
func allocationBar(amt, max decimal.Decimal) string {
	const cells = 10
	if !max.IsPositive() {
		return strings.Repeat("░", cells)
	}
	frac, _ := amt.Div(max).Float64()
	filled := int(frac*cells + 0.5)
	if filled > cells {
		filled = cells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}

// SetFocus sets the focus state of the panel.
func (p *AllocationPanel) SetFocus(focused bool) {
	p.focused = focused
	if !focused {
		p.typing = false
		p.input.Blur()
	}
}

// Typing reports whether the amount input is capturing keys.
func (p *AllocationPanel) Typing() bool { return p.typing }

// SetSize sets the panel dimensions.
func (p *AllocationPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
