package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintutor/marketsim/internal/tutor"
	"github.com/fintutor/marketsim/tui/styles"
)

// tutorShown caps how many exchanges the panel displays.
const tutorShown = 4

// TutorPanel is a small chat window against the AI tutor. It emits
// TutorAskMsg and renders TutorReplyMsg when the answer comes back.
type TutorPanel struct {
	messages  []tutor.Message
	input     textinput.Model
	waiting   bool
	available bool
	focused   bool
	width     int
	height    int
}

// NewTutorPanel creates a tutor panel. available reflects whether the
// tutor client has an API key configured.
func NewTutorPanel(available bool) *TutorPanel {
	ti := textinput.New()
	ti.Placeholder = "Ask the tutor a question..."
	ti.CharLimit = 200
	ti.Width = 40
	return &TutorPanel{input: ti, available: available}
}

// History returns the conversation so far, for the tutor client.
func (p *TutorPanel) History() []tutor.Message {
	return p.messages
}

// Clear drops the conversation (on level change).
func (p *TutorPanel) Clear() {
	p.messages = nil
	p.waiting = false
	p.input.Reset()
}

// Update handles key messages and tutor replies.
func (p *TutorPanel) Update(msg tea.Msg) (*TutorPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case TutorReplyMsg:
		p.waiting = false
		if msg.Err != nil {
			p.messages = append(p.messages, tutor.Message{
				Role:    "assistant",
				Content: "Sorry, I couldn't reach the tutor service. (" + msg.Err.Error() + ")",
			})
			return p, nil
		}
		p.messages = append(p.messages, tutor.Message{Role: "assistant", Content: msg.Answer})
		return p, nil

	case tea.KeyMsg:
		if !p.focused || p.waiting {
			return p, nil
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(p.input.Value())
			if question == "" {
				return p, nil
			}
			history := append([]tutor.Message(nil), p.messages...)
			p.messages = append(p.messages, tutor.Message{Role: "user", Content: question})
			p.waiting = true
			p.input.Reset()
			ask := TutorAskMsg{Question: question, History: history}
			return p, func() tea.Msg { return ask }
		default:
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
	}
	return p, nil
}

// View renders the panel.
func (p *TutorPanel) View() string {
	var content strings.Builder

	if !p.available {
		content.WriteString(styles.MutedStyle.Render("Tutor offline: set TUTOR_API_KEY to enable."))
	} else if len(p.messages) == 0 {
		content.WriteString(styles.MutedStyle.Render("Ask about your portfolio, the news, or the level goal."))
	}

	start := 0
	if len(p.messages) > tutorShown*2 {
		start = len(p.messages) - tutorShown*2
	}
	for _, m := range p.messages[start:] {
		if m.Role == "user" {
			content.WriteString(styles.BadgeStyle.Render("You: "))
			content.WriteString(m.Content)
		} else {
			content.WriteString(styles.SecondaryStyle.Render("Tutor: " + wrap(m.Content, p.width-10)))
		}
		content.WriteString("\n")
	}

	if p.waiting {
		content.WriteString(styles.MutedStyle.Render("Tutor is thinking..."))
		content.WriteString("\n")
	}

	if p.available {
		content.WriteString(p.input.View())
	}

	title := styles.RenderTitle("🎓 Tutor", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}
	return panelStyle.Width(p.width - 2).Render(panel)
}

// wrap folds text at word boundaries to the given width.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+len(w)+1 > width {
			b.WriteString("\n       ")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

// SetFocus sets the focus state of the panel.
func (p *TutorPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

// Typing reports whether the panel is capturing text input.
func (p *TutorPanel) Typing() bool { return p.focused && p.available && !p.waiting }

// SetSize sets the panel dimensions.
func (p *TutorPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width - 8
}
