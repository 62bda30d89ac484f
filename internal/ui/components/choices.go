package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

// ChoiceMsg is emitted when the learner picks an option.
type ChoiceMsg struct {
	Value string
}

// Choices is a 2x2 grid of answer buttons. Arrow keys move the cursor,
// Enter picks it and 1-4 pick directly.
type Choices struct {
	Options  []string
	Selected int

	// Struck marks options already tried and answered wrong.
	Struck map[string]bool
	// Reveal highlights the correct option once the answer is shown.
	Reveal string
}

// NewChoices creates a grid over options.
func NewChoices(options []string) Choices {
	return Choices{Options: options, Struck: make(map[string]bool)}
}

// Strike marks v as a wrong pick.
func (c *Choices) Strike(v string) {
	if c.Struck == nil {
		c.Struck = make(map[string]bool)
	}
	c.Struck[v] = true
}

// Update handles navigation and picking.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		if c.Selected%2 == 1 {
			c.Selected--
		}
	case "right", "l":
		if c.Selected%2 == 0 && c.Selected+1 < len(c.Options) {
			c.Selected++
		}
	case "up", "k":
		if c.Selected >= 2 {
			c.Selected -= 2
		}
	case "down", "j":
		if c.Selected+2 < len(c.Options) {
			c.Selected += 2
		}
	case "enter", "space":
		return c, c.pick(c.Selected)
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Selected = i
			return c, c.pick(i)
		}
	}
	return c, nil
}

func (c Choices) pick(i int) tea.Cmd {
	v := c.Options[i]
	if c.Struck[v] {
		return nil
	}
	return func() tea.Msg { return ChoiceMsg{Value: v} }
}

// View renders the grid at content width cw.
func (c Choices) View(cw int) string {
	bw := max(cw/2-2, 10)
	var rows []string
	for i := 0; i < len(c.Options); i += 2 {
		cells := []string{c.cell(i, bw)}
		if i+1 < len(c.Options) {
			cells = append(cells, "  ", c.cell(i+1, bw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (c Choices) cell(i, width int) string {
	v := c.Options[i]
	label := fmt.Sprintf("%d) %s", i+1, v)
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder())

	switch {
	case c.Reveal != "" && v == c.Reveal:
		return style.Bold(true).Foreground(theme.BgDark).Background(theme.Success).
			BorderForeground(theme.Success).Render(label)
	case c.Struck[v]:
		return style.Foreground(theme.Error).BorderForeground(theme.Error).Strikethrough(true).Render(label)
	case i == c.Selected && c.Reveal == "":
		return style.Bold(true).Foreground(theme.BgDark).Background(theme.Gold).
			BorderForeground(theme.Gold).Render(label)
	default:
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}
