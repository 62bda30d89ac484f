package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

// InputMode restricts which characters a TextInput accepts.
type InputMode int

const (
	InputText   InputMode = iota // anything
	InputNumber                  // digits and a leading minus
	InputTime                    // digits and a colon, e.g. 3:45
	InputSecret                  // anything, echoed as bullets
)

// TextInput wraps bubbles/textinput with Math Forest styling.
type TextInput struct {
	Model textinput.Model
	Mode  InputMode
}

// NewTextInput creates a focused input. limit caps the length when > 0.
func NewTextInput(placeholder string, mode InputMode, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	if mode == InputSecret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return TextInput{Model: ti, Mode: mode}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages, dropping keys the mode does not allow.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if key := kmsg.String(); len(key) == 1 && !t.allows(key[0]) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) allows(c byte) bool {
	digit := c >= '0' && c <= '9'
	switch t.Mode {
	case InputNumber:
		return digit || (c == '-' && t.Model.Value() == "")
	case InputTime:
		return digit || c == ':'
	default:
		return true
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

// Blur removes focus.
func (t *TextInput) Blur() { t.Model.Blur() }

// View renders the text input.
func (t TextInput) View() string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if t.Model.Focused() {
		style = style.Foreground(theme.Gold)
	}
	return style.Render(t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// SetValue replaces the input text.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}
