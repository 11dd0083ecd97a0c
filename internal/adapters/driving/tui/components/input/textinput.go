// Package input provides the inline text field used to edit headlines.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/styles"
)

// TextInput wraps a bubbles textinput with a label.
type TextInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTextInput creates an unfocused input labelled label.
func NewTextInput(s *styles.Styles, label string) *TextInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	return &TextInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Update forwards key messages to the underlying input.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the label and the bordered input.
func (t *TextInput) View() string {
	label := t.styles.Subtitle.Render(t.label + ": ")
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Start focuses the input with value as its initial text.
func (t *TextInput) Start(value string) tea.Cmd {
	t.textinput.SetValue(value)
	t.textinput.CursorEnd()
	return t.textinput.Focus()
}

// Value returns the current input value.
func (t *TextInput) Value() string { return t.textinput.Value() }

// SetValue sets the input value.
func (t *TextInput) SetValue(value string) { t.textinput.SetValue(value) }

// Blur removes focus from the input.
func (t *TextInput) Blur() { t.textinput.Blur() }

// Focused returns whether the input is focused.
func (t *TextInput) Focused() bool { return t.textinput.Focused() }

// SetWidth sets the width of the input.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	inputWidth := width - len(t.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.textinput.Width = inputWidth
}

// Width returns the current width.
func (t *TextInput) Width() int { return t.width }
