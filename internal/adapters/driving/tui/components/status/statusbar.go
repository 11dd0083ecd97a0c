// Package status provides the status bar shown under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/styles"
)

// State represents what the editor is doing, for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateEditing State = "editing"
	StateSaving  State = "saving"
	StateError   State = "error"
)

// Bar displays editor status on the left and keybinding hints on the right.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	state   State
	message string
	version int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		hints:  km.ListHelp(),
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.styles.Muted.Render(keymap.HelpLine(s.hints))

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateSaving:
		return s.styles.Warning.Render("Saving...")
	case StateEditing:
		return s.styles.Subtitle.Render("Editing")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	}

	text := "Ready"
	if s.version > 0 {
		text = fmt.Sprintf("v%d", s.version)
	}
	if s.message != "" {
		text += " · " + s.message
	}
	return s.styles.Muted.Render(text)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the current state.
func (s *Bar) State() State { return s.state }

// SetMessage sets a short note shown next to the state.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetError switches to the error state with err's text.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.message = err.Error()
}

// SetVersion records the document version shown when ready.
func (s *Bar) SetVersion(v int) { s.version = v }

// SetHints replaces the keybinding hints.
func (s *Bar) SetHints(bindings []key.Binding) { s.hints = bindings }

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the current width.
func (s *Bar) Width() int { return s.width }

// Clear resets the status bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
