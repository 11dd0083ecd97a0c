// Package messages defines Bubbletea message types for the outline editor.
// Messages carry the results of commands back into the Elm update loop.
package messages

import (
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// PropertiesLoaded carries the property list.
type PropertiesLoaded struct {
	Properties []domain.PropertySummary
	Err        error
}

// OpenRequested asks the app to open an editor session on a property.
type OpenRequested struct {
	PropertyID string
}

// SessionOpened carries a freshly opened editor session.
type SessionOpened struct {
	Session driving.EditorSession
	Err     error
}

// PropertyChanged is sent when the session publishes a new document
// version, whoever caused it.
type PropertyChanged struct {
	Property domain.Property
}

// EditApplied carries the result of an intent. Focus names the section
// the cursor should follow afterwards, when it moved or was created.
type EditApplied struct {
	Outcome driving.Outcome
	Focus   string
	Err     error
}

// Flushed is sent once buffered edits have been committed and saved.
type Flushed struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewProperties lists the stored properties.
	ViewProperties ViewType = iota
	// ViewOutline is the section outline of one property.
	ViewOutline
	// ViewHelp lists the keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewProperties:
		return "properties"
	case ViewOutline:
		return "outline"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}
