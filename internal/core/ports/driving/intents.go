package driving

import (
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/interaction"
)

// Intent is a request from an editing surface to change the session.
// The set of intents is closed; see the types in this file.
type Intent interface {
	intent()
}

// Selection intents.
type (
	// Select puts one element in edit focus, replacing any other.
	Select struct {
		Ref domain.ElementRef
	}

	// Deselect closes the active editor.
	Deselect struct{}

	// BackgroundClick is a click on a designated background region.
	// It closes the active editor like Deselect.
	BackgroundClick struct{}

	// BufferField records a transient value for a field of the selected
	// element. Buffered values are committed after a quiet period, when
	// the selection changes, or on Flush.
	BufferField struct {
		Ref   domain.ElementRef
		Path  string
		Value any
	}
)

// Document intents. Each one is committed immediately.
type (
	// SetField sets a section field by dotted path.
	SetField struct {
		SectionID string
		Path      string
		Value     any
	}

	// ReplaceSection shallow-merges Patch into a section.
	ReplaceSection struct {
		SectionID string
		Patch     map[string]any
	}

	// AddSection creates a default section of Type at Index.
	// A negative Index appends.
	AddSection struct {
		Type  domain.SectionType
		Index int
		Title string
	}

	// RemoveSection deletes a section.
	RemoveSection struct {
		SectionID string
	}

	// ReorderSections re-sorts sections; unlisted ones are appended.
	ReorderSections struct {
		IDs []string
	}

	// MoveSection shifts a section up (negative) or down (positive).
	MoveSection struct {
		SectionID string
		Delta     int
	}

	// AddItem appends an item to a section's collection.
	AddItem struct {
		SectionID string
		Seed      map[string]any
	}

	// UpdateItem shallow-merges Patch into one collection item.
	UpdateItem struct {
		SectionID string
		ItemID    string
		Patch     map[string]any
	}

	// RemoveItem deletes one collection item.
	RemoveItem struct {
		SectionID string
		ItemID    string
	}

	// ReorderItems re-sorts a section's collection.
	ReorderItems struct {
		SectionID string
		IDs       []string
	}

	// UpdateProperty merges Patch into the headline fields of the property.
	UpdateProperty struct {
		Patch map[string]any
	}

	// ApplyLocation stores an enrichment result: the coordinates go to
	// the property and every location section, the places replace the
	// nearby places of every location section.
	ApplyLocation struct {
		Plan domain.LocationPlan
	}
)

// Pointer intents drive drag and resize of draggable texts.
type (
	// PointerDown starts a gesture on a draggable text. An empty Handle
	// drags; otherwise the text is resized from that handle.
	PointerDown struct {
		Ref       domain.ElementRef
		Handle    interaction.Handle
		Point     interaction.Point
		Container interaction.Rect
		Size      domain.Size
	}

	// PointerMove moves the pointer anywhere on the page.
	PointerMove struct {
		Point interaction.Point
	}

	// PointerUp releases the pointer anywhere on the page.
	PointerUp struct {
		Point interaction.Point
	}

	// Blur reports that the page lost focus.
	Blur struct{}
)

func (Select) intent()          {}
func (Deselect) intent()        {}
func (BackgroundClick) intent() {}
func (BufferField) intent()     {}
func (SetField) intent()        {}
func (ReplaceSection) intent()  {}
func (AddSection) intent()      {}
func (RemoveSection) intent()   {}
func (ReorderSections) intent() {}
func (MoveSection) intent()     {}
func (AddItem) intent()         {}
func (UpdateItem) intent()      {}
func (RemoveItem) intent()      {}
func (ReorderItems) intent()    {}
func (UpdateProperty) intent()  {}
func (ApplyLocation) intent()   {}
func (PointerDown) intent()     {}
func (PointerMove) intent()     {}
func (PointerUp) intent()       {}
func (Blur) intent()            {}

// Outcome reports what applying an intent did.
type Outcome struct {
	// Version is the property version after the intent.
	Version int

	// Changed is true when the intent committed a change.
	Changed bool

	// CreatedID is the id of a section or item created by the intent.
	CreatedID string
}
