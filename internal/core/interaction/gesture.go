package interaction

import (
	"fmt"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// Result is the value a gesture commits. Exactly one field is set.
type Result struct {
	Position *domain.Position
	Size     *domain.Size
}

// Patch returns the item patch that stores the result on a draggable text.
func (r Result) Patch() map[string]any {
	patch := map[string]any{}
	if r.Position != nil {
		patch["position"] = *r.Position
	}
	if r.Size != nil {
		patch["size"] = *r.Size
	}
	return patch
}

// Gesture is an in-progress pointer interaction.
type Gesture interface {
	// Move updates the transient value for a pointer position.
	Move(pt Point)

	// Result returns the last computed value.
	Result() Result
}

// Drag moves a text inside its container.
type Drag struct {
	container Rect
	pos       domain.Position
}

// NewDrag starts a drag inside container, whose bounds are captured once.
func NewDrag(container Rect, start domain.Position) *Drag {
	return &Drag{container: container, pos: start.Clamp()}
}

// Move recomputes the position from the pointer. An empty container keeps
// the previous position.
func (d *Drag) Move(pt Point) {
	if d.container.Empty() {
		return
	}
	d.pos = d.container.PercentOf(pt)
}

// Position returns the transient position.
func (d *Drag) Position() domain.Position {
	return d.pos
}

// Result returns the position to commit.
func (d *Drag) Result() Result {
	pos := d.pos
	return Result{Position: &pos}
}

// Handle is one of the eight resize handles.
type Handle string

// Resize handles: four edges and four corners.
const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

// AllHandles returns every resize handle.
func AllHandles() []Handle {
	return []Handle{HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW}
}

// IsValid returns true if the handle is recognised.
func (h Handle) IsValid() bool {
	switch h {
	case HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW:
		return true
	default:
		return false
	}
}

// axes returns the sign each pointer delta contributes to width and height.
func (h Handle) axes() (dw, dh float64) {
	switch h {
	case HandleN:
		return 0, -1
	case HandleS:
		return 0, 1
	case HandleE:
		return 1, 0
	case HandleW:
		return -1, 0
	case HandleNE:
		return 1, -1
	case HandleNW:
		return -1, -1
	case HandleSE:
		return 1, 1
	case HandleSW:
		return -1, 1
	default:
		return 0, 0
	}
}

// Resize changes the pixel size of a text box from one handle.
type Resize struct {
	handle Handle
	start  domain.Size
	origin Point
	size   domain.Size
}

// NewResize starts a resize from handle with the pointer at origin.
func NewResize(handle Handle, start domain.Size, origin Point) (*Resize, error) {
	if !handle.IsValid() {
		return nil, fmt.Errorf("%w: resize handle %q", domain.ErrInvalidInput, handle)
	}
	return &Resize{handle: handle, start: start, origin: origin, size: start.Floor()}, nil
}

// Move recomputes the size from the pointer delta, never below the minimum.
func (r *Resize) Move(pt Point) {
	dw, dh := r.handle.axes()
	r.size = domain.Size{
		Width:  r.start.Width + dw*(pt.X-r.origin.X),
		Height: r.start.Height + dh*(pt.Y-r.origin.Y),
	}.Floor()
}

// Size returns the transient size.
func (r *Resize) Size() domain.Size {
	return r.size
}

// Result returns the size to commit.
func (r *Resize) Result() Result {
	size := r.size
	return Result{Size: &size}
}
