// Package interaction turns pointer motion into committed placement of
// draggable texts.
//
// A gesture starts on pointer-down over a text (drag) or one of its resize
// handles (resize). While it is active, pointer-move events update a
// transient value only; the document is written once, when the pointer is
// released. Move and release listeners are registered on a page-wide
// EventTarget rather than the element, because a fast pointer can leave the
// element's bounds mid-gesture.
//
// A gesture that is interrupted (the page loses focus, a new gesture starts)
// commits its last computed value, exactly as a release would. Teardown of
// the owning component releases the listeners without committing.
package interaction
