package services

import (
	"time"

	"github.com/bep/debounce"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// BufferedEdit is a transient field value waiting to be committed.
type BufferedEdit struct {
	Ref   domain.ElementRef
	Path  string
	Value any
}

// Selection tracks the one element in edit focus and the values buffered
// by its editor. Buffered values are committed by the owner once the
// debounce window has passed without a new value, or earlier when the
// selection changes.
//
// Selection is not safe for concurrent use; EditorSession guards it.
type Selection struct {
	current domain.ElementRef
	active  bool
	pending []BufferedEdit

	window    time.Duration
	debounced func(func())
	onQuiet   func()
}

// NewSelection creates an idle selection. onQuiet is called from a timer
// goroutine once buffered values have been quiet for the window.
func NewSelection(window time.Duration, onQuiet func()) *Selection {
	window = domain.ClampDebounce(window)
	return &Selection{
		window:    window,
		debounced: debounce.New(window),
		onQuiet:   onQuiet,
	}
}

// Current returns the element in edit focus.
func (s *Selection) Current() (domain.ElementRef, bool) {
	return s.current, s.active
}

// Window returns the debounce window.
func (s *Selection) Window() time.Duration {
	return s.window
}

// SetWindow changes the debounce window for values buffered from now on.
func (s *Selection) SetWindow(d time.Duration) {
	d = domain.ClampDebounce(d)
	if d == s.window {
		return
	}
	s.window = d
	s.debounced = debounce.New(d)
}

// Select moves edit focus to ref and returns the buffered values of the
// previous element, which the caller must commit. Selecting the element
// already in focus keeps its buffer.
func (s *Selection) Select(ref domain.ElementRef) []BufferedEdit {
	if s.active && s.current == ref {
		return nil
	}
	edits := s.Take()
	s.current = ref
	s.active = true
	return edits
}

// Clear returns to idle and returns the buffered values to commit.
func (s *Selection) Clear() []BufferedEdit {
	edits := s.Take()
	s.current = domain.ElementRef{}
	s.active = false
	return edits
}

// Drop returns to idle and discards buffered values. It is used when the
// selected element no longer exists.
func (s *Selection) Drop() {
	s.pending = nil
	s.current = domain.ElementRef{}
	s.active = false
}

// Buffer records a transient value. A later value for the same element and
// path replaces the earlier one. Each call restarts the quiet timer.
func (s *Selection) Buffer(edit BufferedEdit) {
	replaced := false
	for i, e := range s.pending {
		if e.Ref == edit.Ref && e.Path == edit.Path {
			s.pending[i].Value = edit.Value
			replaced = true
			break
		}
	}
	if !replaced {
		s.pending = append(s.pending, edit)
	}
	if s.onQuiet != nil {
		s.debounced(s.onQuiet)
	}
}

// Take removes and returns the buffered values in the order first buffered.
func (s *Selection) Take() []BufferedEdit {
	edits := s.pending
	s.pending = nil
	return edits
}

// Pending returns the number of buffered values.
func (s *Selection) Pending() int {
	return len(s.pending)
}
