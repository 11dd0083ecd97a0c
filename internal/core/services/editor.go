package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/interaction"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure EditorSession implements the interface.
var _ driving.EditorSession = (*EditorSession)(nil)

// EditorOptions configures an editor session.
type EditorOptions struct {
	// Debounce is the quiet period before buffered values are committed.
	Debounce time.Duration

	// Saver receives every committed document. Nil disables autosave.
	Saver *Autosaver

	// Now stamps UpdatedAt on commits. Defaults to time.Now.
	Now func() time.Time

	// NewID generates ids for created sections and items.
	NewID document.IDFunc
}

type observer struct {
	id int
	fn func(domain.Property)
}

type errorObserver struct {
	id int
	fn func(error)
}

// EditorSession owns one property while it is being edited. Every intent
// is applied under the session lock, so intents take effect one at a time
// in the order they were accepted.
type EditorSession struct {
	mu        sync.Mutex
	property  domain.Property
	admin     bool
	closed    bool
	selection *Selection
	target    *interaction.EventTarget
	tracker   *interaction.Tracker
	observers []observer
	errorObs  []errorObserver
	nextObs   int
	saver     *Autosaver
	now       func() time.Time
	newID     document.IDFunc
}

// NewEditorSession creates a session over p in view mode.
func NewEditorSession(p domain.Property, opts EditorOptions) *EditorSession {
	if opts.Debounce == 0 {
		opts.Debounce = domain.DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = document.NewID
	}
	target := interaction.NewEventTarget()
	s := &EditorSession{
		property: p,
		target:   target,
		tracker:  interaction.NewTracker(target),
		saver:    opts.Saver,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	s.selection = NewSelection(opts.Debounce, s.flushBuffered)
	return s
}

// Apply applies one intent.
func (s *EditorSession) Apply(ctx context.Context, in driving.Intent) (driving.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return driving.Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.property.Version
	if s.closed {
		return driving.Outcome{Version: before}, domain.ErrSessionClosed
	}
	if !s.admin {
		return driving.Outcome{Version: before}, domain.ErrAdminRequired
	}

	created, err := s.apply(in)
	return driving.Outcome{
		Version:   s.property.Version,
		Changed:   s.property.Version != before,
		CreatedID: created,
	}, err
}

func (s *EditorSession) apply(in driving.Intent) (string, error) {
	p := s.property

	switch v := in.(type) {
	case driving.Select:
		if !document.HasElement(p, v.Ref) {
			return "", nil
		}
		s.commitEdits(s.selection.Select(v.Ref))

	case driving.Deselect, driving.BackgroundClick:
		s.commitEdits(s.selection.Clear())

	case driving.BufferField:
		return "", s.buffer(v)

	case driving.SetField:
		return "", s.commit(document.SetField(p, v.SectionID, v.Path, v.Value))

	case driving.ReplaceSection:
		return "", s.commit(document.ReplaceSection(p, v.SectionID, v.Patch))

	case driving.AddSection:
		return s.addSection(v)

	case driving.RemoveSection:
		return "", s.commit(document.RemoveSection(p, v.SectionID), nil)

	case driving.ReorderSections:
		return "", s.commit(document.ReorderSections(p, v.IDs), nil)

	case driving.MoveSection:
		return "", s.commit(document.MoveSection(p, v.SectionID, v.Delta), nil)

	case driving.AddItem:
		next, id, err := document.AddItem(p, v.SectionID, v.Seed, s.newID)
		if err := s.commit(next, err); err != nil {
			return "", err
		}
		return id, nil

	case driving.UpdateItem:
		return "", s.commit(document.UpdateItem(p, v.SectionID, v.ItemID, v.Patch))

	case driving.RemoveItem:
		return "", s.commit(document.RemoveItem(p, v.SectionID, v.ItemID))

	case driving.ReorderItems:
		return "", s.commit(document.ReorderItems(p, v.SectionID, v.IDs))

	case driving.UpdateProperty:
		return "", s.commit(document.UpdateProperty(p, v.Patch))

	case driving.ApplyLocation:
		return "", s.commit(document.ApplyLocationPlan(p, v.Plan, s.newID))

	case driving.PointerDown:
		return "", s.beginGesture(v)

	case driving.PointerMove:
		s.target.Dispatch(interaction.Event{Type: interaction.EventPointerMove, Point: v.Point})

	case driving.PointerUp:
		s.target.Dispatch(interaction.Event{Type: interaction.EventPointerUp, Point: v.Point})

	case driving.Blur:
		s.target.Dispatch(interaction.Event{Type: interaction.EventBlur})

	default:
		return "", fmt.Errorf("%w: unsupported intent %T", domain.ErrInvalidInput, in)
	}
	return "", nil
}

// buffer records a transient value. A value for an element other than the
// selected one moves the selection there first.
func (s *EditorSession) buffer(v driving.BufferField) error {
	if v.Path == "" {
		return fmt.Errorf("%w: field path is required", domain.ErrInvalidInput)
	}
	ref := v.Ref
	current, active := s.selection.Current()
	if ref.IsZero() {
		if !active {
			return fmt.Errorf("%w: no element selected", domain.ErrInvalidInput)
		}
		ref = current
	}
	if !document.HasElement(s.property, ref) {
		return nil
	}
	if !active || current != ref {
		s.commitEdits(s.selection.Select(ref))
	}
	s.selection.Buffer(BufferedEdit{Ref: ref, Path: v.Path, Value: v.Value})
	return nil
}

func (s *EditorSession) addSection(v driving.AddSection) (string, error) {
	target := ""
	for _, sec := range s.property.Sections {
		if sec.Type() == domain.SectionContact {
			target = sec.SectionID()
			break
		}
	}
	sec, err := document.NewSection(v.Type, document.SectionContext{
		NewID:           s.newID,
		Title:           v.Title,
		Coordinates:     s.property.Coordinates,
		TargetSectionID: target,
	})
	if err != nil {
		return "", err
	}
	index := v.Index
	if index < 0 {
		index = len(s.property.Sections)
	}
	if err := s.commit(document.InsertSection(s.property, sec, index)); err != nil {
		return "", err
	}
	return sec.SectionID(), nil
}

func (s *EditorSession) beginGesture(v driving.PointerDown) error {
	if v.Ref.Kind != domain.ElementText {
		return fmt.Errorf("%w: gestures apply to draggable texts", domain.ErrInvalidInput)
	}
	text, ok := document.DraggableText(s.property, v.Ref.SectionID, v.Ref.ItemID)
	if !ok {
		return nil
	}

	var g interaction.Gesture
	if v.Handle == "" {
		g = interaction.NewDrag(v.Container, text.Position)
	} else {
		size := v.Size
		if size == (domain.Size{}) && text.Size != nil {
			size = *text.Size
		}
		r, err := interaction.NewResize(v.Handle, size, v.Point)
		if err != nil {
			return err
		}
		g = r
	}

	s.commitEdits(s.selection.Select(v.Ref))
	ref := v.Ref
	s.tracker.Begin(g, func(res interaction.Result) { s.commitGesture(ref, res) })
	return nil
}

// commitGesture stores the final value of a drag or resize. The tracker
// only calls it from code paths that hold the session lock.
func (s *EditorSession) commitGesture(ref domain.ElementRef, res interaction.Result) {
	next, err := document.UpdateItem(s.property, ref.SectionID, ref.ItemID, res.Patch())
	if err := s.commit(next, err); err != nil {
		logger.Warn("commit gesture on %s/%s: %v", ref.SectionID, ref.ItemID, err)
		return
	}
	logger.Debug("gesture committed on %s/%s", ref.SectionID, ref.ItemID)
}

func (s *EditorSession) commitEdits(edits []BufferedEdit) {
	for _, e := range edits {
		var (
			next domain.Property
			err  error
		)
		if e.Ref.ItemID != "" {
			next, err = document.SetItemField(s.property, e.Ref.SectionID, e.Ref.ItemID, e.Path, e.Value)
		} else {
			next, err = document.SetField(s.property, e.Ref.SectionID, e.Path, e.Value)
		}
		if err := s.commit(next, err); err != nil {
			logger.Warn("commit buffered %s on %s: %v", e.Path, e.Ref.SectionID, err)
			s.notifyError(fmt.Errorf("%s: %w", e.Path, err))
		}
	}
}

// commit makes next the current document when the transform changed it.
// A document that would not save is rejected and the current one kept.
// The caller holds the session lock.
func (s *EditorSession) commit(next domain.Property, err error) error {
	if err != nil {
		return err
	}
	if next.Version == s.property.Version {
		return nil
	}
	if err := document.Validate(next); err != nil {
		return err
	}
	next.UpdatedAt = s.now().UTC()
	s.property = next

	if ref, ok := s.selection.Current(); ok && !document.HasElement(next, ref) {
		s.selection.Drop()
	}
	for _, o := range s.observers {
		o.fn(next)
	}
	if s.saver != nil {
		s.saver.Schedule(next)
	}
	return nil
}

// flushBuffered commits buffered values after the quiet period.
func (s *EditorSession) flushBuffered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.commitEdits(s.selection.Take())
}

// Property returns the current committed document.
func (s *EditorSession) Property() domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.property
}

// Selected returns the element in edit focus.
func (s *EditorSession) Selected() (domain.ElementRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Current()
}

// Admin reports whether editing is enabled.
func (s *EditorSession) Admin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

// SetAdmin toggles admin mode. Turning it off ends any gesture with its
// last value, commits buffered values and clears the selection.
func (s *EditorSession) SetAdmin(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == on {
		return
	}
	s.admin = on
	if !on {
		s.tracker.Interrupt()
		s.commitEdits(s.selection.Clear())
	}
}

// SetDebounce changes the quiet period for buffered values.
func (s *EditorSession) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetWindow(d)
}

// Subscribe registers fn to receive every committed document.
func (s *EditorSession) Subscribe(fn func(domain.Property)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// SubscribeErrors registers fn to receive failures no intent returns:
// rejected buffered values and failed background saves.
func (s *EditorSession) SubscribeErrors(fn func(error)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextObs++
	id := s.nextObs
	s.errorObs = append(s.errorObs, errorObserver{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.errorObs {
			if o.id == id {
				s.errorObs = append(s.errorObs[:i:i], s.errorObs[i+1:]...)
				return
			}
		}
	}
}

// reportError passes a background failure to the error observers.
func (s *EditorSession) reportError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyError(err)
}

// notifyError must be called with mu held.
func (s *EditorSession) notifyError(err error) {
	for _, o := range s.errorObs {
		o.fn(err)
	}
}

// Flush commits buffered values and waits for pending saves.
func (s *EditorSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.commitEdits(s.selection.Take())
	saver := s.saver
	s.mu.Unlock()

	if saver == nil {
		return nil
	}
	return saver.Flush(ctx)
}

// Close flushes the session and rejects further intents. A gesture in
// progress is dropped.
func (s *EditorSession) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.tracker.Teardown()
	s.commitEdits(s.selection.Take())
	s.closed = true
	saver := s.saver
	s.mu.Unlock()

	if saver == nil {
		return nil
	}
	return saver.Flush(ctx)
}
