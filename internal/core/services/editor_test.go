package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/interaction"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var textRef = domain.ElementRef{Kind: domain.ElementText, SectionID: "hero", ItemID: "t1"}

func newSession(t *testing.T, opts EditorOptions) *EditorSession {
	t.Helper()
	if opts.NewID == nil {
		opts.NewID = counter("id")
	}
	opts.Now = func() time.Time { return testNow.Add(time.Hour) }
	s := NewEditorSession(listing(), opts)
	s.SetAdmin(true)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

// commits counts committed documents.
func commits(s *EditorSession) *atomic.Int32 {
	var n atomic.Int32
	s.Subscribe(func(domain.Property) { n.Add(1) })
	return &n
}

func apply(t *testing.T, s *EditorSession, in driving.Intent) driving.Outcome {
	t.Helper()
	out, err := s.Apply(context.Background(), in)
	require.NoError(t, err)
	return out
}

func text(t *testing.T, s *EditorSession) domain.DraggableText {
	t.Helper()
	tx, ok := document.DraggableText(s.Property(), "hero", "t1")
	require.True(t, ok)
	return tx
}

func TestEditorSession_RequiresAdmin(t *testing.T) {
	s := NewEditorSession(listing(), EditorOptions{})

	_, err := s.Apply(context.Background(), driving.Select{Ref: textRef})
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	_, err = s.Apply(context.Background(), driving.RemoveSection{SectionID: "gallery"})
	assert.ErrorIs(t, err, domain.ErrAdminRequired)
	assert.Len(t, s.Property().Sections, 3)
}

func TestEditorSession_ClosedRejectsIntents(t *testing.T) {
	s := newSession(t, EditorOptions{})
	require.NoError(t, s.Close(context.Background()))

	_, err := s.Apply(context.Background(), driving.Deselect{})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestEditorSession_SingleSelection(t *testing.T) {
	s := newSession(t, EditorOptions{})
	a := domain.ElementRef{Kind: domain.ElementItem, SectionID: "gallery", ItemID: "A"}
	b := domain.ElementRef{Kind: domain.ElementSection, SectionID: "contact"}

	apply(t, s, driving.Select{Ref: a})
	apply(t, s, driving.Select{Ref: b})

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, b, selected)

	apply(t, s, driving.BackgroundClick{})
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestEditorSession_SelectStaleElementIsNoop(t *testing.T) {
	s := newSession(t, EditorOptions{})
	out := apply(t, s, driving.Select{Ref: domain.ElementRef{Kind: domain.ElementSection, SectionID: "gone"}})

	assert.False(t, out.Changed)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestEditorSession_DebouncedColourCommit(t *testing.T) {
	s := newSession(t, EditorOptions{Debounce: domain.MinDebounce})
	n := commits(s)
	ref := domain.ElementRef{Kind: domain.ElementField, SectionID: "gallery", Field: "style.backgroundColor"}

	apply(t, s, driving.Select{Ref: ref})
	for _, c := range []string{"#100000", "#200000", "#300000", "#400000", "#500000"} {
		apply(t, s, driving.BufferField{Path: "style.backgroundColor", Value: c})
		time.Sleep(15 * time.Millisecond)
	}
	assert.Zero(t, n.Load())

	assert.Eventually(t, func() bool { return n.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(2 * domain.MinDebounce)
	assert.Equal(t, int32(1), n.Load())

	sec, _ := s.Property().Section("gallery")
	assert.Equal(t, "#500000", domain.StyleOf(sec).BackgroundColor)
}

func TestEditorSession_SelectionChangeCommitsBuffer(t *testing.T) {
	s := newSession(t, EditorOptions{Debounce: domain.MaxDebounce})
	ref := domain.ElementRef{Kind: domain.ElementItem, SectionID: "gallery", ItemID: "B"}

	apply(t, s, driving.BufferField{Ref: ref, Path: "caption", Value: "Orchard"})
	out := apply(t, s, driving.Select{Ref: domain.ElementRef{Kind: domain.ElementSection, SectionID: "contact"}})

	assert.True(t, out.Changed)
	g := s.Property().Sections[1].(domain.GallerySection)
	assert.Equal(t, "Orchard", g.Images[1].Caption)
}

func TestEditorSession_BufferWithoutSelection(t *testing.T) {
	s := newSession(t, EditorOptions{})
	_, err := s.Apply(context.Background(), driving.BufferField{Path: "caption", Value: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEditorSession_OrphanedSelectionIsCleared(t *testing.T) {
	s := newSession(t, EditorOptions{})
	ref := domain.ElementRef{Kind: domain.ElementItem, SectionID: "gallery", ItemID: "A"}

	apply(t, s, driving.Select{Ref: ref})
	apply(t, s, driving.RemoveItem{SectionID: "gallery", ItemID: "A"})

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestEditorSession_AdminOffCommitsAndClears(t *testing.T) {
	s := newSession(t, EditorOptions{Debounce: domain.MaxDebounce})
	ref := domain.ElementRef{Kind: domain.ElementItem, SectionID: "gallery", ItemID: "A"}

	apply(t, s, driving.BufferField{Ref: ref, Path: "caption", Value: "Front"})
	s.SetAdmin(false)

	assert.False(t, s.Admin())
	_, ok := s.Selected()
	assert.False(t, ok)
	g := s.Property().Sections[1].(domain.GallerySection)
	assert.Equal(t, "Front", g.Images[0].Caption)
}

func TestEditorSession_GalleryAddDelete(t *testing.T) {
	s := newSession(t, EditorOptions{NewID: counter("img")})

	out := apply(t, s, driving.AddItem{SectionID: "gallery", Seed: map[string]any{"caption": "Pool"}})
	assert.Equal(t, "img-1", out.CreatedID)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"A", "B", "img-1"}, document.ItemIDs(s.Property().Sections[1]))

	apply(t, s, driving.RemoveItem{SectionID: "gallery", ItemID: "A"})
	assert.Equal(t, []string{"B", "img-1"}, document.ItemIDs(s.Property().Sections[1]))
}

func TestEditorSession_SectionIntents(t *testing.T) {
	s := newSession(t, EditorOptions{NewID: counter("sec")})

	out := apply(t, s, driving.AddSection{Type: domain.SectionButton, Index: -1})
	require.NotEmpty(t, out.CreatedID)
	assert.Equal(t, []string{"hero", "gallery", "contact", out.CreatedID}, s.Property().SectionIDs())

	btn := s.Property().Sections[3].(domain.ButtonSection)
	assert.Equal(t, "contact", btn.Target.SectionID)

	apply(t, s, driving.MoveSection{SectionID: out.CreatedID, Delta: -3})
	assert.Equal(t, out.CreatedID, s.Property().Sections[0].SectionID())

	apply(t, s, driving.ReorderSections{IDs: []string{"contact"}})
	assert.Equal(t, "contact", s.Property().Sections[0].SectionID())
	assert.Len(t, s.Property().Sections, 4)

	_, err := s.Apply(context.Background(), driving.AddSection{Type: "carousel"})
	assert.ErrorIs(t, err, domain.ErrUnknownSectionType)
}

func TestEditorSession_RemovingButtonTargetKeepsDocumentSaveable(t *testing.T) {
	store := memory.NewPropertyStore()
	s := newSession(t, EditorOptions{NewID: counter("sec"), Saver: NewAutosaver(store.Save, nil)})

	out := apply(t, s, driving.AddSection{Type: domain.SectionButton, Index: -1})
	apply(t, s, driving.RemoveSection{SectionID: "contact"})
	apply(t, s, driving.SetField{SectionID: "hero", Path: "title.text", Value: "Sea views"})
	require.NoError(t, s.Flush(context.Background()))

	btn, ok := s.Property().Section(out.CreatedID)
	require.True(t, ok)
	assert.Empty(t, btn.(domain.ButtonSection).Target.SectionID)
	assert.Equal(t, domain.SectionContact, btn.(domain.ButtonSection).Target.Type)

	saved, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, s.Property().Version, saved.Version)
}

func TestEditorSession_RejectsEditThatWouldNotSave(t *testing.T) {
	s := newSession(t, EditorOptions{})
	n := commits(s)
	before := s.Property()

	out, err := s.Apply(context.Background(), driving.SetField{SectionID: "hero", Path: "style.backgroundColor", Value: ""})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "background colour is required")
	assert.False(t, out.Changed)
	assert.Equal(t, before, s.Property())
	assert.Zero(t, n.Load())
}

func TestEditorSession_RejectedBufferedValueIsReported(t *testing.T) {
	s := newSession(t, EditorOptions{})
	var reported []error
	s.SubscribeErrors(func(err error) { reported = append(reported, err) })
	before := s.Property()

	ref := domain.ElementRef{Kind: domain.ElementField, SectionID: "gallery", Field: "style.backgroundColor"}
	apply(t, s, driving.Select{Ref: ref})
	apply(t, s, driving.BufferField{Path: "style.backgroundColor", Value: "  "})
	require.NoError(t, s.Flush(context.Background()))

	assert.Equal(t, before.Version, s.Property().Version)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], domain.ErrInvalidInput)
}

func TestEditorSession_MissingTargetIsNoop(t *testing.T) {
	s := newSession(t, EditorOptions{})
	n := commits(s)
	before := s.Property()

	out := apply(t, s, driving.SetField{SectionID: "nope", Path: "title.text", Value: "x"})
	assert.False(t, out.Changed)
	out = apply(t, s, driving.ReplaceSection{SectionID: "gallery", Patch: map[string]any{}})
	assert.False(t, out.Changed)

	assert.Equal(t, before, s.Property())
	assert.Zero(t, n.Load())
}

func TestEditorSession_DragClampsAndCommitsOnce(t *testing.T) {
	s := newSession(t, EditorOptions{})
	n := commits(s)
	container := interaction.Rect{Left: 100, Top: 100, Width: 200, Height: 100}

	apply(t, s, driving.PointerDown{Ref: textRef, Container: container, Point: interaction.Point{X: 120, Y: 110}})
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 70, Y: 150}})
	assert.Zero(t, n.Load())

	apply(t, s, driving.PointerUp{Point: interaction.Point{X: 70, Y: 150}})
	assert.Equal(t, int32(1), n.Load())
	assert.Equal(t, domain.Position{X: 0, Y: 50}, text(t, s).Position)

	apply(t, s, driving.PointerDown{Ref: textRef, Container: container})
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 370, Y: 150}})
	apply(t, s, driving.PointerUp{})
	assert.Equal(t, domain.Position{X: 100, Y: 50}, text(t, s).Position)

	// The gesture is over; further moves do nothing.
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 200, Y: 150}})
	assert.Equal(t, int32(2), n.Load())
	assert.Zero(t, s.target.ListenerCount())
}

func TestEditorSession_ResizeFloor(t *testing.T) {
	s := newSession(t, EditorOptions{})

	apply(t, s, driving.PointerDown{Ref: textRef, Handle: interaction.HandleE, Point: interaction.Point{X: 500, Y: 500}})
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 310, Y: 500}})
	apply(t, s, driving.PointerUp{})

	require.NotNil(t, text(t, s).Size)
	assert.Equal(t, domain.Size{Width: 50, Height: 80}, *text(t, s).Size)
}

func TestEditorSession_BlurCommitsLastValue(t *testing.T) {
	s := newSession(t, EditorOptions{})
	container := interaction.Rect{Width: 100, Height: 100}

	apply(t, s, driving.PointerDown{Ref: textRef, Container: container})
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 25, Y: 75}})
	apply(t, s, driving.Blur{})

	assert.Equal(t, domain.Position{X: 25, Y: 75}, text(t, s).Position)
}

func TestEditorSession_CloseDropsGesture(t *testing.T) {
	s := newSession(t, EditorOptions{})
	container := interaction.Rect{Width: 100, Height: 100}

	apply(t, s, driving.PointerDown{Ref: textRef, Container: container})
	apply(t, s, driving.PointerMove{Point: interaction.Point{X: 25, Y: 75}})
	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, domain.Position{X: 10, Y: 10}, text(t, s).Position)
	assert.Zero(t, s.target.ListenerCount())
}

func TestEditorSession_PointerDownValidation(t *testing.T) {
	s := newSession(t, EditorOptions{})

	_, err := s.Apply(context.Background(), driving.PointerDown{Ref: domain.ElementRef{Kind: domain.ElementSection, SectionID: "hero"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Apply(context.Background(), driving.PointerDown{Ref: textRef, Handle: "up"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out := apply(t, s, driving.PointerDown{Ref: domain.ElementRef{Kind: domain.ElementText, SectionID: "hero", ItemID: "gone"}})
	assert.False(t, out.Changed)
	assert.Zero(t, s.target.ListenerCount())
}

func TestEditorSession_ApplyLocation(t *testing.T) {
	s := newSession(t, EditorOptions{})
	plan := domain.LocationPlan{Coordinates: domain.GeoPoint{Lat: 1, Lng: 2}}

	out := apply(t, s, driving.ApplyLocation{Plan: plan})
	assert.True(t, out.Changed)
	assert.Equal(t, plan.Coordinates, s.Property().Coordinates)
}

func TestEditorSession_UnsubscribeAndUpdatedAt(t *testing.T) {
	s := newSession(t, EditorOptions{})
	var got []int
	cancel := s.Subscribe(func(p domain.Property) { got = append(got, p.Version) })

	apply(t, s, driving.UpdateProperty{Patch: map[string]any{"name": "Harbour House"}})
	cancel()
	apply(t, s, driving.UpdateProperty{Patch: map[string]any{"name": "Harbour Home"}})

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, testNow.Add(time.Hour), s.Property().UpdatedAt)
}

func TestEditorSession_AutosavesLatest(t *testing.T) {
	store := memory.NewPropertyStore()
	saver := NewAutosaver(store.Save, nil)
	s := newSession(t, EditorOptions{Saver: saver})

	for _, name := range []string{"One", "Two", "Three"} {
		apply(t, s, driving.UpdateProperty{Patch: map[string]any{"name": name}})
	}
	require.NoError(t, s.Flush(context.Background()))

	saved, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Three", saved.Name)
	assert.Equal(t, 3, saved.Version)
}
