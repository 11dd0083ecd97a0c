package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

var testNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

// counter returns an IDFunc producing prefix-1, prefix-2, ...
func counter(prefix string) document.IDFunc {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// listing is a property with a hero carrying one draggable text, a gallery
// with images A and B, and a contact section.
func listing() domain.Property {
	return domain.Property{
		ID:      "p1",
		Name:    "Harbour Villa",
		Address: "1 Quay Street",
		Price:   950000,
		Sections: []domain.Section{
			domain.HeroSection{
				Base: domain.Base{ID: "hero", Kind: domain.SectionHero, Style: domain.SectionStyle{BackgroundColor: "#000"}},
				Overlay: domain.Overlay{
					Title: domain.StyledText{Text: "Welcome", FontSize: 3, Color: "#fff", FontFamily: domain.FontInter},
					Texts: []domain.DraggableText{{
						ID:         "t1",
						StyledText: domain.StyledText{Text: "Drag me", FontSize: 1, Color: "#fff"},
						Position:   domain.Position{X: 10, Y: 10},
						Size:       &domain.Size{Width: 200, Height: 80},
					}},
				},
			},
			domain.GallerySection{
				Base: domain.Base{ID: "gallery", Kind: domain.SectionGallery, Style: domain.SectionStyle{BackgroundColor: "#fff"}},
				Images: []domain.GalleryImage{
					{ID: "A", Image: "https://example.com/a.jpg"},
					{ID: "B", Image: "asset_b", Caption: "Garden"},
				},
			},
			domain.ContactSection{
				Base: domain.Base{ID: "contact", Kind: domain.SectionContact, Style: domain.SectionStyle{BackgroundColor: "#eee"}},
			},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

// fakeAssistant is a scripted location assistant.
type fakeAssistant struct {
	point      domain.GeoPoint
	geocodeErr error
	places     []domain.PlaceSuggestion
	placesErr  error
}

func (f *fakeAssistant) Geocode(context.Context, string) (domain.GeoPoint, error) {
	return f.point, f.geocodeErr
}

func (f *fakeAssistant) SuggestNearbyPlaces(context.Context, domain.GeoPoint) ([]domain.PlaceSuggestion, error) {
	return f.places, f.placesErr
}

// failingStore wraps a memory store and fails writes with err.
type failingStore struct {
	*memory.PropertyStore
	err error
}

func (f *failingStore) Save(context.Context, domain.Property) error      { return f.err }
func (f *failingStore) SaveAll(context.Context, []domain.Property) error { return f.err }

// flakyStore wraps a memory store and fails the first failures saves.
type flakyStore struct {
	*memory.PropertyStore

	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyStore) Save(ctx context.Context, p domain.Property) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return errBoom
	}
	return f.PropertyStore.Save(ctx, p)
}

func (f *flakyStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeUploader records uploads.
type fakeUploader struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return "https://storage.example.com/bucket/" + name, nil
}

var errBoom = errors.New("boom")

func newPersistence() (*PersistenceService, *memory.PropertyStore, *memory.BlobStore) {
	store := memory.NewPropertyStore()
	blobs := memory.NewBlobStore()
	svc := NewPersistenceService(store, store, blobs, nil)
	svc.now = func() time.Time { return testNow }
	svc.newID = counter("new")
	return svc, store, blobs
}
