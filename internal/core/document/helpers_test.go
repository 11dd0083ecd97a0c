package document

import (
	"fmt"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// counter returns an IDFunc producing prefix-1, prefix-2, ...
func counter(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var testNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func testProperty() domain.Property {
	return NewProperty(PropertySeed{
		Name:        "Harbour Villa",
		Address:     "1 Quay Street",
		Price:       950000,
		Coordinates: domain.GeoPoint{Lat: 51.5, Lng: -0.12},
		Now:         testNow,
		NewID:       counter("id"),
	})
}

func galleryProperty() domain.Property {
	return domain.Property{
		ID: "p1",
		Sections: []domain.Section{
			domain.GallerySection{
				Base: domain.Base{ID: "g", Kind: domain.SectionGallery, Style: domain.SectionStyle{BackgroundColor: "#fff"}},
				Images: []domain.GalleryImage{
					{ID: "A", Image: "https://example.com/a.jpg"},
					{ID: "B", Image: "img_b", Caption: "Garden"},
				},
			},
			domain.HeroSection{
				Base: domain.Base{ID: "h", Kind: domain.SectionHero, Style: domain.SectionStyle{BackgroundColor: "#000"}},
				Overlay: domain.Overlay{
					Title: domain.StyledText{Text: "Hello", FontSize: 3, Color: "#fff", FontFamily: domain.FontInter},
					Texts: []domain.DraggableText{{
						ID:         "t1",
						StyledText: domain.StyledText{Text: "Drag me", FontSize: 1, Color: "#fff"},
						Position:   domain.Position{X: 10, Y: 10},
					}},
				},
			},
			domain.ContactSection{
				Base: domain.Base{ID: "c", Kind: domain.SectionContact, Style: domain.SectionStyle{BackgroundColor: "#eee"}},
			},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}
