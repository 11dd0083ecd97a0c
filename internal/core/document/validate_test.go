package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(testProperty()))
	assert.NoError(t, Validate(galleryProperty()))
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p domain.Property) domain.Property
		msg    string
	}{
		{
			name:   "missing property id",
			mutate: func(p domain.Property) domain.Property { p.ID = ""; return p },
			msg:    "property id is required",
		},
		{
			name: "duplicate section id",
			mutate: func(p domain.Property) domain.Property {
				p.Sections = append(p.Sections, domain.ContactSection{
					Base: domain.Base{ID: "g", Kind: domain.SectionContact, Style: domain.SectionStyle{BackgroundColor: "#fff"}},
				})
				return p
			},
			msg: "duplicate section id",
		},
		{
			name: "missing background colour",
			mutate: func(p domain.Property) domain.Property {
				p.Sections = []domain.Section{domain.ContactSection{Base: domain.Base{ID: "c", Kind: domain.SectionContact}}}
				return p
			},
			msg: "background colour is required",
		},
		{
			name: "duplicate item id",
			mutate: func(p domain.Property) domain.Property {
				g := p.Sections[0].(domain.GallerySection)
				g.Images = []domain.GalleryImage{{ID: "A"}, {ID: "A"}}
				p.Sections = []domain.Section{g}
				return p
			},
			msg: "duplicate item id A",
		},
		{
			name: "bad font family",
			mutate: func(p domain.Property) domain.Property {
				c := p.Sections[2].(domain.ContactSection)
				c.Title.FontFamily = "Comic Sans"
				p.Sections = []domain.Section{c}
				return p
			},
			msg: "font family",
		},
		{
			name: "dangling button target",
			mutate: func(p domain.Property) domain.Property {
				p.Sections = append(p.Sections, domain.ButtonSection{
					Base:   domain.Base{ID: "b", Kind: domain.SectionButton, Style: domain.SectionStyle{BackgroundColor: "#fff"}},
					Target: domain.LinkTarget{Type: domain.SectionContact, SectionID: "gone"},
				})
				return p
			},
			msg: "button target gone",
		},
		{
			name: "bad coordinates",
			mutate: func(p domain.Property) domain.Property {
				p.Coordinates = domain.GeoPoint{Lat: 200}
				return p
			},
			msg: "coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(galleryProperty()))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
