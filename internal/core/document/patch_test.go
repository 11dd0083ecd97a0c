package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func TestReplaceSection_EmptyPatchIsIdentity(t *testing.T) {
	p := testProperty()
	for _, id := range p.SectionIDs() {
		got, err := ReplaceSection(p, id, Patch{})
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestReplaceSection_MissingSectionIsNoOp(t *testing.T) {
	p := testProperty()
	got, err := ReplaceSection(p, "nonexistent", Patch{"field": 1})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestReplaceSection_MergesKnownFields(t *testing.T) {
	p := galleryProperty()

	got, err := ReplaceSection(p, "h", Patch{
		"parallax":        true,
		"backgroundImage": "https://example.com/new.jpg",
		"unknownField":    "ignored",
	})
	require.NoError(t, err)

	hero := got.Sections[1].(domain.HeroSection)
	assert.True(t, hero.Parallax)
	assert.Equal(t, domain.AssetRef("https://example.com/new.jpg"), hero.BackgroundImage)
	assert.Equal(t, "Hello", hero.Title.Text)
	assert.Equal(t, p.Version+1, got.Version)

	// The input is untouched.
	orig := p.Sections[1].(domain.HeroSection)
	assert.False(t, orig.Parallax)
	assert.Equal(t, domain.AssetRef(""), orig.BackgroundImage)
}

func TestReplaceSection_ShallowMerge(t *testing.T) {
	p := galleryProperty()
	got, err := ReplaceSection(p, "h", Patch{
		"title": map[string]any{"text": "New", "fontSize": "48px"},
	})
	require.NoError(t, err)

	hero := got.Sections[1].(domain.HeroSection)
	assert.Equal(t, "New", hero.Title.Text)
	assert.Equal(t, domain.FontSize(3), hero.Title.FontSize)
	// Nested objects are replaced wholesale.
	assert.Equal(t, "", hero.Title.Color)
}

func TestReplaceSection_UnknownFieldsOnlyIsNoOp(t *testing.T) {
	p := galleryProperty()
	got, err := ReplaceSection(p, "g", Patch{"price": 12})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestReplaceSection_SameValueIsNoOp(t *testing.T) {
	p := galleryProperty()
	got, err := ReplaceSection(p, "c", Patch{"parallax": false})
	require.NoError(t, err)
	assert.Equal(t, p.Version, got.Version)
}

func TestReplaceSection_ProtectsIdentity(t *testing.T) {
	p := galleryProperty()
	got, err := ReplaceSection(p, "g", Patch{"id": "other", "type": "hero"})
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got, err = ReplaceSection(p, "g", Patch{"id": "other", "type": "hero", "title": map[string]any{"text": "Photos"}})
	require.NoError(t, err)
	s := got.Sections[0]
	assert.Equal(t, "g", s.SectionID())
	assert.Equal(t, domain.SectionGallery, s.Type())
	assert.Equal(t, "Photos", s.(domain.GallerySection).Title.Text)
}

func TestReplaceSection_InvalidValue(t *testing.T) {
	p := galleryProperty()
	got, err := ReplaceSection(p, "h", Patch{"parallax": "yes"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, p, got)
}

func TestSetField_DottedPath(t *testing.T) {
	p := galleryProperty()

	got, err := SetField(p, "c", "style.backgroundColor", "#123456")
	require.NoError(t, err)
	assert.Equal(t, "#123456", domain.StyleOf(got.Sections[2]).BackgroundColor)

	got, err = SetField(got, "h", "title.text", "Welcome")
	require.NoError(t, err)
	hero := got.Sections[1].(domain.HeroSection)
	assert.Equal(t, "Welcome", hero.Title.Text)
	assert.Equal(t, "#fff", hero.Title.Color)
	assert.Equal(t, 2, got.Version)
}

func TestSetField_NoOps(t *testing.T) {
	p := galleryProperty()
	tests := []struct {
		name string
		id   string
		path string
	}{
		{"missing section", "nope", "title.text"},
		{"missing field", "c", "subtitle.shadow"},
		{"missing parent", "c", "border.width"},
		{"through scalar", "c", "parallax.value"},
		{"id", "c", "id"},
		{"type", "c", "type"},
		{"empty path", "c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetField(p, tt.id, tt.path, "x")
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestSetField_FontSizeNormalised(t *testing.T) {
	p := galleryProperty()
	got, err := SetField(p, "h", "title.fontSize", "32px")
	require.NoError(t, err)
	assert.Equal(t, domain.FontSize(2), got.Sections[1].(domain.HeroSection).Title.FontSize)
}

func TestUpdateProperty(t *testing.T) {
	p := galleryProperty()

	got, err := UpdateProperty(p, Patch{
		"name":        "Renamed",
		"coordinates": domain.GeoPoint{Lat: 1, Lng: 2},
		"id":          "hijack",
		"sections":    nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, domain.GeoPoint{Lat: 1, Lng: 2}, got.Coordinates)
	assert.Equal(t, "p1", got.ID)
	assert.Len(t, got.Sections, 3)
	assert.Equal(t, p.Version+1, got.Version)

	same, err := UpdateProperty(got, Patch{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, got.Version, same.Version)

	_, err = UpdateProperty(p, Patch{"price": "lots"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
