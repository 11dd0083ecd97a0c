package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProperty() Property {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return Property{
		ID:          "prop-1",
		Name:        "Harbour Villa",
		Address:     "1 Quay Street",
		Price:       1250000,
		MainImage:   "https://example.com/cover.jpg",
		Coordinates: GeoPoint{Lat: 51.5, Lng: -0.12},
		Sections:    sampleSections(),
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
		Version:     4,
	}
}

func TestProperty_JSONRoundTrip(t *testing.T) {
	p := sampleProperty()

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Property
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}

func TestProperty_JSONNoSections(t *testing.T) {
	p := Property{ID: "empty"}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sections":[]`)

	var got Property
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Nil(t, got.Sections)
}

func TestProperty_UnmarshalBadSection(t *testing.T) {
	var p Property
	err := json.Unmarshal([]byte(`{"id":"p","sections":[{"id":"s","type":"nope"}]}`), &p)
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestProperty_Lookup(t *testing.T) {
	p := sampleProperty()

	s, ok := p.Section("s4")
	require.True(t, ok)
	assert.Equal(t, SectionGallery, s.Type())
	assert.Equal(t, 3, p.SectionIndex("s4"))

	_, ok = p.Section("missing")
	assert.False(t, ok)
	assert.Equal(t, -1, p.SectionIndex("missing"))

	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}, p.SectionIDs())
}

func TestProperty_Summary(t *testing.T) {
	p := sampleProperty()
	sum := p.Summary()
	assert.Equal(t, "prop-1", sum.ID)
	assert.Equal(t, 9, sum.SectionCount)
	assert.Equal(t, p.UpdatedAt, sum.UpdatedAt)
}

func TestGeoPoint(t *testing.T) {
	assert.True(t, GeoPoint{}.IsZero())
	assert.True(t, GeoPoint{Lat: 10, Lng: 20}.Valid())
	assert.False(t, GeoPoint{Lat: 91}.Valid())
	assert.False(t, GeoPoint{Lng: -181}.Valid())
}

func TestContactSubmission_Validate(t *testing.T) {
	ok := ContactSubmission{PropertyID: "p", Name: "Ann", Email: "ann@example.com", Message: "Hello"}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Email = "not-an-email"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	bad = ok
	bad.Message = "  "
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	bad = ok
	bad.Name = ""
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)
}

func TestElementRef(t *testing.T) {
	assert.True(t, ElementRef{}.IsZero())
	assert.False(t, ElementRef{Kind: ElementSection, SectionID: "s1"}.IsZero())
	assert.True(t, ElementText.IsValid())
	assert.False(t, ElementKind("widget").IsValid())
}
