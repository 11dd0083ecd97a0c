package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func locationOf(t *testing.T, p domain.Property) domain.LocationSection {
	t.Helper()
	for _, s := range p.Sections {
		if l, ok := s.(domain.LocationSection); ok {
			return l
		}
	}
	t.Fatal("no location section")
	return domain.LocationSection{}
}

func TestApplyLocationPlan(t *testing.T) {
	p := testProperty()
	plan := domain.LocationPlan{
		Coordinates: domain.GeoPoint{Lat: 40.7, Lng: -74},
		Places: []domain.PlaceSuggestion{
			{Icon: "train", Title: "Station", TravelTime: "4 min"},
			{Icon: "school", Title: "Primary school", TravelTime: "10 min"},
		},
	}

	next, err := ApplyLocationPlan(p, plan, counter("place"))
	require.NoError(t, err)

	assert.Equal(t, p.Version+1, next.Version)
	assert.Equal(t, plan.Coordinates, next.Coordinates)

	loc := locationOf(t, next)
	assert.Equal(t, plan.Coordinates, loc.Coordinates)
	require.Len(t, loc.Places, 2)
	assert.Equal(t, "place-1", loc.Places[0].ID)
	assert.Equal(t, "Station", loc.Places[0].Title)
	assert.Equal(t, "train", loc.Places[0].Icon)
	assert.Equal(t, "10 min", loc.Places[1].TravelTime)

	// The input is untouched.
	assert.NotEqual(t, plan.Coordinates, p.Coordinates)
	assert.Empty(t, locationOf(t, p).Places)
	require.NoError(t, Validate(next))
}

func TestApplyLocationPlan_CoordinatesOnlyKeepsPlaces(t *testing.T) {
	p := testProperty()
	before := locationOf(t, p).Places

	next, err := ApplyLocationPlan(p, domain.LocationPlan{Coordinates: domain.GeoPoint{Lat: 1, Lng: 2}}, nil)
	require.NoError(t, err)
	assert.Equal(t, before, locationOf(t, next).Places)
	assert.Equal(t, domain.GeoPoint{Lat: 1, Lng: 2}, locationOf(t, next).Coordinates)
}

func TestApplyLocationPlan_EmptyPlanIsNoop(t *testing.T) {
	p := testProperty()
	next, err := ApplyLocationPlan(p, domain.LocationPlan{Warnings: []string{"geocode failed"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, p, next)
}

func TestDeduplicate(t *testing.T) {
	p := galleryProperty()
	dup := p.Sections[0].(domain.GallerySection)
	dup.Images = []domain.GalleryImage{{ID: "A"}, {ID: "A"}, {ID: ""}}
	p.Sections = append(p.Sections, dup)

	next, renamed, err := Deduplicate(p, counter("new"))
	require.NoError(t, err)
	assert.Equal(t, 3, renamed)
	assert.Equal(t, p.Version, next.Version)

	assert.Equal(t, []string{"g", "h", "c", "new-1"}, next.SectionIDs())
	assert.Equal(t, []string{"A", "new-2", "new-3"}, ItemIDs(next.Sections[3]))
	assert.Equal(t, "g", p.Sections[3].SectionID())
	require.NoError(t, Validate(next))
}

func TestDeduplicate_CleanPropertyUnchanged(t *testing.T) {
	p := testProperty()
	next, renamed, err := Deduplicate(p, nil)
	require.NoError(t, err)
	assert.Zero(t, renamed)
	assert.Equal(t, p, next)
}
