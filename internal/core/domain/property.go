package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero returns true if the point has not been set.
func (g GeoPoint) IsZero() bool {
	return g.Lat == 0 && g.Lng == 0
}

// Valid returns true if the point lies within world bounds.
func (g GeoPoint) Valid() bool {
	return g.Lat >= -90 && g.Lat <= 90 && g.Lng >= -180 && g.Lng <= 180
}

// Property is one listing page: its headline facts and its ordered sections.
//
// Property values are never edited in place. Every mutation produces a new
// Property whose Sections slice does not alias the previous one.
type Property struct {
	// ID is the stable identifier of the property.
	ID string

	// Name is the listing title.
	Name string

	// Address is the free-form postal address.
	Address string

	// Price is the asking price in the listing's currency.
	Price float64

	// MainImage is the cover picture used in listings and previews.
	MainImage AssetRef

	// Coordinates is the geocoded position of Address.
	Coordinates GeoPoint

	// Sections is the page content in rendering order.
	Sections []Section

	// CreatedAt is when the property was created.
	CreatedAt time.Time

	// UpdatedAt is when the property was last committed.
	UpdatedAt time.Time

	// Version counts committed changes. No-op transforms leave it unchanged.
	Version int
}

// PropertySummary is the listing view of a property.
type PropertySummary struct {
	ID           string
	Name         string
	Address      string
	SectionCount int
	UpdatedAt    time.Time
}

// Summary returns the listing view of the property.
func (p Property) Summary() PropertySummary {
	return PropertySummary{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		SectionCount: len(p.Sections),
		UpdatedAt:    p.UpdatedAt,
	}
}

// Section returns the section with the given id.
func (p Property) Section(id string) (Section, bool) {
	i := p.SectionIndex(id)
	if i < 0 {
		return nil, false
	}
	return p.Sections[i], true
}

// SectionIndex returns the index of the section with the given id, or -1.
func (p Property) SectionIndex(id string) int {
	for i, s := range p.Sections {
		if s.SectionID() == id {
			return i
		}
	}
	return -1
}

// SectionIDs returns the section ids in order.
func (p Property) SectionIDs() []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.SectionID()
	}
	return ids
}

type propertyJSON struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Price       float64           `json:"price"`
	MainImage   AssetRef          `json:"mainImage"`
	Coordinates GeoPoint          `json:"coordinates"`
	Sections    []json.RawMessage `json:"sections"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Version     int               `json:"version"`
}

// MarshalJSON encodes the property with each section tagged by its type.
func (p Property) MarshalJSON() ([]byte, error) {
	out := propertyJSON{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Price:       p.Price,
		MainImage:   p.MainImage,
		Coordinates: p.Coordinates,
		Sections:    make([]json.RawMessage, 0, len(p.Sections)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
	for _, s := range p.Sections {
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encode section %s: %w", s.SectionID(), err)
		}
		out.Sections = append(out.Sections, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a property, dispatching sections on their type tag.
func (p *Property) UnmarshalJSON(data []byte) error {
	var in propertyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var sections []Section
	for i, raw := range in.Sections {
		s, err := DecodeSection(raw)
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		sections = append(sections, s)
	}
	*p = Property{
		ID:          in.ID,
		Name:        in.Name,
		Address:     in.Address,
		Price:       in.Price,
		MainImage:   in.MainImage,
		Coordinates: in.Coordinates,
		Sections:    sections,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
		Version:     in.Version,
	}
	return nil
}
