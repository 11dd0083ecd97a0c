package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionType is the immutable type tag of a section.
type SectionType string

// The closed set of section variants.
const (
	SectionHero              SectionType = "hero"
	SectionBanner            SectionType = "banner"
	SectionImageWithFeatures SectionType = "imageWithFeatures"
	SectionGallery           SectionType = "gallery"
	SectionAmenities         SectionType = "amenities"
	SectionPricing           SectionType = "pricing"
	SectionLocation          SectionType = "location"
	SectionContact           SectionType = "contact"
	SectionButton            SectionType = "button"
)

// IsValid returns true if the type is one of the known variants.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionHero, SectionBanner, SectionImageWithFeatures, SectionGallery,
		SectionAmenities, SectionPricing, SectionLocation, SectionContact, SectionButton:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SectionType) String() string {
	return string(t)
}

// Description returns a human-readable name for menus.
func (t SectionType) Description() string {
	switch t {
	case SectionHero:
		return "Hero"
	case SectionBanner:
		return "Banner"
	case SectionImageWithFeatures:
		return "Image with features"
	case SectionGallery:
		return "Gallery"
	case SectionAmenities:
		return "Amenities"
	case SectionPricing:
		return "Pricing"
	case SectionLocation:
		return "Location"
	case SectionContact:
		return "Contact"
	case SectionButton:
		return "Button"
	default:
		return "Unknown"
	}
}

// AllSectionTypes returns every section variant in menu order.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionBanner,
		SectionImageWithFeatures,
		SectionGallery,
		SectionAmenities,
		SectionPricing,
		SectionLocation,
		SectionContact,
		SectionButton,
	}
}

// SectionStyle holds the presentation fields shared by all sections.
type SectionStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	Height          string `json:"height"`
	CornerRadius    int    `json:"cornerRadius"`
}

// Base carries the fields common to every section variant.
// It is embedded by value in each variant.
type Base struct {
	ID    string       `json:"id"`
	Kind  SectionType  `json:"type"`
	Style SectionStyle `json:"style"`
}

// SectionID returns the section's identifier.
func (b Base) SectionID() string { return b.ID }

// Type returns the section's immutable type tag.
func (b Base) Type() SectionType { return b.Kind }

func (b Base) base() Base { return b }

// Section is one block of a property page.
//
// The set of implementations is closed: only the variants in this package
// satisfy it. Consumers that must handle every variant implement
// SectionVisitor so that adding a variant is a compile error everywhere.
type Section interface {
	SectionID() string
	Type() SectionType
	Accept(v SectionVisitor)
	base() Base
}

// SectionVisitor has one method per section variant.
type SectionVisitor interface {
	VisitHero(s HeroSection)
	VisitBanner(s BannerSection)
	VisitImageWithFeatures(s ImageWithFeaturesSection)
	VisitGallery(s GallerySection)
	VisitAmenities(s AmenitiesSection)
	VisitPricing(s PricingSection)
	VisitLocation(s LocationSection)
	VisitContact(s ContactSection)
	VisitButton(s ButtonSection)
}

// StyleOf returns the shared style of any section.
func StyleOf(s Section) SectionStyle {
	return s.base().Style
}

// DecodeSection decodes a section using its "type" discriminator.
func DecodeSection(data []byte) (Section, error) {
	var head struct {
		Type SectionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode section: %w", err)
	}

	var (
		s   Section
		err error
	)
	switch head.Type {
	case SectionHero:
		s, err = decodeAs[HeroSection](data)
	case SectionBanner:
		s, err = decodeAs[BannerSection](data)
	case SectionImageWithFeatures:
		s, err = decodeAs[ImageWithFeaturesSection](data)
	case SectionGallery:
		s, err = decodeAs[GallerySection](data)
	case SectionAmenities:
		s, err = decodeAs[AmenitiesSection](data)
	case SectionPricing:
		s, err = decodeAs[PricingSection](data)
	case SectionLocation:
		s, err = decodeAs[LocationSection](data)
	case SectionContact:
		s, err = decodeAs[ContactSection](data)
	case SectionButton:
		s, err = decodeAs[ButtonSection](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s section: %w", head.Type, err)
	}
	return s, nil
}

func decodeAs[T Section](data []byte) (Section, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
