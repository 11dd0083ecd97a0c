package domain

// ElementKind identifies which kind of editable element a reference points at.
type ElementKind string

// Editable element kinds.
const (
	// ElementSection selects a whole section (style toolbar, reorder buttons).
	ElementSection ElementKind = "section"

	// ElementField selects a field of a section, addressed by a dotted path.
	ElementField ElementKind = "field"

	// ElementItem selects one item of a section's collection.
	ElementItem ElementKind = "item"

	// ElementText selects one draggable text of a hero or banner.
	ElementText ElementKind = "text"
)

// IsValid returns true if the kind is recognised.
func (k ElementKind) IsValid() bool {
	switch k {
	case ElementSection, ElementField, ElementItem, ElementText:
		return true
	default:
		return false
	}
}

// ElementRef identifies one editable element of a property page.
// Which discriminators are set depends on Kind.
type ElementRef struct {
	Kind      ElementKind `json:"kind"`
	SectionID string      `json:"sectionId"`
	Field     string      `json:"field,omitempty"`
	ItemID    string      `json:"itemId,omitempty"`
}

// IsZero returns true for the empty reference.
func (r ElementRef) IsZero() bool {
	return r == ElementRef{}
}

// Collection names of the id-bearing lists owned by section variants.
const (
	CollectionTexts    = "texts"
	CollectionFeatures = "features"
	CollectionImages   = "images"
	CollectionItems    = "items"
	CollectionTiers    = "tiers"
	CollectionPlaces   = "places"
)

// ItemCollection returns the name of the id-bearing collection owned by a
// section type, or "" when the variant has none.
func ItemCollection(t SectionType) string {
	switch t {
	case SectionHero, SectionBanner:
		return CollectionTexts
	case SectionImageWithFeatures:
		return CollectionFeatures
	case SectionGallery:
		return CollectionImages
	case SectionAmenities:
		return CollectionItems
	case SectionPricing:
		return CollectionTiers
	case SectionLocation:
		return CollectionPlaces
	default:
		return ""
	}
}
