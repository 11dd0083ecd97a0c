package domain

// Overlay is the payload shared by hero and banner sections: a background
// image with a title and any number of user-placed texts on top of it.
type Overlay struct {
	BackgroundImage AssetRef        `json:"backgroundImage"`
	Title           StyledText      `json:"title"`
	Subtitle        StyledText      `json:"subtitle"`
	Texts           []DraggableText `json:"texts"`
	CTAText         *string         `json:"ctaText"`
	Parallax        bool            `json:"parallax"`
}

// HeroSection is the full-height opening block of a listing.
type HeroSection struct {
	Base
	Overlay
}

// Accept dispatches to the visitor.
func (s HeroSection) Accept(v SectionVisitor) { v.VisitHero(s) }

// BannerSection is a shorter overlay block placed between other sections.
type BannerSection struct {
	Base
	Overlay
}

// Accept dispatches to the visitor.
func (s BannerSection) Accept(v SectionVisitor) { v.VisitBanner(s) }

// Feature is one entry of an image-with-features list.
type Feature struct {
	ID string `json:"id"`
	Visual
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// ImageWithFeaturesSection pairs one media item with a list of features.
type ImageWithFeaturesSection struct {
	Base
	Title    StyledText `json:"title"`
	Media    Media      `json:"media"`
	Features []Feature  `json:"features"`
}

// Accept dispatches to the visitor.
func (s ImageWithFeaturesSection) Accept(v SectionVisitor) { v.VisitImageWithFeatures(s) }

// GalleryImage is one captioned gallery picture.
type GalleryImage struct {
	ID      string   `json:"id"`
	Image   AssetRef `json:"image"`
	Caption string   `json:"caption"`
}

// GallerySection is an ordered picture grid.
type GallerySection struct {
	Base
	Title  StyledText     `json:"title"`
	Images []GalleryImage `json:"images"`
}

// Accept dispatches to the visitor.
func (s GallerySection) Accept(v SectionVisitor) { v.VisitGallery(s) }

// Amenity is one amenity label with an icon or picture.
type Amenity struct {
	ID string `json:"id"`
	Visual
	Label string `json:"label"`
}

// AmenitiesSection lists the amenities of a property.
type AmenitiesSection struct {
	Base
	Title StyledText `json:"title"`
	Items []Amenity  `json:"items"`
}

// Accept dispatches to the visitor.
func (s AmenitiesSection) Accept(v SectionVisitor) { v.VisitAmenities(s) }

// PricingTier is one column of a pricing table.
type PricingTier struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Frequency string   `json:"frequency"`
	Features  []string `json:"features"`
	CTAText   string   `json:"ctaText"`
	Featured  bool     `json:"featured"`
}

// PricingSection is a table of rent or purchase options.
type PricingSection struct {
	Base
	Title StyledText    `json:"title"`
	Tiers []PricingTier `json:"tiers"`
}

// Accept dispatches to the visitor.
func (s PricingSection) Accept(v SectionVisitor) { v.VisitPricing(s) }

// Place is a nearby point of interest.
type Place struct {
	ID string `json:"id"`
	Visual
	Title      string `json:"title"`
	TravelTime string `json:"travelTime"`
}

// LocationSection shows a map position and nearby places.
type LocationSection struct {
	Base
	Title       StyledText `json:"title"`
	Coordinates GeoPoint   `json:"coordinates"`
	Places      []Place    `json:"places"`
}

// Accept dispatches to the visitor.
func (s LocationSection) Accept(v SectionVisitor) { v.VisitLocation(s) }

// ContactSection hosts the public enquiry form.
type ContactSection struct {
	Base
	Title           StyledText `json:"title"`
	Subtitle        StyledText `json:"subtitle"`
	BackgroundImage AssetRef   `json:"backgroundImage"`
	Parallax        bool       `json:"parallax"`
}

// Accept dispatches to the visitor.
func (s ContactSection) Accept(v SectionVisitor) { v.VisitContact(s) }

// LinkTarget points a button at another section. Type is the symbolic
// target ("scroll to contact"); SectionID pins a specific section when set.
type LinkTarget struct {
	Type      SectionType `json:"type"`
	SectionID string      `json:"sectionId"`
}

// ButtonSection is a standalone call-to-action button.
type ButtonSection struct {
	Base
	Label     StyledText `json:"label"`
	Alignment TextAlign  `json:"alignment"`
	Target    LinkTarget `json:"target"`
}

// Accept dispatches to the visitor.
func (s ButtonSection) Accept(v SectionVisitor) { v.VisitButton(s) }
