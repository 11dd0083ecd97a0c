package document

import (
	"fmt"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// SectionContext supplies seed data to the section factory.
type SectionContext struct {
	// NewID generates the section and item ids. Defaults to NewID.
	NewID IDFunc

	// Title replaces the placeholder heading when set.
	Title string

	// Coordinates seeds location sections.
	Coordinates domain.GeoPoint

	// TargetSectionID pins new buttons to a section.
	TargetSectionID string
}

func heading(text string, size domain.FontSize, color string) domain.StyledText {
	return domain.StyledText{
		Text:       text,
		FontSize:   size,
		Color:      color,
		FontFamily: domain.FontPlayfairDisplay,
		Align:      domain.AlignCenter,
		Weight:     600,
	}
}

func body(text string, color string) domain.StyledText {
	return domain.StyledText{
		Text:       text,
		FontSize:   1,
		Color:      color,
		FontFamily: domain.FontInter,
	}
}

// NewSection builds a fully populated section of type t with placeholder
// content. It fails only for an unknown type.
func NewSection(t domain.SectionType, ctx SectionContext) (domain.Section, error) {
	newID := ctx.NewID.orDefault()
	title := func(fallback string) string {
		if ctx.Title != "" {
			return ctx.Title
		}
		return fallback
	}
	base := domain.Base{
		ID:    newID(),
		Kind:  t,
		Style: domain.SectionStyle{BackgroundColor: "#ffffff"},
	}

	switch t {
	case domain.SectionHero:
		cta := "Book a viewing"
		base.Style = domain.SectionStyle{BackgroundColor: "#1f2933", Height: "90vh"}
		return domain.HeroSection{
			Base: base,
			Overlay: domain.Overlay{
				Title:    heading(title("Welcome home"), 3.5, "#ffffff"),
				Subtitle: body("A place worth coming back to", "#f5f7fa"),
				Texts:    []domain.DraggableText{},
				CTAText:  &cta,
				Parallax: true,
			},
		}, nil

	case domain.SectionBanner:
		base.Style = domain.SectionStyle{BackgroundColor: "#323f4b", Height: "40vh"}
		return domain.BannerSection{
			Base: base,
			Overlay: domain.Overlay{
				Title:    heading(title("Live differently"), 2.5, "#ffffff"),
				Subtitle: body("", "#f5f7fa"),
				Texts:    []domain.DraggableText{},
			},
		}, nil

	case domain.SectionImageWithFeatures:
		return domain.ImageWithFeaturesSection{
			Base:  base,
			Title: heading(title("Highlights"), 2, "#1f2933"),
			Media: domain.Media{Kind: domain.MediaImage},
			Features: []domain.Feature{
				newFeature(newID(), "sun", "Bright rooms"),
				newFeature(newID(), "leaf", "Private garden"),
				newFeature(newID(), "car", "Off-street parking"),
			},
		}, nil

	case domain.SectionGallery:
		return domain.GallerySection{
			Base:   base,
			Title:  heading(title("Gallery"), 2, "#1f2933"),
			Images: []domain.GalleryImage{},
		}, nil

	case domain.SectionAmenities:
		base.Style.BackgroundColor = "#f5f7fa"
		return domain.AmenitiesSection{
			Base:  base,
			Title: heading(title("Amenities"), 2, "#1f2933"),
			Items: []domain.Amenity{
				newAmenity(newID(), "wifi", "High-speed internet"),
				newAmenity(newID(), "snowflake", "Air conditioning"),
				newAmenity(newID(), "washer", "Laundry"),
			},
		}, nil

	case domain.SectionPricing:
		base.Style.CornerRadius = 12
		return domain.PricingSection{
			Base:  base,
			Title: heading(title("Pricing"), 2, "#1f2933"),
			Tiers: []domain.PricingTier{
				newTier(newID(), "Monthly", "month", false),
				newTier(newID(), "Yearly", "year", true),
			},
		}, nil

	case domain.SectionLocation:
		return domain.LocationSection{
			Base:        base,
			Title:       heading(title("Location"), 2, "#1f2933"),
			Coordinates: ctx.Coordinates,
			Places:      []domain.Place{},
		}, nil

	case domain.SectionContact:
		base.Style.BackgroundColor = "#e4e7eb"
		return domain.ContactSection{
			Base:     base,
			Title:    heading(title("Get in touch"), 2, "#1f2933"),
			Subtitle: body("We usually reply within a day", "#52606d"),
		}, nil

	case domain.SectionButton:
		return domain.ButtonSection{
			Base:      base,
			Label:     body(title("Contact us"), "#ffffff"),
			Alignment: domain.AlignCenter,
			Target:    domain.LinkTarget{Type: domain.SectionContact, SectionID: ctx.TargetSectionID},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSectionType, t)
}

// MustNewSection is NewSection for static call sites. It panics on an unknown type.
func MustNewSection(t domain.SectionType, ctx SectionContext) domain.Section {
	s, err := NewSection(t, ctx)
	if err != nil {
		panic(err)
	}
	return s
}

func newFeature(id, icon, title string) domain.Feature {
	return domain.Feature{ID: id, Visual: domain.Visual{Icon: icon}, Title: title}
}

func newAmenity(id, icon, label string) domain.Amenity {
	return domain.Amenity{ID: id, Visual: domain.Visual{Icon: icon}, Label: label}
}

func newTier(id, name, frequency string, featured bool) domain.PricingTier {
	return domain.PricingTier{
		ID:        id,
		Name:      name,
		Price:     "0",
		Frequency: frequency,
		Features:  []string{},
		CTAText:   "Enquire",
		Featured:  featured,
	}
}

// PropertySeed describes a new property.
type PropertySeed struct {
	Name        string
	Address     string
	Price       float64
	MainImage   domain.AssetRef
	Coordinates domain.GeoPoint

	// Now stamps CreatedAt and UpdatedAt. Defaults to the current time.
	Now time.Time

	// NewID generates every id of the property. Defaults to NewID.
	NewID IDFunc
}

// defaultLayout is the section set of a new property, in page order.
var defaultLayout = []domain.SectionType{
	domain.SectionHero,
	domain.SectionImageWithFeatures,
	domain.SectionGallery,
	domain.SectionAmenities,
	domain.SectionPricing,
	domain.SectionLocation,
	domain.SectionButton,
	domain.SectionContact,
}

// NewProperty creates a property with the default section layout.
func NewProperty(seed PropertySeed) domain.Property {
	newID := seed.NewID.orDefault()
	now := seed.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	p := domain.Property{
		ID:          newID(),
		Name:        seed.Name,
		Address:     seed.Address,
		Price:       seed.Price,
		MainImage:   seed.MainImage,
		Coordinates: seed.Coordinates,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Buttons link to the contact section, which comes after them.
	contactID := ""
	ids := make([]string, len(defaultLayout))
	for i, t := range defaultLayout {
		ids[i] = newID()
		if t == domain.SectionContact {
			contactID = ids[i]
		}
	}
	for i, t := range defaultLayout {
		ctx := SectionContext{
			NewID:           sequence(ids[i], newID),
			Coordinates:     seed.Coordinates,
			TargetSectionID: contactID,
		}
		p.Sections = append(p.Sections, MustNewSection(t, ctx))
	}
	return p
}

// sequence returns first on the first call and defers to next afterwards.
func sequence(first string, next IDFunc) IDFunc {
	used := false
	return func() string {
		if !used {
			used = true
			return first
		}
		return next()
	}
}
