package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// Validate checks the structural invariants of a property: unique non-empty
// ids, known section types, a background colour on every section, known font
// families and in-range text placement. All problems are reported together,
// each wrapping domain.ErrInvalidInput.
func Validate(p domain.Property) error {
	v := &validator{}
	if strings.TrimSpace(p.ID) == "" {
		v.fail("property id is required")
	}
	if !p.Coordinates.Valid() {
		v.fail("coordinates %v out of range", p.Coordinates)
	}

	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		if s == nil {
			v.fail("section %d is empty", i)
			continue
		}
		id := s.SectionID()
		v.section = id
		switch {
		case id == "":
			v.fail("section %d has no id", i)
		case seen[id]:
			v.fail("duplicate section id")
		}
		seen[id] = true
		if !s.Type().IsValid() {
			v.fail("unknown type %q", s.Type())
			continue
		}
		if strings.TrimSpace(domain.StyleOf(s).BackgroundColor) == "" {
			v.fail("background colour is required")
		}
		v.uniqueItems(ItemIDs(s))
		s.Accept(v)
	}
	v.section = ""

	for _, s := range p.Sections {
		if b, ok := s.(domain.ButtonSection); ok && b.Target.SectionID != "" && !seen[b.Target.SectionID] {
			v.section = b.ID
			v.fail("button target %s does not exist", b.Target.SectionID)
		}
	}

	if len(v.errs) == 0 {
		return nil
	}
	return errors.Join(v.errs...)
}

// validator checks per-variant payloads.
type validator struct {
	section string
	errs    []error
}

func (v *validator) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if v.section != "" {
		msg = "section " + v.section + ": " + msg
	}
	v.errs = append(v.errs, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg))
}

func (v *validator) uniqueItems(ids []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			v.fail("item without id")
			continue
		}
		if seen[id] {
			v.fail("duplicate item id %s", id)
		}
		seen[id] = true
	}
}

func (v *validator) text(field string, t domain.StyledText) {
	if t.FontFamily != "" && !t.FontFamily.IsValid() {
		v.fail("%s: font family %q not allowed", field, t.FontFamily)
	}
	if t.FontSize < 0 {
		v.fail("%s: negative font size", field)
	}
	if !t.Align.IsValid() {
		v.fail("%s: alignment %q", field, t.Align)
	}
}

func (v *validator) overlay(o domain.Overlay) {
	v.text("title", o.Title)
	v.text("subtitle", o.Subtitle)
	for _, t := range o.Texts {
		v.text("text "+t.ID, t.StyledText)
		if t.Position != t.Position.Clamp() {
			v.fail("text %s: position out of range", t.ID)
		}
		if t.Size != nil && *t.Size != t.Size.Floor() {
			v.fail("text %s: size below minimum", t.ID)
		}
	}
}

func (v *validator) VisitHero(s domain.HeroSection)     { v.overlay(s.Overlay) }
func (v *validator) VisitBanner(s domain.BannerSection) { v.overlay(s.Overlay) }

func (v *validator) VisitImageWithFeatures(s domain.ImageWithFeaturesSection) {
	v.text("title", s.Title)
	switch s.Media.Kind {
	case domain.MediaImage, domain.MediaVideo:
	default:
		v.fail("media kind %q", s.Media.Kind)
	}
}

func (v *validator) VisitGallery(s domain.GallerySection)     { v.text("title", s.Title) }
func (v *validator) VisitAmenities(s domain.AmenitiesSection) { v.text("title", s.Title) }
func (v *validator) VisitPricing(s domain.PricingSection)     { v.text("title", s.Title) }

func (v *validator) VisitLocation(s domain.LocationSection) {
	v.text("title", s.Title)
	if !s.Coordinates.Valid() {
		v.fail("coordinates %v out of range", s.Coordinates)
	}
}

func (v *validator) VisitContact(s domain.ContactSection) {
	v.text("title", s.Title)
	v.text("subtitle", s.Subtitle)
}

func (v *validator) VisitButton(s domain.ButtonSection) {
	v.text("label", s.Label)
	if !s.Alignment.IsValid() {
		v.fail("alignment %q", s.Alignment)
	}
	if s.Target.Type != "" && !s.Target.Type.IsValid() {
		v.fail("target type %q", s.Target.Type)
	}
}
