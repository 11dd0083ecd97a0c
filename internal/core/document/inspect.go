package document

import "github.com/custodia-labs/listing-studio/internal/core/domain"

// itemIDCollector gathers the ids of a section's collection items.
type itemIDCollector struct {
	ids []string
}

func (c *itemIDCollector) VisitHero(s domain.HeroSection)     { c.texts(s.Texts) }
func (c *itemIDCollector) VisitBanner(s domain.BannerSection) { c.texts(s.Texts) }

func (c *itemIDCollector) VisitImageWithFeatures(s domain.ImageWithFeaturesSection) {
	for _, f := range s.Features {
		c.ids = append(c.ids, f.ID)
	}
}

func (c *itemIDCollector) VisitGallery(s domain.GallerySection) {
	for _, img := range s.Images {
		c.ids = append(c.ids, img.ID)
	}
}

func (c *itemIDCollector) VisitAmenities(s domain.AmenitiesSection) {
	for _, a := range s.Items {
		c.ids = append(c.ids, a.ID)
	}
}

func (c *itemIDCollector) VisitPricing(s domain.PricingSection) {
	for _, t := range s.Tiers {
		c.ids = append(c.ids, t.ID)
	}
}

func (c *itemIDCollector) VisitLocation(s domain.LocationSection) {
	for _, pl := range s.Places {
		c.ids = append(c.ids, pl.ID)
	}
}

func (c *itemIDCollector) VisitContact(domain.ContactSection) {}
func (c *itemIDCollector) VisitButton(domain.ButtonSection)   {}

func (c *itemIDCollector) texts(texts []domain.DraggableText) {
	for _, t := range texts {
		c.ids = append(c.ids, t.ID)
	}
}

// ItemIDs returns the ids of the section's collection items in order.
func ItemIDs(s domain.Section) []string {
	c := &itemIDCollector{}
	s.Accept(c)
	return c.ids
}

// HasElement reports whether the element a reference points at still exists.
func HasElement(p domain.Property, ref domain.ElementRef) bool {
	s, ok := p.Section(ref.SectionID)
	if !ok {
		return false
	}
	switch ref.Kind {
	case domain.ElementItem, domain.ElementText:
		for _, id := range ItemIDs(s) {
			if id == ref.ItemID {
				return true
			}
		}
		return false
	case domain.ElementField:
		if ref.Field == "" {
			return false
		}
		m, err := toMap(s)
		if err != nil {
			return false
		}
		_, ok := lookupPath(m, ref.Field)
		return ok
	default:
		return true
	}
}

// DraggableText returns one draggable text of a hero or banner section.
func DraggableText(p domain.Property, sectionID, textID string) (domain.DraggableText, bool) {
	s, ok := p.Section(sectionID)
	if !ok {
		return domain.DraggableText{}, false
	}
	var texts []domain.DraggableText
	switch v := s.(type) {
	case domain.HeroSection:
		texts = v.Texts
	case domain.BannerSection:
		texts = v.Texts
	}
	for _, t := range texts {
		if t.ID == textID {
			return t, true
		}
	}
	return domain.DraggableText{}, false
}

// Headline returns the text a section is known by in outlines: its title,
// or the label of a button.
func Headline(s domain.Section) string {
	switch v := s.(type) {
	case domain.HeroSection:
		return v.Title.Text
	case domain.BannerSection:
		return v.Title.Text
	case domain.ImageWithFeaturesSection:
		return v.Title.Text
	case domain.GallerySection:
		return v.Title.Text
	case domain.AmenitiesSection:
		return v.Title.Text
	case domain.PricingSection:
		return v.Title.Text
	case domain.LocationSection:
		return v.Title.Text
	case domain.ContactSection:
		return v.Title.Text
	case domain.ButtonSection:
		return v.Label.Text
	default:
		return ""
	}
}
