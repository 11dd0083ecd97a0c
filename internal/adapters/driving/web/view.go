package web

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"regexp"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").Funcs(template.FuncMap{
		"asset":    assetURL,
		"mapURL":   mapURL,
		"price":    formatPrice,
		"color":    cssColor,
		"isVideo":  func(m domain.Media) bool { return m.Kind == domain.MediaVideo },
		"hasImage": func(v domain.Visual) bool { return v.Image != "" },
	}).ParseFS(templateFS, "templates/*.html.tmpl"),
)

// sectionView holds exactly one non-nil variant, so the template can
// switch on it with {{with}}.
type sectionView struct {
	ID    string
	Type  domain.SectionType
	Style domain.SectionStyle

	Hero              *domain.HeroSection
	Banner            *domain.BannerSection
	ImageWithFeatures *domain.ImageWithFeaturesSection
	Gallery           *domain.GallerySection
	Amenities         *domain.AmenitiesSection
	Pricing           *domain.PricingSection
	Location          *domain.LocationSection
	Contact           *domain.ContactSection
	Button            *domain.ButtonSection

	// ButtonHref is the anchor a button scrolls to.
	ButtonHref string
}

// viewBuilder turns sections into views.
type viewBuilder struct {
	property domain.Property
	out      sectionView
}

func (b *viewBuilder) VisitHero(s domain.HeroSection)     { b.out.Hero = &s }
func (b *viewBuilder) VisitBanner(s domain.BannerSection) { b.out.Banner = &s }
func (b *viewBuilder) VisitImageWithFeatures(s domain.ImageWithFeaturesSection) {
	b.out.ImageWithFeatures = &s
}
func (b *viewBuilder) VisitGallery(s domain.GallerySection)     { b.out.Gallery = &s }
func (b *viewBuilder) VisitAmenities(s domain.AmenitiesSection) { b.out.Amenities = &s }
func (b *viewBuilder) VisitPricing(s domain.PricingSection)     { b.out.Pricing = &s }
func (b *viewBuilder) VisitLocation(s domain.LocationSection)   { b.out.Location = &s }
func (b *viewBuilder) VisitContact(s domain.ContactSection)     { b.out.Contact = &s }

// VisitButton resolves the target: a pinned section id wins, otherwise the
// first section of the target type.
func (b *viewBuilder) VisitButton(s domain.ButtonSection) {
	b.out.Button = &s
	target := s.Target.SectionID
	if target == "" {
		for _, other := range b.property.Sections {
			if other.Type() == s.Target.Type {
				target = other.SectionID()
				break
			}
		}
	}
	if target != "" {
		b.out.ButtonHref = "#" + target
	}
}

func buildViews(p domain.Property) []sectionView {
	views := make([]sectionView, 0, len(p.Sections))
	for _, s := range p.Sections {
		b := &viewBuilder{property: p, out: sectionView{
			ID:    s.SectionID(),
			Type:  s.Type(),
			Style: domain.StyleOf(s),
		}}
		s.Accept(b)
		views = append(views, b.out)
	}
	return views
}

type pageData struct {
	Site     domain.SiteSettings
	Property domain.Property
	Sections []sectionView
	Admin    bool
	Sent     bool
	Static   bool
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Properties.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	site, err := s.deps.Site.GetSite(r.Context())
	if err != nil {
		logger.Warn("[Server] Site settings unavailable: %v", err)
		site = domain.SiteSettings{}
	}

	data := pageData{
		Site:     site,
		Property: p,
		Sections: buildViews(p),
		Admin:    s.isAdmin(r),
		Sent:     r.URL.Query().Get("sent") == "1",
		Static:   s.settings.PublicDir != "",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error("[Server] Failed to render %s: %v", p.ID, err)
	}
}

// assetURL maps a reference to something a browser can load. Blob store
// keys are served by /assets/local/.
func assetURL(ref domain.AssetRef) string {
	if ref.Kind() == domain.AssetLocal {
		return "/assets/local/" + url.PathEscape(string(ref))
	}
	return string(ref)
}

func mapURL(g domain.GeoPoint) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f#map=16/%f/%f", g.Lat, g.Lng, g.Lat, g.Lng)
}

// formatPrice renders a price with thousands separators.
func formatPrice(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([0-9.,%\s]+\)|hsla?\([0-9.,%\s]+\))$`)

// cssColor passes through colour values that cannot break out of a
// declaration. Anything else renders as inherit.
func cssColor(c string) template.CSS {
	if !cssColorPattern.MatchString(c) {
		return "inherit"
	}
	return template.CSS(c) //nolint:gosec // validated above
}
