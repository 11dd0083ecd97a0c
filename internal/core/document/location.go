package document

import "github.com/custodia-labs/listing-studio/internal/core/domain"

// ApplyLocationPlan writes an enrichment result into a property. Non-zero
// coordinates move both the property and every location section; a non-empty
// place list replaces the places of every location section, each suggestion
// receiving a fresh id. The whole application counts as one change.
func ApplyLocationPlan(p domain.Property, plan domain.LocationPlan, newID IDFunc) (domain.Property, error) {
	newID = newID.orDefault()
	next := p

	if !plan.Coordinates.IsZero() {
		var err error
		next, err = UpdateProperty(next, Patch{"coordinates": plan.Coordinates})
		if err != nil {
			return p, err
		}
	}

	for _, s := range p.Sections {
		if s == nil || s.Type() != domain.SectionLocation {
			continue
		}
		var err error
		next, err = Modify(next, s.SectionID(), func(l domain.LocationSection) domain.LocationSection {
			if !plan.Coordinates.IsZero() {
				l.Coordinates = plan.Coordinates
			}
			if len(plan.Places) > 0 {
				l.Places = make([]domain.Place, 0, len(plan.Places))
				for _, sug := range plan.Places {
					l.Places = append(l.Places, domain.Place{
						ID:         newID(),
						Visual:     domain.Visual{Icon: sug.Icon},
						Title:      sug.Title,
						TravelTime: sug.TravelTime,
					})
				}
			}
			return l
		})
		if err != nil {
			return p, err
		}
	}

	if next.Version != p.Version {
		next.Version = p.Version + 1
	}
	return next, nil
}
