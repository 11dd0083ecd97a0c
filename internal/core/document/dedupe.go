package document

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// Deduplicate gives a fresh id to every section and collection item whose
// id is empty or repeats an earlier one. The first holder of an id keeps it,
// so button targets keep pointing at the section they pointed at before.
// It returns the number of ids replaced; Version is left alone.
func Deduplicate(p domain.Property, newID IDFunc) (domain.Property, int, error) {
	newID = newID.orDefault()
	renamed := 0
	seen := make(map[string]bool, len(p.Sections))
	out := make([]domain.Section, 0, len(p.Sections))

	for _, s := range p.Sections {
		if s == nil {
			out = append(out, s)
			continue
		}
		m, err := toMap(s)
		if err != nil {
			return p, 0, fmt.Errorf("encode section %s: %w", s.SectionID(), err)
		}

		changed := false
		id := s.SectionID()
		if id == "" || seen[id] {
			id = newID()
			m[keyID] = id
			changed = true
			renamed++
		}
		seen[id] = true

		if name, list, ok := items(m); ok {
			itemSeen := make(map[string]bool, len(list))
			fixed := make([]any, 0, len(list))
			for _, item := range list {
				obj, ok := item.(map[string]any)
				if !ok {
					fixed = append(fixed, item)
					continue
				}
				iid := itemID(obj)
				if iid == "" || itemSeen[iid] {
					iid = newID()
					obj[keyID] = iid
					changed = true
					renamed++
				}
				itemSeen[iid] = true
				fixed = append(fixed, obj)
			}
			m[name] = fixed
		}

		if !changed {
			out = append(out, s)
			continue
		}
		data, err := json.Marshal(m)
		if err != nil {
			return p, 0, fmt.Errorf("%w: section %s: %v", domain.ErrInvalidInput, id, err)
		}
		updated, err := domain.DecodeSection(data)
		if err != nil {
			return p, 0, fmt.Errorf("%w: section %s: %v", domain.ErrInvalidInput, id, err)
		}
		out = append(out, updated)
	}

	if renamed == 0 {
		return p, 0, nil
	}
	next := p
	next.Sections = out
	return next, renamed, nil
}
