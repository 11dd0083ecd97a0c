package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// Patch is a partial object merged shallowly into an entity. Keys are the
// JSON field names of the target. Keys the target does not have are ignored.
type Patch map[string]any

// Keys that identify an entity and are never overwritten by a patch.
const (
	keyID   = "id"
	keyType = "type"
)

// ReplaceSection merges patch into the section with the given id.
// A missing section, an empty patch, or a patch of unknown fields is a no-op.
// The id and type of the section are never changed.
func ReplaceSection(p domain.Property, sectionID string, patch Patch) (domain.Property, error) {
	return mutateSection(p, sectionID, func(m map[string]any) bool {
		return merge(m, patch)
	})
}

// SetField sets one field of a section, addressed by a dotted path such as
// "title.text" or "style.backgroundColor". A path that does not exist on the
// section is a no-op.
func SetField(p domain.Property, sectionID, path string, value any) (domain.Property, error) {
	return mutateSection(p, sectionID, func(m map[string]any) bool {
		return setPath(m, path, value)
	})
}

// UpdateProperty merges patch into the headline fields of a property:
// name, address, price, mainImage and coordinates. Other keys are ignored.
func UpdateProperty(p domain.Property, patch Patch) (domain.Property, error) {
	allowed := Patch{}
	for _, k := range []string{"name", "address", "price", "mainImage", "coordinates"} {
		if v, ok := patch[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return p, nil
	}

	head := struct {
		Name        string          `json:"name"`
		Address     string          `json:"address"`
		Price       float64         `json:"price"`
		MainImage   domain.AssetRef `json:"mainImage"`
		Coordinates domain.GeoPoint `json:"coordinates"`
	}{p.Name, p.Address, p.Price, p.MainImage, p.Coordinates}

	m, err := toMap(head)
	if err != nil {
		return p, err
	}
	merge(m, allowed)
	data, err := json.Marshal(m)
	if err != nil {
		return p, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return p, fmt.Errorf("%w: property fields: %v", domain.ErrInvalidInput, err)
	}

	next := p
	next.Name = head.Name
	next.Address = head.Address
	next.Price = head.Price
	next.MainImage = head.MainImage
	next.Coordinates = head.Coordinates
	if next.Name == p.Name && next.Address == p.Address && next.Price == p.Price &&
		next.MainImage == p.MainImage && next.Coordinates == p.Coordinates {
		return p, nil
	}
	next.Sections = cloneSections(p.Sections)
	next.Version++
	return next, nil
}

// mutateSection encodes the target section to a JSON object, lets fn edit
// it, and decodes the result back into the same variant. fn reports whether
// it touched anything. The property is returned unchanged when the section
// is missing, fn declines, or the decoded section is identical.
func mutateSection(p domain.Property, sectionID string, fn func(m map[string]any) bool) (domain.Property, error) {
	idx := p.SectionIndex(sectionID)
	if idx < 0 {
		return p, nil
	}
	current := p.Sections[idx]

	before, err := json.Marshal(current)
	if err != nil {
		return p, fmt.Errorf("encode section %s: %w", sectionID, err)
	}
	m, err := decodeMap(before)
	if err != nil {
		return p, fmt.Errorf("encode section %s: %w", sectionID, err)
	}
	if !fn(m) {
		return p, nil
	}
	m[keyID] = current.SectionID()
	m[keyType] = string(current.Type())

	data, err := json.Marshal(m)
	if err != nil {
		return p, fmt.Errorf("%w: section %s: %v", domain.ErrInvalidInput, sectionID, err)
	}
	updated, err := domain.DecodeSection(data)
	if err != nil {
		return p, fmt.Errorf("%w: section %s: %v", domain.ErrInvalidInput, sectionID, err)
	}
	after, err := json.Marshal(updated)
	if err != nil {
		return p, fmt.Errorf("encode section %s: %w", sectionID, err)
	}
	if bytes.Equal(before, after) {
		return p, nil
	}

	return withSection(p, idx, updated), nil
}

// withSection returns a copy of p with the section at idx replaced.
func withSection(p domain.Property, idx int, s domain.Section) domain.Property {
	next := p
	next.Sections = cloneSections(p.Sections)
	next.Sections[idx] = s
	next.Version++
	return next
}

func cloneSections(in []domain.Section) []domain.Section {
	if in == nil {
		return nil
	}
	out := make([]domain.Section, len(in))
	copy(out, in)
	return out
}

// merge copies the known, non-identity keys of patch into m.
func merge(m map[string]any, patch Patch) bool {
	changed := false
	for k, v := range patch {
		if k == keyID || k == keyType {
			continue
		}
		if _, ok := m[k]; !ok {
			continue
		}
		m[k] = v
		changed = true
	}
	return changed
}

// setPath assigns value at a dotted path that must already exist in m.
func setPath(m map[string]any, path string, value any) bool {
	if path == "" {
		return false
	}
	parts := strings.Split(path, ".")
	if len(parts) == 1 && (parts[0] == keyID || parts[0] == keyType) {
		return false
	}

	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			return false
		}
		cur = next
	}
	last := parts[len(parts)-1]
	if _, ok := cur[last]; !ok {
		return false
	}
	cur[last] = value
	return true
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeMap(data)
}

func decodeMap(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func lookupPath(m map[string]any, path string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
