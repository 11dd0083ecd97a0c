package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// RemoveSection filters the section out of the property. No-op if absent.
// Buttons pinned to the removed section fall back to their target type.
func RemoveSection(p domain.Property, sectionID string) domain.Property {
	idx := p.SectionIndex(sectionID)
	if idx < 0 {
		return p
	}
	next := p
	next.Sections = nil
	for i, s := range p.Sections {
		if i == idx {
			continue
		}
		if b, ok := s.(domain.ButtonSection); ok && b.Target.SectionID == sectionID {
			b.Target.SectionID = ""
			s = b
		}
		next.Sections = append(next.Sections, s)
	}
	next.Version++
	return next
}

// ReorderSections re-sorts sections to follow orderedIDs. Sections whose
// ids are not listed are appended in their original relative order, so the
// result is always a permutation of the input.
func ReorderSections(p domain.Property, orderedIDs []string) domain.Property {
	sorted := reorder(p.Sections, orderedIDs, domain.Section.SectionID)
	same := true
	for i := range sorted {
		if sorted[i].SectionID() != p.Sections[i].SectionID() {
			same = false
			break
		}
	}
	if same {
		return p
	}
	next := p
	next.Sections = sorted
	next.Version++
	return next
}

// MoveSection shifts a section by delta positions, clamped to the list bounds.
func MoveSection(p domain.Property, sectionID string, delta int) domain.Property {
	idx := p.SectionIndex(sectionID)
	if idx < 0 || delta == 0 {
		return p
	}
	target := max(0, min(len(p.Sections)-1, idx+delta))
	if target == idx {
		return p
	}
	ids := p.SectionIDs()
	moved := ids[idx]
	ids = append(ids[:idx], ids[idx+1:]...)
	ids = append(ids[:target], append([]string{moved}, ids[target:]...)...)
	return ReorderSections(p, ids)
}

// InsertSection inserts s at index, clamped to the list bounds.
// The section must carry a known type and an id unused in the property.
func InsertSection(p domain.Property, s domain.Section, index int) (domain.Property, error) {
	if s == nil || !s.Type().IsValid() {
		return p, fmt.Errorf("%w: insert section", domain.ErrUnknownSectionType)
	}
	if s.SectionID() == "" {
		return p, fmt.Errorf("%w: section id is required", domain.ErrInvalidInput)
	}
	if p.SectionIndex(s.SectionID()) >= 0 {
		return p, fmt.Errorf("%w: section %s", domain.ErrAlreadyExists, s.SectionID())
	}
	index = max(0, min(len(p.Sections), index))

	next := p
	next.Sections = make([]domain.Section, 0, len(p.Sections)+1)
	next.Sections = append(next.Sections, p.Sections[:index]...)
	next.Sections = append(next.Sections, s)
	next.Sections = append(next.Sections, p.Sections[index:]...)
	next.Version++
	return next, nil
}

// AppendSection adds s at the end of the page.
func AppendSection(p domain.Property, s domain.Section) (domain.Property, error) {
	return InsertSection(p, s, len(p.Sections))
}

// Modify applies a typed edit to the section with the given id. It is a
// no-op when the section is missing or is not a T. fn must not change the
// section's id or type, and must copy any slice before editing its elements.
func Modify[T domain.Section](p domain.Property, sectionID string, fn func(T) T) (domain.Property, error) {
	idx := p.SectionIndex(sectionID)
	if idx < 0 {
		return p, nil
	}
	current, ok := p.Sections[idx].(T)
	if !ok {
		return p, nil
	}
	updated := fn(current)
	if updated.SectionID() != current.SectionID() || updated.Type() != current.Type() {
		return p, fmt.Errorf("%w: section %s identity changed", domain.ErrInvalidInput, sectionID)
	}

	before, err := json.Marshal(current)
	if err != nil {
		return p, err
	}
	after, err := json.Marshal(updated)
	if err != nil {
		return p, err
	}
	if bytes.Equal(before, after) {
		return p, nil
	}
	return withSection(p, idx, updated), nil
}
