package document

import (
	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// itemTemplate returns the default item of a collection.
func itemTemplate(collection, id string) (any, bool) {
	switch collection {
	case domain.CollectionTexts:
		return domain.DraggableText{
			ID: id,
			StyledText: domain.StyledText{
				Text:       "New text",
				FontSize:   1.5,
				Color:      "#ffffff",
				FontFamily: domain.FontInter,
			},
			Position: domain.Position{X: 50, Y: 50},
		}, true
	case domain.CollectionFeatures:
		return newFeature(id, "star", "New feature"), true
	case domain.CollectionImages:
		return domain.GalleryImage{ID: id}, true
	case domain.CollectionItems:
		return newAmenity(id, "check", "New amenity"), true
	case domain.CollectionTiers:
		return newTier(id, "New tier", "month", false), true
	case domain.CollectionPlaces:
		return domain.Place{ID: id, Visual: domain.Visual{Icon: "map-pin"}, Title: "New place", TravelTime: "5 min"}, true
	default:
		return nil, false
	}
}

// items returns the collection name of the section in m and its items.
func items(m map[string]any) (string, []any, bool) {
	t, _ := m[keyType].(string)
	name := domain.ItemCollection(domain.SectionType(t))
	if name == "" {
		return "", nil, false
	}
	list, _ := m[name].([]any)
	return name, list, true
}

func itemID(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := obj[keyID].(string)
	return id
}

// AddItem appends a new item to the collection owned by the section.
// The item starts from the collection's default template with seed merged
// in, and always receives a fresh id from newID. It returns the new item id,
// or "" when the section is missing or owns no collection.
func AddItem(p domain.Property, sectionID string, seed Patch, newID IDFunc) (domain.Property, string, error) {
	id := newID.orDefault()()
	next, err := mutateSection(p, sectionID, func(m map[string]any) bool {
		name, list, ok := items(m)
		if !ok {
			return false
		}
		tmpl, _ := itemTemplate(name, id)
		item, err := toMap(tmpl)
		if err != nil {
			return false
		}
		merge(item, seed)
		m[name] = append(append([]any{}, list...), item)
		return true
	})
	if err != nil || next.Version == p.Version {
		return p, "", err
	}
	return next, id, nil
}

// UpdateItem merges patch into one item of the section's collection.
// A missing section or item is a no-op.
func UpdateItem(p domain.Property, sectionID, itemID string, patch Patch) (domain.Property, error) {
	return mutateItem(p, sectionID, itemID, func(item map[string]any) bool {
		return merge(item, patch)
	})
}

// SetItemField sets one field of an item, addressed by a dotted path such as
// "position.x". A path that does not exist on the item is a no-op.
func SetItemField(p domain.Property, sectionID, itemID, path string, value any) (domain.Property, error) {
	return mutateItem(p, sectionID, itemID, func(item map[string]any) bool {
		return setPath(item, path, value)
	})
}

func mutateItem(p domain.Property, sectionID, id string, fn func(item map[string]any) bool) (domain.Property, error) {
	return mutateSection(p, sectionID, func(m map[string]any) bool {
		_, list, ok := items(m)
		if !ok {
			return false
		}
		for _, it := range list {
			if itemID(it) != id {
				continue
			}
			obj := it.(map[string]any)
			if !fn(obj) {
				return false
			}
			obj[keyID] = id
			return true
		}
		return false
	})
}

// RemoveItem deletes one item. Removing the last item of a collection is
// allowed; an empty collection renders as an empty state.
func RemoveItem(p domain.Property, sectionID, id string) (domain.Property, error) {
	return mutateSection(p, sectionID, func(m map[string]any) bool {
		name, list, ok := items(m)
		if !ok {
			return false
		}
		kept := make([]any, 0, len(list))
		for _, it := range list {
			if itemID(it) != id {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(list) {
			return false
		}
		m[name] = kept
		return true
	})
}

// ReorderItems re-sorts a section's collection to follow orderedIDs.
// Items whose ids are not listed keep their relative order and move to the end.
func ReorderItems(p domain.Property, sectionID string, orderedIDs []string) (domain.Property, error) {
	return mutateSection(p, sectionID, func(m map[string]any) bool {
		name, list, ok := items(m)
		if !ok || len(list) == 0 {
			return false
		}
		m[name] = reorder(list, orderedIDs, itemID)
		return true
	})
}

// reorder places elements in the listed order, then appends the rest in
// their original order. Unknown and repeated ids are skipped.
func reorder[T any](in []T, orderedIDs []string, idOf func(T) string) []T {
	byID := make(map[string]int, len(in))
	for i, v := range in {
		byID[idOf(v)] = i
	}
	placed := make([]bool, len(in))
	out := make([]T, 0, len(in))
	for _, id := range orderedIDs {
		i, ok := byID[id]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		out = append(out, in[i])
	}
	for i, v := range in {
		if !placed[i] {
			out = append(out, v)
		}
	}
	return out
}
