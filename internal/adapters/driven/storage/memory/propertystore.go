package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Ensure PropertyStore implements the interfaces.
var (
	_ driven.PropertyStore   = (*PropertyStore)(nil)
	_ driven.SubmissionStore = (*PropertyStore)(nil)
)

// PropertyStore is an in-memory implementation of driven.PropertyStore
// and driven.SubmissionStore.
type PropertyStore struct {
	mu          sync.RWMutex
	properties  map[string]domain.Property
	submissions map[string][]domain.ContactSubmission
}

// NewPropertyStore creates a new in-memory property store.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		properties:  make(map[string]domain.Property),
		submissions: make(map[string][]domain.ContactSubmission),
	}
}

func detach(p domain.Property) domain.Property {
	if p.Sections != nil {
		p.Sections = append([]domain.Section(nil), p.Sections...)
	}
	return p
}

// Save stores or replaces a property.
func (s *PropertyStore) Save(_ context.Context, p domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = detach(p)
	return nil
}

// SaveAll stores several properties.
func (s *PropertyStore) SaveAll(_ context.Context, ps []domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		s.properties[p.ID] = detach(p)
	}
	return nil
}

// Get retrieves a property by ID.
func (s *PropertyStore) Get(_ context.Context, id string) (domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return detach(p), nil
}

// Delete removes a property and its submissions.
func (s *PropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.properties, id)
	delete(s.submissions, id)
	return nil
}

// List returns all properties, most recently updated first.
func (s *PropertyStore) List(_ context.Context) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, detach(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// AppendSubmission stores a new submission.
func (s *PropertyStore) AppendSubmission(_ context.Context, sub domain.ContactSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.PropertyID] = append(s.submissions[sub.PropertyID], sub)
	return nil
}

// ListSubmissions returns a property's submissions in insertion order.
func (s *PropertyStore) ListSubmissions(_ context.Context, propertyID string) ([]domain.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ContactSubmission(nil), s.submissions[propertyID]...), nil
}
