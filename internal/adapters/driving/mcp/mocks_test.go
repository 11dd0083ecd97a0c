package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// mockPropertyService is an in-memory driving.PropertyService.
type mockPropertyService struct {
	mu         sync.Mutex
	properties map[string]domain.Property
	saves      int
	err        error
}

func newMockPropertyService(ps ...domain.Property) *mockPropertyService {
	m := &mockPropertyService{properties: make(map[string]domain.Property)}
	for _, p := range ps {
		m.properties[p.ID] = p
	}
	return m
}

func (m *mockPropertyService) Create(_ context.Context, _ driving.NewProperty) (domain.Property, []string, error) {
	return domain.Property{}, nil, domain.ErrNotImplemented
}

func (m *mockPropertyService) Load(_ context.Context, id string) (domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Property{}, m.err
	}
	p, ok := m.properties[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPropertyService) Save(_ context.Context, p domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID] = p
	m.saves++
	return nil
}

func (m *mockPropertyService) List(_ context.Context) ([]domain.PropertySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	list := make([]domain.PropertySummary, 0, len(m.properties))
	for _, p := range m.properties {
		list = append(list, p.Summary())
	}
	return list, nil
}

func (m *mockPropertyService) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.properties, id)
	return nil
}

func (m *mockPropertyService) saved(id string) domain.Property {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.properties[id]
}
