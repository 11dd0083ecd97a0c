package tui

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/core/services"
)

// MockPropertyService implements driving.PropertyService over a map.
type MockPropertyService struct {
	mu       sync.Mutex
	items    map[string]domain.Property
	ListFunc func(ctx context.Context) ([]domain.PropertySummary, error)
	saves    int
}

func newMockPropertyService(props ...domain.Property) *MockPropertyService {
	m := &MockPropertyService{items: make(map[string]domain.Property)}
	for _, p := range props {
		m.items[p.ID] = p
	}
	return m
}

func (m *MockPropertyService) Create(context.Context, driving.NewProperty) (domain.Property, []string, error) {
	return domain.Property{}, nil, domain.ErrNotImplemented
}

func (m *MockPropertyService) Load(_ context.Context, id string) (domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockPropertyService) Save(_ context.Context, p domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = p
	m.saves++
	return nil
}

func (m *MockPropertyService) List(ctx context.Context) ([]domain.PropertySummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PropertySummary, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockPropertyService) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MockPropertyService) stored(id string) domain.Property {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id]
}

// testProperty builds a default-layout property whose section ids are
// id-2, id-3 and so on.
func testProperty(id string) domain.Property {
	n := 0
	return document.NewProperty(document.PropertySeed{
		Name:    "Listing " + id,
		Address: "1 Quay Street",
		Price:   420000,
		Now:     time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		NewID: func() string {
			n++
			if n == 1 {
				return id
			}
			return fmt.Sprintf("%s-%d", id, n)
		},
	})
}

func testPorts(props ...domain.Property) (*Ports, *MockPropertyService) {
	mock := newMockPropertyService(props...)
	ws := services.NewWorkspace(mock, domain.EditorSettings{Debounce: domain.MinDebounce})
	return NewPorts(mock, ws), mock
}

func TestNewPorts(t *testing.T) {
	ports, mock := testPorts()

	assert.Equal(t, mock, ports.Properties)
	assert.NotNil(t, ports.Workspace)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	ports, _ := testPorts()

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"complete", ports, nil},
		{"no properties", &Ports{Workspace: ports.Workspace}, ErrMissingPropertyService},
		{"no workspace", &Ports{Properties: ports.Properties}, ErrMissingWorkspace},
		{"empty", &Ports{}, ErrMissingPropertyService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
