package properties

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// MockPropertyService implements driving.PropertyService for testing.
type MockPropertyService struct {
	ListFunc func(ctx context.Context) ([]domain.PropertySummary, error)
}

func (m *MockPropertyService) Create(context.Context, driving.NewProperty) (domain.Property, []string, error) {
	return domain.Property{}, nil, nil
}

func (m *MockPropertyService) Load(context.Context, string) (domain.Property, error) {
	return domain.Property{}, domain.ErrNotFound
}

func (m *MockPropertyService) Save(context.Context, domain.Property) error { return nil }

func (m *MockPropertyService) List(ctx context.Context) ([]domain.PropertySummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPropertyService) Delete(context.Context, string) error { return nil }

var summaries = []domain.PropertySummary{
	{ID: "p1", Name: "Harbour Villa", Address: "1 Quay Street", SectionCount: 8, UpdatedAt: time.Now().Add(-time.Hour)},
	{ID: "p2", Name: "Hill Cottage", SectionCount: 3},
}

func loadedView(t *testing.T) *View {
	t.Helper()
	v := NewView(nil, nil, &MockPropertyService{
		ListFunc: func(context.Context) ([]domain.PropertySummary, error) { return summaries, nil },
	})
	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_InitLoads(t *testing.T) {
	v := NewView(nil, nil, &MockPropertyService{})

	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading properties...")

	v, _ = v.Update(cmd())
	assert.Contains(t, v.View(), "No properties yet")
}

func TestView_ListsProperties(t *testing.T) {
	v := loadedView(t)

	view := v.View()
	assert.Contains(t, view, "Harbour Villa")
	assert.Contains(t, view, "8 sections, edited 1 hour ago")
	assert.Contains(t, view, "Hill Cottage")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, nil, &MockPropertyService{
		ListFunc: func(context.Context) ([]domain.PropertySummary, error) { return nil, errors.New("disk gone") },
	})

	v, _ = v.Update(v.Init()())

	assert.Contains(t, v.View(), "Error: disk gone")
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Init()()

	loaded, ok := msg.(messages.PropertiesLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(t)

	got, _ := v.Selected()
	assert.Equal(t, "p1", got.ID)

	v, _ = v.Update(key("j"))
	got, _ = v.Selected()
	assert.Equal(t, "p2", got.ID)

	v, _ = v.Update(key("down"))
	got, _ = v.Selected()
	assert.Equal(t, "p2", got.ID, "cursor stops at the last row")

	v, _ = v.Update(key("k"))
	v, _ = v.Update(key("up"))
	got, _ = v.Selected()
	assert.Equal(t, "p1", got.ID)
}

func TestView_EnterRequestsOpen(t *testing.T) {
	v := loadedView(t)
	v, _ = v.Update(key("j"))

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.OpenRequested{PropertyID: "p2"}, cmd())
}

func TestView_EnterOnEmptyListDoesNothing(t *testing.T) {
	v := NewView(nil, nil, &MockPropertyService{})
	v, _ = v.Update(v.Init()())

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	_, ok := v.Selected()
	assert.False(t, ok)
}

func TestView_Reload(t *testing.T) {
	calls := 0
	v := NewView(nil, nil, &MockPropertyService{
		ListFunc: func(context.Context) ([]domain.PropertySummary, error) {
			calls++
			return summaries[:calls], nil
		},
	})
	v, _ = v.Update(v.Init()())
	v, _ = v.Update(key("j"))

	_, cmd := v.Update(key("r"))
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Equal(t, 2, calls)
	assert.Contains(t, v.View(), "Hill Cottage")

	v, _ = v.Update(key("j"))
	got, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "p2", got.ID)
}
