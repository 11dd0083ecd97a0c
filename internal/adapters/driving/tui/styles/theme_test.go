package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":   theme.Primary,
		"secondary": theme.Secondary,
		"muted":     theme.Muted,
		"error":     theme.Error,
		"border":    theme.Border,
		"selection": theme.Selection,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Selection, theme.Error}
	seen := make(map[string]bool)
	for _, c := range accents {
		assert.False(t, seen[string(c)], "duplicate accent %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, theme, NewStyles(theme).Theme())
	assert.NotNil(t, NewStyles(nil).Theme())
	assert.Equal(t, DefaultTheme(), DefaultStyles().Theme())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("Harbour Villa"), "Harbour Villa")
	assert.Contains(t, s.Cursor.Render("row"), "row")
	assert.Contains(t, s.Selected.Render("row"), "row")
}

func TestStyles_TypeBadge(t *testing.T) {
	s := DefaultStyles()

	badge := s.TypeBadge(domain.SectionHero)
	assert.Contains(t, badge, "hero")
	assert.Equal(t, lipgloss.Width(s.TypeBadge(domain.SectionButton)), lipgloss.Width(badge))
}
