// Package properties provides the property picker view.
package properties

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// View lists the stored properties.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	properties driving.PropertyService

	items    []domain.PropertySummary
	selected int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new property list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, properties driving.PropertyService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, properties: properties}
}

// Init loads the property list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.properties == nil {
			return messages.PropertiesLoaded{Err: fmt.Errorf("property service not available")}
		}
		items, err := v.properties.List(context.Background())
		return messages.PropertiesLoaded{Properties: items, Err: err}
	}
}

// Update handles messages for the property list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case messages.PropertiesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.items = msg.Properties
			if v.selected >= len(v.items) {
				v.selected = max(len(v.items)-1, 0)
			}
		}

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Open):
		if v.selected < len(v.items) {
			id := v.items[v.selected].ID
			return v, func() tea.Msg { return messages.OpenRequested{PropertyID: id} }
		}
	case k == "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

// Selected returns the highlighted property, if any.
func (v *View) Selected() (domain.PropertySummary, bool) {
	if v.selected < len(v.items) {
		return v.items[v.selected], true
	}
	return domain.PropertySummary{}, false
}

// View renders the property list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Properties"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading properties..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No properties yet. Create one with: studio property create"))
	default:
		for i := range v.items {
			b.WriteString(v.renderRow(i, v.items[i]))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *View) renderRow(i int, p domain.PropertySummary) string {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	detail := fmt.Sprintf("%d sections", p.SectionCount)
	if !p.UpdatedAt.IsZero() {
		detail += ", edited " + humanize.Time(p.UpdatedAt)
	}

	if i == v.selected {
		return v.styles.Cursor.Render("> "+name) + "  " + v.styles.Muted.Render(detail)
	}
	line := "  " + v.styles.Normal.Render(name) + "  " + v.styles.Muted.Render(detail)
	if p.Address != "" {
		line += "\n    " + v.styles.Muted.Render(p.Address)
	}
	return line
}
