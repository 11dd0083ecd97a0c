// Package outline provides the section outline editor of one property.
//
// Every change goes through the property's editor session, so the
// outline obeys the same selection, buffering and persistence rules as
// the browser editor and stays in step with it.
package outline

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	// ModeBrowse moves the cursor and applies structural edits.
	ModeBrowse Mode = iota
	// ModePick chooses the type of a new section.
	ModePick
	// ModeEdit types into the headline of the selected section.
	ModeEdit
)

// View is the outline editor.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.EditorSession

	property domain.Property
	cursor   int
	mode     Mode
	picker   int
	types    []domain.SectionType
	editor   *input.TextInput
	editRef  domain.ElementRef
	editPath string
	original string
	err      error

	changes     chan domain.Property
	unsubscribe func()
}

// NewView creates an outline over an open editor session.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.EditorSession) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		session:  session,
		property: session.Property(),
		types:    domain.AllSectionTypes(),
		editor:   input.NewTextInput(s, "Headline"),
		changes:  make(chan domain.Property, 1),
	}
}

// Init subscribes to document changes and starts listening for them.
func (v *View) Init() tea.Cmd {
	v.unsubscribe = v.session.Subscribe(v.publish)
	return v.listen()
}

// publish hands the newest document to the listener, replacing one it
// has not picked up yet. It runs under the session lock and must not block.
func (v *View) publish(p domain.Property) {
	for {
		select {
		case v.changes <- p:
			return
		default:
		}
		select {
		case <-v.changes:
		default:
		}
	}
}

func (v *View) listen() tea.Cmd {
	ch := v.changes
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return messages.PropertyChanged{Property: p}
	}
}

// Close stops listening and returns a command committing buffered edits.
func (v *View) Close() tea.Cmd {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
		close(v.changes)
	}
	v.editor.Blur()
	v.mode = ModeBrowse
	return v.flush()
}

// Mode returns what the keyboard currently drives.
func (v *View) Mode() Mode { return v.mode }

// Property returns the document as last seen.
func (v *View) Property() domain.Property { return v.property }

// Cursor returns the section id under the cursor.
func (v *View) Cursor() string {
	if v.cursor < len(v.property.Sections) {
		return v.property.Sections[v.cursor].SectionID()
	}
	return ""
}

// Err returns the last edit error.
func (v *View) Err() error { return v.err }

// Update handles messages for the outline.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.editor.SetWidth(msg.Width)

	case messages.PropertyChanged:
		if msg.Property.ID == v.property.ID {
			v.setProperty(msg.Property, "")
		}
		return v, v.listen()

	case messages.EditApplied:
		v.err = msg.Err
		if msg.Err == nil {
			v.setProperty(v.session.Property(), msg.Focus)
		}

	case messages.Flushed:
		v.err = msg.Err
		v.setProperty(v.session.Property(), "")

	case tea.KeyMsg:
		switch v.mode {
		case ModePick:
			return v.handlePickKey(msg)
		case ModeEdit:
			return v.handleEditKey(msg)
		default:
			return v.handleBrowseKey(msg)
		}
	}
	return v, nil
}

// setProperty replaces the document, keeping the cursor on focus or, by
// default, on the section it was on.
func (v *View) setProperty(p domain.Property, focus string) {
	if focus == "" {
		focus = v.Cursor()
	}
	v.property = p
	for i, s := range p.Sections {
		if s.SectionID() == focus {
			v.cursor = i
			return
		}
	}
	if v.cursor >= len(p.Sections) {
		v.cursor = max(len(p.Sections)-1, 0)
	}
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	current := v.Cursor()

	switch {
	case keymap.Matches(k, v.keymap.MoveUp):
		if current != "" {
			return v, v.apply(driving.MoveSection{SectionID: current, Delta: -1}, current)
		}
	case keymap.Matches(k, v.keymap.MoveDown):
		if current != "" {
			return v, v.apply(driving.MoveSection{SectionID: current, Delta: 1}, current)
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
			return v, v.selectCursor()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(v.property.Sections)-1 {
			v.cursor++
			return v, v.selectCursor()
		}
	case keymap.Matches(k, v.keymap.Open):
		return v, v.selectCursor()
	case keymap.Matches(k, v.keymap.Back):
		if _, ok := v.session.Selected(); ok {
			return v, v.apply(driving.Deselect{}, "")
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewProperties} }
	case keymap.Matches(k, v.keymap.Add):
		v.mode = ModePick
		v.picker = 0
	case keymap.Matches(k, v.keymap.Delete):
		if current != "" {
			return v, v.apply(driving.RemoveSection{SectionID: current}, "")
		}
	case keymap.Matches(k, v.keymap.Edit):
		return v, v.startEdit()
	}
	return v, nil
}

func (v *View) handlePickKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Cancel):
		v.mode = ModeBrowse
	case keymap.Matches(k, v.keymap.Up):
		v.picker = (v.picker + len(v.types) - 1) % len(v.types)
	case keymap.Matches(k, v.keymap.Down):
		v.picker = (v.picker + 1) % len(v.types)
	case keymap.Matches(k, v.keymap.Open):
		v.mode = ModeBrowse
		index := v.cursor + 1
		if len(v.property.Sections) == 0 {
			index = 0
		}
		return v, v.apply(driving.AddSection{Type: v.types[v.picker], Index: index}, "")
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.stopEdit()
		return v, v.flush()
	case tea.KeyEsc:
		v.stopEdit()
		if v.editor.Value() == v.original {
			return v, v.flush()
		}
		v.editor.SetValue(v.original)
		return v, tea.Sequence(v.bufferValue(v.original), v.flush())
	}

	before := v.editor.Value()
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	if after := v.editor.Value(); after != before {
		return v, tea.Batch(cmd, v.bufferValue(after))
	}
	return v, cmd
}

// startEdit opens the headline editor on the section under the cursor.
func (v *View) startEdit() tea.Cmd {
	if v.cursor >= len(v.property.Sections) {
		return nil
	}
	sec := v.property.Sections[v.cursor]
	v.editRef, v.editPath = headlineRef(sec)
	v.original = document.Headline(sec)
	v.mode = ModeEdit
	return tea.Batch(v.editor.Start(v.original), v.apply(driving.Select{Ref: v.editRef}, ""))
}

func (v *View) stopEdit() {
	v.mode = ModeBrowse
	v.editor.Blur()
}

// headlineRef returns the element and field path of a section's headline.
func headlineRef(s domain.Section) (domain.ElementRef, string) {
	field := "title"
	if s.Type() == domain.SectionButton {
		field = "label"
	}
	return domain.ElementRef{Kind: domain.ElementField, SectionID: s.SectionID(), Field: field}, field + ".text"
}

func (v *View) selectCursor() tea.Cmd {
	id := v.Cursor()
	if id == "" {
		return nil
	}
	return v.apply(driving.Select{Ref: domain.ElementRef{Kind: domain.ElementSection, SectionID: id}}, id)
}

func (v *View) bufferValue(value string) tea.Cmd {
	return v.apply(driving.BufferField{Ref: v.editRef, Path: v.editPath, Value: value}, v.editRef.SectionID)
}

// apply returns a command running intent on the session. The cursor
// follows focus, or the created section when focus is empty.
func (v *View) apply(intent driving.Intent, focus string) tea.Cmd {
	session := v.session
	return func() tea.Msg {
		out, err := session.Apply(context.Background(), intent)
		if focus == "" {
			focus = out.CreatedID
		}
		return messages.EditApplied{Outcome: out, Focus: focus, Err: err}
	}
}

func (v *View) flush() tea.Cmd {
	session := v.session
	return func() tea.Msg {
		return messages.Flushed{Err: session.Flush(context.Background())}
	}
}

// View renders the outline.
func (v *View) View() string {
	var b strings.Builder

	p := v.property
	b.WriteString(v.styles.Title.Render(p.Name))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s · %s", p.Address, humanize.CommafWithDigits(p.Price, 0))))
	b.WriteString("\n\n")

	selected, hasSelection := v.session.Selected()
	for i, sec := range p.Sections {
		b.WriteString(v.renderRow(i, sec, hasSelection && selected.SectionID == sec.SectionID()))
		b.WriteString("\n")
	}
	if len(p.Sections) == 0 {
		b.WriteString(v.styles.Muted.Render("No sections. Press a to add one."))
		b.WriteString("\n")
	}

	switch v.mode {
	case ModePick:
		b.WriteString("\n")
		b.WriteString(v.renderPicker())
	case ModeEdit:
		b.WriteString("\n")
		b.WriteString(v.editor.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("enter done • esc revert"))
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}
	return b.String()
}

func (v *View) renderRow(i int, sec domain.Section, selected bool) string {
	headline := document.Headline(sec)
	if headline == "" {
		headline = v.styles.Muted.Render("(untitled)")
	}
	if n := len(document.ItemIDs(sec)); n > 0 {
		headline += v.styles.Muted.Render(fmt.Sprintf("  %d items", n))
	}

	row := v.styles.TypeBadge(sec.Type()) + headline
	switch {
	case i == v.cursor:
		row = v.styles.Cursor.Render("> ") + row
	default:
		row = "  " + row
	}
	if selected {
		return v.styles.Selected.Render(row)
	}
	return row
}

func (v *View) renderPicker() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Add section"))
	b.WriteString("\n")
	for i, t := range v.types {
		line := fmt.Sprintf("%-18s %s", t, t.Description())
		if i == v.picker {
			b.WriteString(v.styles.Cursor.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
