package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/views/outline"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/views/properties"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// App is the outline editor following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	propertiesView *properties.View

	// outlineView is nil until a property has been opened.
	outlineView *outline.View

	statusBar *status.Bar

	// startWith opens a property directly instead of showing the list.
	startWith string

	currentView messages.ViewType
	helpReturn  messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new outline editor with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		propertiesView: properties.NewView(s, km, ports.Properties),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewProperties,
	}, nil
}

// WithContext sets the context used to open editor sessions.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithProperty opens propertyID on start instead of the property list.
func (a *App) WithProperty(propertyID string) *App {
	a.startWith = propertyID
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := tea.SetWindowTitle("listing studio")
	if a.startWith != "" {
		id := a.startWith
		return tea.Batch(title, func() tea.Msg { return messages.OpenRequested{PropertyID: id} })
	}
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(title, a.propertiesView.Init())
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.propertiesView, _ = a.propertiesView.Update(msg)
		if a.outlineView != nil {
			a.outlineView, _ = a.outlineView.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.PropertiesLoaded:
		a.statusBar.Clear()
		if msg.Err != nil {
			a.fail(msg.Err)
		}
		a.propertiesView, cmd = a.propertiesView.Update(msg)
		return a, cmd

	case messages.OpenRequested:
		a.statusBar.SetState(status.StateLoading)
		return a, a.open(msg.PropertyID)

	case messages.SessionOpened:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		msg.Session.SetAdmin(true)
		a.outlineView = outline.NewView(a.styles, a.keymap, msg.Session)
		a.outlineView.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.currentView = messages.ViewOutline
		a.err = nil
		a.statusBar.Clear()
		a.statusBar.SetHints(a.keymap.OutlineHelp())
		a.statusBar.SetVersion(a.outlineView.Property().Version)
		return a, a.outlineView.Init()

	case messages.EditApplied, messages.PropertyChanged:
		if a.outlineView == nil {
			return a, nil
		}
		a.outlineView, cmd = a.outlineView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.Flushed:
		if a.outlineView != nil {
			a.outlineView, cmd = a.outlineView.Update(msg)
		}
		if msg.Err != nil {
			a.fail(msg.Err)
		} else if a.outlineView != nil {
			a.syncStatus()
		}
		return a, cmd

	case messages.ViewChanged:
		if msg.View == messages.ViewProperties {
			return a, a.closeOutline(a.propertiesView.Init())
		}
		a.currentView = msg.View
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	editing := a.currentView == messages.ViewOutline && a.outlineView.Mode() == outline.ModeEdit

	if k == "ctrl+c" || (!editing && keymap.Matches(k, a.keymap.Quit)) {
		return a, a.closeOutline(tea.Quit)
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Back) {
			a.currentView = a.helpReturn
		}
		return a, nil
	}
	if !editing && keymap.Matches(k, a.keymap.Help) {
		a.helpReturn = a.currentView
		a.currentView = messages.ViewHelp
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewOutline:
		a.outlineView, cmd = a.outlineView.Update(msg)
		a.syncStatus()
	default:
		a.propertiesView, cmd = a.propertiesView.Update(msg)
	}
	return a, cmd
}

// open returns a command opening the editor session of a property.
func (a *App) open(propertyID string) tea.Cmd {
	ctx, workspace := a.ctx, a.ports.Workspace
	return func() tea.Msg {
		session, err := workspace.Open(ctx, propertyID)
		if err != nil {
			return messages.SessionOpened{Err: fmt.Errorf("open %s: %w", propertyID, err)}
		}
		return messages.SessionOpened{Session: session}
	}
}

// closeOutline leaves the outline, committing buffered edits before next.
func (a *App) closeOutline(next tea.Cmd) tea.Cmd {
	if a.outlineView == nil {
		return next
	}
	flush := a.outlineView.Close()
	a.outlineView = nil
	a.currentView = messages.ViewProperties
	a.statusBar.Clear()
	a.statusBar.SetVersion(0)
	a.statusBar.SetHints(a.keymap.ListHelp())
	logger.Debug("outline closed")
	return tea.Sequence(flush, next)
}

func (a *App) syncStatus() {
	v := a.outlineView
	a.statusBar.SetVersion(v.Property().Version)
	switch {
	case v.Err() != nil:
		a.fail(v.Err())
	case v.Mode() == outline.ModeEdit:
		a.statusBar.SetState(status.StateEditing)
	default:
		a.statusBar.Clear()
	}
}

func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetError(err)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewOutline:
		body = a.outlineView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.propertiesView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("Edits are shared with the browser editor and saved as you go."))
	return b.String()
}

// Run starts the editor.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Outline returns the open outline, or nil.
func (a *App) Outline() *outline.View {
	return a.outlineView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.statusBar.SetWidth(width)
}
