package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driving.Workspace = (*Workspace)(nil)

// Workspace keeps one editor session per open property, so every surface
// editing a property shares its document, selection and admin flag.
type Workspace struct {
	properties driving.PropertyService

	mu       sync.Mutex
	settings domain.EditorSettings
	sessions map[string]*EditorSession
	loaded   map[string]int
}

// NewWorkspace creates a workspace saving through properties.
func NewWorkspace(properties driving.PropertyService, settings domain.EditorSettings) *Workspace {
	return &Workspace{
		properties: properties,
		settings:   settings,
		sessions:   make(map[string]*EditorSession),
		loaded:     make(map[string]int),
	}
}

// Open returns the session for a property, loading it on first use.
func (w *Workspace) Open(ctx context.Context, propertyID string) (driving.EditorSession, error) {
	return w.open(ctx, propertyID)
}

func (w *Workspace) open(ctx context.Context, propertyID string) (*EditorSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.sessions[propertyID]; ok {
		return s, nil
	}
	p, err := w.properties.Load(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	var s *EditorSession
	opts := EditorOptions{Debounce: w.settings.Debounce}
	if w.settings.Autosave {
		// Saves start only after commits, so s is set by then.
		opts.Saver = NewAutosaver(w.properties.Save, func(err error) { s.reportError(err) })
	}
	s = NewEditorSession(p, opts)
	w.sessions[propertyID] = s
	w.loaded[propertyID] = p.Version
	logger.Debug("opened editor session for %s", propertyID)
	return s, nil
}

// SetDebounce changes the buffered edit window of every session.
func (w *Workspace) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings.Debounce = domain.ClampDebounce(d)
	for _, s := range w.sessions {
		s.SetDebounce(d)
	}
}

// Close flushes and closes every session. Without autosave, documents
// changed since they were opened are saved here.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	sessions, loaded := w.sessions, w.loaded
	w.sessions = make(map[string]*EditorSession)
	w.loaded = make(map[string]int)
	w.mu.Unlock()

	var errs []error
	for id, s := range sessions {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
			logger.Warn("closing session %s: %v", id, err)
			continue
		}
		if p := s.Property(); s.saver == nil && p.Version != loaded[id] {
			if err := w.save(ctx, p); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// save stores p, trying once more after a failure as the autosaver does.
func (w *Workspace) save(ctx context.Context, p domain.Property) error {
	err := w.properties.Save(ctx, p)
	if err == nil {
		return nil
	}
	logger.Warn("saving %s version %d failed, retrying: %v", p.ID, p.Version, err)
	return w.properties.Save(ctx, p)
}
