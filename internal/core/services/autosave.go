package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// SaveFunc stores one property snapshot.
type SaveFunc func(ctx context.Context, p domain.Property) error

// DefaultSaveTimeout bounds a single background save.
const DefaultSaveTimeout = 30 * time.Second

// Autosaver persists committed snapshots in the background. At most one
// save is in flight; snapshots scheduled meanwhile replace each other and
// the newest is saved when the in-flight save returns. A snapshot whose
// save failed is kept until a newer one is scheduled or Flush retries it.
type Autosaver struct {
	save    SaveFunc
	onError func(error)
	timeout time.Duration

	mu      sync.Mutex
	pending *domain.Property
	failed  *domain.Property
	running bool
	idle    chan struct{}
	lastErr error
	saves   int
}

// NewAutosaver creates an autosaver. onError may be nil.
func NewAutosaver(save SaveFunc, onError func(error)) *Autosaver {
	return &Autosaver{
		save:    save,
		onError: onError,
		timeout: DefaultSaveTimeout,
	}
}

// Schedule queues p for saving.
func (a *Autosaver) Schedule(p domain.Property) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending != nil {
		logger.Debug("autosave: coalescing version %d into %d", a.pending.Version, p.Version)
	}
	a.pending = &p
	a.failed = nil
	a.start()
}

// start launches the save loop unless it is running. Callers hold mu.
func (a *Autosaver) start() {
	if a.running {
		return
	}
	a.running = true
	a.idle = make(chan struct{})
	go a.run()
}

func (a *Autosaver) run() {
	for {
		a.mu.Lock()
		if a.pending == nil {
			a.running = false
			close(a.idle)
			a.mu.Unlock()
			return
		}
		p := *a.pending
		a.pending = nil
		a.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		err := a.save(ctx, p)
		cancel()

		a.mu.Lock()
		a.lastErr = err
		a.saves++
		if err == nil {
			a.failed = nil
		} else if a.pending == nil {
			a.failed = &p
		}
		a.mu.Unlock()

		if err != nil {
			logger.Warn("autosave %s version %d failed: %v", p.ID, p.Version, err)
			if a.onError != nil {
				a.onError(err)
			}
			continue
		}
		logger.Debug("autosave: saved %s version %d", p.ID, p.Version)
	}
}

// Flush waits until no save is in flight or pending and returns the error
// of the last save, if any. A snapshot left by a failed save is saved
// again once before Flush gives up on it.
func (a *Autosaver) Flush(ctx context.Context) error {
	retried := false
	for {
		a.mu.Lock()
		if !a.running && a.failed != nil && !retried {
			retried = true
			logger.Debug("autosave: retrying %s version %d", a.failed.ID, a.failed.Version)
			a.pending, a.failed = a.failed, nil
			a.start()
		}
		if !a.running {
			err := a.lastErr
			a.mu.Unlock()
			return err
		}
		idle := a.idle
		a.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Saves returns the number of saves attempted.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
