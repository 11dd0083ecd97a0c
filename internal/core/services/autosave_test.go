package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// gatedSaver blocks each save until released and records saved versions.
type gatedSaver struct {
	mu      sync.Mutex
	started chan int
	release chan struct{}
	saved   []int
}

func newGatedSaver() *gatedSaver {
	return &gatedSaver{started: make(chan int, 16), release: make(chan struct{})}
}

func (g *gatedSaver) save(_ context.Context, p domain.Property) error {
	g.started <- p.Version
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = append(g.saved, p.Version)
	return nil
}

func (g *gatedSaver) versions() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.saved...)
}

func version(v int) domain.Property {
	return domain.Property{ID: "p1", Version: v}
}

func TestAutosaver_EditsDuringSaveAreCoalesced(t *testing.T) {
	g := newGatedSaver()
	a := NewAutosaver(g.save, nil)

	a.Schedule(version(1))
	require.Equal(t, 1, <-g.started)

	// Committed while version 1 is in flight.
	a.Schedule(version(2))
	a.Schedule(version(3))
	a.Schedule(version(4))

	g.release <- struct{}{}
	require.Equal(t, 4, <-g.started)
	g.release <- struct{}{}

	require.NoError(t, a.Flush(context.Background()))
	assert.Equal(t, []int{1, 4}, g.versions())
	assert.Equal(t, 2, a.Saves())
}

func TestAutosaver_FlushWhenIdle(t *testing.T) {
	a := NewAutosaver(func(context.Context, domain.Property) error { return nil }, nil)
	assert.NoError(t, a.Flush(context.Background()))
}

func TestAutosaver_FlushHonoursContext(t *testing.T) {
	g := newGatedSaver()
	a := NewAutosaver(g.save, nil)
	a.Schedule(version(1))
	<-g.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Flush(ctx), context.DeadlineExceeded)

	g.release <- struct{}{}
	assert.NoError(t, a.Flush(context.Background()))
}

func TestAutosaver_ReportsErrors(t *testing.T) {
	var reported []error
	var mu sync.Mutex
	a := NewAutosaver(func(context.Context, domain.Property) error { return errBoom }, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	})

	a.Schedule(version(1))
	assert.ErrorIs(t, a.Flush(context.Background()), errBoom)

	mu.Lock()
	defer mu.Unlock()
	// The first save and one retry from Flush.
	assert.Len(t, reported, 2)
	assert.Equal(t, 2, a.Saves())
}

func TestAutosaver_FlushRetriesFailedSnapshot(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
		saved []int
	)
	a := NewAutosaver(func(_ context.Context, p domain.Property) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errBoom
		}
		saved = append(saved, p.Version)
		return nil
	}, nil)

	a.Schedule(version(1))

	require.NoError(t, a.Flush(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{1}, saved)
}

func TestAutosaver_NewerSnapshotReplacesFailed(t *testing.T) {
	var (
		mu    sync.Mutex
		saved []int
	)
	a := NewAutosaver(func(_ context.Context, p domain.Property) error {
		if p.Version == 1 {
			return errBoom
		}
		mu.Lock()
		defer mu.Unlock()
		saved = append(saved, p.Version)
		return nil
	}, nil)

	a.Schedule(version(1))
	assert.Eventually(t, func() bool { return a.Saves() == 1 }, time.Second, 5*time.Millisecond)
	a.Schedule(version(2))

	require.NoError(t, a.Flush(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2}, saved)
}
