package file

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

func TestWatcher_ReloadsConfigOnWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("editor.debounce_ms", 300))

	var reloads atomic.Int32
	w, err := NewWatcher(store, nil, func() { reloads.Add(1) })
	require.NoError(t, err)
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(store.Path(), []byte("[editor]\ndebounce_ms = 260\n"), 0600))

	assert.Eventually(t, func() bool {
		return store.GetInt("editor.debounce_ms") == 260
	}, 3*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	var reloads atomic.Int32
	w, err := NewWatcher(store, nil, func() { reloads.Add(1) })
	require.NoError(t, err)
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600))

	time.Sleep(4 * reloadQuiet)
	assert.Zero(t, reloads.Load())
}

func TestWatcher_ClearsPromptCache(t *testing.T) {
	configDir := t.TempDir()
	store, err := NewConfigStore(configDir)
	require.NoError(t, err)

	promptDir := t.TempDir()
	prompts, err := NewPromptStore(promptDir)
	require.NoError(t, err)
	_, err = prompts.Load(driven.PromptSystem)
	require.NoError(t, err)

	w, err := NewWatcher(store, prompts, nil)
	require.NoError(t, err)
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(promptDir, "system.txt"), []byte("edited"), 0600))

	assert.Eventually(t, func() bool {
		p, _ := prompts.Load(driven.PromptSystem)
		return p == "edited"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	w, err := NewWatcher(store, nil, nil)
	require.NoError(t, err)
	w.Start()

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
