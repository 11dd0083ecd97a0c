package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects output for the duration of the test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetTimestamps(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_Verbose(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, "[DEBUG] opened session p1\n"},
		{"info", Info, "[INFO] opened session p1\n"},
		{"warn", Warn, "[WARN] opened session p1\n"},
		{"error", Error, "[ERROR] opened session p1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log("opened session %s", "p1")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_Quiet(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Warn("warn")
	assert.Empty(t, buf.String())

	Error("save failed: %s", "timeout")
	assert.Equal(t, "[ERROR] save failed: timeout\n", buf.String())
}

func TestTimestamps(t *testing.T) {
	buf := capture(t, true)
	original := now
	now = func() time.Time { return time.Date(2026, 5, 1, 9, 30, 15, 250e6, time.UTC) }
	defer func() { now = original }()

	SetTimestamps(true)
	Info("saved %d properties", 2)

	assert.Equal(t, "09:30:15.250 [INFO] saved 2 properties\n", buf.String())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LOG", Level(42).String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
