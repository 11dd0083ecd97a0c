package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui/keymap"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReady, "Ready"},
		{StateLoading, "Loading..."},
		{StateSaving, "Saving..."},
		{StateEditing, "Editing"},
		{StateError, "Error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_SetError(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetError(errors.New("admin mode required"))

	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Error: admin mode required")

	bar.Clear()
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}

func TestBar_VersionAndMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetVersion(7)
	bar.SetMessage("saved")

	view := bar.View()
	assert.Contains(t, view, "v7")
	assert.Contains(t, view, "saved")
}

func TestBar_Hints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(160)

	assert.Contains(t, bar.View(), "enter open")

	bar.SetHints([]key.Binding{km.Edit})
	view := bar.View()
	assert.Contains(t, view, "e edit headline")
	assert.NotContains(t, view, "enter open")
}

func TestBar_NarrowWidthStillRenders(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}
