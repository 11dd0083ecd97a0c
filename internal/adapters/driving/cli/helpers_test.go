package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/core/services"
)

// fakeAssistant answers location questions with fixed data.
type fakeAssistant struct {
	point  domain.GeoPoint
	places []domain.PlaceSuggestion
}

func (f *fakeAssistant) Geocode(context.Context, string) (domain.GeoPoint, error) {
	return f.point, nil
}

func (f *fakeAssistant) SuggestNearbyPlaces(context.Context, domain.GeoPoint) ([]domain.PlaceSuggestion, error) {
	return f.places, nil
}

// testServices is the in-memory application the commands run against.
type testServices struct {
	persist   *services.PersistenceService
	workspace *services.Workspace
	admin     *services.AdminGate
	settings  *services.SettingsService
}

// setupTestServices wires every command to in-memory stores and restores
// the previous wiring when the test ends.
func setupTestServices(t *testing.T, assistant *fakeAssistant) *testServices {
	t.Helper()

	props := memory.NewPropertyStore()
	blobs := memory.NewBlobStore()
	config := memory.NewConfigStore()

	var persist *services.PersistenceService
	if assistant != nil {
		persist = services.NewPersistenceService(props, props, blobs, assistant)
	} else {
		persist = services.NewPersistenceService(props, props, blobs, nil)
	}

	ts := &testServices{
		persist:   persist,
		workspace: services.NewWorkspace(persist, domain.EditorSettings{Debounce: domain.MinDebounce}),
		admin:     services.NewAdminGate(config),
		settings:  services.NewSettingsService(config, nil),
	}

	SetServices(Services{
		Properties:  persist,
		Backup:      persist,
		Submissions: persist,
		Location:    persist,
		Site:        persist,
		Assets:      services.NewAssetResolver(blobs, nil),
		Workspace:   ts.workspace,
		Settings:    ts.settings,
		Admin:       ts.admin,
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return ts
}

// createProperty stores a default-layout property.
func (ts *testServices) createProperty(t *testing.T, name string) domain.Property {
	t.Helper()
	p, _, err := ts.persist.Create(context.Background(), driving.NewProperty{
		Name:    name,
		Address: "1 Quay Street",
		Price:   950000,
	})
	require.NoError(t, err)
	return p
}

func (ts *testServices) load(t *testing.T, id string) domain.Property {
	t.Helper()
	p, err := ts.persist.Load(context.Background(), id)
	require.NoError(t, err)
	return p
}

// resetFlags puts command flags back to their defaults, since cobra keeps
// flag values in package variables between executions.
func resetFlags() {
	createAddress, createPrice, createGeocode, showJSON = "", 0, false, false
	sectionIndex, sectionTitle = -1, ""
	itemSets = nil
	exportFormat, exportOutput, exportClipboard = string(driving.BackupJSON), "", false
	assistAddress, assistApply = "", false
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// idAfter returns the word following prefix in output.
func idAfter(t *testing.T, output, prefix string) string {
	t.Helper()
	_, rest, ok := strings.Cut(output, prefix)
	require.True(t, ok, "%q not in output:\n%s", prefix, output)
	fields := strings.Fields(rest)
	require.NotEmpty(t, fields)
	return fields[0]
}
