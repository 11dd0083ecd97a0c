// Package cli provides the studio command-line interface.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/web"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Build and edit property listing pages",
	Long: `Listing Studio builds single-property marketing pages out of sections
(hero, gallery, pricing, location, contact, ...) and edits them live.

Run 'studio serve' to publish pages and edit them in the browser, or use
the property, section and item commands to edit from the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services holds the application services the commands drive.
type Services struct {
	Properties  driving.PropertyService
	Backup      driving.BackupService
	Submissions driving.SubmissionService
	Location    driving.LocationService
	Site        driving.SiteService
	Assets      driving.AssetService
	Workspace   driving.Workspace
	Settings    driving.SettingsService
	Admin       driving.AdminService

	// WatchConfig starts watching the configuration for changes and calls
	// onReload after each reload. It may be nil.
	WatchConfig func(onReload func()) (stop func() error, err error)
}

// Service references used by commands.
var (
	propertyService   driving.PropertyService
	backupService     driving.BackupService
	submissionService driving.SubmissionService
	locationService   driving.LocationService
	siteService       driving.SiteService
	assetService      driving.AssetService
	workspace         driving.Workspace
	settingsService   driving.SettingsService
	adminService      driving.AdminService
	watchConfig       func(onReload func()) (func() error, error)
)

// SetServices injects the services used by every command.
func SetServices(s Services) {
	propertyService = s.Properties
	backupService = s.Backup
	submissionService = s.Submissions
	locationService = s.Location
	siteService = s.Site
	assetService = s.Assets
	workspace = s.Workspace
	settingsService = s.Settings
	adminService = s.Admin
	watchConfig = s.WatchConfig
}

// SetVersion sets the version reported by 'studio version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// webDeps collects the page server's dependencies.
func webDeps() web.Deps {
	return web.Deps{
		Workspace:   workspace,
		Properties:  propertyService,
		Submissions: submissionService,
		Site:        siteService,
		Assets:      assetService,
		Admin:       adminService,
		Location:    locationService,
	}
}

// debounceSetter is implemented by workspaces whose edit window can change
// while sessions are open.
type debounceSetter interface {
	SetDebounce(d time.Duration)
}
