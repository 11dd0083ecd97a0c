package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/web"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve listing pages and the live editor",
	Long: `Serve every property at /p/{id}. Visitors see the page in view mode;
signing in as admin switches the page into edit mode, where changes are
sent over a WebSocket and shown to every open copy of the page.

Examples:
  studio serve
  studio serve --addr :9000 --watch-config`,
	RunE: runServe,
}

// Flags for the serve command.
var (
	serveAddr        string
	servePublicDir   string
	serveWatchConfig bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings)")
	serveCmd.Flags().StringVar(&servePublicDir, "public", "", "Directory served under /static/")
	serveCmd.Flags().BoolVar(&serveWatchConfig, "watch-config", false, "Reload settings when the config file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || workspace == nil || propertyService == nil {
		return errors.New("services not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	server := settings.Server
	if serveAddr != "" {
		server.Addr = serveAddr
	}
	if servePublicDir != "" {
		server.PublicDir = servePublicDir
	}

	if adminService != nil && !adminService.Configured() {
		cmd.Println("Warning: no admin credentials. Run 'studio admin set-password' to enable editing.")
	}

	if serveWatchConfig && watchConfig != nil {
		stop, err := watchConfig(reloadEditorSettings)
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer func() {
			if err := stop(); err != nil {
				logger.Warn("stopping config watcher: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.SetTimestamps(true)
	srv := web.NewServer(server, webDeps())
	cmd.Printf("Serving listings on %s\n", server.Addr)
	serveErr := srv.ListenAndServe(ctx)

	if err := workspace.Close(cmd.Context()); err != nil {
		logger.Error("saving open properties: %v", err)
	}
	return serveErr
}

// reloadEditorSettings re-applies the edit window after a config change.
func reloadEditorSettings() {
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reloading settings: %v", err)
		return
	}
	if ds, ok := workspace.(debounceSetter); ok {
		ds.SetDebounce(settings.Editor.Debounce)
		logger.Info("Editor debounce set to %s", settings.Editor.Debounce)
	}
}
