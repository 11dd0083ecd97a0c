package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/adapters/driving/tui"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [property-id]",
	Short: "Edit a property outline in the terminal",
	Long: `Launch the terminal outline editor.

Pick a property, then reorder, add, remove and retitle its sections. The
editor uses the same sessions as the browser, so changes show up live in
any open admin page when both run in one process.

Controls:
  ↑/k, ↓/j - Move the cursor (selects the section)
  K, J     - Move the section up / down
  a        - Add a section after the cursor
  d        - Remove the section
  e        - Edit the headline (enter keeps, esc reverts)
  Esc      - Deselect / back to the property list
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(propertyService, workspace))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	if len(args) == 1 {
		app.WithProperty(args[0])
	}

	runErr := app.Run()
	if err := workspace.Close(context.Background()); err != nil {
		logger.Warn("closing editor sessions: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}
