package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import backup files",
	Long: `Export properties and their contact submissions to a portable backup
file, or import one. Imports never overwrite: colliding ids are renamed.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export [property-id...]",
	Short: "Export properties (all when none are given)",
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a backup file ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

// Flags for the export command.
var (
	exportFormat    string
	exportOutput    string
	exportClipboard bool
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

func init() {
	backupExportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(driving.BackupJSON), "Backup encoding: json or yaml")
	backupExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	backupExportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the backup to the clipboard")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	format := driving.BackupFormat(exportFormat)
	if format != driving.BackupJSON && format != driving.BackupYAML {
		return fmt.Errorf("unknown format %q, expected json or yaml", exportFormat)
	}

	data, err := backupService.ExportBackup(cmd.Context(), args, format)
	if err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}

	switch {
	case exportClipboard:
		if err := writeClipboard(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cmd.Printf("Backup copied to clipboard (%d bytes).\n", len(data))
	case exportOutput != "":
		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		cmd.Printf("Backup written to %s (%d bytes).\n", exportOutput, len(data))
	default:
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
	}
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	report, err := backupService.ImportBackup(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}

	cmd.Printf("Imported %d properties and %d submissions.\n", len(report.Properties), report.Submissions)
	for _, p := range report.Properties {
		cmd.Printf("  %s  %s\n", p.ID, p.Name)
	}
	if len(report.Renamed) > 0 {
		cmd.Println("\nRenamed colliding ids:")
		old := make([]string, 0, len(report.Renamed))
		for id := range report.Renamed {
			old = append(old, id)
		}
		sort.Strings(old)
		for _, id := range old {
			cmd.Printf("  %s -> %s\n", id, report.Renamed[id])
		}
	}
	return nil
}
