package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin login",
	Long: `Pages are public in view mode. Editing in the browser requires signing in
with the admin credentials configured here.`,
}

var adminSetPasswordCmd = &cobra.Command{
	Use:   "set-password [username]",
	Short: "Set the admin username and password",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSetPassword,
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether admin credentials are configured",
	Args:  cobra.NoArgs,
	RunE:  runAdminStatus,
}

func init() {
	adminCmd.AddCommand(adminSetPasswordCmd)
	adminCmd.AddCommand(adminStatusCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminSetPassword(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	cmd.Print("Enter password: ")
	password := readPassword(reader)
	cmd.Println()
	cmd.Print("Confirm password: ")
	confirm := readPassword(reader)
	cmd.Println()

	if password != confirm {
		return errors.New("passwords do not match")
	}
	if err := adminService.SetCredentials(args[0], password); err != nil {
		return fmt.Errorf("failed to set credentials: %w", err)
	}

	cmd.Printf("Admin credentials saved for %s.\n", args[0])
	return nil
}

func runAdminStatus(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	if adminService.Configured() {
		cmd.Println("Admin credentials are configured.")
	} else {
		cmd.Println("Admin credentials are not configured. Run 'studio admin set-password'.")
	}
	return nil
}
