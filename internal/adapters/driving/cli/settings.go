package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, AI assistance, editing, and site settings.

Use subcommands to change a specific group of settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSiteCmd = &cobra.Command{
	Use:   "site",
	Short: "Set the site name and logo",
	RunE:  runSettingsSite,
}

var settingsAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Configure the AI location assistant",
	Long: `Configure the LLM provider used to geocode addresses and suggest
nearby places for the location section.`,
	RunE: runSettingsAI,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [sqlite|memory|firestore]",
	Short: "Select the storage backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsStorage,
}

var settingsDebounceCmd = &cobra.Command{
	Use:   "debounce [milliseconds]",
	Short: "Set how long typed edits wait before they are committed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDebounce,
}

// Flags for the site command.
var (
	siteName string
	siteLogo string
)

func init() {
	settingsSiteCmd.Flags().StringVar(&siteName, "name", "", "Site name shown in page titles")
	settingsSiteCmd.Flags().StringVar(&siteLogo, "logo", "", "Logo asset: URL or stored asset key")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSiteCmd)
	settingsCmd.AddCommand(settingsAICmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsDebounceCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	cmd.Println()

	if settings.Storage.Backend == domain.StorageFirestore || settings.Cloud.IsConfigured() {
		cmd.Println("[Cloud]")
		cmd.Printf("  Project: %s\n", orNotSet(settings.Cloud.ProjectID))
		cmd.Printf("  Database: %s\n", settings.Cloud.Database)
		cmd.Printf("  Bucket: %s\n", orNotSet(settings.Cloud.Bucket))
		cmd.Printf("  Credentials: %s\n", orDefault(settings.Cloud.CredentialsFile, "application default"))
		cmd.Println()
	}

	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", settings.AI.Provider.Description())
	cmd.Printf("  Model: %s\n", orNotSet(settings.AI.Model))
	if settings.AI.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", orDefault(settings.AI.BaseURL, "default"))
	}
	if settings.AI.Provider.RequiresAPIKey() {
		if settings.AI.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.AI.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.AI.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Debounce: %s\n", settings.Editor.Debounce)
	cmd.Printf("  Autosave: %t\n", settings.Editor.Autosave)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.PublicDir != "" {
		cmd.Printf("  Public dir: %s\n", settings.Server.PublicDir)
	}

	if siteService != nil {
		site, err := siteService.GetSite(cmd.Context())
		if err == nil {
			cmd.Println()
			cmd.Println("[Site]")
			cmd.Printf("  Name: %s\n", orNotSet(site.SiteName))
			cmd.Printf("  Logo: %s\n", orNotSet(string(site.Logo)))
		}
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
	}
	return nil
}

func runSettingsSite(cmd *cobra.Command, _ []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}
	if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("logo") {
		return errors.New("nothing to change, pass --name or --logo")
	}

	site, err := siteService.GetSite(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get site settings: %w", err)
	}
	if cmd.Flags().Changed("name") {
		site.SiteName = siteName
	}
	if cmd.Flags().Changed("logo") {
		site.Logo = domain.AssetRef(siteLogo)
	}

	if err := siteService.SaveSite(cmd.Context(), site); err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}
	cmd.Println("Site settings saved.")
	return nil
}

func runSettingsAI(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureAIProvider(cmd, reader)
}

func configureAIProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select AI Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	defaultModel := domain.DefaultAIModels()[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetAIProvider(selected, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure AI provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateAIConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("AI configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("AI provider configured: %s (%s)\n", selected.Description(), model)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to %s. Restart running servers to apply.\n", backend.Description())
	return nil
}

func runSettingsDebounce(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ms, err := strconv.Atoi(args[0])
	if err != nil || ms <= 0 {
		return fmt.Errorf("invalid debounce %q, expected milliseconds", args[0])
	}
	if err := settingsService.SetDebounce(ms); err != nil {
		return fmt.Errorf("failed to set debounce: %w", err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("Debounce set to %s.\n", settings.Editor.Debounce)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, or a line from reader
// otherwise.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
