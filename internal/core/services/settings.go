package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyCloudProject    = "cloud.project_id"
	keyCloudDatabase   = "cloud.database"
	keyCloudBucket     = "cloud.bucket"
	keyCloudCredsFile  = "cloud.credentials_file"
	keyCloudRPS        = "cloud.requests_per_second"
	keyAIProvider      = "ai.provider"
	keyAIModel         = "ai.model"
	keyAIBaseURL       = "ai.base_url"
	keyAIAPIKey        = "ai.api_key"
	keyAITimeout       = "ai.timeout_seconds"
	keyEditorDebounce  = "editor.debounce_ms"
	keyEditorAutosave  = "editor.autosave"
	keyServerAddr      = "server.addr"
	keyServerPublicDir = "server.public_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Cloud: domain.CloudSettings{
			ProjectID:         s.configStore.GetString(keyCloudProject),
			Database:          s.getString(keyCloudDatabase, defaults.Cloud.Database),
			Bucket:            s.configStore.GetString(keyCloudBucket),
			CredentialsFile:   s.configStore.GetString(keyCloudCredsFile),
			RequestsPerSecond: s.getFloat(keyCloudRPS, defaults.Cloud.RequestsPerSecond),
		},
		AI: domain.AISettings{
			Provider: s.getProvider(keyAIProvider, defaults.AI.Provider),
			Model:    s.getString(keyAIModel, defaults.AI.Model),
			BaseURL:  s.configStore.GetString(keyAIBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyAIAPIKey),
			Timeout:  s.getSeconds(keyAITimeout, defaults.AI.Timeout),
		},
		Editor: domain.EditorSettings{
			Debounce: domain.ClampDebounce(s.getMillis(keyEditorDebounce, defaults.Editor.Debounce)),
			Autosave: s.getBool(keyEditorAutosave, defaults.Editor.Autosave),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, defaults.Server.Addr),
			PublicDir: s.configStore.GetString(keyServerPublicDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyCloudProject, settings.Cloud.ProjectID},
		{keyCloudDatabase, settings.Cloud.Database},
		{keyCloudBucket, settings.Cloud.Bucket},
		{keyCloudCredsFile, settings.Cloud.CredentialsFile},
		{keyCloudRPS, settings.Cloud.RequestsPerSecond},
		{keyAIProvider, settings.AI.Provider.String()},
		{keyAIModel, settings.AI.Model},
		{keyAIBaseURL, settings.AI.BaseURL},
		{keyAITimeout, int(settings.AI.Timeout / time.Second)},
		{keyEditorDebounce, int(domain.ClampDebounce(settings.Editor.Debounce) / time.Millisecond)},
		{keyEditorAutosave, settings.Editor.Autosave},
		{keyServerAddr, settings.Server.Addr},
		{keyServerPublicDir, settings.Server.PublicDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty key never overwrites a stored one.
	if settings.AI.APIKey != "" {
		if err := s.configStore.Set(keyAIAPIKey, settings.AI.APIKey); err != nil {
			return fmt.Errorf("save ai api_key: %w", err)
		}
	}

	return nil
}

// SetStorageBackend selects where properties are stored.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %s", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if backend == domain.StorageFirestore && !settings.Cloud.IsConfigured() {
		return fmt.Errorf("%w: firestore requires cloud.project_id", domain.ErrInvalidInput)
	}

	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetAIProvider configures the AI provider.
func (s *SettingsService) SetAIProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: AI provider %s", domain.ErrInvalidInput, provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.AI.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.AI.Model = model
	} else if defaultModel, ok := domain.DefaultAIModels()[provider]; ok {
		settings.AI.Model = defaultModel
	}

	// Local providers need a base URL, cloud providers use their own
	if provider.IsLocal() {
		if settings.AI.BaseURL == "" {
			settings.AI.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.AI.BaseURL = ""
	}

	settings.AI.APIKey = apiKey

	return s.Save(settings)
}

// SetDebounce sets the buffered edit window in milliseconds.
func (s *SettingsService) SetDebounce(ms int) error {
	if ms <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Editor.Debounce = domain.ClampDebounce(time.Duration(ms) * time.Millisecond)
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", settings.Storage.Backend)
	}
	if settings.Storage.Backend == domain.StorageFirestore && !settings.Cloud.IsConfigured() {
		return fmt.Errorf("storage backend %q requires cloud.project_id", settings.Storage.Backend.Description())
	}
	if settings.Cloud.RequestsPerSecond <= 0 {
		return fmt.Errorf("cloud.requests_per_second must be positive")
	}

	// An unset provider is fine; a half-configured one is not
	if settings.AI.Provider != "" && !settings.AI.IsConfigured() {
		return fmt.Errorf("AI provider %q is missing an API key", settings.AI.Provider)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateAIConfig validates the current AI configuration by pinging the provider.
func (s *SettingsService) ValidateAIConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateAI(&settings.AI)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
