package driving

import "github.com/custodia-labs/listing-studio/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend selects where properties are stored.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetAIProvider configures the AI provider.
	SetAIProvider(provider domain.AIProvider, model, apiKey string) error

	// SetDebounce sets the buffered edit window, clamped to the supported range.
	SetDebounce(ms int) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateAIConfig validates the current AI configuration by pinging the provider.
	ValidateAIConfig() error
}

// AdminService gates editing behind a credential check.
type AdminService interface {
	// Configured reports whether admin credentials have been set.
	Configured() bool

	// SetCredentials stores a username and a hash of password.
	SetCredentials(username, password string) error

	// Login checks credentials and returns a session token.
	// Returns domain.ErrInvalidCredentials on mismatch.
	Login(username, password string) (string, error)

	// IsAdmin reports whether token belongs to a live admin session.
	IsAdmin(token string) bool

	// Logout ends a session. Unknown tokens are ignored.
	Logout(token string)
}
