package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects where properties are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite is the local embedded database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps everything in process memory.
	StorageMemory StorageBackend = "memory"

	// StorageFirestore is the remote Google Cloud document store.
	StorageFirestore StorageBackend = "firestore"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory, StorageFirestore:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "Local database (SQLite)"
	case StorageMemory:
		return "In-memory (lost on exit)"
	case StorageFirestore:
		return "Google Cloud Firestore"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AISettings holds the LLM provider used for geocoding and place suggestions.
type AISettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds each AI call.
	Timeout time.Duration
}

// IsConfigured returns true if the AI provider is set up.
func (a AISettings) IsConfigured() bool {
	if !a.Provider.IsValid() {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	return true
}

// StorageSettings selects and locates the property store.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir is the directory for the local database. Empty means the default.
	DataDir string
}

// CloudSettings configures the Google Cloud backends.
type CloudSettings struct {
	ProjectID string

	// Database is the Firestore database id, "(default)" when empty.
	Database string

	// Bucket receives uploaded assets when set.
	Bucket string

	// CredentialsFile is a service account JSON key. Empty uses
	// application default credentials.
	CredentialsFile string

	// RequestsPerSecond caps calls to Google APIs.
	RequestsPerSecond float64
}

// IsConfigured returns true if a project is set.
func (c CloudSettings) IsConfigured() bool {
	return c.ProjectID != ""
}

// Debounce window bounds for buffered field edits.
const (
	MinDebounce     = 250 * time.Millisecond
	MaxDebounce     = 350 * time.Millisecond
	DefaultDebounce = 300 * time.Millisecond
)

// EditorSettings tunes edit sessions.
type EditorSettings struct {
	// Debounce is how long buffered values wait for quiet before committing.
	Debounce time.Duration

	// Autosave persists every committed change in the background.
	Autosave bool
}

// ClampDebounce returns d limited to the supported window.
func ClampDebounce(d time.Duration) time.Duration {
	switch {
	case d < MinDebounce:
		return MinDebounce
	case d > MaxDebounce:
		return MaxDebounce
	default:
		return d
	}
}

// DefaultServerAddr is the listen address when none is configured.
const DefaultServerAddr = ":8080"

// ServerSettings configures the page server.
type ServerSettings struct {
	Addr string

	// PublicDir holds static files served under /static/. Empty disables it.
	PublicDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Cloud   CloudSettings
	AI      AISettings
	Editor  EditorSettings
	Server  ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// AI is left unconfigured by default.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Cloud: CloudSettings{
			Database:          "(default)",
			RequestsPerSecond: 10,
		},
		AI: AISettings{
			Timeout: 30 * time.Second,
		},
		Editor: EditorSettings{
			Debounce: DefaultDebounce,
			Autosave: true,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}

// AllAIProviders returns providers that can serve location assistance.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultAIModels returns default models for each provider.
func DefaultAIModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// SiteSettings are site-wide values stored outside any property.
type SiteSettings struct {
	SiteName string   `json:"siteName"`
	Logo     AssetRef `json:"logo"`
}
