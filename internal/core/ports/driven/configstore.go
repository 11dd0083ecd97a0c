package driven

// ConfigStore holds the studio's settings as dotted keys such as
// "storage.backend" or "editor.debounce_ms". The file store nests them
// into TOML tables; the memory store keeps them flat.
type ConfigStore interface {
	// Get returns the raw value of key and whether it is set.
	Get(key string) (any, bool)

	// Typed getters return the zero value for missing or mistyped keys.
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Save writes every value; Load re-reads them, replacing what is held.
	Save() error
	Load() error

	// Path locates the backing file. The memory store reports ":memory:".
	Path() string
}
