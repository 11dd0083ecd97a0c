package file

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const configFile = "config.toml"

// ConfigStore keeps settings in a TOML file. Dotted keys such as
// "editor.debounce_ms" are held flat in memory and written as nested
// tables. Every write replaces the file atomically, so a watcher never
// sees a half-written config.
type ConfigStore struct {
	path string

	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore opens dir/config.toml, creating dir when needed. An empty
// dir means ~/.listing-studio.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".listing-studio")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{path: filepath.Join(dir, configFile)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.Get(key)
	b, _ := v.(bool)
	return b
}

// GetInt truncates float values.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	return number[int](v)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	v, _ := s.Get(key)
	return number[float64](v)
}

// number converts the numeric types TOML decoding and callers produce.
func number[T int | float64](v any) T {
	switch n := v.(type) {
	case int64:
		return T(n)
	case int:
		return T(n)
	case float64:
		return T(n)
	default:
		return 0
	}
}

// Set stores value under key and writes the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.write()
}

func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// Load replaces the held values with the file's. A missing or empty file
// is an empty config.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	tables := map[string]any{}
	if err := toml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	values := make(map[string]any)
	flattenInto(values, tables, "")

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Path() string {
	return s.path
}

// write must be called with mu held.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(nestMap(s.values))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// CreateTemp opens 0600; the file can hold the admin hash and API keys.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+configFile+"-*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

func flattenMap(tables map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	flattenInto(out, tables, prefix)
	return out
}

// flattenInto turns {"a": {"b": 1}} into {"a.b": 1}.
func flattenInto(dst, tables map[string]any, prefix string) {
	for k, v := range tables {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(dst, sub, k)
			continue
		}
		dst[k] = v
	}
}

// nestMap groups dotted keys into tables. Keys are placed shortest first,
// so when "a" holds a value any "a.b" is dropped.
func nestMap(flat map[string]any) map[string]any {
	keys := slices.SortedFunc(maps.Keys(flat), func(a, b string) int {
		if d := strings.Count(a, ".") - strings.Count(b, "."); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, exists := table[part]
			if !exists {
				next = make(map[string]any)
				table[part] = next
			}
			sub, ok := next.(map[string]any)
			if !ok {
				table = nil
				break
			}
			table = sub
		}
		if table != nil {
			table[parts[len(parts)-1]] = flat[key]
		}
	}
	return root
}
