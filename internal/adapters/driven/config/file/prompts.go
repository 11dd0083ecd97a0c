package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

//nolint:lll // prompt text
var defaultPrompts = map[string]string{
	driven.PromptGeocode: `Find the geographic coordinates of this address.
Answer with ONLY a JSON object of the form {"lat": 51.5072, "lng": -0.1276}.
If the address cannot be located, answer {"lat": 0, "lng": 0}.

Address: %s`,

	driven.PromptNearbyPlaces: `List up to 6 places a home buyer would care about near latitude %f, longitude %f:
schools, stations, parks, shops, hospitals and similar.
Answer with ONLY a JSON array. Each element has the keys "icon" (one short lowercase word such as school, train, park, shop, hospital, cafe), "title" (the place name) and "travelTime" (for example "5 min walk" or "10 min drive").
Answer [] if you know of nothing nearby.`,

	driven.PromptSystem: `You are a property listing assistant. You answer with machine-readable JSON only, never with prose or markdown fences.`,
}

const promptReadme = "# Listing Studio Prompts\n\n" +
	"These prompts drive the location assistant: geocoding a property address and\n" +
	"suggesting nearby places for the location section.\n\n" +
	"- `geocode.txt`: address to coordinates, one `%s` placeholder\n" +
	"- `nearby_places.txt`: coordinates to places, two `%f` placeholders (lat, lng)\n" +
	"- `system.txt`: system instruction sent with every request, no placeholders\n\n" +
	"A file whose placeholders differ from these is ignored in favour of the\n" +
	"built-in prompt. Answers must stay JSON.\n" +
	"Edits apply on the next command, or at once in `serve --watch-config`.\n"

// PromptStore reads the location assistant's prompt templates from a
// directory of .txt files, seeding it with the built-in prompts on first
// use. Templates are cached until Reload.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.Mutex
	cache map[string]string
}

// NewPromptStore returns a store over dir, or ~/.listing-studio/prompts
// when dir is empty. Nothing touches the disk until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".listing-studio", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the template called name. A missing, unreadable or
// mismatched file yields the built-in template; only names with no
// built-in fail.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, known := defaultPrompts[name]

	s.seedOnce.Do(s.seed)
	if s.seedErr != nil {
		if known {
			return fallback, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, s.seedErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prompt, ok := s.cache[name]; ok {
		return prompt, nil
	}

	data, err := os.ReadFile(s.path(name))
	switch {
	case err != nil && !known:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	case err != nil:
		return fallback, nil
	}

	prompt := strings.TrimSpace(string(data))
	if known && verbs(prompt) != verbs(fallback) {
		logger.Warn("prompt %s: placeholders %q do not match %q, using the built-in prompt",
			s.path(name), verbs(prompt), verbs(fallback))
		prompt = fallback
	}
	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached templates so the next Load reads the files again.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Dir is the directory holding the template files.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// seed creates the directory and writes any built-in template or README
// that is not already there. Existing files are left alone.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	files := map[string]string{filepath.Join(s.dir, "README.md"): promptReadme}
	for name, content := range defaultPrompts {
		files[s.path(name)] = content
	}
	for path, content := range files {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.seedErr = fmt.Errorf("write %s: %w", filepath.Base(path), err)
			return
		}
	}
}

// verbs lists the format verbs of a template in order, e.g. "ff" for
// "%f, %f". Escaped "%%" is skipped.
func verbs(template string) string {
	var out strings.Builder
	for i := 0; i < len(template)-1; i++ {
		if template[i] != '%' {
			continue
		}
		i++
		if template[i] != '%' {
			out.WriteByte(template[i])
		}
	}
	return out.String()
}
