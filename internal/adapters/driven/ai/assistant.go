package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driven.LocationAssistant = (*Assistant)(nil)

// MaxPlaces caps the number of nearby places kept from one answer.
const MaxPlaces = 6

// Fallback prompts when no PromptStore is configured.
const (
	defaultGeocodePrompt = `Find the geographic coordinates of this address.
Answer with ONLY a JSON object of the form {"lat": 51.5072, "lng": -0.1276}.
If the address cannot be located, answer {"lat": 0, "lng": 0}.

Address: %s`

	defaultNearbyPrompt = `List up to 6 places a home buyer would care about near latitude %f, longitude %f.
Answer with ONLY a JSON array of objects with the keys "icon", "title" and "travelTime".`

	defaultSystemPrompt = `You answer with machine-readable JSON only.`
)

// Assistant answers location questions by prompting an LLM for JSON.
type Assistant struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewAssistant creates an assistant. prompts may be nil.
func NewAssistant(llm driven.LLMService, prompts driven.PromptStore) *Assistant {
	return &Assistant{llm: llm, prompts: prompts}
}

// Geocode resolves a free-form address to coordinates. An address the
// model cannot place yields the zero point.
func (a *Assistant) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	prompt := fmt.Sprintf(a.loadPrompt(driven.PromptGeocode, defaultGeocodePrompt), address)

	reply, err := a.generate(ctx, prompt, "{", 100)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode: %w", err)
	}

	var point domain.GeoPoint
	if err := decodeJSON(reply, '{', '}', &point); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode: %w", err)
	}
	if !point.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("geocode: coordinates out of range: %v,%v", point.Lat, point.Lng)
	}
	return point, nil
}

// SuggestNearbyPlaces proposes points of interest around a location.
func (a *Assistant) SuggestNearbyPlaces(ctx context.Context, at domain.GeoPoint) ([]domain.PlaceSuggestion, error) {
	prompt := fmt.Sprintf(a.loadPrompt(driven.PromptNearbyPlaces, defaultNearbyPrompt), at.Lat, at.Lng)

	reply, err := a.generate(ctx, prompt, "[", 600)
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}

	var raw []domain.PlaceSuggestion
	if err := decodeJSON(reply, '[', ']', &raw); err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}

	places := make([]domain.PlaceSuggestion, 0, len(raw))
	for _, p := range raw {
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			continue
		}
		p.Icon = strings.ToLower(strings.TrimSpace(p.Icon))
		p.TravelTime = strings.TrimSpace(p.TravelTime)
		places = append(places, p)
		if len(places) == MaxPlaces {
			break
		}
	}
	return places, nil
}

// generate asks for an answer opening with prefill, the first byte of the
// JSON value decodeJSON later looks for.
func (a *Assistant) generate(ctx context.Context, prompt, prefill string, maxTokens int) (string, error) {
	logger.Debug("location assistant prompt via %s", a.llm.ModelName())
	return a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Prefill:     prefill,
		MaxTokens:   maxTokens,
		Temperature: 0.1,
		System:      a.loadPrompt(driven.PromptSystem, defaultSystemPrompt),
	})
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (a *Assistant) loadPrompt(name, fallback string) string {
	if a.prompts == nil {
		return fallback
	}
	prompt, err := a.prompts.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

// decodeJSON decodes the outermost open...close span of reply into v.
// Models wrap JSON in prose or code fences often enough to need this.
func decodeJSON(reply string, open, closing byte, v any) error {
	start := strings.IndexByte(reply, open)
	end := strings.LastIndexByte(reply, closing)
	if start < 0 || end < start {
		return fmt.Errorf("no JSON %c...%c in answer %q", open, closing, truncate(reply, 80))
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), v); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
