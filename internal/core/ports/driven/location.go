package driven

import (
	"context"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// LocationAssistant is the AI collaborator for property locations.
// Every call is fallible; an empty answer is valid and means "nothing found".
type LocationAssistant interface {
	// Geocode resolves a free-form address to coordinates.
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)

	// SuggestNearbyPlaces proposes points of interest around a location.
	SuggestNearbyPlaces(ctx context.Context, at domain.GeoPoint) ([]domain.PlaceSuggestion, error)
}
