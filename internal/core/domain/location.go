package domain

// PlaceSuggestion is a nearby point of interest proposed by the AI collaborator.
type PlaceSuggestion struct {
	Icon       string `json:"icon"`
	Title      string `json:"title"`
	TravelTime string `json:"travelTime"`
}

// LocationPlan is the result of enriching an address: where it is and what
// is around it. Applying a plan to a property is the editor's job.
type LocationPlan struct {
	Coordinates GeoPoint
	Places      []PlaceSuggestion

	// Warnings holds the messages of collaborator calls that failed.
	// A plan with warnings is still usable.
	Warnings []string
}
