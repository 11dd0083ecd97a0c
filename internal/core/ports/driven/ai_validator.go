package driven

import "github.com/custodia-labs/listing-studio/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateAI validates an AI configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateAI(config *domain.AISettings) error
}
