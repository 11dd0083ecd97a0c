package ai

import (
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateAI validates an AI configuration by pinging the provider.
func (v *ConfigValidator) ValidateAI(config *domain.AISettings) error {
	return ValidateLLMConfig(config)
}
