package ai

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateAI_NilConfig(t *testing.T) {
	// nil config returns nil (nothing to validate)
	assert.NoError(t, NewConfigValidator().ValidateAI(nil))
}

func TestConfigValidator_ValidateAI_UnconfiguredProvider(t *testing.T) {
	config := &domain.AISettings{Model: "test-model"}

	assert.NoError(t, NewConfigValidator().ValidateAI(config))
}

func TestConfigValidator_ValidateAI_PingsProvider(t *testing.T) {
	ok := tagsServer(t, http.StatusOK)
	assert.NoError(t, NewConfigValidator().ValidateAI(&domain.AISettings{
		Provider: domain.AIProviderOllama, BaseURL: ok.URL,
	}))

	down := tagsServer(t, http.StatusServiceUnavailable)
	assert.Error(t, NewConfigValidator().ValidateAI(&domain.AISettings{
		Provider: domain.AIProviderOllama, BaseURL: down.URL,
	}))
}
