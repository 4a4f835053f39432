package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicGenerator is a stub implementation that can be expanded once the SDK is available.
type AnthropicGenerator struct{}

// NewAnthropicGenerator constructs a new stub generator.
func NewAnthropicGenerator(cfg AnthropicConfig) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicGenerator{}, nil
}

// GenerateStructured is not yet implemented for Anthropic models.
func (a *AnthropicGenerator) GenerateStructured(ctx context.Context, instruction string, shape *jsonschema.Schema) (json.RawMessage, error) {
	return nil, fmt.Errorf("%w: anthropic generator not implemented", ErrUnavailable)
}
