package planner

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/jrny/internal/config"
	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/logging"
)

// New builds the generator selected by cfg.AI.Provider. It returns nil and
// no error for the "none" provider, and an error wrapping config.ErrNoAPIKey
// when the provider needs a key that is not configured.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (journey.PlanGenerator, error) {
	if err := config.ValidateProvider(cfg.AI.Provider); err != nil {
		return nil, err
	}

	switch cfg.AI.Provider {
	case config.ProviderNone:
		return nil, nil

	case config.ProviderOpenAI:
		key, err := config.GetOpenAIKey(cfg)
		if err != nil {
			return nil, fmt.Errorf("openai planner: %w", err)
		}
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:  key,
			Model:   cfg.AI.OpenAI.Model,
			BaseURL: cfg.AI.OpenAI.BaseURL,
			Logger:  logger,
		})

	case config.ProviderBedrock:
		return NewAnthropicGenerator(ctx, AnthropicConfig{
			Model:         anthropic.Model(cfg.AI.Model),
			UseAWSBedrock: true,
			AWSRegion:     cfg.AI.AWSRegion,
			AWSProfile:    cfg.AI.AWSProfile,
			Logger:        logger,
		})

	default:
		key, err := config.GetAPIKey(cfg)
		if err != nil {
			return nil, fmt.Errorf("anthropic planner: %w", err)
		}
		return NewAnthropicGenerator(ctx, AnthropicConfig{
			Model:  anthropic.Model(cfg.AI.Model),
			APIKey: key,
			Logger: logger,
		})
	}
}
