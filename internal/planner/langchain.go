package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/ShayCichocki/jrny/internal/logging"
	"github.com/ShayCichocki/jrny/pkg/models"
)

// OpenAIConfig configures an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL selects a compatible provider such as OpenRouter or a local server.
	BaseURL string
	Logger  *logging.Logger
}

// LangChainGenerator generates plans with any langchaingo model.
type LangChainGenerator struct {
	model  llms.Model
	logger *logging.Logger
}

// NewLangChainGenerator wraps an existing model.
func NewLangChainGenerator(model llms.Model, logger *logging.Logger) *LangChainGenerator {
	return &LangChainGenerator{model: model, logger: logger.With("planner")}
}

// NewOpenAIGenerator creates a generator backed by an OpenAI-compatible API.
func NewOpenAIGenerator(cfg OpenAIConfig) (*LangChainGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewLangChainGenerator(llm, cfg.Logger), nil
}

// GeneratePlan asks the model for a plan breakdown.
func (g *LangChainGenerator) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.PlanBreakdown, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(BuildPrompt(req))},
		},
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	content := resp.Choices[0].Content
	g.logger.Log("langchain: %d chars for %q", len(content), req.Title)
	return ParseResponse(content)
}
