package ai

import (
	"context"
	"fmt"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"
)

// Service handles AI suggestion generation for resume analysis.
// It satisfies the scoring engine's suggestion provider contract.
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   config.AIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance
func NewService(cfg config.AIConfig, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Suggest generates improvement suggestions for an analyzed resume.
// Token usage is logged here so callers only deal with the suggestions.
func (s *Service) Suggest(ctx context.Context, input types.SuggestionInput) (*types.SuggestionOutput, error) {
	output, usage, err := s.Provider.SuggestImprovements(ctx, input)
	if err != nil {
		return nil, err
	}

	if usage != nil {
		s.logger.Debug("AI suggestion token usage",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}

	return &output, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
