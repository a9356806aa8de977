package ai

import (
	"context"

	"resumescore/internal/types"
)

// AIProvider generates resume improvement suggestions.
// Methods return token usage information; callers can ignore it.
type AIProvider interface {
	SuggestImprovements(ctx context.Context, input types.SuggestionInput) (types.SuggestionOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}
