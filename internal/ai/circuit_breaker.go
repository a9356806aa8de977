package ai

import (
	"resumescore/internal/config"
	"resumescore/internal/errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// breaker wraps a typed gobreaker instance. A nil breaker passes calls
// straight through, which is how disabled configurations behave.
type breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

func newBreaker[T any](name string, cfg config.CircuitBreakerConfig, logger *errors.Logger, trip func(gobreaker.Counts) bool) *breaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: trip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}
	return &breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

func (b *breaker[T]) execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

func (b *breaker[T]) stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

func (b *breaker[T]) healthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}

// AICircuitBreaker protects suggestion generation calls
type AICircuitBreaker struct {
	inner *breaker[*genai.GenerateContentResponse]
}

// ModelCircuitBreaker protects model availability checks
type ModelCircuitBreaker struct {
	inner *breaker[*genai.Model]
}

// NewAICircuitBreaker creates a breaker from configuration, or nil when
// the breaker is disabled.
func NewAICircuitBreaker(cfg config.CircuitBreakerConfig, logger *errors.Logger) *AICircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	trip := func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
	}
	return &AICircuitBreaker{inner: newBreaker[*genai.GenerateContentResponse]("AI-suggestions", cfg, logger, trip)}
}

// NewModelCircuitBreaker creates a breaker for model info lookups.
// Availability checks are not on the scoring path, so the trip
// threshold is more lenient than the suggestion breaker's.
func NewModelCircuitBreaker(cfg config.CircuitBreakerConfig, logger *errors.Logger) *ModelCircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	trip := func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 5 && failureRatio >= 0.8
	}
	return &ModelCircuitBreaker{inner: newBreaker[*genai.Model]("AI-model", cfg, logger, trip)}
}

// Execute runs fn with circuit breaker protection
func (cb *AICircuitBreaker) Execute(fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if cb == nil {
		return fn()
	}
	return cb.inner.execute(fn)
}

// ExecuteModel runs fn with circuit breaker protection
func (cb *ModelCircuitBreaker) ExecuteModel(fn func() (*genai.Model, error)) (*genai.Model, error) {
	if cb == nil {
		return fn()
	}
	return cb.inner.execute(fn)
}

// GetStats returns circuit breaker statistics
func (cb *AICircuitBreaker) GetStats() map[string]any {
	if cb == nil {
		return map[string]any{"enabled": false}
	}
	return cb.inner.stats()
}

// GetModelStats returns model circuit breaker statistics
func (cb *ModelCircuitBreaker) GetModelStats() map[string]any {
	if cb == nil {
		return map[string]any{"enabled": false}
	}
	return cb.inner.stats()
}

// IsHealthy reports whether the breaker is closed
func (cb *AICircuitBreaker) IsHealthy() bool {
	return cb == nil || cb.inner.healthy()
}

// IsModelHealthy reports whether the model breaker is closed
func (cb *ModelCircuitBreaker) IsModelHealthy() bool {
	return cb == nil || cb.inner.healthy()
}
