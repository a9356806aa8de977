package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"
)

const keyPrefix = "resumescore:analysis:"

// Manager caches analysis results in Redis. A nil Manager is a valid
// disabled cache: every lookup misses and writes are dropped.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
	logger *errors.Logger
	hits   metric.Int64Counter
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg config.CacheConfig, logger *errors.Logger) (*Manager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.NewNetworkError(errors.ErrCodeNetworkTimeout,
			"Failed to connect to Redis", err)
	}

	hits, err := otel.Meter("resumescore/cache").Int64Counter(
		"resumescore_cache_hits_total",
		metric.WithDescription("Analyses served from the result cache"),
	)
	if err != nil {
		logger.Warn("Cache hit counter unavailable", "error", err.Error())
	}

	logger.Info("Connected to Redis", "addr", cfg.Addr, "ttl", cfg.TTL.String())

	return &Manager{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
		hits:   hits,
	}, nil
}

// Get returns a cached analysis result. A miss is not an error; broken
// or unreachable cache entries are treated as misses so analysis can
// proceed without the cache.
func (m *Manager) Get(ctx context.Context, resumeID string) (*types.AnalysisResult, bool) {
	if m == nil || m.client == nil {
		return nil, false
	}

	payload, err := m.client.Get(ctx, keyPrefix+resumeID).Bytes()
	if err != nil {
		if err != redis.Nil {
			m.logger.Warn("Cache read failed", "resume_id", resumeID, "error", err.Error())
		}
		return nil, false
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		m.logger.Warn("Cache entry is corrupt, treating as miss",
			"resume_id", resumeID, "error", err.Error())
		return nil, false
	}

	if m.hits != nil {
		m.hits.Add(ctx, 1)
	}
	return &result, true
}

// Set stores an analysis result with the configured TTL. Failures are
// logged and swallowed; caching is best effort.
func (m *Manager) Set(ctx context.Context, resumeID string, result *types.AnalysisResult) {
	if m == nil || m.client == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		m.logger.Warn("Failed to serialize result for cache",
			"resume_id", resumeID, "error", err.Error())
		return
	}

	if err := m.client.Set(ctx, keyPrefix+resumeID, payload, m.ttl).Err(); err != nil {
		m.logger.Warn("Cache write failed", "resume_id", resumeID, "error", err.Error())
	}
}

// Invalidate removes a cached result, for re-analysis after edits
func (m *Manager) Invalidate(ctx context.Context, resumeID string) {
	if m == nil || m.client == nil {
		return
	}
	if err := m.client.Del(ctx, keyPrefix+resumeID).Err(); err != nil {
		m.logger.Warn("Cache invalidation failed", "resume_id", resumeID, "error", err.Error())
	}
}

// Close closes the Redis client
func (m *Manager) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Close()
}
