package storage

import (
	"context"
	"sync"

	"resumescore/internal/types"
)

// Store persists analysis results and keyword statistics.
type Store interface {
	// SaveAnalysis persists a completed analysis and its keywords.
	// Keywords already recorded for the analysis are skipped.
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error

	// IndustryImportance returns the importance table for an industry,
	// keyed by normalized keyword. Missing industries yield an empty map.
	IndustryImportance(ctx context.Context, industry string) (map[string]int, error)

	// UpsertKeywordStat atomically increments the occurrence count for a
	// keyword within an industry, creating the row on first sight.
	UpsertKeywordStat(ctx context.Context, keyword, industry string) error

	// Close releases the underlying connections.
	Close() error
}

// MemoryStore is an in-memory Store for CLI runs and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	analyses   map[string]*types.AnalysisResult
	importance map[string]map[string]int
	stats      map[string]*types.KeywordStat
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses:   make(map[string]*types.AnalysisResult),
		importance: make(map[string]map[string]int),
		stats:      make(map[string]*types.KeywordStat),
	}
}

// SaveAnalysis stores the result keyed by its ID
func (m *MemoryStore) SaveAnalysis(_ context.Context, result *types.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[result.ID] = result
	return nil
}

// GetAnalysis returns a stored result, or nil when absent
func (m *MemoryStore) GetAnalysis(id string) *types.AnalysisResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.analyses[id]
}

// SetImportance replaces the importance table for an industry
func (m *MemoryStore) SetImportance(industry string, table map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importance[industry] = table
}

// IndustryImportance returns the importance table for an industry
func (m *MemoryStore) IndustryImportance(_ context.Context, industry string) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int, len(m.importance[industry]))
	for k, v := range m.importance[industry] {
		out[k] = v
	}
	return out, nil
}

// UpsertKeywordStat increments the occurrence counter for keyword/industry
func (m *MemoryStore) UpsertKeywordStat(_ context.Context, keyword, industry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := keyword + "|" + industry
	row, ok := m.stats[key]
	if !ok {
		row = &types.KeywordStat{Keyword: keyword, Industry: industry}
		m.stats[key] = row
	}
	row.Occurrences++
	return nil
}

// KeywordStat returns the recorded row for keyword/industry. Pairs
// never recorded yield a row with zero occurrences.
func (m *MemoryStore) KeywordStat(keyword, industry string) types.KeywordStat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if row, ok := m.stats[keyword+"|"+industry]; ok {
		return *row
	}
	return types.KeywordStat{Keyword: keyword, Industry: industry}
}

// Close implements Store
func (m *MemoryStore) Close() error {
	return nil
}
