package cache

import (
	"context"
	"testing"

	"resumescore/internal/types"
)

func TestNilManagerIsDisabledCache(t *testing.T) {
	var m *Manager
	ctx := context.Background()

	if result, ok := m.Get(ctx, "resume-1"); ok || result != nil {
		t.Error("nil manager must always miss")
	}

	// Writes and invalidations on a nil manager are no-ops
	m.Set(ctx, "resume-1", &types.AnalysisResult{TotalScore: 80})
	m.Invalidate(ctx, "resume-1")

	if err := m.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}
