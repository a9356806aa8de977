package cli

import (
	"context"
	"fmt"

	"resumescore/internal/ai"
	"resumescore/internal/analytics"
	"resumescore/internal/ats"
	"resumescore/internal/cache"
	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/industry"
	"resumescore/internal/issues"
	"resumescore/internal/keywords"
	"resumescore/internal/scoring"
	"resumescore/internal/storage"
	"resumescore/internal/textquality"
)

// pipeline bundles the scoring engine with the optional collaborators
// built from configuration. Nil fields mean the concern is disabled.
type pipeline struct {
	engine   *scoring.Engine
	store    storage.Store
	cache    *cache.Manager
	aiSvc    *ai.Service
	recorder *analytics.Recorder
	watcher  *industry.LexiconWatcher
}

// buildPipeline assembles the full analysis pipeline from configuration.
// Storage and AI failures are fatal when enabled; an unreachable cache
// only logs a warning and the pipeline runs without it.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*pipeline, error) {
	detector := industry.NewDetector(logger)
	if cfg.Analyzer.IndustryLexiconFile != "" {
		if err := detector.LoadLexiconFile(cfg.Analyzer.IndustryLexiconFile); err != nil {
			return nil, fmt.Errorf("failed to load industry lexicon: %w", err)
		}
	}

	p := &pipeline{}
	if cfg.Analyzer.WatchLexicon && cfg.Analyzer.IndustryLexiconFile != "" {
		watcher := industry.NewLexiconWatcher(cfg.Analyzer.IndustryLexiconFile, detector, logger)
		if err := watcher.Start(); err != nil {
			logger.Warn("Lexicon watcher unavailable, continuing without hot reload", "error", err)
		} else {
			p.watcher = watcher
		}
	}

	opts := scoring.Options{AITimeout: cfg.Analyzer.SuggestionTimeout}

	if cfg.Storage.Enabled {
		store, err := storage.Open(ctx, cfg.Storage, logger)
		if err != nil {
			p.closeAuxiliary(logger)
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		p.store = store
		opts.Importance = store

		p.recorder = analytics.NewRecorder(store, 0, logger)
		opts.Recorder = p.recorder
	}

	if cfg.Cache.Enabled {
		mgr, err := cache.New(ctx, cfg.Cache, logger)
		if err != nil {
			logger.Warn("Result cache unreachable, continuing without caching", "error", err)
		} else {
			p.cache = mgr
			opts.Cache = mgr
		}
	}

	if cfg.AI.Enabled {
		svc, err := ai.NewService(cfg.AI, logger)
		if err != nil {
			p.close(logger)
			return nil, fmt.Errorf("failed to create AI service: %w", err)
		}
		p.aiSvc = svc
		opts.AI = svc
	}

	p.engine = scoring.NewEngine(
		detector,
		keywords.NewProcessor(cfg.Analyzer.MinKeywordLength),
		textquality.NewAnalyzer(),
		ats.NewChecker(),
		issues.NewAnalyzer(),
		opts,
		logger,
	)

	return p, nil
}

// close releases every collaborator the pipeline owns
func (p *pipeline) close(logger *errors.Logger) {
	p.closeAuxiliary(logger)

	if p.aiSvc != nil {
		if err := p.aiSvc.Close(); err != nil {
			logger.LogError(err, "Failed to close AI service")
		}
	}
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			logger.LogError(err, "Failed to close storage")
		}
	}
}

// closeAuxiliary releases the collaborators the HTTP server does not
// manage itself: the lexicon watcher, analytics recorder, and cache.
func (p *pipeline) closeAuxiliary(logger *errors.Logger) {
	if p.watcher != nil {
		if err := p.watcher.Stop(); err != nil {
			logger.LogError(err, "Failed to stop lexicon watcher")
		}
	}
	if p.recorder != nil {
		p.recorder.Close()
	}
	if p.cache != nil {
		if err := p.cache.Close(); err != nil {
			logger.LogError(err, "Failed to close cache")
		}
	}
}
