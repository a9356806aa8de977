package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PGStore implements Store using Postgres.
//
// Expected tables:
//
//	analyses(id uuid primary key, resume_id text, industry text,
//	         total_score int, result jsonb,
//	         created_at timestamptz default now())
//	analysis_keywords(analysis_id uuid references analyses(id),
//	         keyword text, category text, count int, is_match boolean,
//	         unique(analysis_id, keyword))
//	industry_keywords(keyword text, industry text, importance int,
//	         unique(keyword, industry))
//	keyword_stats(keyword text, industry text, occurrences bigint,
//	         updated_at timestamptz, unique(keyword, industry))
type PGStore struct {
	db     *sql.DB
	logger *errors.Logger
}

var _ Store = (*PGStore)(nil)

// NewPGStore wraps an existing database handle
func NewPGStore(db *sql.DB, logger *errors.Logger) *PGStore {
	return &PGStore{db: db, logger: logger}
}

// Open connects to Postgres using the pgx driver and verifies the connection
func Open(ctx context.Context, cfg config.StorageConfig, logger *errors.Logger) (*PGStore, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to open database connection", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to ping database", err)
	}

	logger.Info("Connected to Postgres",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)

	return NewPGStore(db, logger), nil
}

// SaveAnalysis persists the analysis row and its keywords in one transaction.
// Keywords are written with a single multi-row insert; rows already present
// for the analysis are skipped rather than erroring.
func (s *PGStore) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to serialize analysis result", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to begin transaction", err)
	}
	defer tx.Rollback()

	const insertAnalysis = `
INSERT INTO analyses (id, resume_id, industry, total_score, result, created_at)
VALUES ($1, $2, $3, $4, $5, now())`

	if _, err := tx.ExecContext(ctx, insertAnalysis,
		result.ID,
		sql.NullString{String: result.ResumeID, Valid: result.ResumeID != ""},
		result.Industry,
		result.TotalScore,
		payload,
	); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to insert analysis", err)
	}

	if len(result.Keywords) > 0 {
		query, args := buildKeywordInsert(result.ID, result.Keywords)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to insert analysis keywords", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to commit analysis", err)
	}

	return nil
}

// buildKeywordInsert builds one multi-row insert for all keywords.
// Duplicate keywords within an analysis are collapsed by the unique
// constraint instead of failing the batch.
func buildKeywordInsert(analysisID string, kws []types.Keyword) (string, []any) {
	var b strings.Builder
	b.WriteString(`INSERT INTO analysis_keywords (analysis_id, keyword, category, count, is_match) VALUES `)

	args := make([]any, 0, len(kws)*5)
	for i, kw := range kws {
		if i > 0 {
			b.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, analysisID, kw.NormalizedText, string(kw.Category), kw.Count, kw.IsMatch)
	}

	b.WriteString(` ON CONFLICT (analysis_id, keyword) DO NOTHING`)
	return b.String(), args
}

// IndustryImportance reads the importance table for an industry
func (s *PGStore) IndustryImportance(ctx context.Context, industry string) (map[string]int, error) {
	const query = `SELECT keyword, importance FROM industry_keywords WHERE industry = $1`

	rows, err := s.db.QueryContext(ctx, query, industry)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to query industry keywords", err)
	}
	defer rows.Close()

	table := make(map[string]int)
	for rows.Next() {
		var keyword string
		var importance int
		if err := rows.Scan(&keyword, &importance); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to scan industry keyword row", err)
		}
		table[keyword] = importance
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to read industry keyword rows", err)
	}

	return table, nil
}

// UpsertKeywordStat atomically increments the keyword/industry counter
func (s *PGStore) UpsertKeywordStat(ctx context.Context, keyword, industry string) error {
	const query = `
INSERT INTO keyword_stats (keyword, industry, occurrences, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (keyword, industry)
DO UPDATE SET occurrences = keyword_stats.occurrences + 1, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, keyword, industry); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to upsert keyword stat", err)
	}
	return nil
}

// Close closes the database handle
func (s *PGStore) Close() error {
	return s.db.Close()
}
