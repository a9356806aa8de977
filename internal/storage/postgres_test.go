package storage

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"resumescore/internal/errors"
	"resumescore/internal/types"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPGStore(db, errors.NewLogger(slog.LevelError)), mock
}

func TestSaveAnalysisInsertsRowAndKeywords(t *testing.T) {
	store, mock := newMockStore(t)

	result := &types.AnalysisResult{
		ResumeID:   "resume-1",
		Industry:   "technology",
		TotalScore: 82,
		Keywords: []types.Keyword{
			{NormalizedText: "kubernetes", Category: types.CategoryTechnical, Count: 3, IsMatch: true},
			{NormalizedText: "leadership", Category: types.CategorySoftSkill, Count: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			sqlmock.AnyArg(), // generated uuid
			sqlmock.AnyArg(), // resume_id
			result.Industry,
			result.TotalScore,
			sqlmock.AnyArg(), // jsonb payload
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO analysis_keywords").
		WithArgs(
			sqlmock.AnyArg(), "kubernetes", "technical", 3, true,
			sqlmock.AnyArg(), "leadership", "soft_skill", 1, false,
		).
		WillReturnResult(sqlmock.NewResult(2, 2))
	mock.ExpectCommit()

	if err := store.SaveAnalysis(context.Background(), result); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if result.ID == "" {
		t.Error("SaveAnalysis should assign an analysis ID")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSaveAnalysisSkipsKeywordInsertWhenEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	result := &types.AnalysisResult{
		ID:         "11111111-1111-1111-1111-111111111111",
		Industry:   "general",
		TotalScore: 50,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(result.ID, sqlmock.AnyArg(), result.Industry, result.TotalScore, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := store.SaveAnalysis(context.Background(), result); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestBuildKeywordInsertSkipsDuplicates(t *testing.T) {
	query, args := buildKeywordInsert("a-1", []types.Keyword{
		{NormalizedText: "go", Category: types.CategoryTechnical, Count: 2, IsMatch: true},
		{NormalizedText: "sql", Category: types.CategoryTechnical, Count: 1},
	})

	if want := 10; len(args) != want {
		t.Errorf("args = %d, want %d", len(args), want)
	}
	if !strings.Contains(query, "ON CONFLICT (analysis_id, keyword) DO NOTHING") {
		t.Errorf("query missing conflict clause: %s", query)
	}
	if !strings.Contains(query, "($6, $7, $8, $9, $10)") {
		t.Errorf("query missing second value tuple: %s", query)
	}
}

func TestIndustryImportanceReadsTable(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"keyword", "importance"}).
		AddRow("kubernetes", 5).
		AddRow("terraform", 4)
	mock.ExpectQuery("SELECT keyword, importance FROM industry_keywords").
		WithArgs("technology").
		WillReturnRows(rows)

	table, err := store.IndustryImportance(context.Background(), "technology")
	if err != nil {
		t.Fatalf("IndustryImportance: %v", err)
	}
	if table["kubernetes"] != 5 || table["terraform"] != 4 {
		t.Errorf("unexpected table: %v", table)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestIndustryImportanceEmptyForUnknownIndustry(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT keyword, importance FROM industry_keywords").
		WithArgs("basket-weaving").
		WillReturnRows(sqlmock.NewRows([]string{"keyword", "importance"}))

	table, err := store.IndustryImportance(context.Background(), "basket-weaving")
	if err != nil {
		t.Fatalf("IndustryImportance: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("expected empty table, got %v", table)
	}
}

func TestUpsertKeywordStat(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO keyword_stats").
		WithArgs("kubernetes", "technology").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.UpsertKeywordStat(context.Background(), "kubernetes", "technology"); err != nil {
		t.Fatalf("UpsertKeywordStat: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.SaveAnalysis(ctx, &types.AnalysisResult{ID: "a-1", TotalScore: 77}); err != nil {
		t.Fatal(err)
	}
	if got := m.GetAnalysis("a-1"); got == nil || got.TotalScore != 77 {
		t.Errorf("GetAnalysis returned %+v", got)
	}

	m.SetImportance("technology", map[string]int{"go": 4})
	table, err := m.IndustryImportance(ctx, "technology")
	if err != nil {
		t.Fatal(err)
	}
	if table["go"] != 4 {
		t.Errorf("importance table = %v", table)
	}

	for i := 0; i < 3; i++ {
		if err := m.UpsertKeywordStat(ctx, "go", "technology"); err != nil {
			t.Fatal(err)
		}
	}
	row := m.KeywordStat("go", "technology")
	if row.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", row.Occurrences)
	}
	if row.Keyword != "go" || row.Industry != "technology" {
		t.Errorf("row identity = %q/%q", row.Keyword, row.Industry)
	}
}
