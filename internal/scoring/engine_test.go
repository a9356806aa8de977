package scoring

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"resumescore/internal/ats"
	"resumescore/internal/industry"
	"resumescore/internal/issues"
	"resumescore/internal/keywords"
	"resumescore/internal/textquality"
	"resumescore/internal/types"
)

func newTestEngine(opts Options) *Engine {
	return NewEngine(
		industry.NewDetector(nil),
		keywords.NewProcessor(3),
		textquality.NewAnalyzer(),
		ats.NewChecker(),
		issues.NewAnalyzer(),
		opts,
		nil,
	)
}

const sampleResume = `Jane Smith
jane.smith@example.com | 555-123-4567 | linkedin.com/in/janesmith

Summary
Backend engineer with eight years building payment systems, focused on reliability and developer experience.

Experience
Senior Engineer, Acme Corp
- Led migration of 40 services to Kubernetes, cutting deploy time 60% by automating rollouts
- Reduced API latency 35% through caching reads
- Mentored 6 engineers

Education
BS Computer Science, State University

Skills
Languages: Go, Python, SQL
Cloud: AWS, Docker, Kubernetes
`

func sampleInput() types.AnalysisInput {
	return types.AnalysisInput{
		ResumeText: sampleResume,
		FileType:   "application/pdf",
		FileName:   "jane-smith.pdf",
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	e := newTestEngine(Options{})

	inputs := []types.AnalysisInput{
		sampleInput(),
		{ResumeText: "x", FileType: "bad/type", FileName: "a b!.xyz"},
		{ResumeText: strings.Repeat("word ", 2000), FileType: "text/plain", FileName: "big.txt"},
		{ResumeText: "| a | b |\n|---|---|\n★★★★★★★ “quoted”", FileType: "image/png"},
	}

	for i, in := range inputs {
		result, err := e.Analyze(context.Background(), in)
		if err != nil {
			t.Fatalf("input %d: unexpected error: %v", i, err)
		}

		scores := map[string]int{
			"total":        result.TotalScore,
			"ats":          result.ATSScore,
			"keyword":      result.KeywordScore,
			"grammar":      result.GrammarScore,
			"formatting":   result.FormattingScore,
			"section":      result.SectionScore,
			"actionVerb":   result.ActionVerbScore,
			"relevance":    result.RelevanceScore,
			"bulletPoint":  result.BulletPointScore,
			"languageTone": result.LanguageToneScore,
			"length":       result.LengthScore,
			"industry":     result.IndustryScore,
			"overallIssue": result.OverallIssueScore,
		}
		for name, score := range scores {
			if score < 0 || score > 100 {
				t.Errorf("input %d: %s score %d out of [0,100]", i, name, score)
			}
		}
	}
}

func TestAnalyzeEmptyResume(t *testing.T) {
	e := newTestEngine(Options{})

	if _, err := e.Analyze(context.Background(), types.AnalysisInput{ResumeText: "  "}); err == nil {
		t.Fatal("empty resume should be rejected")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := newTestEngine(Options{})
	in := sampleInput()
	in.JobDescription = "Go Kubernetes AWS experience required"

	first, err := e.Analyze(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Analyze(context.Background(), in)
		if err != nil {
			t.Fatal(err)
		}
		if again.TotalScore != first.TotalScore || again.Industry != first.Industry {
			t.Fatalf("run %d: totalScore/industry %d/%s, first run %d/%s",
				i, again.TotalScore, again.Industry, first.TotalScore, first.Industry)
		}
	}
}

func TestKeywordScoreFullMatch(t *testing.T) {
	e := newTestEngine(Options{})

	result, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText:     "Experienced React developer with Node and AWS",
		JobDescription: "React Node AWS",
		FileType:       "text/plain",
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.KeywordScore != 100 {
		t.Errorf("keywordScore = %d, want 100", result.KeywordScore)
	}
	if result.RelevanceScore != 100 {
		t.Errorf("relevanceScore = %d, want 100", result.RelevanceScore)
	}
}

func TestNoJobDescriptionDefaults(t *testing.T) {
	e := newTestEngine(Options{})

	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}

	if result.KeywordScore != 70 {
		t.Errorf("keywordScore without job description = %d, want 70", result.KeywordScore)
	}
	if result.RelevanceScore != 0 {
		t.Errorf("relevanceScore without job description = %d, want 0", result.RelevanceScore)
	}
}

func TestLengthBandBoundaries(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{150, 50},
		{199, 50},
		{200, 70},
		{299, 70},
		{300, 100},
		{650, 100},
		{700, 100},
		{701, 80},
		{900, 80},
		{950, 60},
	}

	for _, tt := range tests {
		if got := lengthBand(tt.words); got != tt.want {
			t.Errorf("lengthBand(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := weightATS + weightKeyword + weightGrammar + weightFormatting +
		weightSection + weightActionVerb + weightRelevance + weightBulletPoint +
		weightLanguageTone + weightLength + weightIndustry
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total score weights sum to %f, want 1.00", sum)
	}
}

func TestSectionHeatmapWeights(t *testing.T) {
	e := newTestEngine(Options{})

	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.SectionHeatmap) == 0 {
		t.Fatal("section heatmap is empty")
	}
	sum := 0.0
	for _, entry := range result.SectionHeatmap {
		sum += entry.Weight
		if entry.Score < 0 || entry.Score > 100 {
			t.Errorf("heatmap entry %q score %d out of range", entry.Section, entry.Score)
		}
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("heatmap weights sum to %f, want 1.0", sum)
	}
}

type fakeImportance struct {
	table map[string]int
	calls int
}

func (f *fakeImportance) IndustryImportance(_ context.Context, _ string) (map[string]int, error) {
	f.calls++
	return f.table, nil
}

func TestImportanceBatchedOncePerAnalysis(t *testing.T) {
	src := &fakeImportance{table: map[string]int{"kubernetes": 5}}
	e := newTestEngine(Options{Importance: src})

	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Errorf("importance lookups = %d, want 1 batched call", src.calls)
	}

	for _, kw := range result.Keywords {
		if kw.NormalizedText == "kubernetes" && kw.Importance != 5 {
			t.Errorf("kubernetes importance = %d, want overridden 5", kw.Importance)
		}
	}
}

type fakeCache struct {
	store map[string]*types.AnalysisResult
	hits  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]*types.AnalysisResult)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*types.AnalysisResult, bool) {
	r, ok := c.store[id]
	if ok {
		c.hits++
	}
	return r, ok
}

func (c *fakeCache) Set(_ context.Context, id string, r *types.AnalysisResult) {
	c.store[id] = r
}

func TestCacheMissRecomputesAndStores(t *testing.T) {
	cache := newFakeCache()
	e := newTestEngine(Options{Cache: cache})

	in := sampleInput()
	in.ResumeID = "resume-1"

	first, err := e.Analyze(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cache.hits != 0 {
		t.Errorf("first run hit the cache %d times", cache.hits)
	}
	if _, ok := cache.store["resume-1"]; !ok {
		t.Fatal("result was not stored in the cache")
	}

	second, err := e.Analyze(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cache.hits != 1 {
		t.Errorf("second run cache hits = %d, want 1", cache.hits)
	}
	if second.TotalScore != first.TotalScore {
		t.Errorf("cached result differs: %d vs %d", second.TotalScore, first.TotalScore)
	}
}

type failingAI struct{ err error }

func (f *failingAI) Suggest(_ context.Context, _ types.SuggestionInput) (*types.SuggestionOutput, error) {
	return nil, f.err
}

type slowAI struct{}

func (s *slowAI) Suggest(ctx context.Context, _ types.SuggestionInput) (*types.SuggestionOutput, error) {
	select {
	case <-time.After(5 * time.Second):
		return &types.SuggestionOutput{Suggestions: []string{"too late"}, Score: 90}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestAIFailureFallsBack(t *testing.T) {
	e := newTestEngine(Options{AI: &failingAI{err: fmt.Errorf("service down")}})

	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("AI failure must not surface: %v", err)
	}

	if !result.AIFallbackUsed {
		t.Error("fallback flag not set")
	}
	if len(result.AISuggestions) == 0 || len(result.AISuggestions) > 7 {
		t.Errorf("fallback suggestions = %d, want 1-7", len(result.AISuggestions))
	}
	if result.AIScore < 20 || result.AIScore > 100 {
		t.Errorf("fallback score = %d, want within [20,100]", result.AIScore)
	}
}

func TestAITimeoutFallsBack(t *testing.T) {
	e := newTestEngine(Options{AI: &slowAI{}, AITimeout: 50 * time.Millisecond})

	start := time.Now()
	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("analysis blocked on slow AI for %v", elapsed)
	}
	if !result.AIFallbackUsed {
		t.Error("slow AI should trigger the deterministic fallback")
	}
}

func TestFallbackScoreClamp(t *testing.T) {
	// Bare text earns only the base 50
	if got := FallbackScore("plain text with nothing", "", nil); got < 20 || got > 100 {
		t.Errorf("fallback score %d out of [20,100]", got)
	}

	// Everything present pushes toward the cap but must stay clamped
	rich := sampleResume + "\ncertifications summary objective education skills\n" +
		strings.Repeat("99% $100 2020 ", 20)
	matched := []types.Keyword{{NormalizedText: "go", IsFromJobDescription: true, IsMatch: true}}
	if got := FallbackScore(rich, "Go required", matched); got > 100 {
		t.Errorf("fallback score %d exceeds 100", got)
	}
}

type captureRecorder struct {
	events []string
}

func (c *captureRecorder) Record(keyword, industry string) {
	c.events = append(c.events, keyword+"|"+industry)
}

func TestAnalyticsRecordsResumeKeywords(t *testing.T) {
	rec := &captureRecorder{}
	e := newTestEngine(Options{Recorder: rec})

	result, err := e.Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}

	if len(rec.events) == 0 {
		t.Fatal("no analytics events recorded")
	}
	for _, ev := range rec.events {
		if !strings.HasSuffix(ev, "|"+result.Industry) {
			t.Errorf("event %q does not carry the detected industry", ev)
		}
	}
}
