package scoring

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resumescore/internal/ats"
	"resumescore/internal/errors"
	"resumescore/internal/industry"
	"resumescore/internal/issues"
	"resumescore/internal/keywords"
	"resumescore/internal/textquality"
	"resumescore/internal/types"
)

// ImportanceSource provides the per-industry keyword importance table.
// Implementations are read-mostly and safe for concurrent use.
type ImportanceSource interface {
	IndustryImportance(ctx context.Context, industry string) (map[string]int, error)
}

// ResultCache stores full analysis results keyed by resume ID.
// A miss is never an error; the pipeline recomputes.
type ResultCache interface {
	Get(ctx context.Context, resumeID string) (*types.AnalysisResult, bool)
	Set(ctx context.Context, resumeID string, result *types.AnalysisResult)
}

// SuggestionProvider generates improvement suggestions. Failures are
// absorbed by the engine's deterministic fallback.
type SuggestionProvider interface {
	Suggest(ctx context.Context, in types.SuggestionInput) (*types.SuggestionOutput, error)
}

// KeywordRecorder accepts best-effort keyword analytics events
type KeywordRecorder interface {
	Record(keyword, industry string)
}

// Options carries the optional collaborators for an Engine
type Options struct {
	Importance ImportanceSource
	Cache      ResultCache
	AI         SuggestionProvider
	Recorder   KeywordRecorder
	AITimeout  time.Duration
}

// Engine orchestrates the full scoring pipeline
type Engine struct {
	industries *industry.Detector
	keywords   *keywords.Processor
	quality    *textquality.Analyzer
	ats        *ats.Checker
	issues     *issues.Analyzer

	importance ImportanceSource
	cache      ResultCache
	ai         SuggestionProvider
	recorder   KeywordRecorder
	aiTimeout  time.Duration

	logger *errors.Logger
}

// Weight table for the total score. Weights sum to 1.00.
const (
	weightATS          = 0.15
	weightKeyword      = 0.15
	weightGrammar      = 0.10
	weightFormatting   = 0.10
	weightSection      = 0.10
	weightActionVerb   = 0.10
	weightRelevance    = 0.10
	weightBulletPoint  = 0.05
	weightLanguageTone = 0.05
	weightLength       = 0.05
	weightIndustry     = 0.05
)

// Documented defaults when no job description is supplied
const (
	noJobKeywordScore   = 70
	noJobRelevanceScore = 0
)

// NewEngine wires the pipeline components together. Collaborators in
// opts may be nil; the engine degrades gracefully without them.
func NewEngine(
	detector *industry.Detector,
	processor *keywords.Processor,
	quality *textquality.Analyzer,
	checker *ats.Checker,
	issueAnalyzer *issues.Analyzer,
	opts Options,
	logger *errors.Logger,
) *Engine {
	aiTimeout := opts.AITimeout
	if aiTimeout <= 0 {
		aiTimeout = 10 * time.Second
	}
	return &Engine{
		industries: detector,
		keywords:   processor,
		quality:    quality,
		ats:        checker,
		issues:     issueAnalyzer,
		importance: opts.Importance,
		cache:      opts.Cache,
		ai:         opts.AI,
		recorder:   opts.Recorder,
		aiTimeout:  aiTimeout,
		logger:     logger,
	}
}

var tracer = otel.Tracer("resumescore/scoring")

// Analyze runs the complete pipeline over one resume
func (e *Engine) Analyze(ctx context.Context, in types.AnalysisInput) (*types.AnalysisResult, error) {
	ctx, span := tracer.Start(ctx, "scoring.analyze",
		trace.WithAttributes(
			attribute.Int("resume.length", len(in.ResumeText)),
			attribute.Bool("resume.has_job_description", strings.TrimSpace(in.JobDescription) != ""),
		))
	defer span.End()

	if strings.TrimSpace(in.ResumeText) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "resume text is empty", nil)
	}

	if e.cache != nil && in.ResumeID != "" {
		if cached, ok := e.cache.Get(ctx, in.ResumeID); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	hasJob := strings.TrimSpace(in.JobDescription) != ""

	industryLabel := e.industries.Detect(in.ResumeText)
	span.SetAttributes(attribute.String("resume.industry", industryLabel))

	// One batched importance read per analysis
	var importance map[string]int
	if e.importance != nil {
		table, err := e.importance.IndustryImportance(ctx, industryLabel)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("Importance lookup failed, using computed importance only", "error", err)
			}
		} else {
			importance = table
		}
	}

	keywordList := e.keywords.Match(in.ResumeText, in.JobDescription, importance)
	atsResult := e.ats.Check(ats.Input{Text: in.ResumeText, FileType: in.FileType, FileName: in.FileName})
	qualityReport := e.quality.Analyze(in.ResumeText)
	issueReport := e.issues.Analyze(issues.Input{
		ResumeText:        in.ResumeText,
		Industry:          industryLabel,
		Keywords:          keywordList,
		HasJobDescription: hasJob,
	})

	result := e.assemble(in, industryLabel, keywordList, atsResult, qualityReport, issueReport, hasJob)

	e.applySuggestions(ctx, in, result)
	e.recordAnalytics(keywordList, industryLabel)

	if e.cache != nil && in.ResumeID != "" {
		e.cache.Set(ctx, in.ResumeID, result)
	}

	span.SetAttributes(attribute.Int("resume.total_score", result.TotalScore))
	return result, nil
}

func (e *Engine) assemble(
	in types.AnalysisInput,
	industryLabel string,
	keywordList []types.Keyword,
	atsResult types.ATSCheckResult,
	quality textquality.Report,
	issueReport issues.Report,
	hasJob bool,
) *types.AnalysisResult {
	matchRate := keywords.MatchRate(keywordList)

	keywordScore := noJobKeywordScore
	relevanceScore := noJobRelevanceScore
	if hasJob && matchRate >= 0 {
		keywordScore = roundClamp(matchRate)
		relevanceScore = roundClamp(matchRate)
	}

	readability := float64(quality.Readability)
	complexity := float64(quality.Complexity)
	formality := float64(quality.Metrics.Formality)
	sentiment := float64(quality.Sentiment.Score)

	grammarScore := roundClamp(0.6*formality + 0.4*readability)
	structure := structureHeuristic(in.ResumeText, issueReport.Sections)
	formattingScore := roundClamp(0.5*readability + 0.3*complexity + 0.2*float64(structure))

	sectionScore := 0
	for _, name := range issues.EssentialSections {
		if issueReport.SectionScores[name] > 0 {
			sectionScore += 25
		}
	}

	actionVerbScore := quality.ActionVerbScore
	bulletScore := bulletPointScore(in.ResumeText, quality)
	toneScore := roundClamp(0.7*sentiment + 0.3*formality)
	lengthScore := lengthBand(len(strings.Fields(in.ResumeText)))

	weights := industry.Weights(industryLabel)
	industryComponents := []types.HeatmapEntry{
		{Section: "technical skills", Score: quality.TechnicalScore, Weight: weights.TechnicalSkills},
		{Section: "projects", Score: issueReport.SectionScores["projects"], Weight: weights.Projects},
		{Section: "experience", Score: issueReport.SectionScores["experience"], Weight: weights.Experience},
		{Section: "education", Score: issueReport.SectionScores["education"], Weight: weights.Education},
		{Section: "certifications", Score: certificationScore(in.ResumeText, issueReport.SectionScores), Weight: weights.Certifications},
		{Section: "action verbs", Score: actionVerbScore, Weight: weights.ActionVerbs},
		{Section: "formatting", Score: formattingScore, Weight: weights.Formatting},
	}
	industryScore := 0.0
	for _, c := range industryComponents {
		industryScore += float64(c.Score) * c.Weight
	}

	total := weightATS*float64(atsResult.Score) +
		weightKeyword*float64(keywordScore) +
		weightGrammar*float64(grammarScore) +
		weightFormatting*float64(formattingScore) +
		weightSection*float64(sectionScore) +
		weightActionVerb*float64(actionVerbScore) +
		weightRelevance*float64(relevanceScore) +
		weightBulletPoint*float64(bulletScore) +
		weightLanguageTone*float64(toneScore) +
		weightLength*float64(lengthScore) +
		weightIndustry*industryScore

	result := &types.AnalysisResult{
		ResumeID: in.ResumeID,
		Industry: industryLabel,

		TotalScore: roundClamp(total),

		ATSScore:          atsResult.Score,
		KeywordScore:      keywordScore,
		GrammarScore:      grammarScore,
		FormattingScore:   formattingScore,
		SectionScore:      sectionScore,
		ActionVerbScore:   actionVerbScore,
		RelevanceScore:    relevanceScore,
		BulletPointScore:  bulletScore,
		LanguageToneScore: toneScore,
		LengthScore:       lengthScore,
		IndustryScore:     roundClamp(industryScore),

		Keywords:       keywordList,
		Sections:       issueReport.Sections,
		Issues:         issueReport.Issues,
		Strengths:      issueReport.Strengths,
		ActionPlan:     issueReport.ActionPlan,
		ATSResult:      atsResult,
		SectionHeatmap: industryComponents,

		OverallIssueScore: issueReport.OverallScore,
	}

	result.Suggestions = thresholdSuggestions(result)
	return result
}

// applySuggestions asks the AI collaborator within a bounded timeout and
// falls back to the deterministic local formula on any failure. AI
// failures never surface to the caller.
func (e *Engine) applySuggestions(ctx context.Context, in types.AnalysisInput, result *types.AnalysisResult) {
	if e.ai != nil {
		aiCtx, cancel := context.WithTimeout(ctx, e.aiTimeout)
		defer cancel()

		out, err := e.ai.Suggest(aiCtx, types.SuggestionInput{
			ResumeText:     in.ResumeText,
			JobDescription: in.JobDescription,
			Industry:       result.Industry,
			TotalScore:     result.TotalScore,
		})
		if err == nil && out != nil && len(out.Suggestions) > 0 {
			if len(out.Suggestions) > 5 {
				out.Suggestions = out.Suggestions[:5]
			}
			result.AISuggestions = out.Suggestions
			result.AIScore = clampRange(out.Score, 20, 100)
			return
		}
		if err != nil && e.logger != nil {
			e.logger.Warn("AI suggestions unavailable, using local fallback", "error", err)
		}
	}

	result.AISuggestions = take(result.Suggestions, 7)
	result.AIScore = FallbackScore(in.ResumeText, in.JobDescription, result.Keywords)
	result.AIFallbackUsed = true
}

func (e *Engine) recordAnalytics(keywordList []types.Keyword, industryLabel string) {
	if e.recorder == nil {
		return
	}
	for _, kw := range keywordList {
		if kw.Source == types.SourceResume && kw.Count > 0 {
			e.recorder.Record(kw.NormalizedText, industryLabel)
		}
	}
}

var (
	quantifiedPattern = regexp.MustCompile(`\d+%|\$[\d,]+|\b\d{2,}\b`)
	bulletLinePattern = regexp.MustCompile(`(?m)^\s*[-•*▪]`)
	numericToken      = regexp.MustCompile(`\b\d+\b`)
	sentenceEnd       = regexp.MustCompile(`[.!?]+`)
	emailRe           = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe           = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// structureHeuristic rewards section headers, bullet usage, and spacing.
// Base 50, capped 100.
func structureHeuristic(text string, sections []types.Section) int {
	score := 50
	score += 8 * len(sections)
	if bulletLinePattern.MatchString(text) {
		score += 15
	}
	if strings.Contains(text, "\n\n") {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// bulletPointScore derives a score from the bullet-to-sentence ratio with
// bonuses for action verbs and numeric evidence. Base 40, capped 100.
func bulletPointScore(text string, quality textquality.Report) int {
	bullets := len(bulletLinePattern.FindAllString(text, -1))
	sentences := len(sentenceEnd.FindAllString(text, -1))
	if sentences == 0 {
		sentences = 1
	}

	ratio := float64(bullets) / float64(sentences)
	if ratio > 1 {
		ratio = 1
	}
	score := 40 + int(math.Round(40*ratio))

	if quality.ActionVerbCount > 5 {
		score += 10
	}
	if len(numericToken.FindAllString(text, -1)) > 3 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// lengthBand maps word count to the documented score bands
func lengthBand(words int) int {
	switch {
	case words < 200:
		return 50
	case words < 300:
		return 70
	case words <= 700:
		return 100
	case words <= 900:
		return 80
	default:
		return 60
	}
}

func certificationScore(text string, sectionScores map[string]int) int {
	if s := sectionScores["certifications"]; s > 0 {
		return s
	}
	if strings.Contains(strings.ToLower(text), "certif") {
		return 60
	}
	return 0
}

// thresholdSuggestions emits fixed advisory strings for weak sub-scores
func thresholdSuggestions(r *types.AnalysisResult) []string {
	var out []string
	if r.ATSScore < 80 {
		out = append(out, "Simplify the layout so applicant tracking systems can parse every line")
	}
	if r.KeywordScore < 70 {
		out = append(out, "Mirror more of the job posting's key terms in your skills and experience")
	}
	if r.GrammarScore < 80 {
		out = append(out, "Tighten the writing: active voice, no qualifiers, consistent tense")
	}
	if r.FormattingScore < 75 {
		out = append(out, "Standardize headings, bullets, and spacing for a cleaner scan")
	}
	if r.SectionScore < 100 {
		out = append(out, "Add the missing standard sections: summary, experience, education, skills")
	}
	if r.ActionVerbScore < 60 {
		out = append(out, "Open each bullet with a strong action verb")
	}
	if r.BulletPointScore < 60 {
		out = append(out, "Convert dense paragraphs into concise achievement bullets")
	}
	if r.LengthScore < 100 {
		out = append(out, "Aim for 300-700 words: enough depth without diluting your best material")
	}
	if r.LanguageToneScore < 60 {
		out = append(out, "Use confident, positive phrasing focused on outcomes")
	}
	return out
}

// FallbackScore is the deterministic local replacement for the AI
// advisory score: fixed point additions over a base of 50, clamped to
// [20,100].
func FallbackScore(resumeText, jobDescription string, keywordList []types.Keyword) int {
	score := 50
	lower := strings.ToLower(resumeText)

	if emailRe.MatchString(resumeText) || phoneRe.MatchString(resumeText) {
		score += 10
	}
	if strings.Contains(lower, "summary") || strings.Contains(lower, "objective") {
		score += 10
	}

	quantified := len(quantifiedPattern.FindAllString(resumeText, -1))
	bonus := 3 * quantified
	if bonus > 15 {
		bonus = 15
	}
	score += bonus

	if strings.Contains(lower, "skills") {
		score += 10
	}
	if strings.Contains(lower, "education") {
		score += 5
	}

	if strings.TrimSpace(jobDescription) != "" {
		if rate := keywords.MatchRate(keywordList); rate > 0 {
			score += int(math.Round(15 * rate / 100))
		}
	}

	return clampRange(score, 20, 100)
}

func roundClamp(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func take(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
