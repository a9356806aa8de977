package types

// KeywordCategory classifies an extracted keyword
type KeywordCategory string

const (
	CategoryTechnical     KeywordCategory = "technical"
	CategorySoftSkill     KeywordCategory = "soft_skill"
	CategoryCertification KeywordCategory = "certification"
	CategoryGeneral       KeywordCategory = "general"
)

// KeywordSource records which document a keyword came from
type KeywordSource string

const (
	SourceResume         KeywordSource = "resume"
	SourceJobDescription KeywordSource = "job_description"
)

// Keyword represents a single extracted keyword with match metadata.
// Within one analysis there is at most one Keyword per NormalizedText.
type Keyword struct {
	Text                 string          `json:"text"`
	NormalizedText       string          `json:"normalizedText"`
	Count                int             `json:"count"`
	IsFromJobDescription bool            `json:"isFromJobDescription"`
	IsMatch              bool            `json:"isMatch"`
	Category             KeywordCategory `json:"category"`
	Importance           int             `json:"importance"` // 1-5
	Source               KeywordSource   `json:"source"`
}

// IssueSeverity ranks how damaging an issue is
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityHigh     IssueSeverity = "high"
	SeverityMedium   IssueSeverity = "medium"
	SeverityLow      IssueSeverity = "low"
)

// Issue represents a single finding from the issue analyzer
type Issue struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Severity    IssueSeverity `json:"severity"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Impact      string        `json:"impact,omitempty"`
	Solution    string        `json:"solution,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
	Priority    int           `json:"priority"` // higher sorts first
}

// ActionPlan buckets issue solutions by urgency
type ActionPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// Section represents a detected resume section with its quality score
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Score   int    `json:"score"`
}

// ATSIssue represents a single failed ATS compatibility check
type ATSIssue struct {
	Check       string `json:"check"`
	Description string `json:"description"`
	Impact      int    `json:"impact"` // points deducted
	Solution    string `json:"solution"`
}

// ATSCheckResult is the outcome of the full ATS check battery
type ATSCheckResult struct {
	Score        int        `json:"score"`
	Issues       []ATSIssue `json:"issues"`
	PassedChecks []string   `json:"passedChecks"`
}

// HeatmapEntry maps a resume section to its score and scoring weight
type HeatmapEntry struct {
	Section string  `json:"section"`
	Score   int     `json:"score"`
	Weight  float64 `json:"weight"`
}

// AnalysisInput is the full input to one scoring run
type AnalysisInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
	FileType       string `json:"fileType,omitempty"` // MIME type of the original upload
	FileName       string `json:"fileName,omitempty"`
	ResumeID       string `json:"resumeId,omitempty"` // cache key when set
}

// AnalysisResult is the complete scoring output for one resume
type AnalysisResult struct {
	ID       string `json:"id,omitempty"`
	ResumeID string `json:"resumeId,omitempty"`
	Industry string `json:"industry"`

	TotalScore int `json:"totalScore"`

	ATSScore          int `json:"atsScore"`
	KeywordScore      int `json:"keywordScore"`
	GrammarScore      int `json:"grammarScore"`
	FormattingScore   int `json:"formattingScore"`
	SectionScore      int `json:"sectionScore"`
	ActionVerbScore   int `json:"actionVerbScore"`
	RelevanceScore    int `json:"relevanceScore"`
	BulletPointScore  int `json:"bulletPointScore"`
	LanguageToneScore int `json:"languageToneScore"`
	LengthScore       int `json:"lengthScore"`
	IndustryScore     int `json:"industryScore"`

	Keywords       []Keyword      `json:"keywords"`
	Sections       []Section      `json:"sections"`
	Issues         []Issue        `json:"issues"`
	Strengths      []string       `json:"strengths,omitempty"`
	ActionPlan     ActionPlan     `json:"actionPlan"`
	ATSResult      ATSCheckResult `json:"atsResult"`
	SectionHeatmap []HeatmapEntry `json:"sectionHeatmap"`

	OverallIssueScore int `json:"overallIssueScore"`

	Suggestions    []string `json:"suggestions,omitempty"`
	AISuggestions  []string `json:"aiSuggestions,omitempty"`
	AIScore        int      `json:"aiScore,omitempty"`
	AIFallbackUsed bool     `json:"aiFallbackUsed,omitempty"`
}

// SuggestionInput is what the AI suggestion provider receives
type SuggestionInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
	Industry       string `json:"industry"`
	TotalScore     int    `json:"totalScore"`
}

// SuggestionOutput is the structured AI suggestion response
type SuggestionOutput struct {
	Suggestions []string `json:"suggestions"`
	Score       int      `json:"score"`
}

// KeywordStat is one row of the keyword analytics table
type KeywordStat struct {
	Keyword     string `json:"keyword"`
	Industry    string `json:"industry"`
	Occurrences int    `json:"occurrences"`
}
