package keywords

import (
	"regexp"
	"sort"
	"strings"

	"resumescore/internal/types"
)

// Processor extracts, normalizes, categorizes and matches keywords
type Processor struct {
	minLength int
}

// NewProcessor creates a keyword processor.
// minLength below 1 falls back to the default of 3.
func NewProcessor(minLength int) *Processor {
	if minLength < 1 {
		minLength = 3
	}
	return &Processor{minLength: minLength}
}

var (
	nonWordPattern    = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	numericPattern    = regexp.MustCompile(`^[0-9]+$`)
	sentencePattern   = regexp.MustCompile(`[.!?\n]+`)

	technicalPattern = regexp.MustCompile(`^(java|python|golang|go|javascript|typescript|ruby|php|rust|scala|kotlin|swift|sql|nosql|html|css|react|angular|vue|node|nodejs|django|flask|spring|rails|docker|kubernetes|terraform|ansible|jenkins|git|aws|azure|gcp|linux|unix|mongodb|postgresql|postgres|mysql|redis|kafka|rabbitmq|elasticsearch|graphql|rest|api|microservices|devops|ci-cd|cicd|machine-learning|data-science|tensorflow|pytorch|spark|hadoop|tableau|excel|powerbi|salesforce|sap|jira)$`)
	softSkillPattern = regexp.MustCompile(`^(leadership|communication|teamwork|collaboration|problem-solving|adaptability|creativity|mentoring|mentorship|negotiation|presentation|organization|organizational|time-management|critical-thinking|interpersonal|analytical|initiative|flexibility|empathy)$`)
	certPattern      = regexp.MustCompile(`^(certified|certification|certificate|cpa|cfa|pmp|cissp|ccna|ccnp|cisa|frm|aws-certified|azure-certified|gcp-certified|scrum-master|csm|safe|itil|six-sigma|comptia)$`)
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "him": true, "his": true, "how": true, "its": true,
	"may": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "who": true, "did": true, "get": true, "use": true,
	"with": true, "this": true, "that": true, "from": true, "they": true,
	"have": true, "been": true, "were": true, "will": true, "would": true,
	"there": true, "their": true, "which": true, "about": true, "when": true,
	"your": true, "what": true, "them": true, "than": true, "then": true,
	"into": true, "over": true, "also": true, "more": true, "some": true,
	"such": true, "only": true, "other": true, "very": true, "where": true,
	"while": true, "these": true, "those": true, "each": true, "both": true,
	"through": true, "during": true, "including": true, "across": true,
	"using": true, "within": true, "able": true, "well": true,
}

// Normalize lowercases, strips characters outside word/space/hyphen, and
// collapses whitespace. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func (p *Processor) Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonWordPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// validToken reports whether a normalized token survives filtering
func (p *Processor) validToken(token string) bool {
	if len(token) < p.minLength {
		return false
	}
	if stopwords[token] {
		return false
	}
	if numericPattern.MatchString(token) {
		return false
	}
	return true
}

// Extract returns de-duplicated keywords from one document: unigram
// frequencies plus 2/3-gram phrases occurring at least twice.
func (p *Processor) Extract(text string, source types.KeywordSource) []types.Keyword {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	fromJD := source == types.SourceJobDescription

	counts := make(map[string]int)
	surface := make(map[string]string)

	for _, sentence := range sentencePattern.Split(text, -1) {
		normalized := p.Normalize(sentence)
		if normalized == "" {
			continue
		}
		tokens := strings.Split(normalized, " ")

		var kept []string
		for _, tok := range tokens {
			tok = strings.Trim(tok, "-")
			if !p.validToken(tok) {
				continue
			}
			kept = append(kept, tok)
			counts[tok]++
			if _, ok := surface[tok]; !ok {
				surface[tok] = tok
			}
		}

		// Phrase candidates stay within sentence boundaries
		for n := 2; n <= 3; n++ {
			for i := 0; i+n <= len(kept); i++ {
				phrase := strings.Join(kept[i:i+n], " ")
				counts[phrase]++
				if _, ok := surface[phrase]; !ok {
					surface[phrase] = phrase
				}
			}
		}
	}

	var result []types.Keyword
	for term, count := range counts {
		if strings.Contains(term, " ") && count < 2 {
			continue
		}
		result = append(result, types.Keyword{
			Text:                 surface[term],
			NormalizedText:       term,
			Count:                count,
			IsFromJobDescription: fromJD,
			Category:             p.Categorize(term, text),
			Importance:           p.importance(term, count),
			Source:               source,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].NormalizedText < result[j].NormalizedText
	})
	return result
}

// Categorize assigns a category using regex families first, then context
// heuristics over the source text, then general.
func (p *Processor) Categorize(term, sourceText string) types.KeywordCategory {
	// Multi-word phrases are classified by their individual words
	for _, word := range strings.Split(term, " ") {
		switch {
		case technicalPattern.MatchString(word):
			return types.CategoryTechnical
		case certPattern.MatchString(word):
			return types.CategoryCertification
		case softSkillPattern.MatchString(word):
			return types.CategorySoftSkill
		}
	}

	lower := strings.ToLower(sourceText)
	idx := strings.Index(lower, term)
	if idx >= 0 {
		start := idx - 60
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + 60
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		switch {
		case strings.Contains(window, "skill"):
			return types.CategoryTechnical
		case strings.Contains(window, "certif"):
			return types.CategoryCertification
		case strings.Contains(window, "education") || strings.Contains(window, "degree"):
			return types.CategoryGeneral
		case strings.Contains(window, "experience"):
			return types.CategoryTechnical
		}
	}

	return types.CategoryGeneral
}

// importance scores a term 1-5 from its frequency and length
func (p *Processor) importance(term string, count int) int {
	score := 1
	if count > 5 {
		score += 2
	} else if count > 2 {
		score++
	}
	if len(term) > 8 {
		score++
	}
	if score > 5 {
		score = 5
	}
	return score
}

// Match extracts keywords from both documents and merges them on
// normalized text. Resume terms also present in the job description are
// marked as matches; job-description terms absent from the resume are
// emitted with count 0 so missing keywords are visible in output.
// importanceOverride raises importance when the lookup has a higher value.
func (p *Processor) Match(resumeText, jobText string, importanceOverride map[string]int) []types.Keyword {
	resumeKeywords := p.Extract(resumeText, types.SourceResume)
	if strings.TrimSpace(jobText) == "" {
		applyImportance(resumeKeywords, importanceOverride)
		return resumeKeywords
	}

	jobKeywords := p.Extract(jobText, types.SourceJobDescription)
	jobSet := make(map[string]bool, len(jobKeywords))
	for _, kw := range jobKeywords {
		jobSet[kw.NormalizedText] = true
	}

	resumeSet := make(map[string]bool, len(resumeKeywords))
	var merged []types.Keyword
	for _, kw := range resumeKeywords {
		resumeSet[kw.NormalizedText] = true
		if jobSet[kw.NormalizedText] {
			kw.IsFromJobDescription = true
			kw.IsMatch = true
		}
		merged = append(merged, kw)
	}

	for _, kw := range jobKeywords {
		if resumeSet[kw.NormalizedText] {
			continue
		}
		kw.Count = 0
		kw.IsMatch = false
		merged = append(merged, kw)
	}

	applyImportance(merged, importanceOverride)
	return merged
}

func applyImportance(keywords []types.Keyword, override map[string]int) {
	if len(override) == 0 {
		return
	}
	for i := range keywords {
		if v, ok := override[keywords[i].NormalizedText]; ok && v > keywords[i].Importance {
			keywords[i].Importance = v
		}
	}
}

// MatchRate returns the percentage of job-description terms matched by
// the resume, or -1 when the keyword set has no job-description terms.
func MatchRate(keywords []types.Keyword) float64 {
	total := 0
	matched := 0
	for _, kw := range keywords {
		if !kw.IsFromJobDescription {
			continue
		}
		total++
		if kw.IsMatch {
			matched++
		}
	}
	if total == 0 {
		return -1
	}
	return 100 * float64(matched) / float64(total)
}
