package textquality

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// SentimentResult is the lexicon-based sentiment outcome
type SentimentResult struct {
	Score    int     `json:"score"` // 0-100
	Label    string  `json:"label"` // positive, neutral, negative
	Polarity float64 `json:"polarity"`
}

// GrammarIssue flags a single grammar heuristic hit
type GrammarIssue struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
}

// LanguageMetrics holds the raw language statistics
type LanguageMetrics struct {
	WordCount       int     `json:"wordCount"`
	SentenceCount   int     `json:"sentenceCount"`
	AvgWordsPerSent float64 `json:"avgWordsPerSentence"`
	UniqueWordRatio float64 `json:"uniqueWordRatio"`
	Formality       int     `json:"formality"` // 0-100
}

// KeyPhrase is a ranked noun phrase
type KeyPhrase struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Report is the complete text quality analysis
type Report struct {
	Sentiment       SentimentResult `json:"sentiment"`
	Readability     int             `json:"readability"`
	Complexity      int             `json:"complexity"`
	ActionVerbScore int             `json:"actionVerbScore"`
	ActionVerbCount int             `json:"actionVerbCount"`
	TechnicalScore  int             `json:"technicalScore"`
	TechnicalSkills []string        `json:"technicalSkills"`
	GrammarIssues   []GrammarIssue  `json:"grammarIssues"`
	Metrics         LanguageMetrics `json:"metrics"`
	KeyPhrases      []KeyPhrase     `json:"keyPhrases"`
}

// Analyzer computes heuristic text quality signals.
// Every sub-computation degrades to neutral defaults on empty input
// instead of returning an error.
type Analyzer struct{}

// NewAnalyzer creates a text quality analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

var (
	tokenPattern    = regexp.MustCompile(`[a-zA-Z]{3,}`)
	allWordPattern  = regexp.MustCompile(`[a-zA-Z0-9]+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	splitPattern    = regexp.MustCompile(`[.!?\n]+`)
	passivePattern  = regexp.MustCompile(`(?i)\b(was|were|been|being|is|are|be)\s+\w+ed\b`)
	weakWordPattern = regexp.MustCompile(`\b(very|really|quite|somewhat|rather)\b`)
)

var positiveWords = map[string]float64{
	"achiev": 1, "improv": 1, "increas": 0.8, "success": 1, "lead": 0.6,
	"award": 1, "excel": 1, "optim": 0.8, "grow": 0.8, "deliv": 0.8,
	"innovat": 1, "accomplish": 1, "exceed": 1, "strong": 0.6, "effect": 0.6,
	"effici": 0.8, "expert": 0.8, "best": 0.6, "top": 0.6, "win": 0.8,
}

var negativeWords = map[string]float64{
	"fail": 1, "problem": 0.6, "issu": 0.4, "difficult": 0.6, "poor": 1,
	"weak": 0.8, "lack": 0.8, "unabl": 1, "wors": 1, "bad": 0.8,
	"lose": 0.8, "lost": 0.8, "error": 0.4, "wrong": 0.8,
}

var weakWords = []string{"very", "really", "quite", "somewhat", "rather"}

var actionVerbs = map[string]bool{
	"achieved": true, "managed": true, "led": true, "developed": true,
	"created": true, "implemented": true, "designed": true, "launched": true,
	"improved": true, "increased": true, "reduced": true, "delivered": true,
	"built": true, "established": true, "coordinated": true, "directed": true,
	"executed": true, "optimized": true, "streamlined": true, "spearheaded": true,
	"negotiated": true, "initiated": true, "transformed": true, "mentored": true,
	"supervised": true, "automated": true, "architected": true, "drove": true,
	"generated": true, "accelerated": true, "analyzed": true, "organized": true,
}

var technicalSkillLists = map[string][]string{
	"programming": {"python", "java", "javascript", "typescript", "golang", "ruby", "php", "rust", "scala", "kotlin", "swift", "sql"},
	"databases":   {"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb", "oracle"},
	"cloud":       {"aws", "azure", "gcp", "kubernetes", "docker", "terraform", "serverless", "lambda", "cloudformation"},
	"tools":       {"git", "jenkins", "jira", "ansible", "kafka", "grafana", "prometheus", "tableau", "excel", "salesforce"},
}

var formalWords = []string{
	"furthermore", "consequently", "accordingly", "moreover", "therefore",
	"subsequently", "demonstrated", "facilitated", "utilized", "comprehensive",
}

var informalWords = []string{
	"stuff", "things", "lots", "kinda", "sorta", "gonna", "wanna",
	"awesome", "cool", "guys",
}

var phraseStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"that": true, "this": true, "was": true, "were": true, "are": true,
	"have": true, "has": true, "had": true, "been": true, "will": true,
	"would": true, "their": true, "our": true, "your": true, "its": true,
}

// Analyze runs every text quality computation over the input
func (a *Analyzer) Analyze(text string) Report {
	if strings.TrimSpace(text) == "" {
		return neutralReport()
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return neutralReport()
	}

	metrics := a.languageMetrics(text)
	skills := a.technicalSkills(tokens)
	verbCount, verbScore := a.actionVerbs(tokens)

	return Report{
		Sentiment:       a.sentiment(tokens),
		Readability:     a.readability(text),
		Complexity:      a.complexity(tokens),
		ActionVerbScore: verbScore,
		ActionVerbCount: verbCount,
		TechnicalScore:  clamp(5 * len(skills)),
		TechnicalSkills: skills,
		GrammarIssues:   a.grammarIssues(text),
		Metrics:         metrics,
		KeyPhrases:      a.keyPhrases(text),
	}
}

func neutralReport() Report {
	return Report{
		Sentiment:       SentimentResult{Score: 50, Label: "neutral"},
		Readability:     50,
		Complexity:      50,
		ActionVerbScore: 0,
		TechnicalScore:  0,
		Metrics:         LanguageMetrics{Formality: 50},
	}
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// stem strips common suffixes so lexicon lookups catch inflected forms
func stem(word string) string {
	for _, suffix := range []string{"ements", "ement", "ations", "ation", "ingly", "ings", "ing", "edly", "ed", "es", "s", "ly"} {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

func (a *Analyzer) sentiment(tokens []string) SentimentResult {
	var score float64
	hits := 0
	for _, tok := range tokens {
		stemmed := stem(tok)
		for prefix, weight := range positiveWords {
			if strings.HasPrefix(stemmed, prefix) {
				score += weight
				hits++
				break
			}
		}
		for prefix, weight := range negativeWords {
			if strings.HasPrefix(stemmed, prefix) {
				score -= weight
				hits++
				break
			}
		}
	}

	polarity := 0.0
	if hits > 0 {
		polarity = score / float64(hits)
	}

	label := "neutral"
	if polarity > 0.1 {
		label = "positive"
	} else if polarity < -0.1 {
		label = "negative"
	}

	return SentimentResult{
		Score:    clamp(int(math.Round(50 + polarity*50))),
		Label:    label,
		Polarity: polarity,
	}
}

func (a *Analyzer) readability(text string) int {
	words := allWordPattern.FindAllString(text, -1)
	if len(words) == 0 {
		return 50
	}
	sentences := countSentences(text)

	avgWordsPerSentence := float64(len(words)) / float64(sentences)
	longWords := 0
	for _, w := range words {
		if len(w) > 6 {
			longWords++
		}
	}
	longFraction := float64(longWords) / float64(len(words))

	return clamp(int(math.Round(100 - 2*avgWordsPerSentence - 30*longFraction)))
}

func (a *Analyzer) complexity(tokens []string) int {
	unique := make(map[string]bool, len(tokens))
	totalLen := 0
	for _, tok := range tokens {
		unique[tok] = true
		totalLen += len(tok)
	}
	uniqueRatio := float64(len(unique)) / float64(len(tokens))
	avgLen := float64(totalLen) / float64(len(tokens))

	return clamp(int(math.Round(80*uniqueRatio + 5*avgLen)))
}

// actionVerbs counts action verbs and scores density against a 4% target
func (a *Analyzer) actionVerbs(tokens []string) (int, int) {
	count := 0
	for _, tok := range tokens {
		if actionVerbs[tok] {
			count++
		}
	}
	density := float64(count) / float64(len(tokens))
	return count, clamp(int(math.Round(100 * density / 0.04)))
}

func (a *Analyzer) technicalSkills(tokens []string) []string {
	present := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		present[tok] = true
	}

	var found []string
	seen := make(map[string]bool)
	for _, category := range []string{"programming", "databases", "cloud", "tools"} {
		for _, skill := range technicalSkillLists[category] {
			if present[skill] && !seen[skill] {
				found = append(found, skill)
				seen[skill] = true
			}
		}
	}
	return found
}

func (a *Analyzer) grammarIssues(text string) []GrammarIssue {
	var issues []GrammarIssue

	for _, match := range passivePattern.FindAllString(text, -1) {
		if len(issues) >= 10 {
			return issues
		}
		issues = append(issues, GrammarIssue{
			Type:       "passive_voice",
			Text:       match,
			Suggestion: "Rewrite in active voice with a strong verb",
		})
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool, len(weakWords))
	for _, weak := range weakWordPattern.FindAllString(lower, -1) {
		if len(issues) >= 10 {
			return issues
		}
		if seen[weak] {
			continue
		}
		seen[weak] = true
		issues = append(issues, GrammarIssue{
			Type:       "weak_word",
			Text:       weak,
			Suggestion: "Remove the qualifier or replace it with a concrete measure",
		})
	}

	return issues
}

func (a *Analyzer) languageMetrics(text string) LanguageMetrics {
	words := allWordPattern.FindAllString(strings.ToLower(text), -1)
	sentences := countSentences(text)

	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[w] = true
	}
	uniqueRatio := 0.0
	avgWords := 0.0
	if len(words) > 0 {
		uniqueRatio = float64(len(unique)) / float64(len(words))
		avgWords = float64(len(words)) / float64(sentences)
	}

	formal, informal := 0, 0
	wordSet := make(map[string]int, len(words))
	for _, w := range words {
		wordSet[w]++
	}
	for _, w := range formalWords {
		formal += wordSet[w]
	}
	for _, w := range informalWords {
		informal += wordSet[w]
	}

	return LanguageMetrics{
		WordCount:       len(words),
		SentenceCount:   sentences,
		AvgWordsPerSent: avgWords,
		UniqueWordRatio: uniqueRatio,
		Formality:       clamp(50 + 10*(formal-informal)),
	}
}

func (a *Analyzer) keyPhrases(text string) []KeyPhrase {
	counts := make(map[string]int)
	for _, sentence := range splitPattern.Split(strings.ToLower(text), -1) {
		tokens := allWordPattern.FindAllString(sentence, -1)

		var run []string
		flush := func() {
			if len(run) >= 2 && len(run) <= 4 {
				counts[strings.Join(run, " ")]++
			}
			run = nil
		}
		for _, tok := range tokens {
			if phraseStopwords[tok] || len(tok) < 3 {
				flush()
				continue
			}
			run = append(run, tok)
			if len(run) == 4 {
				flush()
			}
		}
		flush()
	}

	phrases := make([]KeyPhrase, 0, len(counts))
	for phrase, count := range counts {
		words := strings.Count(phrase, " ") + 1
		phrases = append(phrases, KeyPhrase{Text: phrase, Score: count * words})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].Score != phrases[j].Score {
			return phrases[i].Score > phrases[j].Score
		}
		return phrases[i].Text < phrases[j].Text
	})
	if len(phrases) > 20 {
		phrases = phrases[:20]
	}
	return phrases
}

func countSentences(text string) int {
	n := len(sentencePattern.FindAllString(text, -1))
	if n == 0 {
		return 1
	}
	return n
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
