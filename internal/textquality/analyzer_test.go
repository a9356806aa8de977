package textquality

import (
	"strings"
	"testing"
)

func TestAnalyzeEmptyInputDefaults(t *testing.T) {
	a := NewAnalyzer()

	for _, input := range []string{"", "   ", "\n\t", "!!! ??? ..."} {
		report := a.Analyze(input)

		if report.Sentiment.Score != 50 || report.Sentiment.Label != "neutral" {
			t.Errorf("input %q: sentiment = %d/%s, want 50/neutral", input, report.Sentiment.Score, report.Sentiment.Label)
		}
		if report.Readability != 50 {
			t.Errorf("input %q: readability = %d, want 50", input, report.Readability)
		}
		if report.Metrics.Formality != 50 {
			t.Errorf("input %q: formality = %d, want 50", input, report.Metrics.Formality)
		}
		if len(report.GrammarIssues) != 0 || len(report.KeyPhrases) != 0 {
			t.Errorf("input %q: expected empty issue and phrase lists", input)
		}
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	a := NewAnalyzer()

	inputs := []string{
		"short",
		strings.Repeat("managed improved delivered launched optimized ", 200),
		strings.Repeat("a ", 5000),
		"Failed badly. Poor results. Lost accounts. Weak performance. Unable to deliver.",
		strings.Repeat("extraordinarily sesquipedalian incomprehensibilities ", 100),
	}

	for _, input := range inputs {
		report := a.Analyze(input)
		scores := map[string]int{
			"sentiment":   report.Sentiment.Score,
			"readability": report.Readability,
			"complexity":  report.Complexity,
			"actionVerb":  report.ActionVerbScore,
			"technical":   report.TechnicalScore,
			"formality":   report.Metrics.Formality,
		}
		for name, score := range scores {
			if score < 0 || score > 100 {
				t.Errorf("%s score %d out of [0,100] for input %q...", name, score, input[:min(20, len(input))])
			}
		}
	}
}

func TestSentimentLabels(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "positive resume language",
			text: "Achieved record growth. Improved efficiency. Delivered award-winning results. Exceeded targets.",
			want: "positive",
		},
		{
			name: "negative language",
			text: "Failed project. Poor outcomes. Lost the account. Weak delivery.",
			want: "negative",
		},
		{
			name: "neutral description",
			text: "Worked at the office on daily tasks and wrote documents for the department.",
			want: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text).Sentiment.Label
			if got != tt.want {
				t.Errorf("sentiment label = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadabilityPrefersShortSentences(t *testing.T) {
	a := NewAnalyzer()

	short := "Led team. Built tools. Cut costs."
	long := "Responsible for comprehensively coordinating multifaceted organizational initiatives encompassing numerous interdepartmental stakeholders throughout extended collaborative engagements involving substantial deliverables"

	if a.Analyze(short).Readability <= a.Analyze(long).Readability {
		t.Error("short simple sentences should score higher readability than one long dense sentence")
	}
}

func TestActionVerbScore(t *testing.T) {
	a := NewAnalyzer()

	none := a.Analyze("The work was done on various tasks around the office building every day")
	if none.ActionVerbScore != 0 {
		t.Errorf("text without action verbs scored %d, want 0", none.ActionVerbScore)
	}

	dense := a.Analyze("Managed developed launched improved delivered")
	if dense.ActionVerbScore != 100 {
		t.Errorf("all-action-verb text scored %d, want 100 (capped)", dense.ActionVerbScore)
	}
}

func TestTechnicalSkills(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze("Built services in Python and Golang on AWS with PostgreSQL and Docker, monitored with Prometheus")

	want := map[string]bool{"python": true, "golang": true, "aws": true, "postgresql": true, "docker": true, "prometheus": true}
	found := make(map[string]bool)
	for _, s := range report.TechnicalSkills {
		found[s] = true
	}
	for skill := range want {
		if !found[skill] {
			t.Errorf("skill %q not detected", skill)
		}
	}
	if report.TechnicalScore != 5*len(report.TechnicalSkills) {
		t.Errorf("technical score = %d, want %d", report.TechnicalScore, 5*len(report.TechnicalSkills))
	}
}

func TestGrammarIssuesCapped(t *testing.T) {
	a := NewAnalyzer()

	text := strings.Repeat("The report was completed and the work was reviewed. ", 20) +
		"It was very really quite somewhat rather good."
	issues := a.Analyze(text).GrammarIssues

	if len(issues) > 10 {
		t.Errorf("grammar issues = %d, want at most 10", len(issues))
	}
	if len(issues) == 0 {
		t.Error("expected passive voice hits")
	}
}

func TestGrammarDetectsWeakWords(t *testing.T) {
	a := NewAnalyzer()

	issues := a.Analyze("I am very good at this and really quite dedicated.").GrammarIssues

	types := make(map[string]int)
	for _, issue := range issues {
		types[issue.Type]++
	}
	if types["weak_word"] < 3 {
		t.Errorf("weak word issues = %d, want at least 3", types["weak_word"])
	}
}

func TestFormality(t *testing.T) {
	a := NewAnalyzer()

	formal := a.Analyze("Furthermore, demonstrated comprehensive results. Consequently, facilitated outcomes. Moreover, utilized resources.")
	informal := a.Analyze("Did lots of stuff and things with the guys, it was awesome and cool.")

	if formal.Metrics.Formality <= 50 {
		t.Errorf("formal text formality = %d, want above 50", formal.Metrics.Formality)
	}
	if informal.Metrics.Formality >= 50 {
		t.Errorf("informal text formality = %d, want below 50", informal.Metrics.Formality)
	}
}

func TestKeyPhrasesTop20(t *testing.T) {
	a := NewAnalyzer()

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("alpha")
		sb.WriteString(string(rune('a' + i%26)))
		sb.WriteString(" beta")
		sb.WriteString(string(rune('a' + i%26)))
		sb.WriteString(". ")
	}
	sb.WriteString(strings.Repeat("cloud infrastructure migration. ", 5))

	report := a.Analyze(sb.String())
	if len(report.KeyPhrases) > 20 {
		t.Errorf("key phrases = %d, want at most 20", len(report.KeyPhrases))
	}
	if len(report.KeyPhrases) == 0 || report.KeyPhrases[0].Text != "cloud infrastructure migration" {
		t.Errorf("top phrase = %+v, want repeated 'cloud infrastructure migration' first", report.KeyPhrases)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
