package keywords

import (
	"testing"

	"resumescore/internal/types"
)

func TestNormalizeIdempotent(t *testing.T) {
	p := NewProcessor(3)

	inputs := []string{
		"React.js, Node.js & AWS!!",
		"  Multiple   spaces\tand\ttabs  ",
		"Mixed-Case Hyphen-ated Words",
		"",
		"already normalized text",
		"©weird→unicode✓chars",
	}

	for _, input := range inputs {
		once := p.Normalize(input)
		twice := p.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize(t *testing.T) {
	p := NewProcessor(3)

	tests := []struct {
		input string
		want  string
	}{
		{"React.js, Node!", "reactjs node"},
		{"  HELLO   World  ", "hello world"},
		{"well-structured", "well-structured"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := p.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractFilters(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Extract("the and for 123 456 go python kubernetes", types.SourceResume)

	seen := make(map[string]bool)
	for _, kw := range keywords {
		seen[kw.NormalizedText] = true
	}

	for _, rejected := range []string{"the", "and", "for", "123", "456", "go"} {
		if seen[rejected] {
			t.Errorf("token %q should have been filtered", rejected)
		}
	}
	for _, kept := range []string{"python", "kubernetes"} {
		if !seen[kept] {
			t.Errorf("token %q should have been kept", kept)
		}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Extract("Python developer. python scripting. PYTHON tooling.", types.SourceResume)

	count := 0
	for _, kw := range keywords {
		if kw.NormalizedText == "python" {
			count++
			if kw.Count != 3 {
				t.Errorf("python count = %d, want 3", kw.Count)
			}
		}
	}
	if count != 1 {
		t.Errorf("got %d entries for python, want exactly 1", count)
	}
}

func TestExtractPhrasesRequireRepetition(t *testing.T) {
	p := NewProcessor(3)

	text := "machine learning models. machine learning pipelines. single phrase here."
	keywords := p.Extract(text, types.SourceResume)

	var foundRepeated, foundSingle bool
	for _, kw := range keywords {
		if kw.NormalizedText == "machine learning" {
			foundRepeated = true
		}
		if kw.NormalizedText == "single phrase" {
			foundSingle = true
		}
	}
	if !foundRepeated {
		t.Error("repeated phrase 'machine learning' should be extracted")
	}
	if foundSingle {
		t.Error("once-only phrase should be dropped")
	}
}

func TestCategorize(t *testing.T) {
	p := NewProcessor(3)

	tests := []struct {
		term string
		want types.KeywordCategory
	}{
		{"python", types.CategoryTechnical},
		{"kubernetes", types.CategoryTechnical},
		{"leadership", types.CategorySoftSkill},
		{"cpa", types.CategoryCertification},
		{"gardening", types.CategoryGeneral},
	}

	for _, tt := range tests {
		if got := p.Categorize(tt.term, ""); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestCategorizeContextWindow(t *testing.T) {
	p := NewProcessor(3)

	tests := []struct {
		name   string
		term   string
		source string
		want   types.KeywordCategory
	}{
		{"SkillContext", "quarkus", "skills include quarkus and spring", types.CategoryTechnical},
		{"CertificationContext", "scrum", "certified scrum practitioner", types.CategoryCertification},
		{"EducationContext", "economics", "bachelor degree in economics", types.CategoryGeneral},
		{"ExperienceContext", "quarkus", "six years of experience building quarkus services", types.CategoryTechnical},
		{"NoContext", "chess", "enjoys chess on weekends", types.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Categorize(tt.term, tt.source); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %q, want %q", tt.term, tt.source, got, tt.want)
			}
		})
	}
}

func TestImportance(t *testing.T) {
	p := NewProcessor(3)

	tests := []struct {
		term  string
		count int
		want  int
	}{
		{"api", 1, 1},
		{"api", 3, 2},
		{"api", 6, 3},
		{"javascript", 1, 2},  // length > 8
		{"javascript", 6, 4},  // count > 5 and length > 8
		{"postgresql", 20, 4}, // capped contributions
	}

	for _, tt := range tests {
		if got := p.importance(tt.term, tt.count); got != tt.want {
			t.Errorf("importance(%q, %d) = %d, want %d", tt.term, tt.count, got, tt.want)
		}
	}
}

func TestImportanceOverrideOnlyRaises(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Match("python once", "", map[string]int{"python": 5, "once": 0})

	for _, kw := range keywords {
		switch kw.NormalizedText {
		case "python":
			if kw.Importance != 5 {
				t.Errorf("python importance = %d, want override 5", kw.Importance)
			}
		case "once":
			if kw.Importance < 1 {
				t.Errorf("once importance lowered to %d", kw.Importance)
			}
		}
	}
}

func TestMatchAcrossDocuments(t *testing.T) {
	p := NewProcessor(3)

	resume := "Experienced React developer with Node and AWS"
	jd := "React Node AWS"

	keywords := p.Match(resume, jd, nil)

	byName := make(map[string]types.Keyword)
	for _, kw := range keywords {
		byName[kw.NormalizedText] = kw
	}

	for _, term := range []string{"react", "node", "aws"} {
		kw, ok := byName[term]
		if !ok {
			t.Fatalf("term %q missing from output", term)
		}
		if !kw.IsMatch {
			t.Errorf("term %q should be a match", term)
		}
		if !kw.IsFromJobDescription {
			t.Errorf("term %q should be flagged as from the job description", term)
		}
		if kw.Source != types.SourceResume {
			t.Errorf("matched term %q should carry the resume record", term)
		}
	}

	if rate := MatchRate(keywords); rate != 100 {
		t.Errorf("match rate = %f, want 100", rate)
	}
}

func TestMatchCaseAndPunctuationInsensitive(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Match("Skilled in KUBERNETES.", "kubernetes, required", nil)

	for _, kw := range keywords {
		if kw.NormalizedText == "kubernetes" && !kw.IsMatch {
			t.Error("kubernetes should match despite case and punctuation differences")
		}
	}
}

func TestMatchEmitsMissingJobTerms(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Match("Python developer", "Python Terraform", nil)

	var missing *types.Keyword
	for i := range keywords {
		if keywords[i].NormalizedText == "terraform" {
			missing = &keywords[i]
		}
	}
	if missing == nil {
		t.Fatal("unmatched job-description term terraform should still be emitted")
	}
	if missing.Count != 0 || missing.IsMatch || !missing.IsFromJobDescription {
		t.Errorf("missing term fields = count %d, isMatch %v, isFromJD %v; want 0, false, true",
			missing.Count, missing.IsMatch, missing.IsFromJobDescription)
	}
	if missing.Source != types.SourceJobDescription {
		t.Errorf("missing term source = %q, want job_description", missing.Source)
	}
}

func TestMatchRateNoJobTerms(t *testing.T) {
	p := NewProcessor(3)

	keywords := p.Extract("Python developer", types.SourceResume)
	if rate := MatchRate(keywords); rate != -1 {
		t.Errorf("match rate without job terms = %f, want -1", rate)
	}
}
