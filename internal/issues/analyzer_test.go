package issues

import (
	"strings"
	"testing"

	"resumescore/internal/types"
)

const fullResume = `Jane Smith
jane.smith@example.com | 555-123-4567 | linkedin.com/in/janesmith

Summary
Backend engineer with eight years building payment systems, focused on reliability and developer experience across large distributed platforms.

Experience
Senior Engineer, Acme Corp, 2019
- Led migration of 40 services to Kubernetes, cutting deploy time 60% by automating rollouts
- Reduced API latency 35% through caching reads
- Mentored 6 engineers through architecture reviews

Education
BS Computer Science, State University, 2015

Skills
Languages: Go, Python, SQL
Cloud: AWS, Docker, Kubernetes, Terraform
Expert in distributed systems architecture and scalability
`

func TestContactIssuesWhenAllMissing(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: "Summary\nA generalist.\n\nExperience\n- Did things\n"})

	var contact []types.Issue
	for _, issue := range report.Issues {
		if issue.Category == "contact" {
			contact = append(contact, issue)
		}
	}

	if len(contact) != 3 {
		t.Fatalf("contact issues = %d, want exactly 3: %+v", len(contact), contact)
	}

	wantPriorities := map[string]int{
		"missing-email":    100,
		"missing-phone":    80,
		"missing-linkedin": 50,
	}
	for _, issue := range contact {
		want, ok := wantPriorities[issue.ID]
		if !ok {
			t.Errorf("unexpected contact issue %q", issue.ID)
			continue
		}
		if issue.Priority != want {
			t.Errorf("issue %q priority = %d, want %d", issue.ID, issue.Priority, want)
		}
	}
}

func TestNoContactIssuesWhenPresent(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: fullResume})

	for _, issue := range report.Issues {
		if issue.Category == "contact" {
			t.Errorf("unexpected contact issue %q for complete contact block", issue.ID)
		}
	}
}

func TestUnprofessionalEmail(t *testing.T) {
	a := NewAnalyzer()

	text := strings.Replace(fullResume, "jane.smith@example.com", "gamer420@example.com", 1)
	report := a.Analyze(Input{ResumeText: text})

	found := false
	for _, issue := range report.Issues {
		if issue.ID == "unprofessional-email" {
			found = true
		}
	}
	if !found {
		t.Error("expected an unprofessional-email issue")
	}
}

func TestSummaryLengthBounds(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name    string
		summary string
		wantID  string
	}{
		{"too short", "Engineer.", "summary-too-short"},
		{"too long", strings.Repeat("A very long summary sentence about many things. ", 10), "summary-too-long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Summary\n" + tt.summary + "\n\nExperience\n- work\n"
			report := a.Analyze(Input{ResumeText: text})

			found := false
			for _, issue := range report.Issues {
				if issue.ID == tt.wantID {
					found = true
				}
			}
			if !found {
				t.Errorf("expected issue %q", tt.wantID)
			}
		})
	}
}

func TestMissingSectionsAreCriticalOrHigh(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: "just a paragraph of text with no structure at all"})

	wantSeverity := map[string]types.IssueSeverity{
		"missing-experience": types.SeverityCritical,
		"missing-skills":     types.SeverityCritical,
		"missing-summary":    types.SeverityHigh,
		"missing-education":  types.SeverityHigh,
	}
	got := make(map[string]types.IssueSeverity)
	for _, issue := range report.Issues {
		got[issue.ID] = issue.Severity
	}
	for id, want := range wantSeverity {
		if got[id] != want {
			t.Errorf("issue %q severity = %q, want %q", id, got[id], want)
		}
	}
}

func TestExperienceQuantification(t *testing.T) {
	a := NewAnalyzer()

	text := `Experience
- Worked on backend services
- Helped the team with testing
- Maintained documentation
`
	report := a.Analyze(Input{ResumeText: text})

	found := false
	for _, issue := range report.Issues {
		if issue.ID == "no-quantified-metrics" {
			found = true
		}
	}
	if !found {
		t.Error("expected no-quantified-metrics for unquantified experience")
	}
}

func TestTechnologyIndustryPasses(t *testing.T) {
	a := NewAnalyzer()

	text := `Experience
- Responsible for some work at a company in 2020

Skills
typing, filing
`
	report := a.Analyze(Input{ResumeText: text, Industry: "technology"})

	wantIDs := []string{"no-leadership-signals", "thin-technology-context", "low-industry-coverage", "no-advanced-skills", "industry-code-portfolio"}
	got := make(map[string]bool)
	for _, issue := range report.Issues {
		got[issue.ID] = true
	}
	for _, id := range wantIDs {
		if !got[id] {
			t.Errorf("expected issue %q for a thin technology resume", id)
		}
	}
}

func TestContentQualityPasses(t *testing.T) {
	a := NewAnalyzer()

	text := `I think my work is great and I always did my best, and I managed my team.
The project was completed and the work was reviewed and the code was shipped
and the site was tested and the docs were updated and the bug was fixed.
I am a team player, a hard worker, a self-starter and results-driven go-getter.
I was responsible for stuff, worked on things, helped with tasks.
I have managment experiance and definately deliver.`
	report := a.Analyze(Input{ResumeText: text})

	wantIDs := []string{"excess-pronouns", "excess-passive-voice", "buzzword-overuse", "misspellings", "vague-phrases"}
	got := make(map[string]bool)
	for _, issue := range report.Issues {
		got[issue.ID] = true
	}
	for _, id := range wantIDs {
		if !got[id] {
			t.Errorf("expected issue %q", id)
		}
	}
}

func TestKeywordOptimizationOnlyWithJobDescription(t *testing.T) {
	a := NewAnalyzer()

	keywords := []types.Keyword{
		{NormalizedText: "terraform", IsFromJobDescription: true, IsMatch: false, Importance: 4},
		{NormalizedText: "python", IsFromJobDescription: true, IsMatch: false, Importance: 3},
		{NormalizedText: "golang", IsFromJobDescription: true, IsMatch: true, Importance: 3},
	}

	without := a.Analyze(Input{ResumeText: fullResume, Keywords: keywords, HasJobDescription: false})
	for _, issue := range without.Issues {
		if issue.Category == "keywords" {
			t.Errorf("keyword issue %q emitted without a job description", issue.ID)
		}
	}

	with := a.Analyze(Input{ResumeText: fullResume, Keywords: keywords, HasJobDescription: true})
	got := make(map[string]bool)
	for _, issue := range with.Issues {
		got[issue.ID] = true
	}
	if !got["missing-job-keywords"] {
		t.Error("expected missing-job-keywords issue")
	}
	if !got["low-match-rate"] {
		t.Error("expected low-match-rate issue at 33% match")
	}
}

func TestIssuesSortedByPriority(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: "sparse text"})

	for i := 1; i < len(report.Issues); i++ {
		if report.Issues[i].Priority > report.Issues[i-1].Priority {
			t.Fatalf("issues not sorted by priority: %d before %d",
				report.Issues[i-1].Priority, report.Issues[i].Priority)
		}
	}
}

func TestOverallScoreDeterministic(t *testing.T) {
	issues := []types.Issue{
		{Severity: types.SeverityCritical},
		{Severity: types.SeverityHigh},
		{Severity: types.SeverityMedium},
		{Severity: types.SeverityLow},
	}
	scores := map[string]int{"summary": 80, "experience": 90, "education": 60, "skills": 70}

	first := OverallScore(issues, scores)
	for i := 0; i < 10; i++ {
		if got := OverallScore(issues, scores); got != first {
			t.Fatalf("OverallScore not deterministic: %d vs %d", got, first)
		}
	}

	// penalty 20+15+8+3 = 46 -> issueScore 54; avg section = 75; round(129/2) = 65
	if first != 65 {
		t.Errorf("OverallScore = %d, want 65", first)
	}
}

func TestOverallScorePenaltyFloor(t *testing.T) {
	var issues []types.Issue
	for i := 0; i < 20; i++ {
		issues = append(issues, types.Issue{Severity: types.SeverityCritical})
	}
	scores := map[string]int{"summary": 0, "experience": 0, "education": 0, "skills": 0}

	if got := OverallScore(issues, scores); got != 0 {
		t.Errorf("OverallScore with maxed penalties = %d, want 0", got)
	}
}

func TestActionPlanCaps(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: "bad", Industry: "technology"})

	plan := report.ActionPlan
	for tier, items := range map[string][]string{
		"immediate": plan.Immediate, "shortTerm": plan.ShortTerm, "longTerm": plan.LongTerm,
	} {
		if len(items) > 5 {
			t.Errorf("%s tier has %d items, want at most 5", tier, len(items))
		}
	}
	if len(plan.Immediate) == 0 {
		t.Error("a broken resume should produce immediate actions")
	}
}

func TestStrengthsDefault(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: "nothing notable"})
	if len(report.Strengths) == 0 {
		t.Error("strengths must never be empty")
	}
}

func TestStrengthsForStrongResume(t *testing.T) {
	a := NewAnalyzer()

	report := a.Analyze(Input{ResumeText: fullResume})

	foundQuantified := false
	for _, s := range report.Strengths {
		if strings.Contains(s, "quantified") {
			foundQuantified = true
		}
	}
	if !foundQuantified {
		t.Errorf("expected a quantified-results strength, got %v", report.Strengths)
	}
}

func TestDetectSections(t *testing.T) {
	sections := DetectSections(fullResume)

	want := map[string]bool{"summary": true, "experience": true, "education": true, "skills": true}
	for _, s := range sections {
		delete(want, s.Name)
		if s.Score <= 0 || s.Score > 100 {
			t.Errorf("section %q score %d out of (0,100]", s.Name, s.Score)
		}
	}
	for name := range want {
		t.Errorf("section %q not detected", name)
	}
}

func TestSectionScoresZeroWhenMissing(t *testing.T) {
	scores := SectionScores(DetectSections("Summary\nsome text\n"))

	if scores["experience"] != 0 || scores["skills"] != 0 || scores["education"] != 0 {
		t.Errorf("missing sections should score 0: %v", scores)
	}
	if scores["summary"] == 0 {
		t.Error("present summary should score above 0")
	}
}
