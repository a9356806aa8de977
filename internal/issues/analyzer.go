package issues

import (
	"math"
	"sort"
	"strings"

	"resumescore/internal/types"
)

// Input is everything the issue analyzer needs for one run
type Input struct {
	ResumeText        string
	Industry          string
	Keywords          []types.Keyword
	HasJobDescription bool
}

// Report is the aggregated outcome of all analysis passes
type Report struct {
	Issues        []types.Issue
	Strengths     []string
	OverallScore  int
	ActionPlan    types.ActionPlan
	Sections      []types.Section
	SectionScores map[string]int
}

// Analyzer runs the full issue-analysis pass battery
type Analyzer struct{}

// NewAnalyzer creates an issue analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

var severityPenalty = map[types.IssueSeverity]int{
	types.SeverityCritical: 20,
	types.SeverityHigh:     15,
	types.SeverityMedium:   8,
	types.SeverityLow:      3,
}

// Analyze runs every pass and aggregates the results. Passes are
// independent; each contributes zero or more issues.
func (a *Analyzer) Analyze(in Input) Report {
	sections := DetectSections(in.ResumeText)

	var issues []types.Issue
	issues = append(issues, a.checkContactInfo(in)...)
	issues = append(issues, a.checkSummary(in, sections)...)
	issues = append(issues, a.checkExperience(in, sections)...)
	issues = append(issues, a.checkSkills(in, sections)...)
	issues = append(issues, a.checkEducation(in, sections)...)
	issues = append(issues, a.checkFormatting(in)...)
	issues = append(issues, a.checkContentQuality(in)...)
	issues = append(issues, a.checkKeywordOptimization(in)...)
	issues = append(issues, a.checkIndustryRequirements(in)...)
	issues = append(issues, a.checkLengthStructure(in, sections)...)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Priority > issues[j].Priority
	})

	scores := SectionScores(sections)

	return Report{
		Issues:        issues,
		Strengths:     a.strengths(in, sections),
		OverallScore:  OverallScore(issues, scores),
		ActionPlan:    a.actionPlan(issues, in.Industry),
		Sections:      sections,
		SectionScores: scores,
	}
}

// OverallScore combines the issue penalty total with the average
// essential-section score: round((issueScore + avgSectionScore) / 2).
// Pure function of its inputs.
func OverallScore(issues []types.Issue, sectionScores map[string]int) int {
	penalty := 0
	for _, issue := range issues {
		penalty += severityPenalty[issue.Severity]
	}
	if penalty > 100 {
		penalty = 100
	}
	issueScore := 100 - penalty

	sum := 0
	for _, name := range EssentialSections {
		sum += sectionScores[name]
	}
	avgSection := float64(sum) / float64(len(EssentialSections))

	return int(math.Round((float64(issueScore) + avgSection) / 2))
}

func (a *Analyzer) strengths(in Input, sections []types.Section) []string {
	var found []string

	experience := sectionContent(sections, "experience")
	if metricPattern.MatchString(experience) {
		found = append(found, "Achievements are backed by quantified results")
	}

	if bullets := bulletLines(in.ResumeText); len(bullets) > 0 {
		strong := 0
		for _, b := range bullets {
			words := splitBulletWords(b)
			if len(words) > 0 && actionVerbStarts[words[0]] {
				strong++
			}
		}
		if float64(strong)/float64(len(bullets)) > 0.7 {
			found = append(found, "Bullets consistently open with strong action verbs")
		}
		if allSameBulletGlyph(bullets) {
			found = append(found, "Bullet formatting is consistent throughout")
		}
	}

	for _, s := range sections {
		if s.Score >= 85 {
			found = append(found, "The "+s.Name+" section is well developed")
		}
	}

	if in.HasJobDescription {
		total, matched := 0, 0
		for _, kw := range in.Keywords {
			if kw.IsFromJobDescription {
				total++
				if kw.IsMatch {
					matched++
				}
			}
		}
		if total > 0 && 100*float64(matched)/float64(total) > 60 {
			found = append(found, "Strong keyword alignment with the target job description")
		}
	}

	if len(found) == 0 {
		found = append(found, "The resume has a workable foundation to build on")
	}
	return found
}

// actionPlan buckets issue solutions by urgency:
// immediate gets critical issues plus the first 2 high, short-term gets
// the remaining high plus the first 3 medium plus industry items,
// long-term gets the rest. Each tier is capped at 5 entries.
func (a *Analyzer) actionPlan(issues []types.Issue, industryName string) types.ActionPlan {
	var critical, high, medium []string
	var industryRecs []string
	for _, issue := range issues {
		if issue.Solution == "" {
			continue
		}
		if issue.Category == "industry" {
			industryRecs = append(industryRecs, issue.Solution)
			continue
		}
		switch issue.Severity {
		case types.SeverityCritical:
			critical = append(critical, issue.Solution)
		case types.SeverityHigh:
			high = append(high, issue.Solution)
		case types.SeverityMedium:
			medium = append(medium, issue.Solution)
		}
	}

	immediate := append([]string{}, critical...)
	immediate = append(immediate, take(high, 2)...)

	shortTerm := append([]string{}, drop(high, 2)...)
	shortTerm = append(shortTerm, take(medium, 3)...)
	shortTerm = append(shortTerm, take(industryRecs, 1)...)

	longTerm := append([]string{}, drop(medium, 3)...)
	longTerm = append(longTerm, drop(industryRecs, 1)...)
	longTerm = append(longTerm,
		"Keep a master resume and tailor a copy for every application",
		"Refresh metrics and skills quarterly so the resume stays current",
	)

	return types.ActionPlan{
		Immediate: take(immediate, 5),
		ShortTerm: take(shortTerm, 5),
		LongTerm:  take(longTerm, 5),
	}
}

func take(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func drop(items []string, n int) []string {
	if len(items) <= n {
		return nil
	}
	return items[n:]
}

func splitBulletWords(bullet string) []string {
	return strings.Fields(strings.ToLower(strings.TrimLeft(bullet, "-•*▪ \t")))
}

func allSameBulletGlyph(bullets []string) bool {
	glyph := ""
	for _, b := range bullets {
		g := string([]rune(b)[0])
		if glyph == "" {
			glyph = g
		} else if g != glyph {
			return false
		}
	}
	return true
}
