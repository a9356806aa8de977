package issues

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"resumescore/internal/industry"
	"resumescore/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`([a-zA-Z0-9._%+-]+)@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/|linkedin:`)

	numberedLine   = regexp.MustCompile(`\d`)
	metricPattern  = regexp.MustCompile(`\d+%|\$[\d,]+|\d+x\b|\b\d{2,}\b`)
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	pronounPattern = regexp.MustCompile(`(?i)\b(i|me|my|myself)\b`)
	passiveMarker  = regexp.MustCompile(`(?i)\b(was|were|been|being)\s+\w+ed\b`)
	smartQuotes    = regexp.MustCompile(`[“”‘’]`)
	tableDrawing   = regexp.MustCompile(`[│┌┐└┘├┤┬┴┼═║╔╗╚╝]`)
	dateSlash      = regexp.MustCompile(`\b\d{1,2}/\d{4}\b`)
	dateMonthName  = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\b`)
	causalPattern  = regexp.MustCompile(`(?i)\b(by|through|resulting in|leading to|which led)\b`)
)

var actionVerbStarts = map[string]bool{
	"achieved": true, "managed": true, "led": true, "developed": true,
	"created": true, "implemented": true, "designed": true, "launched": true,
	"improved": true, "increased": true, "reduced": true, "delivered": true,
	"built": true, "established": true, "coordinated": true, "directed": true,
	"executed": true, "optimized": true, "streamlined": true, "spearheaded": true,
	"negotiated": true, "initiated": true, "transformed": true, "mentored": true,
	"supervised": true, "automated": true, "architected": true, "drove": true,
	"generated": true, "accelerated": true, "analyzed": true, "organized": true,
}

var unprofessionalEmailMarkers = []string{
	"cutie", "hotstuff", "sexy", "gamer", "420", "69", "xoxo", "babygirl", "dude",
}

var buzzwords = []string{
	"synergy", "go-getter", "think outside the box", "team player",
	"hard worker", "self-starter", "results-driven", "dynamic",
	"guru", "ninja", "rockstar", "detail-oriented",
}

var vaguePhrases = []string{
	"responsible for", "worked on", "helped with", "involved in",
	"participated in", "assisted with", "duties included",
}

var commonMisspellings = map[string]string{
	"recieve":     "receive",
	"seperate":    "separate",
	"occured":     "occurred",
	"definately":  "definitely",
	"managment":   "management",
	"experiance":  "experience",
	"acheived":    "achieved",
	"sucessful":   "successful",
	"responsable": "responsible",
	"profesional": "professional",
}

var misspellingPattern = regexp.MustCompile(`\b(recieve|seperate|occured|definately|managment|experiance|acheived|sucessful|responsable|profesional)\b`)

var outdatedTech = []string{
	"flash", "silverlight", "vb6", "visual basic 6", "frontpage",
	"dreamweaver", "actionscript", "coldfusion", "cobol",
}

var advancedTechMarkers = []string{
	"kubernetes", "terraform", "microservices", "distributed systems",
	"machine learning", "system design", "scalability", "architecture",
}

var leadershipMarkers = []string{
	"led", "mentored", "managed", "coached", "supervised", "coordinated", "cross-functional",
}

var proficiencyMarkers = []string{
	"expert", "advanced", "proficient", "intermediate", "familiar", "years of",
}

var softSkillMarkers = []string{
	"communication", "collaboration", "leadership", "teamwork",
	"problem solving", "problem-solving", "adaptability", "mentoring",
}

// checkContactInfo flags missing or unprofessional contact details
func (a *Analyzer) checkContactInfo(in Input) []types.Issue {
	var found []types.Issue
	text := in.ResumeText

	emailMatch := emailPattern.FindStringSubmatch(text)
	if emailMatch == nil {
		found = append(found, types.Issue{
			ID:          "missing-email",
			Category:    "contact",
			Severity:    types.SeverityCritical,
			Title:       "No email address found",
			Description: "Recruiters cannot reach you without an email address",
			Impact:      "Immediate rejection by most screeners",
			Solution:    "Add a professional email address at the top of the resume",
			Priority:    100,
		})
	} else {
		local := strings.ToLower(emailMatch[1])
		for _, marker := range unprofessionalEmailMarkers {
			if strings.Contains(local, marker) {
				found = append(found, types.Issue{
					ID:          "unprofessional-email",
					Category:    "contact",
					Severity:    types.SeverityMedium,
					Title:       "Email address looks unprofessional",
					Description: fmt.Sprintf("The address %q may not make a good first impression", emailMatch[0]),
					Solution:    "Use a simple firstname.lastname style address",
					Priority:    60,
				})
				break
			}
		}
	}

	if !phonePattern.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "missing-phone",
			Category:    "contact",
			Severity:    types.SeverityHigh,
			Title:       "No phone number found",
			Description: "A phone number is expected in the contact block",
			Solution:    "Add a phone number with area code near your name",
			Priority:    80,
		})
	}

	if !linkedinPattern.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "missing-linkedin",
			Category:    "contact",
			Severity:    types.SeverityMedium,
			Title:       "No LinkedIn profile found",
			Description: "Most recruiters cross-reference LinkedIn profiles",
			Solution:    "Add your LinkedIn profile URL to the contact block",
			Priority:    50,
		})
	}

	return found
}

// checkSummary flags a missing, too-short, or too-long professional summary
func (a *Analyzer) checkSummary(in Input, sections []types.Section) []types.Issue {
	if !hasSection(sections, "summary") {
		return []types.Issue{{
			ID:          "missing-summary",
			Category:    "summary",
			Severity:    types.SeverityHigh,
			Title:       "No professional summary",
			Description: "The resume opens without a summary or objective",
			Solution:    "Add a 2-3 sentence summary tailored to the target role",
			Priority:    75,
		}}
	}

	content := sectionContent(sections, "summary")
	switch {
	case len(content) < 100:
		return []types.Issue{{
			ID:          "summary-too-short",
			Category:    "summary",
			Severity:    types.SeverityMedium,
			Title:       "Summary is too brief",
			Description: fmt.Sprintf("The summary is %d characters; under 100 reads as filler", len(content)),
			Solution:    "Expand the summary to cover role, experience level, and key strengths",
			Priority:    55,
		}}
	case len(content) > 300:
		return []types.Issue{{
			ID:          "summary-too-long",
			Category:    "summary",
			Severity:    types.SeverityLow,
			Title:       "Summary is too long",
			Description: fmt.Sprintf("The summary is %d characters; over 300 loses the reader", len(content)),
			Solution:    "Tighten the summary to 2-3 sentences",
			Priority:    35,
		}}
	}
	return nil
}

// checkExperience runs the experience-section battery
func (a *Analyzer) checkExperience(in Input, sections []types.Section) []types.Issue {
	if !hasSection(sections, "experience") {
		return []types.Issue{{
			ID:          "missing-experience",
			Category:    "experience",
			Severity:    types.SeverityCritical,
			Title:       "No experience section",
			Description: "No work experience section was detected",
			Impact:      "Screeners cannot evaluate your background",
			Solution:    "Add a work experience section with roles, dates, and achievements",
			Priority:    95,
		}}
	}

	var found []types.Issue
	content := sectionContent(sections, "experience")
	bullets := bulletLines(content)

	if !metricPattern.MatchString(content) {
		found = append(found, types.Issue{
			ID:          "no-quantified-metrics",
			Category:    "experience",
			Severity:    types.SeverityHigh,
			Title:       "No quantified achievements",
			Description: "No percentages, dollar amounts, or counts back up your claims",
			Solution:    "Add numbers: team size, revenue impact, latency reduction, user counts",
			Priority:    70,
		})
	} else if len(bullets) > 0 {
		quantified := 0
		for _, b := range bullets {
			if numberedLine.MatchString(b) {
				quantified++
			}
		}
		if ratio := float64(quantified) / float64(len(bullets)); ratio < 0.7 {
			found = append(found, types.Issue{
				ID:          "low-quantified-ratio",
				Category:    "experience",
				Severity:    types.SeverityMedium,
				Title:       "Most achievement lines lack numbers",
				Description: fmt.Sprintf("Only %d of %d bullet lines contain a measurable figure", quantified, len(bullets)),
				Solution:    "Quantify at least 70% of achievement bullets",
				Priority:    58,
			})
		}
	}

	if len(bullets) > 0 {
		strong := 0
		for _, b := range bullets {
			words := strings.Fields(strings.ToLower(strings.TrimLeft(b, "-•* \t")))
			if len(words) > 0 && actionVerbStarts[words[0]] {
				strong++
			}
		}
		if ratio := float64(strong) / float64(len(bullets)); ratio < 0.6 {
			found = append(found, types.Issue{
				ID:          "weak-bullet-verbs",
				Category:    "experience",
				Severity:    types.SeverityMedium,
				Title:       "Bullets don't open with action verbs",
				Description: fmt.Sprintf("Only %d of %d bullets start with a strong action verb", strong, len(bullets)),
				Solution:    "Start each bullet with verbs like Led, Built, Reduced, Delivered",
				Priority:    57,
			})
		}
	}

	if in.Industry == "technology" {
		lower := strings.ToLower(content)
		if !containsAny(lower, leadershipMarkers) {
			found = append(found, types.Issue{
				ID:          "no-leadership-signals",
				Category:    "experience",
				Severity:    types.SeverityLow,
				Title:       "No leadership or collaboration signals",
				Description: "Technology roles expect mentoring or cross-team collaboration evidence",
				Solution:    "Mention mentoring, code review leadership, or cross-functional work",
				Priority:    40,
			})
		}
		if !containsAny(lower, advancedTechMarkers) && !containsAny(lower, []string{"api", "database", "cloud", "service", "pipeline"}) {
			found = append(found, types.Issue{
				ID:          "thin-technology-context",
				Category:    "experience",
				Severity:    types.SeverityMedium,
				Title:       "Experience lacks technology context",
				Description: "Roles are described without the systems and stacks involved",
				Solution:    "Name the technologies behind each achievement",
				Priority:    56,
			})
		}
	}

	if gap := maxYearGap(content); gap > 2 {
		found = append(found, types.Issue{
			ID:          "employment-gap",
			Category:    "experience",
			Severity:    types.SeverityMedium,
			Title:       "Unexplained employment gap",
			Description: fmt.Sprintf("A gap of about %d years appears between listed roles", gap),
			Solution:    "Briefly account for the gap (education, freelancing, caregiving)",
			Priority:    52,
		})
	}

	return found
}

// checkSkills runs the skills-section battery
func (a *Analyzer) checkSkills(in Input, sections []types.Section) []types.Issue {
	if !hasSection(sections, "skills") {
		return []types.Issue{{
			ID:          "missing-skills",
			Category:    "skills",
			Severity:    types.SeverityCritical,
			Title:       "No skills section",
			Description: "No skills section was detected",
			Impact:      "Keyword scanners have nothing to match against",
			Solution:    "Add a skills section listing tools and technologies",
			Priority:    90,
		}}
	}

	var found []types.Issue
	content := sectionContent(sections, "skills")
	lower := strings.ToLower(content)
	fullLower := strings.ToLower(in.ResumeText)

	if !strings.Contains(content, ":") && strings.Count(content, "\n") < 2 {
		found = append(found, types.Issue{
			ID:          "uncategorized-skills",
			Category:    "skills",
			Severity:    types.SeverityLow,
			Title:       "Skills are not grouped",
			Description: "A flat skill list is harder to scan than grouped categories",
			Solution:    "Group skills under labels like Languages, Cloud, and Tools",
			Priority:    38,
		})
	}

	if vocab := industryVocabulary(in.Industry); len(vocab) > 0 {
		covered := 0
		for _, term := range vocab {
			if strings.Contains(fullLower, term) {
				covered++
			}
		}
		if ratio := float64(covered) / float64(len(vocab)); ratio < 0.4 {
			found = append(found, types.Issue{
				ID:          "low-industry-coverage",
				Category:    "skills",
				Severity:    types.SeverityHigh,
				Title:       "Skills don't cover expected industry vocabulary",
				Description: fmt.Sprintf("Only %d of %d expected %s terms appear anywhere in the resume", covered, len(vocab), in.Industry),
				Solution:    "Add the industry-standard skills you actually have",
				Priority:    68,
			})
		}
	}

	if in.Industry == "technology" {
		if !containsAny(fullLower, advancedTechMarkers) {
			found = append(found, types.Issue{
				ID:          "no-advanced-skills",
				Category:    "skills",
				Severity:    types.SeverityMedium,
				Title:       "No advanced technical skills listed",
				Description: "Senior technology screeners look for systems-level skills",
				Solution:    "List architecture, scalability, or infrastructure skills if applicable",
				Priority:    54,
			})
		}
		if !strings.Contains(fullLower, "certif") {
			found = append(found, types.Issue{
				ID:          "no-certifications",
				Category:    "skills",
				Severity:    types.SeverityLow,
				Title:       "No certifications mentioned",
				Description: "Certifications strengthen technical resumes",
				Solution:    "Add relevant certifications, or in-progress ones with expected dates",
				Priority:    33,
			})
		}
	}

	if !containsAny(lower, proficiencyMarkers) {
		found = append(found, types.Issue{
			ID:          "no-proficiency-levels",
			Category:    "skills",
			Severity:    types.SeverityLow,
			Title:       "No proficiency levels given",
			Description: "Skill lists without levels read as unverified claims",
			Solution:    "Indicate depth: years used, or expert/proficient/familiar tiers",
			Priority:    36,
		})
	}

	if !containsAny(fullLower, softSkillMarkers) {
		found = append(found, types.Issue{
			ID:          "thin-soft-skills",
			Category:    "skills",
			Severity:    types.SeverityLow,
			Title:       "No soft skills represented",
			Description: "Hiring managers screen for collaboration and communication evidence",
			Solution:    "Weave soft skills into experience bullets rather than bare lists",
			Priority:    34,
		})
	}

	var outdated []string
	for _, tech := range outdatedTech {
		if strings.Contains(fullLower, tech) {
			outdated = append(outdated, tech)
		}
	}
	if len(outdated) > 0 {
		found = append(found, types.Issue{
			ID:          "outdated-technology",
			Category:    "skills",
			Severity:    types.SeverityMedium,
			Title:       "Outdated technologies listed",
			Description: "Obsolete tools date the resume",
			Examples:    outdated,
			Solution:    "Drop obsolete technologies unless the job posting asks for them",
			Priority:    53,
		})
	}

	return found
}

// checkEducation flags a missing education section
func (a *Analyzer) checkEducation(in Input, sections []types.Section) []types.Issue {
	if hasSection(sections, "education") {
		return nil
	}
	return []types.Issue{{
		ID:          "missing-education",
		Category:    "education",
		Severity:    types.SeverityHigh,
		Title:       "No education section",
		Description: "No education or qualifications section was detected",
		Solution:    "Add degrees, institutions, and graduation years, or relevant coursework",
		Priority:    72,
	}}
}

// checkFormatting runs the formatting/ATS-hygiene battery
func (a *Analyzer) checkFormatting(in Input) []types.Issue {
	var found []types.Issue
	text := in.ResumeText
	lines := strings.Split(text, "\n")

	glyphs := map[string]bool{}
	for _, g := range []string{"•", "-", "*", "▪"} {
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), g) {
				glyphs[g] = true
				break
			}
		}
	}
	if len(glyphs) > 1 {
		found = append(found, types.Issue{
			ID:          "inconsistent-bullets",
			Category:    "formatting",
			Severity:    types.SeverityMedium,
			Title:       "Mixed bullet characters",
			Description: fmt.Sprintf("%d different bullet glyphs are used", len(glyphs)),
			Solution:    "Pick one bullet character and use it throughout",
			Priority:    48,
		})
	}

	if smartQuotes.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "smart-quotes",
			Category:    "formatting",
			Severity:    types.SeverityLow,
			Title:       "Smart quotes detected",
			Description: "Curly quotes often render as garbage after parsing",
			Solution:    "Replace curly quotes with straight quotes",
			Priority:    30,
		})
	}

	if tableDrawing.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "table-drawing-characters",
			Category:    "formatting",
			Severity:    types.SeverityHigh,
			Title:       "Table-drawing characters detected",
			Description: "Box-drawing characters break text extraction",
			Solution:    "Remove drawn tables and borders",
			Priority:    66,
		})
	}

	if casings := headingCasings(lines); len(casings) > 1 {
		found = append(found, types.Issue{
			ID:          "inconsistent-heading-case",
			Category:    "formatting",
			Severity:    types.SeverityLow,
			Title:       "Inconsistent heading capitalization",
			Description: "Section headings mix capitalization styles",
			Solution:    "Use one casing style (Title Case or ALL CAPS) for every heading",
			Priority:    28,
		})
	}

	if len(lines) > 0 {
		blank := 0
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				blank++
			}
		}
		if float64(blank)/float64(len(lines)) > 0.3 {
			found = append(found, types.Issue{
				ID:          "excess-blank-lines",
				Category:    "formatting",
				Severity:    types.SeverityLow,
				Title:       "Too much empty space",
				Description: "Over 30% of lines are blank",
				Solution:    "Tighten spacing so content fits fewer pages",
				Priority:    26,
			})
		}
	}

	head := strings.Join(lines[:min(5, len(lines))], "\n")
	if !emailPattern.MatchString(head) && !phonePattern.MatchString(head) {
		found = append(found, types.Issue{
			ID:          "contact-not-prominent",
			Category:    "formatting",
			Severity:    types.SeverityMedium,
			Title:       "Contact details are not at the top",
			Description: "Contact information should appear in the first five lines",
			Solution:    "Move your name and contact block to the very top",
			Priority:    47,
		})
	}

	if dateSlash.MatchString(text) && dateMonthName.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "inconsistent-dates",
			Category:    "formatting",
			Severity:    types.SeverityLow,
			Title:       "Mixed date formats",
			Description: "Both 03/2021 and 'Mar 2021' style dates appear",
			Solution:    "Standardize on one date format throughout",
			Priority:    24,
		})
	}

	found = append(found, types.Issue{
		ID:          "file-format-advisory",
		Category:    "formatting",
		Severity:    types.SeverityLow,
		Title:       "Verify the submitted file format",
		Description: "Exports from design tools often lose text-layer fidelity",
		Solution:    "Submit a text-based PDF or DOCX, not a scanned or image-based file",
		Priority:    10,
	})

	return found
}

// checkContentQuality runs the language-quality battery
func (a *Analyzer) checkContentQuality(in Input) []types.Issue {
	var found []types.Issue
	text := in.ResumeText
	lower := strings.ToLower(text)

	if n := len(pronounPattern.FindAllString(text, -1)); n > 3 {
		found = append(found, types.Issue{
			ID:          "excess-pronouns",
			Category:    "content",
			Severity:    types.SeverityMedium,
			Title:       "Too many personal pronouns",
			Description: fmt.Sprintf("%d uses of I/me/my; resumes use implied first person", n),
			Solution:    "Drop pronouns: 'Led migration' instead of 'I led the migration'",
			Priority:    51,
		})
	}

	if n := len(passiveMarker.FindAllString(text, -1)); n > 5 {
		found = append(found, types.Issue{
			ID:          "excess-passive-voice",
			Category:    "content",
			Severity:    types.SeverityMedium,
			Title:       "Heavy passive voice",
			Description: fmt.Sprintf("%d passive constructions weaken your ownership of results", n),
			Solution:    "Rewrite passively phrased bullets with active verbs",
			Priority:    50,
		})
	}

	var usedBuzzwords []string
	for _, b := range buzzwords {
		if strings.Contains(lower, b) {
			usedBuzzwords = append(usedBuzzwords, b)
		}
	}
	if len(usedBuzzwords) > 3 {
		found = append(found, types.Issue{
			ID:          "buzzword-overuse",
			Category:    "content",
			Severity:    types.SeverityMedium,
			Title:       "Buzzword overload",
			Description: "Clichés crowd out concrete evidence",
			Examples:    usedBuzzwords,
			Solution:    "Replace each buzzword with a specific, measurable example",
			Priority:    49,
		})
	}

	var misspelled []string
	for _, wrong := range misspellingPattern.FindAllString(lower, -1) {
		misspelled = append(misspelled, wrong)
	}
	misspelled = dedupe(misspelled)
	if len(misspelled) > 0 {
		sort.Strings(misspelled)
		var examples []string
		for _, wrong := range misspelled {
			examples = append(examples, fmt.Sprintf("%s → %s", wrong, commonMisspellings[wrong]))
		}
		found = append(found, types.Issue{
			ID:          "misspellings",
			Category:    "content",
			Severity:    types.SeverityHigh,
			Title:       "Spelling errors found",
			Description: "Misspellings are among the fastest routes to rejection",
			Examples:    examples,
			Solution:    "Fix the listed words and run a full spell check",
			Priority:    69,
		})
	}

	if verb, count := mostRepeatedVerb(text); count > 4 {
		found = append(found, types.Issue{
			ID:          "repetitive-vocabulary",
			Category:    "content",
			Severity:    types.SeverityLow,
			Title:       "Repetitive verb choice",
			Description: fmt.Sprintf("%q appears %d times", verb, count),
			Solution:    "Vary your verbs so each bullet reads fresh",
			Priority:    32,
		})
	}

	vagueCount := 0
	var usedVague []string
	for _, phrase := range vaguePhrases {
		if c := strings.Count(lower, phrase); c > 0 {
			vagueCount += c
			usedVague = append(usedVague, phrase)
		}
	}
	if vagueCount > 2 {
		found = append(found, types.Issue{
			ID:          "vague-phrases",
			Category:    "content",
			Severity:    types.SeverityMedium,
			Title:       "Vague responsibility phrasing",
			Description: "Phrases like 'responsible for' hide what you actually did",
			Examples:    usedVague,
			Solution:    "State the action and its outcome instead of the responsibility",
			Priority:    46,
		})
	}

	if metricPattern.MatchString(text) && !causalPattern.MatchString(text) {
		found = append(found, types.Issue{
			ID:          "metrics-without-context",
			Category:    "content",
			Severity:    types.SeverityLow,
			Title:       "Numbers lack causal context",
			Description: "Figures appear without explaining how you achieved them",
			Solution:    "Connect metrics to actions: 'cut latency 40% by caching reads'",
			Priority:    31,
		})
	}

	return found
}

// checkKeywordOptimization only runs when a job description was supplied
func (a *Analyzer) checkKeywordOptimization(in Input) []types.Issue {
	if !in.HasJobDescription {
		return nil
	}

	var found []types.Issue

	var unmatched []types.Keyword
	total, matched := 0, 0
	for _, kw := range in.Keywords {
		if !kw.IsFromJobDescription {
			continue
		}
		total++
		if kw.IsMatch {
			matched++
		} else {
			unmatched = append(unmatched, kw)
		}
	}

	if len(unmatched) > 0 {
		sort.Slice(unmatched, func(i, j int) bool {
			if unmatched[i].Importance != unmatched[j].Importance {
				return unmatched[i].Importance > unmatched[j].Importance
			}
			return unmatched[i].NormalizedText < unmatched[j].NormalizedText
		})
		if len(unmatched) > 10 {
			unmatched = unmatched[:10]
		}
		var examples []string
		for _, kw := range unmatched {
			examples = append(examples, kw.NormalizedText)
		}
		found = append(found, types.Issue{
			ID:          "missing-job-keywords",
			Category:    "keywords",
			Severity:    types.SeverityHigh,
			Title:       "Important job keywords are missing",
			Description: fmt.Sprintf("%d job-description terms never appear in the resume", len(examples)),
			Examples:    examples,
			Solution:    "Work the missing terms you genuinely have into skills and experience",
			Priority:    85,
		})
	}

	if total > 0 {
		if rate := 100 * float64(matched) / float64(total); rate < 40 {
			found = append(found, types.Issue{
				ID:          "low-match-rate",
				Category:    "keywords",
				Severity:    types.SeverityHigh,
				Title:       "Low keyword match rate",
				Description: fmt.Sprintf("Only %.0f%% of job-description keywords are matched", rate),
				Solution:    "Tailor the resume to this posting before submitting",
				Priority:    83,
			})
		}
	}

	return found
}

// checkIndustryRequirements applies the per-industry required-element checklist
func (a *Analyzer) checkIndustryRequirements(in Input) []types.Issue {
	var found []types.Issue
	lower := strings.ToLower(in.ResumeText)

	for _, req := range industry.RequiredElements(in.Industry) {
		if containsAny(lower, req.Markers) {
			continue
		}
		found = append(found, types.Issue{
			ID:          "industry-" + strings.ReplaceAll(req.Name, " ", "-"),
			Category:    "industry",
			Severity:    types.SeverityMedium,
			Title:       fmt.Sprintf("Missing %s expected for %s", req.Name, in.Industry),
			Description: req.Description,
			Solution:    req.Solution,
			Priority:    44,
		})
	}

	return found
}

// checkLengthStructure flags word-count extremes and missing essentials
func (a *Analyzer) checkLengthStructure(in Input, sections []types.Section) []types.Issue {
	var found []types.Issue

	words := len(strings.Fields(in.ResumeText))
	switch {
	case words < 200:
		found = append(found, types.Issue{
			ID:          "resume-too-short",
			Category:    "structure",
			Severity:    types.SeverityHigh,
			Title:       "Resume is too short",
			Description: fmt.Sprintf("%d words; under 200 reads as an incomplete draft", words),
			Solution:    "Expand experience bullets with context, scope, and outcomes",
			Priority:    76,
		})
	case words > 1000:
		found = append(found, types.Issue{
			ID:          "resume-too-long",
			Category:    "structure",
			Severity:    types.SeverityMedium,
			Title:       "Resume is too long",
			Description: fmt.Sprintf("%d words; over 1000 dilutes your strongest material", words),
			Solution:    "Cut older roles to one line each and trim to the strongest bullets",
			Priority:    45,
		})
	}

	var missing []string
	for _, name := range EssentialSections {
		if !hasSection(sections, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		found = append(found, types.Issue{
			ID:          "missing-essential-sections",
			Category:    "structure",
			Severity:    types.SeverityHigh,
			Title:       "Missing essential sections",
			Description: fmt.Sprintf("Expected sections absent: %s", strings.Join(missing, ", ")),
			Examples:    missing,
			Solution:    "Add the standard summary, experience, education, and skills sections",
			Priority:    77,
		})
	}

	return found
}

func industryVocabulary(name string) []string {
	switch name {
	case "technology":
		return []string{"python", "java", "javascript", "sql", "aws", "docker", "kubernetes", "api", "git", "agile"}
	case "finance":
		return []string{"excel", "modeling", "audit", "compliance", "forecasting", "gaap", "valuation", "reporting"}
	case "healthcare":
		return []string{"patient", "clinical", "ehr", "hipaa", "care", "treatment", "charting", "triage"}
	case "marketing":
		return []string{"seo", "analytics", "campaign", "content", "social media", "email", "conversion", "brand"}
	case "sales":
		return []string{"crm", "pipeline", "quota", "prospecting", "negotiation", "closing", "salesforce", "revenue"}
	default:
		return nil
	}
}

func bulletLines(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, g := range []string{"-", "•", "*", "▪"} {
			if strings.HasPrefix(trimmed, g) {
				bullets = append(bullets, trimmed)
				break
			}
		}
	}
	return bullets
}

func headingCasings(lines []string) map[string]bool {
	casings := map[string]bool{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if _, ok := matchHeading(trimmed); !ok {
			continue
		}
		switch {
		case trimmed == strings.ToUpper(trimmed):
			casings["upper"] = true
		case isTitleCase(trimmed):
			casings["title"] = true
		default:
			casings["mixed"] = true
		}
	}
	return casings
}

func isTitleCase(s string) bool {
	for _, word := range strings.Fields(s) {
		r := rune(word[0])
		if r >= 'a' && r <= 'z' {
			return false
		}
		if word != strings.ToUpper(word[:1])+strings.ToLower(word[1:]) {
			return false
		}
	}
	return true
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// mostRepeatedVerb returns the action verb that occurs most often in
// the text, along with its occurrence count.
func mostRepeatedVerb(text string) (string, int) {
	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if actionVerbStarts[word] {
			counts[word]++
		}
	}
	verb, max := "", 0
	for w, c := range counts {
		if c > max || (c == max && w < verb) {
			verb, max = w, c
		}
	}
	return verb, max
}

// maxYearGap returns the largest gap in years between consecutive
// mentioned years, a rough proxy for employment gaps.
func maxYearGap(text string) int {
	matches := yearPattern.FindAllString(text, -1)
	if len(matches) < 2 {
		return 0
	}
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)

	gap := 0
	for i := 1; i < len(years); i++ {
		if d := years[i] - years[i-1]; d > gap {
			gap = d
		}
	}
	return gap
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
