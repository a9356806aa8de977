package issues

import (
	"regexp"
	"strings"

	"resumescore/internal/types"
)

// EssentialSections are the four sections every resume is expected to have
var EssentialSections = []string{"summary", "experience", "education", "skills"}

var sectionHeadings = map[string][]string{
	"summary":        {"summary", "professional summary", "objective", "profile", "about me"},
	"experience":     {"experience", "work experience", "professional experience", "employment", "work history", "career history"},
	"education":      {"education", "academic background", "qualifications", "academics"},
	"skills":         {"skills", "technical skills", "core competencies", "competencies", "expertise"},
	"projects":       {"projects", "personal projects", "portfolio", "selected projects"},
	"certifications": {"certifications", "certificates", "licenses", "licenses and certifications"},
}

// Order sections appear in output regardless of resume order
var sectionOrder = []string{"summary", "experience", "education", "skills", "projects", "certifications"}

var headingLinePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z &/]{1,40}:?$`)

// DetectSections splits resume text into named sections with quality scores.
// A line is treated as a heading when it is short, free of sentence
// punctuation, and matches a known heading vocabulary.
func DetectSections(text string) []types.Section {
	lines := strings.Split(text, "\n")

	content := make(map[string][]string)
	current := ""
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if name, ok := matchHeading(trimmed); ok {
			current = name
			continue
		}
		if current != "" {
			content[current] = append(content[current], line)
		}
	}

	var sections []types.Section
	for _, name := range sectionOrder {
		lines, ok := content[name]
		if !ok {
			continue
		}
		body := strings.TrimSpace(strings.Join(lines, "\n"))
		sections = append(sections, types.Section{
			Name:    name,
			Content: body,
			Score:   scoreSection(name, body),
		})
	}
	return sections
}

func matchHeading(line string) (string, bool) {
	if line == "" || !headingLinePattern.MatchString(line) {
		return "", false
	}
	normalized := strings.ToLower(strings.TrimSuffix(line, ":"))
	for _, name := range sectionOrder {
		for _, heading := range sectionHeadings[name] {
			if normalized == heading {
				return name, true
			}
		}
	}
	return "", false
}

var (
	numberPattern = regexp.MustCompile(`\d+%?|\$\d`)
	bulletPattern = regexp.MustCompile(`(?m)^\s*[-•*▪]`)
)

// scoreSection rates section content 0-100 from simple quality signals
func scoreSection(name, body string) int {
	if body == "" {
		return 0
	}

	score := 60
	length := len(body)

	switch name {
	case "summary":
		// Reward the 100-300 char sweet spot
		switch {
		case length >= 100 && length <= 300:
			score += 30
		case length > 300:
			score += 10
		}
		if numberPattern.MatchString(body) {
			score += 10
		}
	case "experience":
		if bulletPattern.MatchString(body) {
			score += 15
		}
		if numberPattern.MatchString(body) {
			score += 15
		}
		if length > 300 {
			score += 10
		}
	case "skills":
		items := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == '\n' || r == '|' })
		if len(items) >= 5 {
			score += 25
		} else if len(items) >= 3 {
			score += 15
		}
		if strings.Contains(body, ":") { // grouped skills
			score += 15
		}
	default:
		if length > 80 {
			score += 20
		}
		if bulletPattern.MatchString(body) || numberPattern.MatchString(body) {
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// SectionScores maps detected sections to their scores; every essential
// section is always present in the map, zero when missing.
func SectionScores(sections []types.Section) map[string]int {
	scores := make(map[string]int, len(EssentialSections))
	for _, name := range EssentialSections {
		scores[name] = 0
	}
	for _, s := range sections {
		scores[s.Name] = s.Score
	}
	return scores
}

func hasSection(sections []types.Section, name string) bool {
	for _, s := range sections {
		if s.Name == name {
			return true
		}
	}
	return false
}

func sectionContent(sections []types.Section, name string) string {
	for _, s := range sections {
		if s.Name == name {
			return s.Content
		}
	}
	return ""
}
