package ats

import (
	"regexp"
	"strings"

	"resumescore/internal/types"
)

// Input carries the resume text plus upload metadata for ATS checks
type Input struct {
	Text     string
	FileType string // MIME type
	FileName string
}

// rule is one boolean ATS check. failed returning true deducts impact
// points and records an issue; otherwise the check name lands in
// passedChecks. Rules are independent and additive.
type rule struct {
	name        string
	impact      int
	description string
	solution    string
	failed      func(in Input) bool
}

// Checker runs the fixed ATS compatibility rule battery
type Checker struct {
	rules []rule
}

// NewChecker creates an ATS checker with the standard rule set
func NewChecker() *Checker {
	return &Checker{rules: standardRules()}
}

// Check runs every rule in order. Score starts at 100 and each failed
// rule subtracts its impact, floored at 0.
func (c *Checker) Check(in Input) types.ATSCheckResult {
	result := types.ATSCheckResult{
		Score:        100,
		Issues:       []types.ATSIssue{},
		PassedChecks: []string{},
	}

	deducted := 0
	for _, r := range c.rules {
		if r.failed(in) {
			deducted += r.impact
			result.Issues = append(result.Issues, types.ATSIssue{
				Check:       r.name,
				Description: r.description,
				Impact:      r.impact,
				Solution:    r.solution,
			})
		} else {
			result.PassedChecks = append(result.PassedChecks, r.name)
		}
	}

	result.Score = 100 - deducted
	if result.Score < 0 {
		result.Score = 0
	}
	return result
}

var allowedMIMETypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
	"text/plain":         true,
}

var (
	fileNamePattern   = regexp.MustCompile(`^[\w.-]+$`)
	tablePattern      = regexp.MustCompile(`(\|[-=]{2,}\|)|(\|.*\|.*\|)|(\+[-=]{2,}\+)`)
	multiColumnRe     = regexp.MustCompile(`(\t{2,})|( {6,}\S+ {6,})`)
	imagePattern      = regexp.MustCompile(`(?i)(\[image[^\]]*\])|(<img\b)|(\.(png|jpe?g|gif|bmp)\b)`)
	headerFooterRe    = regexp.MustCompile(`(?i)(page\s+\d+\s+of\s+\d+)|(^\s*(header|footer)\s*:)`)
	fontMarkerPattern = regexp.MustCompile(`(?i)(comic sans|wingdings|webdings|zapf dingbats|brush script|papyrus)`)
	specialPunctRe    = regexp.MustCompile(`[★☆♦◆●○◉❖➤➢➔→←↑↓▶◀■□▪▫]|[“”‘’]`)
	textBoxPattern    = regexp.MustCompile(`(?i)(\[text\s*box\])|(<textbox\b)|(text-box)`)
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern      = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern   = regexp.MustCompile(`(?i)linkedin\.com/in/|linkedin:`)
)

var standardHeadings = []string{
	"summary", "objective", "experience", "employment", "work history",
	"education", "skills", "certifications", "projects", "awards",
}

func standardRules() []rule {
	return []rule{
		{
			name:        "file_type",
			impact:      15,
			description: "File type is not a standard ATS-compatible format",
			solution:    "Submit the resume as PDF, DOCX, DOC, or plain text",
			failed: func(in Input) bool {
				return !allowedMIMETypes[strings.ToLower(in.FileType)]
			},
		},
		{
			name:        "file_name",
			impact:      5,
			description: "File name contains characters some parsers reject",
			solution:    "Rename the file using only letters, digits, dots, hyphens, and underscores",
			failed: func(in Input) bool {
				return in.FileName != "" && !fileNamePattern.MatchString(in.FileName)
			},
		},
		{
			name:        "tables",
			impact:      20,
			description: "Table markers detected; tables scramble parsed field order",
			solution:    "Replace tables with plain single-column text",
			failed: func(in Input) bool {
				return tablePattern.MatchString(in.Text)
			},
		},
		{
			name:        "multi_column",
			impact:      15,
			description: "Multi-column layout indicators detected",
			solution:    "Use a single-column layout so content is read in order",
			failed: func(in Input) bool {
				return multiColumnRe.MatchString(in.Text)
			},
		},
		{
			name:        "images",
			impact:      10,
			description: "Embedded image references detected; images are invisible to parsers",
			solution:    "Remove images, logos, and photos from the resume body",
			failed: func(in Input) bool {
				return imagePattern.MatchString(in.Text)
			},
		},
		{
			name:        "header_footer",
			impact:      10,
			description: "Header/footer artifacts detected; many parsers skip them",
			solution:    "Move page headers and footers into the document body",
			failed: func(in Input) bool {
				return headerFooterRe.MatchString(in.Text)
			},
		},
		{
			name:        "fonts",
			impact:      5,
			description: "Non-standard font references detected",
			solution:    "Use standard fonts like Arial, Calibri, or Times New Roman",
			failed: func(in Input) bool {
				return fontMarkerPattern.MatchString(in.Text)
			},
		},
		{
			name:        "special_characters",
			impact:      5,
			description: "Too many decorative or smart-quote characters",
			solution:    "Replace decorative symbols with plain hyphens and straight quotes",
			failed: func(in Input) bool {
				return len(specialPunctRe.FindAllString(in.Text, -1)) > 5
			},
		},
		{
			name:        "text_boxes",
			impact:      10,
			description: "Text-box markers detected; parsers often drop text-box content",
			solution:    "Move text-box content into the main document flow",
			failed: func(in Input) bool {
				return textBoxPattern.MatchString(in.Text)
			},
		},
		{
			name:        "standard_headings",
			impact:      10,
			description: "Fewer than 3 standard section headings found",
			solution:    "Use conventional headings such as Summary, Experience, Education, and Skills",
			failed: func(in Input) bool {
				lower := strings.ToLower(in.Text)
				found := 0
				for _, h := range standardHeadings {
					if strings.Contains(lower, h) {
						found++
					}
				}
				return found < 3
			},
		},
		{
			name:        "contact_info",
			impact:      5,
			description: "No email, phone, or LinkedIn found near the top of the resume",
			solution:    "Place contact details in the first few lines of the document body",
			failed: func(in Input) bool {
				head := in.Text
				if len(head) > 500 {
					head = head[:500]
				}
				return !emailPattern.MatchString(head) &&
					!phonePattern.MatchString(head) &&
					!linkedinPattern.MatchString(head)
			},
		},
	}
}
