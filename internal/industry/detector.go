package industry

import (
	"regexp"
	"strings"
	"sync"

	"resumescore/internal/errors"
)

// General is the fallback industry when no keywords match
const General = "general"

// Entry pairs an industry name with its diagnostic keywords.
// Entries are evaluated in slice order; on tied totals the earlier entry wins.
type Entry struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// SectionWeights distributes industry scoring across resume dimensions.
// Each table row sums to 1.0.
type SectionWeights struct {
	TechnicalSkills float64
	Projects        float64
	Experience      float64
	Education       float64
	Certifications  float64
	ActionVerbs     float64
	Formatting      float64
}

// Sum returns the weight total, used to verify tables stay normalized
func (w SectionWeights) Sum() float64 {
	return w.TechnicalSkills + w.Projects + w.Experience + w.Education +
		w.Certifications + w.ActionVerbs + w.Formatting
}

// Detector classifies resume text into an industry from a keyword table
type Detector struct {
	mu     sync.RWMutex
	table  []Entry
	logger *errors.Logger
}

// NewDetector creates a detector with the built-in industry table
func NewDetector(logger *errors.Logger) *Detector {
	return &Detector{
		table:  defaultTable(),
		logger: logger,
	}
}

func defaultTable() []Entry {
	return []Entry{
		{
			Name: "technology",
			Keywords: []string{
				"software", "developer", "engineer", "programming", "javascript",
				"python", "java", "golang", "react", "kubernetes", "docker", "cloud",
				"aws", "azure", "devops", "backend", "frontend", "api", "database",
				"agile", "microservices", "machine learning",
			},
		},
		{
			Name: "finance",
			Keywords: []string{
				"finance", "financial", "accounting", "audit", "banking", "investment",
				"portfolio", "equity", "trading", "compliance", "risk management",
				"cpa", "cfa", "budgeting", "forecasting", "valuation", "treasury",
			},
		},
		{
			Name: "healthcare",
			Keywords: []string{
				"healthcare", "medical", "clinical", "patient", "nursing", "hospital",
				"physician", "pharmacy", "diagnosis", "treatment", "hipaa", "ehr",
				"therapy", "surgical", "care plan",
			},
		},
		{
			Name: "marketing",
			Keywords: []string{
				"marketing", "brand", "campaign", "seo", "sem", "social media",
				"content strategy", "advertising", "analytics", "conversion",
				"engagement", "copywriting", "email marketing", "market research",
			},
		},
		{
			Name: "sales",
			Keywords: []string{
				"sales", "quota", "pipeline", "prospecting", "crm", "salesforce",
				"negotiation", "account management", "revenue", "closing",
				"lead generation", "territory", "upsell",
			},
		},
		{
			Name: "education",
			Keywords: []string{
				"teaching", "curriculum", "classroom", "instruction", "students",
				"lesson", "pedagogy", "tutoring", "academic", "faculty",
				"assessment design",
			},
		},
		{
			Name: "legal",
			Keywords: []string{
				"legal", "attorney", "litigation", "paralegal", "contract law",
				"counsel", "deposition", "regulatory", "statute", "brief",
			},
		},
	}
}

var wordPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#.&-]*`)

// Detect returns the industry whose keywords occur most often in text.
// Ties keep the earlier table entry; no matches return General.
// Detection is deterministic for identical text and table contents.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return General
	}

	normalized := strings.ToLower(text)
	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(normalized, -1) {
		freq[w]++
	}
	// Pad with spaces so phrase matching can use word boundaries
	padded := " " + strings.Join(wordPattern.FindAllString(normalized, -1), " ") + " "

	d.mu.RLock()
	table := d.table
	d.mu.RUnlock()

	best := General
	bestTotal := 0
	for _, entry := range table {
		total := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(kw, " ") {
				total += strings.Count(padded, " "+kw+" ")
			} else {
				total += freq[kw]
			}
		}
		if total > bestTotal {
			best = entry.Name
			bestTotal = total
		}
	}
	return best
}

// Table returns a snapshot of the current industry table
func (d *Detector) Table() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, len(d.table))
	copy(out, d.table)
	return out
}

// Weights returns the section weight distribution for an industry.
// Unknown industries get the general distribution.
func Weights(industry string) SectionWeights {
	if w, ok := sectionWeightTable[industry]; ok {
		return w
	}
	return sectionWeightTable[General]
}

var sectionWeightTable = map[string]SectionWeights{
	"technology": {
		TechnicalSkills: 0.30, Projects: 0.15, Experience: 0.25,
		Education: 0.10, Certifications: 0.05, ActionVerbs: 0.10, Formatting: 0.05,
	},
	"finance": {
		TechnicalSkills: 0.15, Projects: 0.05, Experience: 0.30,
		Education: 0.20, Certifications: 0.15, ActionVerbs: 0.10, Formatting: 0.05,
	},
	"healthcare": {
		TechnicalSkills: 0.15, Projects: 0.05, Experience: 0.30,
		Education: 0.20, Certifications: 0.20, ActionVerbs: 0.05, Formatting: 0.05,
	},
	"marketing": {
		TechnicalSkills: 0.15, Projects: 0.20, Experience: 0.30,
		Education: 0.10, Certifications: 0.05, ActionVerbs: 0.15, Formatting: 0.05,
	},
	"sales": {
		TechnicalSkills: 0.10, Projects: 0.05, Experience: 0.40,
		Education: 0.10, Certifications: 0.05, ActionVerbs: 0.20, Formatting: 0.10,
	},
	"education": {
		TechnicalSkills: 0.10, Projects: 0.10, Experience: 0.30,
		Education: 0.25, Certifications: 0.10, ActionVerbs: 0.10, Formatting: 0.05,
	},
	"legal": {
		TechnicalSkills: 0.10, Projects: 0.05, Experience: 0.35,
		Education: 0.25, Certifications: 0.10, ActionVerbs: 0.05, Formatting: 0.10,
	},
	General: {
		TechnicalSkills: 0.15, Projects: 0.10, Experience: 0.30,
		Education: 0.15, Certifications: 0.05, ActionVerbs: 0.15, Formatting: 0.10,
	},
}

// RequiredElements lists resume elements expected for an industry,
// used by the issue analyzer's industry-requirements pass.
type RequiredElement struct {
	Name        string
	Markers     []string // any marker present satisfies the element
	Description string
	Solution    string
}

func RequiredElements(industry string) []RequiredElement {
	switch industry {
	case "technology":
		return []RequiredElement{
			{
				Name:        "code portfolio",
				Markers:     []string{"github", "gitlab", "portfolio", "bitbucket"},
				Description: "No link to a code portfolio or GitHub profile",
				Solution:    "Add a GitHub or portfolio link near your contact information",
			},
			{
				Name:        "technical stack",
				Markers:     []string{"language", "framework", "stack", "technologies"},
				Description: "No explicit technology stack listing",
				Solution:    "List languages, frameworks, and tools in a dedicated skills section",
			},
		}
	case "finance":
		return []RequiredElement{
			{
				Name:        "credentials",
				Markers:     []string{"cpa", "cfa", "series 7", "series 63", "frm"},
				Description: "No finance credentials or licenses mentioned",
				Solution:    "List relevant certifications such as CPA or CFA, or note exam progress",
			},
		}
	case "healthcare":
		return []RequiredElement{
			{
				Name:        "licensure",
				Markers:     []string{"license", "licensed", "certification", "board certified", "rn", "bls", "acls"},
				Description: "No clinical license or certification mentioned",
				Solution:    "Include license numbers or certification names required for your role",
			},
		}
	case "marketing":
		return []RequiredElement{
			{
				Name:        "campaign results",
				Markers:     []string{"roi", "conversion", "ctr", "engagement rate", "impressions"},
				Description: "No campaign performance metrics mentioned",
				Solution:    "Quantify campaign outcomes with ROI, conversion, or engagement figures",
			},
		}
	default:
		return nil
	}
}
