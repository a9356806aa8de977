package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumescore/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	default:
		return "any"
	}
}

func asAnalysisResult(data any) (*types.AnalysisResult, bool) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return &v, true
	case *types.AnalysisResult:
		return v, true
	default:
		return nil, false
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter renders an analysis result as plain text
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", result.TotalScore))
	output.WriteString(fmt.Sprintf("Detected Industry: %s\n\n", result.Industry))

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	for _, entry := range scoreBreakdown(result) {
		output.WriteString(fmt.Sprintf("%-16s %3d/100\n", entry.label+":", entry.score))
	}
	output.WriteString("\n")

	if len(result.Strengths) > 0 {
		output.WriteString("=== STRENGTHS ===\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}

	if len(result.Issues) > 0 {
		output.WriteString("=== ISSUES ===\n\n")
		for i, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(issue.Severity)), issue.Title))
			output.WriteString("   ")
			output.WriteString(issue.Description)
			output.WriteString("\n")
			if issue.Solution != "" {
				output.WriteString("   Fix: ")
				output.WriteString(issue.Solution)
				output.WriteString("\n")
			}
			output.WriteString("\n")
		}
	}

	writeActionPlanText(&output, result.ActionPlan)

	if len(result.AISuggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for _, s := range result.AISuggestions {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		if result.AIFallbackUsed {
			output.WriteString("(generated without AI assistance)\n")
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

func writeActionPlanText(output *strings.Builder, plan types.ActionPlan) {
	if len(plan.Immediate)+len(plan.ShortTerm)+len(plan.LongTerm) == 0 {
		return
	}

	output.WriteString("=== ACTION PLAN ===\n")
	if len(plan.Immediate) > 0 {
		output.WriteString("Immediate:\n")
		for _, item := range plan.Immediate {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
	}
	if len(plan.ShortTerm) > 0 {
		output.WriteString("Short term:\n")
		for _, item := range plan.ShortTerm {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
	}
	if len(plan.LongTerm) > 0 {
		output.WriteString("Long term:\n")
		for _, item := range plan.LongTerm {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
	}
	output.WriteString("\n")
}

// AnalysisMarkdownFormatter renders an analysis result as markdown
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.TotalScore))
	output.WriteString(fmt.Sprintf("**Detected Industry:** %s\n\n", result.Industry))

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Category | Score |\n")
	output.WriteString("|----------|-------|\n")
	for _, entry := range scoreBreakdown(result) {
		output.WriteString(fmt.Sprintf("| %s | %d/100 |\n", entry.label, entry.score))
	}
	output.WriteString("\n")

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}

	if len(result.Issues) > 0 {
		output.WriteString("## Issues\n\n")
		for i, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, issue.Title))
			output.WriteString(fmt.Sprintf("**Severity:** %s\n\n", issue.Severity))
			output.WriteString(issue.Description)
			output.WriteString("\n\n")
			if issue.Solution != "" {
				output.WriteString("**Fix:** ")
				output.WriteString(issue.Solution)
				output.WriteString("\n\n")
			}
		}
	}

	if len(result.SectionHeatmap) > 0 {
		output.WriteString("## Section Heatmap\n\n")
		output.WriteString("| Section | Score | Weight |\n")
		output.WriteString("|---------|-------|--------|\n")
		for _, entry := range result.SectionHeatmap {
			output.WriteString(fmt.Sprintf("| %s | %d | %.2f |\n", entry.Section, entry.Score, entry.Weight))
		}
		output.WriteString("\n")
	}

	if len(result.AISuggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, s := range result.AISuggestions {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

type scoreEntry struct {
	label string
	score int
}

func scoreBreakdown(result *types.AnalysisResult) []scoreEntry {
	return []scoreEntry{
		{"ATS", result.ATSScore},
		{"Keywords", result.KeywordScore},
		{"Grammar", result.GrammarScore},
		{"Formatting", result.FormattingScore},
		{"Sections", result.SectionScore},
		{"Action Verbs", result.ActionVerbScore},
		{"Relevance", result.RelevanceScore},
		{"Bullet Points", result.BulletPointScore},
		{"Language Tone", result.LanguageToneScore},
		{"Length", result.LengthScore},
		{"Industry Fit", result.IndustryScore},
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
