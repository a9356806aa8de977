package industry

import (
	"math"
	"testing"
)

func TestDetect(t *testing.T) {
	d := NewDetector(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "technology resume",
			text: "Senior software engineer with python, docker and kubernetes experience building backend api services on aws",
			want: "technology",
		},
		{
			name: "finance resume",
			text: "CPA with audit and compliance background, portfolio valuation and risk management for banking clients",
			want: "finance",
		},
		{
			name: "healthcare resume",
			text: "Registered nurse providing patient care, clinical documentation in EHR, HIPAA trained",
			want: "healthcare",
		},
		{
			name: "no matches falls back to general",
			text: "I enjoy long walks and gardening on weekends",
			want: General,
		},
		{
			name: "empty text",
			text: "",
			want: General,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: General,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector(nil)
	text := "software engineer with marketing campaign experience and sales pipeline work"

	first := d.Detect(text)
	for i := 0; i < 50; i++ {
		if got := d.Detect(text); got != first {
			t.Fatalf("Detect() not deterministic: run %d returned %q, first run returned %q", i, got, first)
		}
	}
}

func TestDetectTieKeepsEarlierEntry(t *testing.T) {
	d := NewDetector(nil)
	d.SetTable([]Entry{
		{Name: "alpha", Keywords: []string{"widget"}},
		{Name: "beta", Keywords: []string{"gadget"}},
	})

	// One occurrence each: alpha is earlier in the table and must win.
	if got := d.Detect("a widget and a gadget"); got != "alpha" {
		t.Errorf("tied totals: got %q, want %q", got, "alpha")
	}
}

func TestDetectPhraseKeywords(t *testing.T) {
	d := NewDetector(nil)
	d.SetTable([]Entry{
		{Name: "ml", Keywords: []string{"machine learning"}},
	})

	if got := d.Detect("Built machine learning pipelines"); got != "ml" {
		t.Errorf("phrase keyword not matched: got %q", got)
	}
	if got := d.Detect("machine operator, learning on the job"); got != General {
		t.Errorf("split phrase should not match: got %q", got)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for industry, w := range sectionWeightTable {
		if diff := math.Abs(w.Sum() - 1.0); diff > 1e-9 {
			t.Errorf("weights for %q sum to %f, want 1.0", industry, w.Sum())
		}
	}
}

func TestWeightsUnknownIndustry(t *testing.T) {
	if Weights("underwater-basket-weaving") != Weights(General) {
		t.Error("unknown industry should get the general weight distribution")
	}
}
