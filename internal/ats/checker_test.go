package ats

import (
	"strings"
	"testing"
)

const cleanResume = `John Doe
john.doe@example.com | 555-123-4567 | linkedin.com/in/johndoe

Summary
Backend engineer with eight years of experience.

Experience
Senior Engineer, Acme Corp
- Built payment services

Education
BS Computer Science

Skills
Go, PostgreSQL, Kubernetes
`

func cleanInput() Input {
	return Input{
		Text:     cleanResume,
		FileType: "application/pdf",
		FileName: "john-doe-resume.pdf",
	}
}

func TestCheckCleanResume(t *testing.T) {
	c := NewChecker()

	result := c.Check(cleanInput())

	if result.Score != 100 {
		t.Errorf("clean resume score = %d, want 100; issues: %+v", result.Score, result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("clean resume produced %d issues", len(result.Issues))
	}
	if len(result.PassedChecks) != len(c.rules) {
		t.Errorf("passed checks = %d, want %d", len(result.PassedChecks), len(c.rules))
	}
}

func TestCheckIndividualRules(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		name   string
		mutate func(in *Input)
		check  string
		deduct int
	}{
		{
			name:   "bad mime type",
			mutate: func(in *Input) { in.FileType = "image/png" },
			check:  "file_type",
			deduct: 15,
		},
		{
			name:   "bad filename",
			mutate: func(in *Input) { in.FileName = "my resume (final)!!.pdf" },
			check:  "file_name",
			deduct: 5,
		},
		{
			name:   "table markers",
			mutate: func(in *Input) { in.Text += "\n| Skill | Years |\n|-------|-------|\n" },
			check:  "tables",
			deduct: 20,
		},
		{
			name:   "multi column tabs",
			mutate: func(in *Input) { in.Text += "\nGo\t\t\tKubernetes\t\t\tAWS\n" },
			check:  "multi_column",
			deduct: 15,
		},
		{
			name:   "image markers",
			mutate: func(in *Input) { in.Text += "\n[image: headshot.jpg]\n" },
			check:  "images",
			deduct: 10,
		},
		{
			name:   "page numbering",
			mutate: func(in *Input) { in.Text += "\nPage 1 of 2\n" },
			check:  "header_footer",
			deduct: 10,
		},
		{
			name:   "decorative font",
			mutate: func(in *Input) { in.Text += "\nSet in Comic Sans for personality\n" },
			check:  "fonts",
			deduct: 5,
		},
		{
			name:   "special characters",
			mutate: func(in *Input) { in.Text += "\n★★★★★★ “quoted” ➤➤\n" },
			check:  "special_characters",
			deduct: 5,
		},
		{
			name:   "text boxes",
			mutate: func(in *Input) { in.Text += "\n[Text Box] sidebar content\n" },
			check:  "text_boxes",
			deduct: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := cleanInput()
			tt.mutate(&in)

			result := c.Check(in)

			if result.Score != 100-tt.deduct {
				t.Errorf("score = %d, want %d", result.Score, 100-tt.deduct)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Check == tt.check {
					found = true
					if issue.Impact != tt.deduct {
						t.Errorf("issue impact = %d, want %d", issue.Impact, tt.deduct)
					}
				}
			}
			if !found {
				t.Errorf("expected issue for check %q; got %+v", tt.check, result.Issues)
			}
		})
	}
}

func TestCheckMissingHeadings(t *testing.T) {
	c := NewChecker()

	in := Input{
		Text:     "jane@example.com\nI do many different jobs and tasks.",
		FileType: "application/pdf",
		FileName: "jane.pdf",
	}
	result := c.Check(in)

	found := false
	for _, issue := range result.Issues {
		if issue.Check == "standard_headings" {
			found = true
		}
	}
	if !found {
		t.Error("resume without standard headings should fail the headings check")
	}
}

func TestCheckContactPlacement(t *testing.T) {
	c := NewChecker()

	// Contact info exists but only after the first 500 characters
	in := Input{
		Text:     strings.Repeat("experience skills education filler text here ", 20) + "\nreach me: jane@example.com",
		FileType: "application/pdf",
		FileName: "jane.pdf",
	}
	result := c.Check(in)

	found := false
	for _, issue := range result.Issues {
		if issue.Check == "contact_info" {
			found = true
		}
	}
	if !found {
		t.Error("contact info beyond the first 500 characters should fail the placement check")
	}
}

func TestCheckScoreMonotonicNonIncreasing(t *testing.T) {
	c := NewChecker()

	in := cleanInput()
	prev := c.Check(in).Score

	violations := []func(in *Input){
		func(in *Input) { in.FileType = "image/png" },
		func(in *Input) { in.FileName = "bad name!.png" },
		func(in *Input) { in.Text += "\n| a | b |\n|---|---|\n" },
		func(in *Input) { in.Text += "\ncol1\t\t\tcol2\n" },
		func(in *Input) { in.Text += "\n<img src=photo.png>\n" },
		func(in *Input) { in.Text += "\nPage 3 of 9\n" },
		func(in *Input) { in.Text += "\nwingdings everywhere\n" },
		func(in *Input) { in.Text += "\n★★★★★★★★\n" },
		func(in *Input) { in.Text += "\n[text box]\n" },
	}

	for i, v := range violations {
		v(&in)
		score := c.Check(in).Score
		if score > prev {
			t.Fatalf("score increased from %d to %d after adding violation %d", prev, score, i)
		}
		prev = score
	}
}

func TestCheckScoreFloorZero(t *testing.T) {
	c := NewChecker()

	in := Input{
		Text: "| a | b |\n|---|---|\ncol\t\t\tcol\n[image: x.png]\nPage 1 of 3\ncomic sans\n" +
			"★★★★★★★★★★\n[text box]\nnothing standard here",
		FileType: "application/x-unknown",
		FileName: "résumé final!!.xyz",
	}
	result := c.Check(in)

	if result.Score < 0 {
		t.Errorf("score = %d, must never be negative", result.Score)
	}
	if result.Score != 0 {
		t.Errorf("maximally broken input score = %d, want floor 0", result.Score)
	}
}
