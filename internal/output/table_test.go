package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spiffcs/goodfirst/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testIssues() []model.Issue {
	stars, forks, followers := 1200, 15, 80
	archived := false
	return []model.Issue{
		{
			Title:              "Improve the README | docs",
			URL:                "https://github.com/octo/hello/issues/1",
			Repository:         "https://api.github.com/repos/octo/hello",
			CreatedAt:          testNow.Add(-3 * 24 * time.Hour),
			Labels:             []string{"good first issue"},
			RepositoryFullName: "octo/hello",
			RepositoryStars:    &stars,
			RepositoryForks:    &forks,
			RepositoryArchived: &archived,
			OwnerLogin:         "octo",
			OwnerFollowers:     &followers,
			Maintenance: &model.Maintenance{
				ActiveRecently: true,
				Score:          100,
				Notes:          []string{"recently updated", "popular (stars)"},
			},
		},
		{
			Title:      "Unenriched issue",
			URL:        "https://github.com/octo/world/issues/2",
			Repository: "https://api.github.com/repos/octo/world",
			CreatedAt:  testNow.Add(-2 * time.Hour),
			Labels:     []string{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTableFormatter(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	f := &TableFormatter{Now: func() time.Time { return testNow }}
	if err := f.Format(testIssues(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	wants := []string{
		"Score", "Repository", "Notes",
		"100", "octo/hello", "1.2k", "3d", "recently updated, popular (stars)",
		"octo/world", "2h",
		"2 issues, 1 with repository data, 1 recently active",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[3], "-    ") {
		t.Errorf("unenriched row should start with a dash score, got %q", lines[3])
	}
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No good first issues found.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	t.Run("issues", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewFormatter(FormatJSON).Format(testIssues(), &buf); err != nil {
			t.Fatal(err)
		}
		var decoded []model.Issue
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0].Maintenance == nil || decoded[1].Maintenance != nil {
			t.Errorf("unexpected decoded issues %+v", decoded)
		}
	})

	t.Run("nil renders an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{}).Format(nil, &buf); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("Format(nil) = %q, want []", got)
		}
	})
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{Now: func() time.Time { return testNow }}
	if err := f.Format(testIssues(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	wants := []string{
		"# Good First Issues",
		"*Generated: 2025-06-01 12:00*",
		`| 100 | octo/hello | 1200 | [Improve the README \| docs](https://github.com/octo/hello/issues/1) | recently updated, popular (stars) |`,
		`| - | octo/world | - | [Unenriched issue](https://github.com/octo/world/issues/2) |  |`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}
