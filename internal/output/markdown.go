package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spiffcs/goodfirst/internal/model"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	Now func() time.Time
}

// Format outputs issues as a Markdown table
func (f *MarkdownFormatter) Format(issues []model.Issue, w io.Writer) error {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No good first issues found.")
		return nil
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	fmt.Fprintln(w, "# Good First Issues")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", now.Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "| Score | Repository | Stars | Issue | Notes |")
	fmt.Fprintln(w, "|------:|------------|------:|-------|-------|")

	for _, issue := range issues {
		score, stars, notes := "-", "-", ""
		if issue.IsEnriched() {
			score = fmt.Sprintf("%d", issue.Maintenance.Score)
			stars = fmt.Sprintf("%d", issue.Stars())
			notes = strings.Join(issue.Maintenance.Notes, ", ")
		}

		fmt.Fprintf(w, "| %s | %s | %s | [%s](%s) | %s |\n",
			score,
			escapeCell(repositoryName(issue)),
			stars,
			escapeCell(issue.Title),
			issue.URL,
			notes,
		)
	}

	return nil
}

// escapeCell keeps pipes and brackets in titles from breaking the table
func escapeCell(s string) string {
	r := strings.NewReplacer("|", `\|`, "[", `\[`, "]", `\]`, "\n", " ")
	return r.Replace(s)
}
