package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spiffcs/goodfirst/internal/format"
	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/urlutil"
	"golang.org/x/term"
)

// Column widths
const (
	colScore = 5
	colRepo  = 28
	colStars = 6
	colTitle = 48
	colAge   = 4
)

// TableFormatter formats output as a terminal table
type TableFormatter struct {
	Now func() time.Time
}

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// Format outputs issues as a table
func (f *TableFormatter) Format(issues []model.Issue, w io.Writer) error {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No good first issues found.")
		return nil
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	fmt.Fprintf(w, "%-*s  %-*s  %*s  %-*s  %-*s  %s\n",
		colScore, "Score",
		colRepo, "Repository",
		colStars, "Stars",
		colTitle, "Title",
		colAge, "Age",
		"Notes")
	fmt.Fprintln(w, strings.Repeat("-", colScore+colRepo+colStars+colTitle+colAge+10+len("Notes")))

	for _, issue := range issues {
		title, titleWidth := format.TruncateToWidth(issue.Title, colTitle)
		title = format.PadRight(hyperlink(title, issue.URL), titleWidth, colTitle)

		stars := "-"
		notes := ""
		if issue.IsEnriched() {
			stars = format.Count(issue.Stars())
			notes = strings.Join(issue.Maintenance.Notes, ", ")
		}

		fmt.Fprintf(w, "%s  %s  %*s  %s  %-*s  %s\n",
			scoreCell(issue),
			format.Cell(repositoryName(issue), colRepo),
			colStars, stars,
			title,
			colAge, format.Age(issue.CreatedAt, now),
			notes,
		)
	}

	printFooterSummary(issues, w)

	return nil
}

// scoreCell renders the maintenance score padded to its column and colored
// by band. Unenriched issues show a dash.
func scoreCell(issue model.Issue) string {
	if !issue.IsEnriched() {
		return format.PadRight("-", 1, colScore)
	}

	score := issue.Maintenance.Score
	text := fmt.Sprintf("%d", score)
	padded := format.PadRight(text, len(text), colScore)

	switch {
	case score >= 70:
		return color.GreenString(padded)
	case score >= 40:
		return color.YellowString(padded)
	default:
		return color.RedString(padded)
	}
}

// repositoryName prefers the full name from enrichment and falls back to
// the tail of the repository API URL.
func repositoryName(issue model.Issue) string {
	if issue.RepositoryFullName != "" {
		return issue.RepositoryFullName
	}
	if name, ok := urlutil.RepositoryFullName(issue.Repository); ok {
		return name
	}
	return issue.Repository
}

// printFooterSummary prints counts of enriched and active repositories
func printFooterSummary(issues []model.Issue, w io.Writer) {
	var enriched, active, archived int
	for _, issue := range issues {
		if !issue.IsEnriched() {
			continue
		}
		enriched++
		if issue.ActiveRecently() {
			active++
		}
		if issue.RepositoryArchived != nil && *issue.RepositoryArchived {
			archived++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %d issues, %d with repository data, %s recently active",
		len(issues), enriched, color.GreenString("%d", active))
	if archived > 0 {
		fmt.Fprintf(w, ", %s archived", color.RedString("%d", archived))
	}
	fmt.Fprintln(w)
}
