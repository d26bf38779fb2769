// Package output renders issue search results for the terminal.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/spiffcs/goodfirst/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. An empty name means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or markdown)", s)
	}
}

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(issues []model.Issue, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{Now: time.Now}
	default:
		return &TableFormatter{Now: time.Now}
	}
}
