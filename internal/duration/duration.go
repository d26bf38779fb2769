// Package duration provides parsing for human-readable day windows.
package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDays parses windows like "30", "30d", "2w", "6mo" or "1y" into a
// number of days. A bare number means days. Months count as 30 days and
// years as 365.
func ParseDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration (use e.g., 30d, 2w, 6mo)")
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid duration format: %s (use e.g., 30d, 2w, 6mo)", s)
	}

	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s: %w", s, err)
	}

	switch unit := s[i:]; unit {
	case "", "d", "day", "days":
		return n, nil
	case "w", "wk", "wks", "week", "weeks":
		return n * 7, nil
	case "mo", "month", "months":
		return n * 30, nil
	case "y", "yr", "yrs", "year", "years":
		return n * 365, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
