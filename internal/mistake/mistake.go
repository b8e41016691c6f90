// Package mistake defines the mistake record and its flat-file line format.
package mistake

import (
	"fmt"
	"strings"
	"time"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
)

// DateFormat is the date layout used everywhere: input parsing, display,
// and the data file.
const DateFormat = "2006-01-02"

// Severity grades how serious a mistake was.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Severities returns all severity levels in ascending order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// ParseSeverity accepts a stored or user-typed severity name,
// case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SeverityLow):
		return SeverityLow, nil
	case string(SeverityMedium):
		return SeverityMedium, nil
	case string(SeverityHigh):
		return SeverityHigh, nil
	}
	return "", fmt.Errorf("unknown severity: %q (expected low, medium, or high)", s)
}

// Display renders the severity for humans.
func (s Severity) Display() string {
	switch s {
	case SeverityLow:
		return "Low Priority"
	case SeverityMedium:
		return "Medium Priority"
	case SeverityHigh:
		return "High Priority"
	}
	return string(s)
}

// Mistake is one logged mistake.
type Mistake struct {
	ID          string
	Description string
	Category    category.Category
	Severity    Severity
	Date        time.Time
	Resolution  string
}

// FormattedDate returns the record date in the canonical layout, or an
// empty string for the zero time.
func (m Mistake) FormattedDate() string {
	if m.Date.IsZero() {
		return ""
	}
	return m.Date.Format(DateFormat)
}
