package mistake

import (
	"fmt"
	"strings"
	"time"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
)

// The data file holds one record per line with fields joined by '|'.
// Inside the free-text fields (description, resolution) a literal
// backslash is escaped as '\\' and a literal pipe as '\|'. Field order:
// id, description, category, severity, date, resolution.

const fieldSep = "|"

func escapeField(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}

// splitLine splits on unescaped pipes and resolves the '\\' and '\|'
// escape sequences, so the returned fields are already unescaped.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	fields = append(fields, cur.String())
	return fields
}

// EncodeLine renders a record as a data-file line.
func EncodeLine(m Mistake) string {
	return strings.Join([]string{
		m.ID,
		escapeField(m.Description),
		string(m.Category),
		string(m.Severity),
		m.FormattedDate(),
		escapeField(m.Resolution),
	}, fieldSep)
}

// DecodeLine parses a data-file line back into a record. Lines written by
// older versions may omit the trailing resolution field.
func DecodeLine(line string) (Mistake, error) {
	if strings.TrimSpace(line) == "" {
		return Mistake{}, fmt.Errorf("empty line")
	}

	parts := splitLine(line)
	if len(parts) < 5 {
		return Mistake{}, fmt.Errorf("expected at least 5 fields, got %d", len(parts))
	}

	cat, err := category.Parse(parts[2])
	if err != nil {
		return Mistake{}, err
	}
	sev, err := ParseSeverity(parts[3])
	if err != nil {
		return Mistake{}, err
	}
	date, err := time.Parse(DateFormat, parts[4])
	if err != nil {
		return Mistake{}, fmt.Errorf("invalid date %q: %w", parts[4], err)
	}

	m := Mistake{
		ID:          parts[0],
		Description: parts[1],
		Category:    cat,
		Severity:    sev,
		Date:        date,
	}
	if len(parts) > 5 {
		m.Resolution = parts[5]
	}
	return m, nil
}
