// Package analyzer turns the categories of the current mistake set into
// frequency counts, recurring-pattern flags, and a display report.
// Every operation is a pure function over its input; callers re-run them
// whenever the record set changes.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
)

// A category repeating at least PatternThreshold times is a pattern;
// at least CriticalPatternThreshold times, a critical pattern. Critical
// supersedes plain pattern; the thresholds are nested, not exclusive.
const (
	PatternThreshold         = 3
	CriticalPatternThreshold = 5
)

const (
	noDataMessage     = "No mistakes recorded yet. Add some to see patterns!"
	noPatternsMessage = "No recurring patterns detected yet."
)

// Frequencies counts occurrences of each category. Categories that never
// appear are absent from the result; an empty input yields an empty map.
func Frequencies(categories []category.Category) map[category.Category]int {
	freq := make(map[category.Category]int)
	for _, c := range categories {
		freq[c]++
	}
	return freq
}

// MostFrequent returns the category with the highest occurrence count.
// The second return is false when the input is empty. Ties resolve to the
// category declared first in category.All().
func MostFrequent(categories []category.Category) (category.Category, bool) {
	if len(categories) == 0 {
		return category.Unknown, false
	}

	freq := Frequencies(categories)

	best := category.Unknown
	max := 0
	for _, c := range category.All() {
		if freq[c] > max {
			max = freq[c]
			best = c
		}
	}
	return best, true
}

// IsPattern reports whether a category count qualifies as a recurring
// pattern.
func IsPattern(count int) bool {
	return count >= PatternThreshold
}

// IsCriticalPattern reports whether a category count qualifies as a
// critical pattern. Check this before IsPattern; a critical pattern also
// satisfies IsPattern.
func IsCriticalPattern(count int) bool {
	return count >= CriticalPatternThreshold
}

// Report renders the pattern analysis for direct display. Critical
// patterns are listed first, then plain patterns; a category appears under
// exactly one heading. Within each heading entries are ordered by
// descending count, then declaration order.
func Report(categories []category.Category) string {
	if len(categories) == 0 {
		return noDataMessage
	}

	freq := Frequencies(categories)

	type hit struct {
		category category.Category
		count    int
	}
	var critical, patterns []hit
	for _, c := range category.All() {
		count := freq[c]
		switch {
		case IsCriticalPattern(count):
			critical = append(critical, hit{c, count})
		case IsPattern(count):
			patterns = append(patterns, hit{c, count})
		}
	}

	byCount := func(hits []hit) func(i, j int) bool {
		return func(i, j int) bool { return hits[i].count > hits[j].count }
	}
	sort.SliceStable(critical, byCount(critical))
	sort.SliceStable(patterns, byCount(patterns))

	var b strings.Builder
	if len(critical) > 0 {
		b.WriteString("⚠ CRITICAL PATTERNS:\n")
		for _, h := range critical {
			fmt.Fprintf(&b, "  • %s (%d times)\n", h.category.Display(), h.count)
		}
	}
	if len(patterns) > 0 {
		b.WriteString("Detected Patterns:\n")
		for _, h := range patterns {
			fmt.Fprintf(&b, "  • %s (%d times)\n", h.category.Display(), h.count)
		}
	}
	if len(critical) == 0 && len(patterns) == 0 {
		b.WriteString(noPatternsMessage)
	}

	return b.String()
}
