// Package category implements rule-based mistake classification.
// A static keyword table maps free-text descriptions to a closed set of
// category labels; matching is case-insensitive substring containment.
package category

import (
	"fmt"
	"strings"
)

// Category labels a mistake. The string form is the persisted on-disk
// name; renaming a value is a breaking change to existing data files.
type Category string

const (
	Procrastination Category = "PROCRASTINATION"
	PoorPlanning    Category = "POOR_PLANNING"
	Overconfidence  Category = "OVERCONFIDENCE"
	LackOfFocus     Category = "LACK_OF_FOCUS"
	Technical       Category = "TECHNICAL"
	Communication   Category = "COMMUNICATION"
	Unknown         Category = "UNKNOWN"
)

// All returns every category in declaration order. This order is the
// tie-break order for Detect and for frequency analysis, so it must stay
// stable.
func All() []Category {
	return []Category{
		Procrastination,
		PoorPlanning,
		Overconfidence,
		LackOfFocus,
		Technical,
		Communication,
		Unknown,
	}
}

// Parse converts a stored category name back to a Category.
func Parse(s string) (Category, error) {
	for _, c := range All() {
		if s == string(c) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("unknown category: %q", s)
}

// Display renders the category name for humans (underscores become spaces).
func (c Category) Display() string {
	return strings.ReplaceAll(string(c), "_", " ")
}
