package analyzer

import "github.com/smais007/mistake-pattern-analyzer/internal/category"

// suggestions holds the fixed prevention advice per category. The table is
// compiled in and never mutated.
var suggestions = map[category.Category]string{
	category.Procrastination: "Use time-boxing and deadlines",
	category.PoorPlanning:    "Plan tasks before execution",
	category.Overconfidence:  "Add validation checkpoints",
	category.LackOfFocus:     "Reduce distractions",
	category.Technical:       "Improve testing and code review",
	category.Communication:   "Clarify requirements early",
	category.Unknown:         "Review and analyze the situation",
}

// Suggestion returns the prevention suggestion for a category, or "N/A"
// for a value outside the known set (including the zero value).
func Suggestion(c category.Category) string {
	if s, ok := suggestions[c]; ok {
		return s
	}
	return "N/A"
}
