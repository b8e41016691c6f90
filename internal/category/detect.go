package category

import "strings"

// keywordTable maps each category to the keywords that indicate it.
// Entries are scanned in declaration order; that order breaks scoring ties
// in Detect. Keywords are lowercase and matched as substrings, so a keyword
// may overlap between categories; the per-category match count decides.
var keywordTable = []struct {
	category Category
	keywords []string
}{
	{Procrastination, []string{
		"late", "delay", "delayed", "postpone", "postponed",
		"procrastinate", "procrastinated", "put off", "tomorrow",
	}},
	{PoorPlanning, []string{
		"forgot", "forgotten", "rushed", "rush", "hurry", "hurried",
		"no plan", "unplanned", "last minute", "unprepared",
	}},
	{Overconfidence, []string{
		"assumed", "assume", "ignored", "ignore", "skipped",
		"skip", "overconfident", "easy", "obvious", "didn't check",
	}},
	{LackOfFocus, []string{
		"distracted", "distraction", "unfocused", "lost focus",
		"interrupted", "multitask", "multitasking", "sidetracked",
	}},
	{Technical, []string{
		"bug", "error", "crash", "exception", "code", "syntax",
		"compile", "runtime", "debug", "fix", "broken", "failed",
	}},
	{Communication, []string{
		"misunderstood", "misunderstand", "miscommunication",
		"unclear", "confused", "wrong requirement", "didn't ask",
		"should have asked", "misread", "misinterpreted",
	}},
}

// Detect classifies a mistake description by counting keyword hits per
// category and returning the category with the strictly highest count.
// Each configured keyword contributes at most one point no matter how often
// it occurs in the text. A blank description or one with no keyword hits
// yields Unknown. Ties go to the category declared first in keywordTable.
func Detect(description string) Category {
	if strings.TrimSpace(description) == "" {
		return Unknown
	}

	lower := strings.ToLower(description)

	best := Unknown
	bestCount := 0
	for _, entry := range keywordTable {
		count := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.category
		}
	}

	return best
}
