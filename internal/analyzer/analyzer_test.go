package analyzer

import (
	"strings"
	"testing"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
)

func TestFrequencies(t *testing.T) {
	if got := Frequencies(nil); len(got) != 0 {
		t.Errorf("Frequencies(nil) = %v, want empty", got)
	}

	got := Frequencies([]category.Category{
		category.Technical, category.Technical, category.Communication,
	})
	if got[category.Technical] != 2 {
		t.Errorf("Technical = %d, want 2", got[category.Technical])
	}
	if got[category.Communication] != 1 {
		t.Errorf("Communication = %d, want 1", got[category.Communication])
	}
	if _, present := got[category.Procrastination]; present {
		t.Error("absent categories should not appear in the tally")
	}
}

func TestMostFrequent(t *testing.T) {
	if _, ok := MostFrequent(nil); ok {
		t.Error("MostFrequent(nil) should report no category")
	}

	got, ok := MostFrequent([]category.Category{
		category.Technical, category.Technical, category.Communication,
	})
	if !ok || got != category.Technical {
		t.Errorf("MostFrequent = %v, %v; want Technical, true", got, ok)
	}
}

func TestMostFrequentTieBreak(t *testing.T) {
	// PoorPlanning and Technical appear twice each; declaration order
	// puts PoorPlanning first.
	got, ok := MostFrequent([]category.Category{
		category.Technical, category.PoorPlanning,
		category.Technical, category.PoorPlanning,
	})
	if !ok || got != category.PoorPlanning {
		t.Errorf("MostFrequent = %v, %v; want PoorPlanning on tie", got, ok)
	}
}

func TestThresholdBoundaries(t *testing.T) {
	if IsPattern(2) {
		t.Error("IsPattern(2) should be false")
	}
	if !IsPattern(3) {
		t.Error("IsPattern(3) should be true")
	}
	if IsCriticalPattern(4) {
		t.Error("IsCriticalPattern(4) should be false")
	}
	if !IsCriticalPattern(5) {
		t.Error("IsCriticalPattern(5) should be true")
	}
	// Nesting: every critical pattern count is also a pattern count.
	if !IsPattern(5) {
		t.Error("IsPattern(5) should be true")
	}
}

func TestReportEmpty(t *testing.T) {
	if got := Report(nil); got != noDataMessage {
		t.Errorf("Report(nil) = %q", got)
	}
}

func TestReportBelowThreshold(t *testing.T) {
	got := Report([]category.Category{category.Procrastination})
	if got != noPatternsMessage {
		t.Errorf("Report = %q, want no-patterns message", got)
	}
}

func repeat(c category.Category, n int) []category.Category {
	out := make([]category.Category, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestReportCriticalExcludesPlainsListing(t *testing.T) {
	cats := repeat(category.Technical, 5)
	got := Report(cats)

	if !strings.Contains(got, "CRITICAL PATTERNS") {
		t.Fatalf("report missing critical heading: %q", got)
	}
	if !strings.Contains(got, "TECHNICAL (5 times)") {
		t.Errorf("report missing critical entry: %q", got)
	}
	if strings.Contains(got, "Detected Patterns") {
		t.Errorf("critical category must not also appear as plain pattern: %q", got)
	}
}

func TestReportBothSections(t *testing.T) {
	cats := append(repeat(category.Technical, 6), repeat(category.PoorPlanning, 3)...)
	got := Report(cats)

	if !strings.Contains(got, "TECHNICAL (6 times)") {
		t.Errorf("missing critical entry: %q", got)
	}
	if !strings.Contains(got, "POOR PLANNING (3 times)") {
		t.Errorf("missing pattern entry: %q", got)
	}
	if strings.Index(got, "CRITICAL PATTERNS") > strings.Index(got, "Detected Patterns") {
		t.Errorf("critical section must come first: %q", got)
	}
}

func TestReportOrdering(t *testing.T) {
	// Communication repeats more often than Procrastination, so it lists
	// first despite being declared later.
	cats := append(repeat(category.Procrastination, 3), repeat(category.Communication, 4)...)
	got := Report(cats)

	comm := strings.Index(got, "COMMUNICATION")
	proc := strings.Index(got, "PROCRASTINATION")
	if comm == -1 || proc == -1 {
		t.Fatalf("missing entries: %q", got)
	}
	if comm > proc {
		t.Errorf("higher count should list first: %q", got)
	}
}

func TestReportDeterministic(t *testing.T) {
	cats := append(repeat(category.Technical, 5), repeat(category.LackOfFocus, 3)...)
	if Report(cats) != Report(cats) {
		t.Error("Report should be deterministic for identical input")
	}
}

func TestSuggestion(t *testing.T) {
	if got := Suggestion(category.Technical); got != "Improve testing and code review" {
		t.Errorf("Suggestion(Technical) = %q", got)
	}
	if got := Suggestion(category.Unknown); got != "Review and analyze the situation" {
		t.Errorf("Suggestion(Unknown) = %q", got)
	}
	if got := Suggestion(category.Category("")); got != "N/A" {
		t.Errorf("Suggestion(zero value) = %q, want N/A", got)
	}

	// Every declared category has a dedicated suggestion.
	for _, c := range category.All() {
		if Suggestion(c) == "N/A" {
			t.Errorf("category %v missing suggestion", c)
		}
	}
}
