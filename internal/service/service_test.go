package service

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
	"github.com/smais007/mistake-pattern-analyzer/internal/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	home := filepath.Join(t.TempDir(), ".mistakes")
	if err := store.Init(home, false); err != nil {
		t.Fatalf("store.Init failed: %v", err)
	}
	s, err := store.Load(home)
	if err != nil {
		t.Fatalf("store.Load failed: %v", err)
	}
	svc, issues, err := New(s)
	if err != nil {
		t.Fatalf("service.New failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	return svc
}

func today() string {
	return time.Now().Format(mistake.DateFormat)
}

func TestAddDetectsCategory(t *testing.T) {
	svc := testService(t)

	m, err := svc.Add("There was a bug and the code crashed", mistake.SeverityHigh, today(), "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.Category != category.Technical {
		t.Errorf("category = %v, want Technical", m.Category)
	}
	if !strings.HasPrefix(m.ID, "MST-") || len(m.ID) != 12 {
		t.Errorf("unexpected id format: %q", m.ID)
	}
	if svc.Count() != 1 {
		t.Errorf("count = %d", svc.Count())
	}
}

func TestAddPersists(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Add("forgot to prepare the slides", mistake.SeverityLow, today(), "made a checklist"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Reload from disk through a fresh service.
	reloaded, issues, err := New(svc.store)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if reloaded.Count() != 1 {
		t.Fatalf("reloaded count = %d", reloaded.Count())
	}
	got := reloaded.All()[0]
	if got.Category != category.PoorPlanning || got.Resolution != "made a checklist" {
		t.Errorf("reloaded record mismatch: %+v", got)
	}
}

func TestAddValidation(t *testing.T) {
	svc := testService(t)

	cases := []struct {
		name        string
		description string
		severity    mistake.Severity
		date        string
		field       string
	}{
		{"empty description", "", mistake.SeverityLow, today(), "description"},
		{"whitespace description", "   ", mistake.SeverityLow, today(), "description"},
		{"short description", "oops", mistake.SeverityLow, today(), "description"},
		{"long description", strings.Repeat("x", 501), mistake.SeverityLow, today(), "description"},
		{"missing severity", "forgot the thing", "", today(), "severity"},
		{"empty date", "forgot the thing", mistake.SeverityLow, "", "date"},
		{"bad date format", "forgot the thing", mistake.SeverityLow, "15/01/2024", "date"},
		{"future date", "forgot the thing", mistake.SeverityLow, time.Now().AddDate(0, 0, 2).Format(mistake.DateFormat), "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(tc.description, tc.severity, tc.date, "")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}

	if svc.Count() != 0 {
		t.Errorf("rejected input must not persist, count = %d", svc.Count())
	}
}

func TestUpdateRedetectsCategory(t *testing.T) {
	svc := testService(t)
	m, err := svc.Add("I was late to the review", mistake.SeverityMedium, today(), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Category != category.Procrastination {
		t.Fatalf("setup category = %v", m.Category)
	}

	desc := "misunderstood the unclear requirement"
	updated, err := svc.Update(m.ID, UpdateFields{Description: &desc})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Category != category.Communication {
		t.Errorf("category = %v, want Communication after re-detect", updated.Category)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := testService(t)
	m, err := svc.Add("skipped the test run, seemed easy", mistake.SeverityLow, today(), "run CI")
	if err != nil {
		t.Fatal(err)
	}

	sev := mistake.SeverityHigh
	empty := ""
	updated, err := svc.Update(m.ID, UpdateFields{Severity: &sev, Resolution: &empty})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Severity != mistake.SeverityHigh {
		t.Errorf("severity = %v", updated.Severity)
	}
	if updated.Resolution != "" {
		t.Errorf("resolution should be cleared, got %q", updated.Resolution)
	}
	if updated.Description != m.Description || updated.Category != m.Category {
		t.Error("untouched fields must survive")
	}
}

func TestUpdateMissing(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Update("MST-NOPE0000", UpdateFields{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := testService(t)
	m, err := svc.Add("crash in the build", mistake.SeverityHigh, today(), "")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(m.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("count = %d after delete", svc.Count())
	}
	if _, err := svc.Get(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete should fail with ErrNotFound, got %v", err)
	}
}

func TestCategoriesProjection(t *testing.T) {
	svc := testService(t)
	inputs := []string{
		"bug in the parser",
		"another bug, error everywhere",
		"got distracted during standup",
	}
	for _, d := range inputs {
		if _, err := svc.Add(d, mistake.SeverityLow, today(), ""); err != nil {
			t.Fatal(err)
		}
	}

	cats := svc.Categories()
	want := []category.Category{category.Technical, category.Technical, category.LackOfFocus}
	if len(cats) != len(want) {
		t.Fatalf("len = %d", len(cats))
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("cats[%d] = %v, want %v", i, cats[i], want[i])
		}
	}

	got, ok := svc.MostFrequent()
	if !ok || got != category.Technical {
		t.Errorf("MostFrequent = %v, %v", got, ok)
	}
}

func TestPatternReportThroughService(t *testing.T) {
	svc := testService(t)
	if got := svc.PatternReport(); !strings.Contains(got, "No mistakes recorded yet") {
		t.Errorf("empty report = %q", got)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Add("forgot to plan, rushed again", mistake.SeverityMedium, today(), ""); err != nil {
			t.Fatal(err)
		}
	}
	if got := svc.PatternReport(); !strings.Contains(got, "POOR PLANNING (3 times)") {
		t.Errorf("report = %q", got)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
