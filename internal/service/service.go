// Package service holds the record CRUD logic: validation, automatic
// category detection, and persistence through the store.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smais007/mistake-pattern-analyzer/internal/analyzer"
	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
	"github.com/smais007/mistake-pattern-analyzer/internal/store"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("mistake not found")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Service keeps the current record set in memory and writes every change
// back through the store.
type Service struct {
	store    *store.Store
	mistakes []mistake.Mistake
}

// New loads existing records from the data file. Corrupted lines are
// returned as issues so the caller can warn; they never fail the load.
func New(s *store.Store) (*Service, []store.LineIssue, error) {
	records, issues, err := s.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	return &Service{store: s, mistakes: records}, issues, nil
}

// Reload re-reads the data file, replacing the in-memory set. Used when
// the file changed outside this process.
func (svc *Service) Reload() ([]store.LineIssue, error) {
	records, issues, err := svc.store.LoadAll()
	if err != nil {
		return nil, err
	}
	svc.mistakes = records
	return issues, nil
}

// Add validates the input, detects the category from the description, and
// persists a new record.
func (svc *Service) Add(description string, severity mistake.Severity, dateStr, resolution string) (mistake.Mistake, error) {
	if err := validateDescription(description); err != nil {
		return mistake.Mistake{}, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return mistake.Mistake{}, err
	}
	if severity == "" {
		return mistake.Mistake{}, &ValidationError{Field: "severity", Reason: "severity must be selected"}
	}

	m := mistake.Mistake{
		ID:          generateID(),
		Description: strings.TrimSpace(description),
		Category:    category.Detect(description),
		Severity:    severity,
		Date:        date,
		Resolution:  strings.TrimSpace(resolution),
	}

	svc.mistakes = append(svc.mistakes, m)
	if err := svc.store.SaveAll(svc.mistakes); err != nil {
		svc.mistakes = svc.mistakes[:len(svc.mistakes)-1]
		return mistake.Mistake{}, err
	}
	return m, nil
}

// UpdateFields carries the optional changes for Update. Nil pointers keep
// the existing value; a non-nil empty Resolution clears it.
type UpdateFields struct {
	Description *string
	Severity    *mistake.Severity
	Date        *string
	Resolution  *string
}

// Update applies partial changes to an existing record. A description
// change re-runs category detection.
func (svc *Service) Update(id string, fields UpdateFields) (mistake.Mistake, error) {
	idx := svc.indexOf(id)
	if idx < 0 {
		return mistake.Mistake{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := svc.mistakes[idx]

	if fields.Description != nil && strings.TrimSpace(*fields.Description) != "" {
		if err := validateDescription(*fields.Description); err != nil {
			return mistake.Mistake{}, err
		}
		updated.Description = strings.TrimSpace(*fields.Description)
		updated.Category = category.Detect(*fields.Description)
	}
	if fields.Severity != nil {
		updated.Severity = *fields.Severity
	}
	if fields.Date != nil && strings.TrimSpace(*fields.Date) != "" {
		date, err := parseDate(*fields.Date)
		if err != nil {
			return mistake.Mistake{}, err
		}
		updated.Date = date
	}
	if fields.Resolution != nil {
		updated.Resolution = strings.TrimSpace(*fields.Resolution)
	}

	prev := svc.mistakes[idx]
	svc.mistakes[idx] = updated
	if err := svc.store.SaveAll(svc.mistakes); err != nil {
		svc.mistakes[idx] = prev
		return mistake.Mistake{}, err
	}
	return updated, nil
}

// Delete removes a record by id.
func (svc *Service) Delete(id string) error {
	idx := svc.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := svc.mistakes[idx]
	svc.mistakes = append(svc.mistakes[:idx], svc.mistakes[idx+1:]...)
	if err := svc.store.SaveAll(svc.mistakes); err != nil {
		svc.mistakes = append(svc.mistakes[:idx], append([]mistake.Mistake{removed}, svc.mistakes[idx:]...)...)
		return err
	}
	return nil
}

// Get returns a record by id.
func (svc *Service) Get(id string) (mistake.Mistake, error) {
	idx := svc.indexOf(id)
	if idx < 0 {
		return mistake.Mistake{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return svc.mistakes[idx], nil
}

// All returns a copy of the current record set.
func (svc *Service) All() []mistake.Mistake {
	out := make([]mistake.Mistake, len(svc.mistakes))
	copy(out, svc.mistakes)
	return out
}

// Count returns the number of records.
func (svc *Service) Count() int {
	return len(svc.mistakes)
}

// Categories projects the category of every current record, in record
// order. This is the analyzer's input.
func (svc *Service) Categories() []category.Category {
	out := make([]category.Category, len(svc.mistakes))
	for i, m := range svc.mistakes {
		out[i] = m.Category
	}
	return out
}

// MostFrequent returns the dominant category of the current record set.
func (svc *Service) MostFrequent() (category.Category, bool) {
	return analyzer.MostFrequent(svc.Categories())
}

// PatternReport renders the analysis report for the current record set.
func (svc *Service) PatternReport() string {
	return analyzer.Report(svc.Categories())
}

func (svc *Service) indexOf(id string) int {
	for i, m := range svc.mistakes {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return &ValidationError{Field: "description", Reason: "description cannot be empty"}
	}
	if len(trimmed) < 5 {
		return &ValidationError{Field: "description", Reason: "description must be at least 5 characters"}
	}
	if len(description) > 500 {
		return &ValidationError{Field: "description", Reason: "description cannot exceed 500 characters"}
	}
	return nil
}

func parseDate(dateStr string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateStr)
	if trimmed == "" {
		return time.Time{}, &ValidationError{Field: "date", Reason: "date cannot be empty"}
	}
	date, err := time.Parse(mistake.DateFormat, trimmed)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "invalid date format, use yyyy-mm-dd (e.g. 2024-01-15)"}
	}
	if date.After(time.Now()) {
		return time.Time{}, &ValidationError{Field: "date", Reason: "date cannot be in the future"}
	}
	return date, nil
}

// generateID returns a short, readable record id like MST-4F2A9C01.
func generateID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "MST-" + strings.ToUpper(raw[:8])
}
