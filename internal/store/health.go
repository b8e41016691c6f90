package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CheckHealth verifies MISTAKES_HOME structure integrity.
func CheckHealth(home string) []Issue {
	var issues []Issue

	info, err := os.Stat(home)
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("missing directory: %s", home)})
		return issues
	}
	if !info.IsDir() {
		issues = append(issues, Issue{"error", fmt.Sprintf("expected directory but found file: %s", home)})
		return issues
	}

	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("cannot read config.yaml: %v", err)})
		return issues
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("config.yaml is not valid YAML: %v", err)})
		return issues
	}

	s := &Store{Home: home, Config: cfg}
	if s.Config.Storage.DataFile == "" {
		s.Config = DefaultConfig()
	}
	if _, err := os.Stat(s.DataPath()); err != nil {
		// First run: no data file yet. Not a defect.
		return issues
	}

	records, lineIssues, err := s.LoadAll()
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("cannot read data file: %v", err)})
		return issues
	}
	for _, li := range lineIssues {
		issues = append(issues, Issue{"warning", fmt.Sprintf("data file line %d is corrupted: %s", li.Line, li.Reason)})
	}

	seen := make(map[string]bool, len(records))
	for _, m := range records {
		if seen[m.ID] {
			issues = append(issues, Issue{"warning", fmt.Sprintf("duplicate record id: %s", m.ID)})
		}
		seen[m.ID] = true
	}

	return issues
}

// FixIssues attempts to repair simple issues in MISTAKES_HOME.
func FixIssues(home string) []string {
	var fixed []string

	if _, err := os.Stat(home); err != nil {
		if err := os.MkdirAll(home, 0755); err == nil {
			fixed = append(fixed, fmt.Sprintf("recreated missing directory: %s", home))
		}
	}

	cfgPath := filepath.Join(home, "config.yaml")
	if _, err := os.Stat(cfgPath); err != nil {
		cfg := DefaultConfig()
		data, _ := yaml.Marshal(cfg)
		if os.WriteFile(cfgPath, data, 0644) == nil {
			fixed = append(fixed, "recreated missing config.yaml with defaults")
		}
	}

	return fixed
}
