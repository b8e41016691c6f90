package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	home := filepath.Join(t.TempDir(), ".mistakes")
	if err := Init(home, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func record(id, desc string) mistake.Mistake {
	return mistake.Mistake{
		ID:          id,
		Description: desc,
		Category:    category.Technical,
		Severity:    mistake.SeverityMedium,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInit(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".mistakes")

	if err := Init(home, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Error("expected config.yaml to exist")
	}

	// Second init should fail without force.
	if err := Init(home, false); err == nil {
		t.Error("expected error on duplicate init")
	}
	if err := Init(home, true); err != nil {
		t.Errorf("expected force init to succeed: %v", err)
	}
}

func TestLoadMissingHome(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load should fail for uninitialized home")
	}
}

func TestDataPath(t *testing.T) {
	s := testStore(t)
	if got := s.DataPath(); got != filepath.Join(s.Home, "mistakes_data.txt") {
		t.Errorf("DataPath = %q", got)
	}

	s.Config.Storage.DataFile = "/tmp/elsewhere.txt"
	if got := s.DataPath(); got != "/tmp/elsewhere.txt" {
		t.Errorf("absolute DataPath = %q", got)
	}
}

func TestLoadAllFirstRun(t *testing.T) {
	s := testStore(t)
	records, issues, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 0 || len(issues) != 0 {
		t.Errorf("first run should be empty, got %d records %d issues", len(records), len(issues))
	}
}

func TestSaveAllLoadAll(t *testing.T) {
	s := testStore(t)
	in := []mistake.Mistake{record("MST-AAAA0001", "bug in the code"), record("MST-AAAA0002", "crash at startup")}

	if err := s.SaveAll(in); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	data, err := os.ReadFile(s.DataPath())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Error("data file should start with a header line")
	}

	out, issues, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
	if len(out) != 2 || out[0].ID != "MST-AAAA0001" || out[1].ID != "MST-AAAA0002" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoadAllSkipsCorruptLines(t *testing.T) {
	s := testStore(t)
	lines := []string{
		"# header",
		mistake.EncodeLine(record("MST-AAAA0001", "bug in the code")),
		"garbage line with no fields",
		"",
		mistake.EncodeLine(record("MST-AAAA0002", "crash at startup")),
	}
	if err := os.WriteFile(s.DataPath(), []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	records, issues, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
	if len(issues) != 1 || issues[0].Line != 3 {
		t.Errorf("expected one issue at line 3, got %v", issues)
	}
}

func TestAppend(t *testing.T) {
	s := testStore(t)
	if err := s.Append(record("MST-AAAA0001", "forgot the meeting")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(record("MST-AAAA0002", "rushed the release")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, _, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}

	data, _ := os.ReadFile(s.DataPath())
	if strings.Count(string(data), "#") != 1 {
		t.Error("header should be written exactly once")
	}
}

func TestBackupOnSave(t *testing.T) {
	s := testStore(t)
	if err := s.SaveAll([]mistake.Mistake{record("MST-AAAA0001", "bug")}); err != nil {
		t.Fatal(err)
	}
	// Second save should back up the first file.
	if err := s.SaveAll([]mistake.Mistake{record("MST-AAAA0002", "crash")}); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(s.DataPath() + ".backup")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if !strings.Contains(string(backup), "MST-AAAA0001") {
		t.Error("backup should hold the previous contents")
	}
}

func TestSetConfigValue(t *testing.T) {
	s := testStore(t)

	if err := s.SetConfigValue("storage.data_file", "log.txt"); err != nil {
		t.Fatalf("SetConfigValue failed: %v", err)
	}
	reloaded, err := Load(s.Home)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Config.Storage.DataFile != "log.txt" {
		t.Errorf("data_file = %q", reloaded.Config.Storage.DataFile)
	}

	if err := s.SetConfigValue("storage.backup_on_save", "false"); err != nil {
		t.Fatalf("SetConfigValue failed: %v", err)
	}
	if s.Config.Storage.BackupOnSave {
		t.Error("backup_on_save should be false")
	}

	if err := s.SetConfigValue("nope", "x"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestCheckHealth(t *testing.T) {
	s := testStore(t)
	if issues := CheckHealth(s.Home); len(issues) != 0 {
		t.Errorf("fresh home should be healthy: %v", issues)
	}

	// Corrupt line shows up as a warning.
	bad := "# header\nnot a record\n"
	if err := os.WriteFile(s.DataPath(), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	issues := CheckHealth(s.Home)
	if len(issues) != 1 || issues[0].Severity != "warning" {
		t.Errorf("expected one warning, got %v", issues)
	}

	if issues := CheckHealth(filepath.Join(t.TempDir(), "missing")); len(issues) == 0 {
		t.Error("missing home should report issues")
	}
}

func TestFixIssues(t *testing.T) {
	home := filepath.Join(t.TempDir(), ".mistakes")
	fixed := FixIssues(home)
	if len(fixed) == 0 {
		t.Fatal("expected fixes for missing home")
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Error("config.yaml should be recreated")
	}
}
