package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
)

// fileHeader is written as the first line of the data file. Lines starting
// with '#' are skipped on load, so the header doubles as a comment.
const fileHeader = "# Mistake Pattern Analyzer Data File - DO NOT EDIT MANUALLY"

// LineIssue records a data-file line that could not be parsed.
type LineIssue struct {
	Line   int
	Reason string
}

// LoadAll reads every record from the data file. A missing file is the
// first-run case and yields an empty set. Corrupted lines are skipped and
// reported as issues rather than failing the whole load.
func (s *Store) LoadAll() ([]mistake.Mistake, []LineIssue, error) {
	f, err := os.Open(s.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("cannot read data file: %w", err)
	}
	defer f.Close()

	var (
		records []mistake.Mistake
		issues  []LineIssue
	)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		m, err := mistake.DecodeLine(line)
		if err != nil {
			issues = append(issues, LineIssue{Line: lineNo, Reason: err.Error()})
			continue
		}
		records = append(records, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("cannot read data file: %w", err)
	}
	return records, issues, nil
}

// SaveAll rewrites the data file with the given records. When
// backup_on_save is enabled the previous file is copied aside first.
func (s *Store) SaveAll(records []mistake.Mistake) error {
	if s.Config.Storage.BackupOnSave {
		if _, err := os.Stat(s.DataPath()); err == nil {
			if _, err := s.Backup(); err != nil {
				return err
			}
		}
	}

	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString("\n")
	for _, m := range records {
		b.WriteString(mistake.EncodeLine(m))
		b.WriteString("\n")
	}

	if err := os.WriteFile(s.DataPath(), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to save data file: %w", err)
	}
	return nil
}

// Append adds a single record without rewriting the file, writing the
// header first when the file is new or empty.
func (s *Store) Append(m mistake.Mistake) error {
	info, err := os.Stat(s.DataPath())
	needsHeader := err != nil || info.Size() == 0

	f, err := os.OpenFile(s.DataPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, fileHeader); err != nil {
			return fmt.Errorf("failed to append to data file: %w", err)
		}
	}
	if _, err := fmt.Fprintln(f, mistake.EncodeLine(m)); err != nil {
		return fmt.Errorf("failed to append to data file: %w", err)
	}
	return nil
}

// Backup copies the data file to <data_file>.backup and returns the
// backup path.
func (s *Store) Backup() (string, error) {
	src, err := os.Open(s.DataPath())
	if err != nil {
		return "", fmt.Errorf("cannot open data file for backup: %w", err)
	}
	defer src.Close()

	backupPath := s.DataPath() + ".backup"
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("cannot create backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("backup copy failed: %w", err)
	}
	return backupPath, nil
}
