package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON writes the structured report (§6.3) to path atomically: the
// JSON is written to a temp file in the same directory, then renamed into
// place, so a reader never observes a partially written report.
func (r Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return writeAtomic(path, data)
}

// WriteNameList writes the alphabetically sorted name-only list (§6.3) to
// path atomically, one name per line with a trailing newline.
func (r Report) WriteNameList(path string) error {
	names := r.Names()
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return writeAtomic(path, []byte(b.String()))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming into place %s: %w", path, err)
	}
	return nil
}
