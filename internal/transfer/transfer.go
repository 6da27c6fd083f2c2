// Package transfer moves CSV text between collections and the file system.
package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	csvExtension   = ".csv"
	fileNameLayout = "2006-01-02"
)

// ErrNotCSV is returned when a file offered for import is not a .csv file.
var ErrNotCSV = errors.New("only .csv files can be imported")

// ExportFileName returns "<stem>_db_<YYYY-MM-DD>.csv" for the local date of now.
func ExportFileName(stem string, now time.Time) string {
	return fmt.Sprintf("%s_db_%s%s", stem, now.Format(fileNameLayout), csvExtension)
}

// SeedFileName returns the companion file probed when seeding a kind, e.g. "music_db.csv".
func SeedFileName(stem string) string {
	return stem + "_db" + csvExtension
}

// WriteExport writes text to dir/name, creating dir when needed, and returns the path.
func WriteExport(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// CheckCSVName returns ErrNotCSV unless name has a .csv extension, in any case.
func CheckCSVName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), csvExtension) {
		return fmt.Errorf("%w: %s", ErrNotCSV, filepath.Base(name))
	}
	return nil
}

// ReadCSV returns the raw bytes of a .csv file. Decoding is left to the importer.
func ReadCSV(path string) ([]byte, error) {
	if err := CheckCSVName(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return raw, nil
}
