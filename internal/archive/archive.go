// Package archive exports and imports the durable records as one JSON document.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// FileName is the default export file name
const FileName = "tomodoro_data.json"

// Export writes records as indented JSON
func Export(w io.Writer, records domain.Records) error {
	if records.Tasks == nil {
		records.Tasks = []domain.Task{}
	}
	if records.Presets == nil {
		records.Presets = []domain.Preset{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding archive: %w", err)
	}
	return nil
}

// Import reads an archive. Fields the archive does not carry keep their
// value from current.
func Import(r io.Reader, current domain.Records) (domain.Records, error) {
	var doc struct {
		Settings *domain.Settings `json:"settings"`
		Stats    *domain.Stats    `json:"stats"`
		Tasks    *[]domain.Task   `json:"tasks"`
		Presets  *[]domain.Preset `json:"presets"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return current, fmt.Errorf("decoding archive: %w", err)
	}

	imported := current
	if doc.Settings != nil {
		imported.Settings = doc.Settings.Normalize()
	}
	if doc.Stats != nil {
		imported.Stats = *doc.Stats
	}
	if doc.Tasks != nil {
		imported.Tasks = *doc.Tasks
	}
	if doc.Presets != nil {
		imported.Presets = *doc.Presets
	}
	return imported, nil
}

// ExportFile writes records to dir/FileName and returns the path
func ExportFile(dir string, records domain.Records) (string, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Export(f, records); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ImportFile reads an archive from path
func ImportFile(path string, current domain.Records) (domain.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return current, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Import(f, current)
}
