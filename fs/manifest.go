package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jswierad/distill"
)

// ManifestName is the file name of the per-run manifest inside the
// output directory.
const ManifestName = "manifest.json"

// WriteManifest serializes the run manifest as indented JSON into the
// output directory and returns its path.
func WriteManifest(outputDir string, m *distill.RunManifest) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')

	path := filepath.Join(outputDir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
