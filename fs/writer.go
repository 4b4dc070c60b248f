package fs

import (
	"os"
	"path/filepath"
)

// Writer writes rendered artifacts into an output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a new Writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// OutputDir returns the directory the writer is rooted at.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// EnsureDir creates the output directory if it does not exist.
func (w *Writer) EnsureDir() error {
	return os.MkdirAll(w.outputDir, 0755)
}

// WriteArtifact writes content under the given file name and reports
// whether the file was written. When overwrite is false an existing
// non-empty file is left alone; an existing empty file counts as not
// done and is written again.
func (w *Writer) WriteArtifact(name, content string, overwrite bool) (string, bool, error) {
	path := filepath.Join(w.outputDir, name)

	if !overwrite {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, false, nil
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", false, err
	}
	return path, true, nil
}
