// Package fs provides file discovery and artifact storage on the local
// filesystem.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jswierad/distill"
)

// HTMLFiles returns the relative paths of all HTML files under inputDir,
// slash-separated and sorted lexicographically. Discovery order is the
// processing order, so it must be stable across runs.
func HTMLFiles(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, distill.Errorf(distill.ENOTFOUND, "input directory not found: %s", inputDir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, distill.Errorf(distill.EINVALID, "not a directory: %s", inputDir)
	}

	var files []string
	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".html" && ext != ".htm" {
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
