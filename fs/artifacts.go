package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jswierad/distill"
)

// LoadArtifacts reads all rendered text artifacts (.md and .txt files)
// under dir, sorted by relative path. The manifest is not an artifact
// and is skipped.
func LoadArtifacts(dir string) ([]*distill.Artifact, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, distill.Errorf(distill.ENOTFOUND, "artifact directory not found: %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, distill.Errorf(distill.EINVALID, "not a directory: %s", dir)
	}

	var artifacts []*distill.Artifact
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, &distill.Artifact{
			Name:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(artifacts) == 0 {
		return nil, distill.Errorf(distill.ENOTFOUND, "no artifacts found in %s", dir)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}
