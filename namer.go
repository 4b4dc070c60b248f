package distill

import (
	"fmt"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FlatName derives a deterministic, collision-safe output filename from an
// input's relative path. Path separators become double underscores, the
// file extension is stripped from the final segment, and the first eight
// hex characters of an xxhash of the unmodified relative path are appended
// so that distinct paths flattening to the same stem stay distinct.
//
// Example: FlatName("news/a.html", ".md") → "news__a__3f2a9c1d.md".
//
// The hash covers the path string, not file contents, so re-running on an
// unchanged tree reproduces identical names and overwrite-based re-runs
// stay safe. relPath must use forward-slash separators.
func FlatName(relPath, ext string) string {
	stem := strings.ReplaceAll(relPath, "/", "__")
	if oldExt := path.Ext(relPath); oldExt != "" {
		stem = strings.TrimSuffix(stem, oldExt)
	}
	sum := fmt.Sprintf("%016x", xxhash.Sum64String(relPath))
	return stem + "__" + sum[:8] + ext
}
