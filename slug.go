package distill

import (
	"regexp"
	"strings"
)

const maxSlugLen = 100

var (
	// \p{L}\p{N} rather than \w: Go's \w is ASCII-only and would strip
	// every letter from non-Latin titles.
	slugSpecials = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
)

// Slugify converts an article title into a filesystem-friendly name:
// lowercase, special characters removed, spaces and hyphen runs replaced
// with underscores, capped at 100 characters. Returns "untitled" when
// nothing usable remains.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = slugSpecials.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "_")
	slug = slugHyphens.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if runes := []rune(slug); len(runes) > maxSlugLen {
		slug = string(runes[:maxSlugLen])
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}
