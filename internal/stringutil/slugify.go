package stringutil

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its ASCII letter and digit runs with
// single hyphens.
func Slugify(name string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// FileSlug slugifies the base name of path without its extension. It
// returns fallback when nothing is left.
func FileSlug(path, fallback string) string {
	base := filepath.Base(path)
	if s := Slugify(strings.TrimSuffix(base, filepath.Ext(base))); s != "" {
		return s
	}
	return fallback
}
