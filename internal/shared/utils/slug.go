package utils

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unsafeChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphen = regexp.MustCompile(`-+`)
)

// RemoveDiacritics folds accented letters to their base form
// "Mötley Crüe" -> "Motley Crue", "Æther" keeps Æ (no decomposition).
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// GenerateSlug builds a lowercase ascii slug: "Mötley Crüe!" -> "motley-crue"
func GenerateSlug(input string) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := unsafeChars.ReplaceAllString(hyphenated, "-")
	normalized := repeatedHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// CleanFileName makes an uploaded file name safe to use inside an object key.
// The extension is kept, the base name is slugged. Empty names become "file".
func CleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := GenerateSlug(strings.TrimSuffix(name, path.Ext(name)))
	if base == "" {
		base = "file"
	}

	ext = GenerateSlug(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return base
	}
	return base + "." + ext
}
