package lib

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFileNameLen = 128

// ToCamelFileName turns an arbitrary display name into a safe camelCase
// file name: diacritics stripped, non-alphanumerics treated as word
// separators, first word lowercased, capped at 128 characters.
func ToCamelFileName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	// strip diacritics
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var parts []string
	var word strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			word.WriteRune(r)
		} else if word.Len() > 0 {
			parts = append(parts, word.String())
			word.Reset()
		}
	}
	if word.Len() > 0 {
		parts = append(parts, word.String())
	}
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}

	result := b.String()
	if len(result) > maxFileNameLen {
		result = result[:maxFileNameLen]
	}
	return result
}

// ParseImageIDs extracts the numeric ids from image file names of the form
// "<id>.<extension>". Names that do not match are skipped.
func ParseImageIDs(fileNames []string) []int64 {
	ids := make([]int64, 0, len(fileNames))
	for _, name := range fileNames {
		base, _, found := strings.Cut(name, ".")
		if !found {
			base = name
		}
		id, err := strconv.ParseInt(base, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
