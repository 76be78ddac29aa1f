package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
	// letters that do not decompose into a base letter and a mark
	slugLetters = strings.NewReplacer("æ", "ae", "ø", "o", "ß", "ss", "đ", "d", "ł", "l")
)

// Slugify turns s into a lowercase, URL-safe identifier. Diacritics are
// stripped, every run of other characters becomes a single hyphen and
// leading or trailing hyphens are removed.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	s = slugLetters.Replace(s)
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
