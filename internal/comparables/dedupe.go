package comparables

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dedupeNormalizer strips diacritics so accented French spellings
// collapse onto their plain forms ("Société" / "Societe").
var dedupeNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DedupeKey normalizes a company name for deduplication: diacritics
// folded, lowercased, every non-alphanumeric rune stripped. "Acme Corp",
// "ACME CORP" and "Acme-Corp" all share one key; first occurrence wins.
func DedupeKey(name string) string {
	folded, _, err := transform.String(dedupeNormalizer, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
