// Package naming turns display strings into lowercase, underscore separated
// identifiers usable as Go names and subtest names.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TestPrefix starts every generated top-level test function.
const TestPrefix = "Test_"

// Sanitize converts a display string to snake case. Accents are folded,
// words break at non-alphanumeric runes and at case changes, and the result
// is lowercased. Collisions are not detected.
func Sanitize(display string) string {
	// Transformers and casers are stateful, so each call gets its own.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, display)
	if err != nil {
		folded = display
	}
	lower := cases.Lower(language.Und)

	rs := []rune(folded)
	var words []string
	var word []rune
	flush := func() {
		if len(word) > 0 {
			words = append(words, lower.String(string(word)))
			word = word[:0]
		}
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(word) > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				// HTTPServer -> http_server
				flush()
			}
		}
		word = append(word, r)
	}
	flush()
	return strings.Join(words, "_")
}

// TestFunc returns the generated function name for a top-level scope.
func TestFunc(name string) string {
	return TestPrefix + name
}
