package dialogue

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize trims, lowercases, and strips diacritics. It is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	folded, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// extractOption returns the first candidate whose normalized form is
// contained in the normalized input, or "" when none matches. Candidates
// are tried in vocabulary order and the first containment match wins; a
// shorter candidate that happens to be a substring of the intended term can
// shadow it, which callers must not "fix" with longest-match logic because
// suggestion flows depend on the deterministic first-match behaviour.
func extractOption(text string, candidates []string) string {
	normalized := Normalize(text)
	for _, candidate := range candidates {
		needle := Normalize(candidate)
		if needle != "" && strings.Contains(normalized, needle) {
			return candidate
		}
	}
	return ""
}

func extractBrand(text string, vocab Vocabulary) string {
	return extractOption(text, vocab.Brands())
}

func extractModel(text, brand string, vocab Vocabulary) string {
	if brand == "" {
		return ""
	}
	return extractOption(text, vocab.ModelsForBrand(brand))
}

func extractColor(text string, vocab Vocabulary) string {
	return extractOption(text, vocab.Colors())
}

func extractFuel(text string, vocab Vocabulary) string {
	return extractOption(text, vocab.Fuels())
}

func extractTransmission(text string, vocab Vocabulary) string {
	return extractOption(text, vocab.Transmissions())
}
