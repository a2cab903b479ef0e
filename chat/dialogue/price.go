package dialogue

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PriceRange is an inclusive price interval. Max is +Inf when the range is
// open above.
type PriceRange struct {
	Min float64
	Max float64
}

// The patterns run against normalized (lowercased, accent-stripped) text,
// so "até"/"máximo" arrive as "ate"/"maximo". Numeric literals follow the
// pt-BR convention: "." thousands separator, "," decimal separator.
var (
	rangePattern = regexp.MustCompile(`(?:entre|de)\s*(?:r\$\s*)?(\d+[.,]?\d*)\s*(?:a|ate|e)\s*(?:r\$\s*)?(\d+[.,]?\d*)`)
	upToPattern  = regexp.MustCompile(`(?:ate|maximo)\s*(?:r\$\s*)?(\d+[.,]?\d*)\s*(mil|k)?`)
	abovePattern = regexp.MustCompile(`(?:acima de|minimo)\s*(?:r\$\s*)?(\d+[.,]?\d*)\s*(mil|k)?`)
	barePattern  = regexp.MustCompile(`(?:r\$\s*)?(\d+[.,]?\d*)\s*(mil|k)`)

	upperMarker = regexp.MustCompile(`ate|maximo`)
)

// ExtractPriceRange parses a price range from free text. Patterns are tried
// in order and the first that yields parseable numbers wins; a parse
// failure falls through to the next pattern. Returns ok=false when nothing
// matches.
func ExtractPriceRange(text string) (PriceRange, bool) {
	normalized := Normalize(text)

	if m := rangePattern.FindStringSubmatch(normalized); m != nil {
		min, errMin := parseAmount(m[1])
		max, errMax := parseAmount(m[2])
		if errMin == nil && errMax == nil {
			return PriceRange{Min: min, Max: max}, true
		}
	}

	if m := upToPattern.FindStringSubmatch(normalized); m != nil {
		if v, err := parseAmount(m[1]); err == nil {
			return PriceRange{Min: 0, Max: v * suffixScale(m[2])}, true
		}
	}

	if m := abovePattern.FindStringSubmatch(normalized); m != nil {
		if v, err := parseAmount(m[1]); err == nil {
			return PriceRange{Min: v * suffixScale(m[2]), Max: math.Inf(1)}, true
		}
	}

	if m := barePattern.FindStringSubmatch(normalized); m != nil {
		if v, err := parseAmount(m[1]); err == nil {
			v *= 1000
			// Direction is decided by an explicit upper-bound marker
			// anywhere in the text; otherwise it is a lower bound.
			if upperMarker.MatchString(normalized) {
				return PriceRange{Min: 0, Max: v}, true
			}
			return PriceRange{Min: v, Max: math.Inf(1)}, true
		}
	}

	return PriceRange{}, false
}

// parseAmount converts a pt-BR numeric literal: thousands "." removed,
// decimal "," converted, then parsed as a float.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}

func suffixScale(suffix string) float64 {
	if suffix == "mil" || suffix == "k" {
		return 1000
	}
	return 1
}
