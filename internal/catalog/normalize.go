package catalog

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeKey canonicalizes a model identifier for comparison. Numeric
// identifiers collapse to their shortest decimal form so "7", "7.0" and
// "7.00" share one key; anything else compares as a trimmed string.
//
// decimalComma declares the expected numeric locale: when set, a single
// comma in an otherwise dot-free identifier is read as the decimal
// separator. It only affects comparison, never displayed text.
func NormalizeKey(s string, decimalComma bool) string {
	s = strings.TrimSpace(s)
	candidate := s
	if decimalComma && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		candidate = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(candidate, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
