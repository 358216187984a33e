package merge

import (
	"math"
	"strconv"
	"strings"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
)

// FormatValue renders a cell for display. Whole-number floats collapse to
// integer text (12.0 -> "12"), other numbers keep their shortest round-trip
// form, text passes through trimmed, and missing values become "".
func FormatValue(v catalog.Value) string {
	if v.Missing() {
		return ""
	}
	if v.Numeric {
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15 {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return strings.TrimSpace(v.Text)
}
