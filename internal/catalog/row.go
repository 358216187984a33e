package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Column names expected in the catalog spreadsheet. Header cells are matched
// after trimming surrounding whitespace.
const (
	ColumnModel          = "Model"
	ColumnCode           = "Code"
	ColumnWeight         = "Weight (kg)"
	ColumnWidth          = "Width"
	ColumnHeight         = "Height"
	ColumnDepth          = "Depth"
	ColumnStrapWidth     = "Strap width"
	ColumnStrapMaxLength = "Strap max length"
	ColumnStrapMinLength = "Strap min length"
	ColumnVolume         = "Volume (l)"
	ColumnEarHeight      = "Ear height"
	ColumnEarWidth       = "Ear width"
	ColumnEarBase        = "Ear base"
)

// RequiredColumns returns the columns every exportable row must carry.
// Volume and ear measurements are optional; bags without them simply keep
// the template's placeholder text.
func RequiredColumns() []string {
	return []string{
		ColumnModel,
		ColumnCode,
		ColumnWeight,
		ColumnWidth,
		ColumnHeight,
		ColumnDepth,
		ColumnStrapWidth,
		ColumnStrapMaxLength,
		ColumnStrapMinLength,
	}
}

// MeasurementColumns returns every column that can feed a slide placeholder.
func MeasurementColumns() []string {
	return []string{
		ColumnWeight,
		ColumnWidth,
		ColumnHeight,
		ColumnDepth,
		ColumnStrapWidth,
		ColumnStrapMaxLength,
		ColumnStrapMinLength,
		ColumnVolume,
		ColumnEarHeight,
		ColumnEarWidth,
		ColumnEarBase,
	}
}

// Value is one catalog cell. Spreadsheet cells arrive as text; numeric cells
// additionally carry their parsed value so formatting can collapse "12.0"
// style floats.
type Value struct {
	Text    string
	Num     float64
	Numeric bool
}

// ParseValue interprets a raw cell.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{Text: trimmed, Num: f, Numeric: true}
	}
	return Value{Text: trimmed}
}

// Missing reports whether the cell holds no usable value. NaN counts as
// missing, matching how spreadsheet tools export empty numeric cells.
func (v Value) Missing() bool {
	if v.Numeric {
		return math.IsNaN(v.Num)
	}
	return strings.TrimSpace(v.Text) == ""
}

// ProductRow is one catalog item ready for binding.
type ProductRow struct {
	// Model is the raw model identifier as it appeared in the sheet.
	Model string
	// Code names the output artifacts for this row.
	Code string
	// Fields maps measurement column name to its cell value.
	Fields map[string]Value
}

// MatchKey returns the normalized model identifier used for grouping and
// slide matching.
func (r ProductRow) MatchKey(decimalComma bool) string {
	return NormalizeKey(r.Model, decimalComma)
}

// ModelGroup is a non-empty ordered run of rows sharing one match key.
type ModelGroup struct {
	Key  string
	Rows []ProductRow
}
