package merge

import "github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"

// PlaceholderModel is the shape that carries the slide's model identifier.
// Its displayed text is the match key for the whole slide.
const PlaceholderModel = "ModelNumber"

// FontName is the fixed typeface applied to every bound placeholder.
const FontName = "Open Sans"

const (
	// SizeDimension is the point size for dimensional placeholders.
	SizeDimension = 44
	// SizeWeight is the smaller point size for the weight placeholder.
	SizeWeight = 28
)

// Rule describes how one placeholder is populated and styled. The binding
// table is deployment configuration, not user input.
type Rule struct {
	// Column is the source measurement column; empty means the row's model
	// identifier itself.
	Column string
	// Unit is appended after the formatted value, separated by a space.
	Unit string
	// WholeNumber rounds numeric values to the nearest integer before
	// formatting (depth is printed in whole centimeters).
	WholeNumber bool
	// AlignRight right-aligns the placeholder's paragraph.
	AlignRight bool
	Bold       bool
	// SizePt overrides the run's font size; zero keeps the template's size.
	SizePt int
}

// DefaultBindings returns the placeholder binding table. Placeholder names
// are case-sensitive; shapes not listed here are never touched.
func DefaultBindings() map[string]Rule {
	return map[string]Rule{
		"weight": {Column: catalog.ColumnWeight, Unit: "kg", Bold: true, SizePt: SizeWeight},
		"width":  {Column: catalog.ColumnWidth, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"height": {Column: catalog.ColumnHeight, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"depth": {
			Column: catalog.ColumnDepth, Unit: "cm",
			WholeNumber: true, AlignRight: true, Bold: true, SizePt: SizeDimension,
		},
		"strap width": {
			Column: catalog.ColumnStrapWidth, Unit: "cm",
			AlignRight: true, Bold: true, SizePt: SizeDimension,
		},
		"strap max length": {Column: catalog.ColumnStrapMaxLength, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"strap min length": {Column: catalog.ColumnStrapMinLength, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"volume":           {Column: catalog.ColumnVolume, Unit: "l", Bold: true, SizePt: SizeDimension},
		"ear height":       {Column: catalog.ColumnEarHeight, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"ear width":        {Column: catalog.ColumnEarWidth, Unit: "cm", Bold: true, SizePt: SizeDimension},
		"ear base":         {Column: catalog.ColumnEarBase, Unit: "cm", Bold: true, SizePt: SizeDimension},
		PlaceholderModel:   {Bold: true},
	}
}
