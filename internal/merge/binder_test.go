package merge

import (
	"math"
	"testing"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck/decktest"

	"github.com/stretchr/testify/assert"
)

func bindFixture(t *testing.T) *deck.Slide {
	t.Helper()
	d := openFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{
			{Name: PlaceholderModel, Text: "7"},
			{Name: "weight", Text: "X kg"},
			{Name: "depth", Text: "X cm"},
			{Name: "volume", Text: "X l"},
			{Name: "decoration", Text: "ribbon"},
		}},
	})
	return d.Clone().Slides()[0]
}

func testRow() catalog.ProductRow {
	return catalog.ProductRow{
		Model: " 7 ",
		Code:  "B-2041",
		Fields: map[string]catalog.Value{
			catalog.ColumnWeight: {Num: 12.5, Numeric: true},
			catalog.ColumnDepth:  {Num: 17.4, Numeric: true},
			catalog.ColumnVolume: {Num: math.NaN(), Numeric: true},
		},
	}
}

func TestBind_FormatsUnitsAndRounding(t *testing.T) {
	slide := bindFixture(t)
	Bind(slide, testRow(), DefaultBindings(), nil)

	assert.Equal(t, "12.5 kg", slide.Shape("weight").Text())
	assert.Equal(t, "17 cm", slide.Shape("depth").Text(), "depth rounds to whole centimeters")
	assert.Equal(t, "7", slide.Shape(PlaceholderModel).Text(), "model text is trimmed, no unit")
}

func TestBind_MissingValueKeepsTemplateText(t *testing.T) {
	slide := bindFixture(t)
	Bind(slide, testRow(), DefaultBindings(), nil)

	assert.Equal(t, "X l", slide.Shape("volume").Text())
}

func TestBind_UnlistedShapeUntouched(t *testing.T) {
	slide := bindFixture(t)
	Bind(slide, testRow(), DefaultBindings(), nil)

	assert.Equal(t, "ribbon", slide.Shape("decoration").Text())
}

func TestBind_CustomRule(t *testing.T) {
	slide := bindFixture(t)
	bindings := map[string]Rule{
		"weight": {Column: catalog.ColumnWeight, Unit: "g"},
	}
	Bind(slide, testRow(), bindings, nil)

	assert.Equal(t, "12.5 g", slide.Shape("weight").Text())
	assert.Equal(t, "X cm", slide.Shape("depth").Text())
}
