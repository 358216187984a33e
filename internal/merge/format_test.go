package merge

import (
	"math"
	"testing"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   catalog.Value
		want string
	}{
		{"whole float collapses", catalog.Value{Num: 12.0, Numeric: true}, "12"},
		{"fraction keeps shortest form", catalog.Value{Num: 12.5, Numeric: true}, "12.5"},
		{"trailing zeros dropped", catalog.Value{Num: 7.50, Numeric: true}, "7.5"},
		{"negative whole", catalog.Value{Num: -3.0, Numeric: true}, "-3"},
		{"text trimmed", catalog.Value{Text: "  B-2041  "}, "B-2041"},
		{"empty text", catalog.Value{Text: "   "}, ""},
		{"missing numeric", catalog.Value{Num: math.NaN(), Numeric: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
