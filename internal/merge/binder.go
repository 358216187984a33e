package merge

import (
	"log/slog"
	"math"
	"strings"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck"
)

// Bind populates every placeholder on the slide that appears in the binding
// table. The slide must be a row-local copy; the shared template deck is
// never handed here. Placeholders whose source value is missing keep the
// template's text, and a failure to set one placeholder is logged without
// aborting the rest of the row.
func Bind(slide *deck.Slide, row catalog.ProductRow, bindings map[string]Rule, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, sh := range slide.Shapes() {
		rule, ok := bindings[sh.Name()]
		if !ok {
			continue
		}

		var text string
		if rule.Column == "" {
			text = strings.TrimSpace(row.Model)
		} else {
			v := row.Fields[rule.Column]
			if rule.WholeNumber && v.Numeric {
				v.Num = math.Round(v.Num)
			}
			text = FormatValue(v)
		}
		if text == "" {
			continue
		}
		if rule.Unit != "" {
			text += " " + rule.Unit
		}

		style := deck.TextStyle{
			Font:       FontName,
			Bold:       rule.Bold,
			SizePt:     rule.SizePt,
			AlignRight: rule.AlignRight,
		}
		if err := slide.SetText(sh.Name(), text, style); err != nil {
			logger.Warn("failed to set placeholder",
				"code", row.Code, "shape", sh.Name(), "error", err)
			continue
		}
		logger.Debug("bound placeholder", "code", row.Code, "shape", sh.Name(), "text", text)
	}
}
