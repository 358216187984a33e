package merge

import (
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck"
)

// FindSlide scans the deck in slide order and returns the index of the first
// slide whose model placeholder text matches key after normalization. The
// scan stops at the first hit, so duplicate matches deterministically
// resolve to the lowest slide index. A miss is not an error; the caller
// decides whether to skip or abort.
func FindSlide(d *deck.Deck, key string, decimalComma bool) (int, bool) {
	want := catalog.NormalizeKey(key, decimalComma)
	for i, slide := range d.Slides() {
		sh := slide.Shape(PlaceholderModel)
		if sh == nil || !sh.HasText() {
			continue
		}
		if catalog.NormalizeKey(sh.Text(), decimalComma) == want {
			return i, true
		}
	}
	return 0, false
}
