package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// NormalizeToken folds width and case and strips all whitespace. Manual
// entry mixes "3.2 X 350", "3.2x350" and the occasional full-width digit;
// all of them must match.
func NormalizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, FoldName(s))
}

// FoldName folds width and case but keeps word breaks, so substring tests
// cannot match across two words
func FoldName(s string) string {
	// Casers carry state and are not safe to share.
	return cases.Upper(language.Und).String(width.Fold.String(s))
}

// ProductKey builds the finished-goods lookup key for a product and size
func ProductKey(productName, size string) ItemKey {
	return ItemKey(NormalizeToken(productName) + "|" + NormalizeToken(size))
}

// MaterialKey builds the lookup key for a packing or raw material id
func MaterialKey(itemID string) ItemKey {
	return ItemKey(NormalizeToken(itemID))
}
