package chunker

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// splitElement splits el into pieces of at most limit runes.
// Pieces keep the element's category and depth.
func splitElement(el domain.Element, limit int) []domain.Element {
	if runeLen(el.Text) <= limit {
		return []domain.Element{el}
	}

	parts := splitText(el.Text, limit)
	out := make([]domain.Element, 0, len(parts))
	for _, p := range parts {
		piece := el
		piece.Text = p
		out = append(out, piece)
	}
	return out
}

// splitText cuts s into pieces of at most limit runes.
// Cuts happen at the last whitespace inside the window; a window with no
// whitespace is cut hard. Whitespace at the cut is dropped.
func splitText(s string, limit int) []string {
	var parts []string
	rest := []rune(strings.TrimSpace(s))

	for len(rest) > limit {
		cut := lastSpace(rest[:limit+1])
		next := cut + 1
		if cut <= 0 {
			cut, next = limit, limit
		}

		if piece := strings.TrimRightFunc(string(rest[:cut]), unicode.IsSpace); piece != "" {
			parts = append(parts, piece)
		}
		rest = []rune(strings.TrimLeftFunc(string(rest[next:]), unicode.IsSpace))
	}

	if len(rest) > 0 {
		parts = append(parts, string(rest))
	}
	return parts
}

// lastSpace returns the index of the last whitespace rune, or -1.
func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}
