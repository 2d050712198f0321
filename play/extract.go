// Package play turns the tiles on a board into a word and a score.
package play

import (
	"strings"

	"github.com/domino14/lineword/board"
)

// GapPlaceholder stands in for an empty square inside a word's span.
const GapPlaceholder = '_'

// Word is the run of squares between the first and last occupied
// positions. Length counts every position in that span, gaps included.
type Word struct {
	Text    string `json:"text"`
	HasGaps bool   `json:"has_gaps"`
	Length  int    `json:"length"`
	First   int    `json:"first"`
	Last    int    `json:"last"`
}

// Empty reports whether no tile was found at all.
func (w Word) Empty() bool {
	return w.Length == 0
}

// Extract finds the played word. Only one run is ever considered; squares
// outside [First, Last] never contribute.
func Extract(b *board.Board) Word {
	first, last := -1, -1
	for i := 0; i < b.Dim(); i++ {
		if b.IsOccupied(i) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return Word{First: -1, Last: -1}
	}
	var sb strings.Builder
	w := Word{First: first, Last: last, Length: last - first + 1}
	for i := first; i <= last; i++ {
		if t, ok := b.TileAt(i); ok {
			sb.WriteRune(t.Letter)
		} else {
			sb.WriteRune(GapPlaceholder)
			w.HasGaps = true
		}
	}
	w.Text = sb.String()
	return w
}
