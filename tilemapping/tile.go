package tilemapping

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BlankLetter is how a blank tile is written in distributions and racks.
const BlankLetter = '?'

// TileID identifies one physical tile for as long as the game lasts. IDs are
// handed out when the bag is built and are never reused.
type TileID int

// A TileDefinition is one row of a letter distribution.
type TileDefinition struct {
	Letter rune
	Value  int
	Count  int
}

// A Tile is a single drawn (or drawable) tile.
type Tile struct {
	Letter rune   `json:"letter"`
	Value  int    `json:"value"`
	ID     TileID `json:"id"`
}

func (t Tile) String() string {
	return fmt.Sprintf("%c%d#%d", t.Letter, t.Value, t.ID)
}

// NormalizeLetter upper-cases a single-letter string and returns its rune.
func NormalizeLetter(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single letter", s)
	}
	// Casers carry state, so each call gets its own.
	r, _ := utf8.DecodeRuneInString(cases.Upper(language.Und).String(s))
	return r, nil
}

// TilesString returns the letters of the tiles, in order.
func TilesString(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		b.WriteRune(t.Letter)
	}
	return b.String()
}
