package board

import (
	"fmt"
	"os"

	"github.com/domino14/lineword/tilemapping"
)

var (
	ColorSupport = os.Getenv("LINEWORD_DISABLE_COLOR") != "on"
)

// A BonusSquare is the scoring modifier of a square. It is fixed when the
// board is built from its layout string.
type BonusSquare rune

const (
	NoBonus BonusSquare = ' '
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score
	Bonus2WS BonusSquare = '-'
	// BonusCenter is the center star; it scores like a double word.
	BonusCenter BonusSquare = '*'
)

func (b BonusSquare) valid() bool {
	switch b {
	case NoBonus, Bonus3WS, Bonus3LS, Bonus2LS, Bonus2WS, BonusCenter:
		return true
	}
	return false
}

// LetterMultiplier applies to the tile sitting on the square only.
func (b BonusSquare) LetterMultiplier() int {
	switch b {
	case Bonus2LS:
		return 2
	case Bonus3LS:
		return 3
	}
	return 1
}

// WordMultiplier applies to the whole word that covers the square.
func (b BonusSquare) WordMultiplier() int {
	switch b {
	case Bonus2WS, BonusCenter:
		return 2
	case Bonus3WS:
		return 3
	}
	return 1
}

func (b BonusSquare) String() string {
	switch b {
	case NoBonus:
		return "none"
	case Bonus2LS:
		return "double-letter"
	case Bonus3LS:
		return "triple-letter"
	case Bonus2WS:
		return "double-word"
	case Bonus3WS:
		return "triple-word"
	case BonusCenter:
		return "center-star"
	}
	return "?"
}

func (b BonusSquare) displayString() string {
	if b == NoBonus {
		return "."
	}
	if !ColorSupport {
		return string(b)
	}
	switch b {
	case Bonus3WS:
		return fmt.Sprintf("\033[31m%s\033[0m", string(b))
	case Bonus2WS, BonusCenter:
		return fmt.Sprintf("\033[35m%s\033[0m", string(b))
	case Bonus3LS:
		return fmt.Sprintf("\033[34m%s\033[0m", string(b))
	case Bonus2LS:
		return fmt.Sprintf("\033[36m%s\033[0m", string(b))
	default:
		return "?"
	}
}

// PlacedTile is a tile sitting on the board.
type PlacedTile struct {
	Letter rune               `json:"letter"`
	Value  int                `json:"value"`
	TileID tilemapping.TileID `json:"tile_id"`
}

func PlacedFromTile(t tilemapping.Tile) PlacedTile {
	return PlacedTile{Letter: t.Letter, Value: t.Value, TileID: t.ID}
}

// Tile converts back to a rack tile with the same letter, value and id.
func (p PlacedTile) Tile() tilemapping.Tile {
	return tilemapping.Tile{Letter: p.Letter, Value: p.Value, ID: p.TileID}
}

// A Square is a single square on the line. It contains its bonus marking
// and, if occupied, the tile on it.
type Square struct {
	position int
	bonus    BonusSquare
	tile     PlacedTile
	occupied bool
	locked   bool
}

func (s Square) String() string {
	return fmt.Sprintf("<(%d) (%s) %v>", s.position, s.bonus, s.DisplayString())
}

func (s *Square) Position() int {
	return s.position
}

func (s *Square) Bonus() BonusSquare {
	return s.bonus
}

func (s *Square) IsEmpty() bool {
	return !s.occupied
}

func (s *Square) Locked() bool {
	return s.locked
}

// Tile returns the placed tile and whether there is one.
func (s *Square) Tile() (PlacedTile, bool) {
	return s.tile, s.occupied
}

func (s Square) DisplayString() string {
	if !s.occupied {
		return s.bonus.displayString()
	}
	return string(s.tile.Letter)
}
