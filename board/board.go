// Package board holds the single line of scoring squares and the tiles
// placed on it.
package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SquareModifier is the name the scorer uses for a square's bonus.
type SquareModifier = BonusSquare

var (
	ErrPositionOutOfRange = errors.New("position is off the board")
	ErrEmptySquare        = errors.New("square is empty")
	ErrBadLayout          = errors.New("bad board layout")
)

// OccupiedSquareError is returned when placing onto a square that already
// holds a tile.
type OccupiedSquareError struct {
	Position int
	Letter   rune
}

func (e *OccupiedSquareError) Error() string {
	return fmt.Sprintf("square %d is already occupied by %c", e.Position, e.Letter)
}

// LockedSquareError is returned when placing onto or removing from a square
// that was locked by a submitted word.
type LockedSquareError struct {
	Position int
}

func (e *LockedSquareError) Error() string {
	return fmt.Sprintf("square %d is locked", e.Position)
}

// A Board is the line of squares. The bonus of every square is fixed at
// construction.
type Board struct {
	squares     []Square
	layout      string
	tilesPlayed int
}

// NewBoard builds an empty board from a layout string, one rune per square
// (see the Bonus constants). A board needs at least two squares.
func NewBoard(layout string) (*Board, error) {
	n := utf8.RuneCountInString(layout)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 squares, got %d", ErrBadLayout, n)
	}
	b := &Board{squares: make([]Square, 0, n), layout: layout}
	pos := 0
	for _, r := range layout {
		bonus := BonusSquare(r)
		if !bonus.valid() {
			return nil, fmt.Errorf("%w: unknown bonus %q at position %d", ErrBadLayout, r, pos)
		}
		b.squares = append(b.squares, Square{position: pos, bonus: bonus})
		pos++
	}
	return b, nil
}

// MakeBoard is NewBoard for layouts known to be good; it panics otherwise.
func MakeBoard(layout string) *Board {
	b, err := NewBoard(layout)
	if err != nil {
		panic(err)
	}
	return b
}

// Dim is the number of squares.
func (b *Board) Dim() int {
	return len(b.squares)
}

func (b *Board) Layout() string {
	return b.layout
}

func (b *Board) inBounds(pos int) bool {
	return pos >= 0 && pos < len(b.squares)
}

// Square returns the square at pos, or nil if pos is off the board.
func (b *Board) Square(pos int) *Square {
	if !b.inBounds(pos) {
		return nil
	}
	return &b.squares[pos]
}

func (b *Board) IsOccupied(pos int) bool {
	return b.inBounds(pos) && b.squares[pos].occupied
}

func (b *Board) IsLocked(pos int) bool {
	return b.inBounds(pos) && b.squares[pos].locked
}

// ModifierAt returns the bonus of the square at pos. Off-board positions
// have no bonus.
func (b *Board) ModifierAt(pos int) SquareModifier {
	if !b.inBounds(pos) {
		return NoBonus
	}
	return b.squares[pos].bonus
}

// TileAt returns the tile at pos and whether there is one.
func (b *Board) TileAt(pos int) (PlacedTile, bool) {
	if !b.inBounds(pos) {
		return PlacedTile{}, false
	}
	return b.squares[pos].Tile()
}

// Place puts a tile on an empty, unlocked square. On error the board is
// unchanged.
func (b *Board) Place(pos int, t PlacedTile) error {
	if !b.inBounds(pos) {
		return fmt.Errorf("%w: %d", ErrPositionOutOfRange, pos)
	}
	sq := &b.squares[pos]
	if sq.locked {
		return &LockedSquareError{Position: pos}
	}
	if sq.occupied {
		return &OccupiedSquareError{Position: pos, Letter: sq.tile.Letter}
	}
	sq.tile = t
	sq.occupied = true
	b.tilesPlayed++
	return nil
}

// Remove takes the tile off an unlocked square.
func (b *Board) Remove(pos int) (PlacedTile, error) {
	if !b.inBounds(pos) {
		return PlacedTile{}, fmt.Errorf("%w: %d", ErrPositionOutOfRange, pos)
	}
	sq := &b.squares[pos]
	if sq.locked {
		return PlacedTile{}, &LockedSquareError{Position: pos}
	}
	if !sq.occupied {
		return PlacedTile{}, fmt.Errorf("%w: %d", ErrEmptySquare, pos)
	}
	t := sq.tile
	sq.tile = PlacedTile{}
	sq.occupied = false
	b.tilesPlayed--
	return t, nil
}

// LockOccupied locks every square that holds a tile and returns how many
// squares were newly locked.
func (b *Board) LockOccupied() int {
	n := 0
	for i := range b.squares {
		if b.squares[i].occupied && !b.squares[i].locked {
			b.squares[i].locked = true
			n++
		}
	}
	return n
}

// Clear empties and unlocks every square. It returns the tiles that were
// on the board, in position order.
func (b *Board) Clear() []PlacedTile {
	tiles := []PlacedTile{}
	for i := range b.squares {
		if b.squares[i].occupied {
			tiles = append(tiles, b.squares[i].tile)
		}
		b.squares[i].tile = PlacedTile{}
		b.squares[i].occupied = false
		b.squares[i].locked = false
	}
	b.tilesPlayed = 0
	return tiles
}

// TilesPlayed is the number of occupied squares.
func (b *Board) TilesPlayed() int {
	return b.tilesPlayed
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	c := &Board{
		squares:     make([]Square, len(b.squares)),
		layout:      b.layout,
		tilesPlayed: b.tilesPlayed,
	}
	copy(c.squares, b.squares)
	return c
}

// Equals compares layouts, tiles and locks.
func (b *Board) Equals(other *Board) bool {
	if len(b.squares) != len(other.squares) || b.layout != other.layout {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != other.squares[i] {
			return false
		}
	}
	return true
}

// Letters returns the board as a string with a space for each empty
// square.
func (b *Board) Letters() string {
	var sb strings.Builder
	for i := range b.squares {
		if b.squares[i].occupied {
			sb.WriteRune(b.squares[i].tile.Letter)
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
