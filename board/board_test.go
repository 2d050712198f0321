package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lineword/tilemapping"
)

func pt(letter rune, value, id int) PlacedTile {
	return PlacedTile{Letter: letter, Value: value, TileID: tilemapping.TileID(id)}
}

func TestNewBoard(t *testing.T) {
	is := is.New(t)
	b, err := NewBoard(StandardLayout)
	is.NoErr(err)
	is.Equal(b.Dim(), 15)
	is.Equal(b.ModifierAt(2), Bonus2WS)
	is.Equal(b.ModifierAt(6), Bonus2LS)
	is.Equal(b.ModifierAt(7), NoBonus)
	is.Equal(b.ModifierAt(8), Bonus2LS)
	is.Equal(b.ModifierAt(12), Bonus2WS)
	is.Equal(b.ModifierAt(99), NoBonus)

	c, err := NewBoard(LayoutByName("center"))
	is.NoErr(err)
	is.Equal(c.ModifierAt(7), BonusCenter)
	is.Equal(c.ModifierAt(7).WordMultiplier(), 2)
	is.Equal(c.ModifierAt(0).WordMultiplier(), 3)
}

func TestBadLayouts(t *testing.T) {
	is := is.New(t)
	for _, layout := range []string{"", " ", "  x  "} {
		_, err := NewBoard(layout)
		is.True(errors.Is(err, ErrBadLayout))
	}
	b, err := NewBoard("  ")
	is.NoErr(err)
	is.Equal(b.Dim(), 2)
}

func TestMultipliers(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		bonus  BonusSquare
		letter int
		word   int
	}
	cases := []testdata{
		{NoBonus, 1, 1},
		{Bonus2LS, 2, 1},
		{Bonus3LS, 3, 1},
		{Bonus2WS, 1, 2},
		{Bonus3WS, 1, 3},
		{BonusCenter, 1, 2},
	}
	for _, tc := range cases {
		is.Equal(tc.bonus.LetterMultiplier(), tc.letter)
		is.Equal(tc.bonus.WordMultiplier(), tc.word)
	}
}

func TestPlaceOccupied(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(StandardLayout)
	is.NoErr(b.Place(3, pt('A', 1, 1)))
	is.True(b.IsOccupied(3))
	is.Equal(b.TilesPlayed(), 1)

	before := b.Copy()
	err := b.Place(3, pt('B', 3, 2))
	var oerr *OccupiedSquareError
	is.True(errors.As(err, &oerr))
	is.Equal(oerr.Position, 3)
	is.True(b.Equals(before))
	tile, ok := b.TileAt(3)
	is.True(ok)
	is.Equal(tile, pt('A', 1, 1))
}

func TestPlaceOutOfRange(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(StandardLayout)
	is.True(errors.Is(b.Place(-1, pt('A', 1, 1)), ErrPositionOutOfRange))
	is.True(errors.Is(b.Place(15, pt('A', 1, 1)), ErrPositionOutOfRange))
	_, err := b.Remove(15)
	is.True(errors.Is(err, ErrPositionOutOfRange))
	is.Equal(b.TilesPlayed(), 0)
}

func TestLockedSquares(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(StandardLayout)
	is.NoErr(b.Place(4, pt('H', 4, 1)))
	is.NoErr(b.Place(5, pt('I', 1, 2)))
	is.Equal(b.LockOccupied(), 2)
	is.Equal(b.LockOccupied(), 0)
	is.True(b.IsLocked(4))
	is.True(!b.IsLocked(6))

	before := b.Copy()
	var lerr *LockedSquareError
	is.True(errors.As(b.Place(4, pt('Z', 10, 3)), &lerr))
	is.Equal(lerr.Position, 4)
	_, err := b.Remove(5)
	is.True(errors.As(err, &lerr))
	is.True(b.Equals(before))

	// Unlocked squares still take tiles.
	is.NoErr(b.Place(6, pt('S', 1, 4)))
}

func TestRemove(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(StandardLayout)
	_, err := b.Remove(0)
	is.True(errors.Is(err, ErrEmptySquare))
	is.NoErr(b.Place(0, pt('Q', 10, 9)))
	tile, err := b.Remove(0)
	is.NoErr(err)
	is.Equal(tile, pt('Q', 10, 9))
	is.True(!b.IsOccupied(0))
	is.Equal(b.TilesPlayed(), 0)
}

func TestClear(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(StandardLayout)
	is.NoErr(b.Place(9, pt('C', 3, 3)))
	is.NoErr(b.Place(2, pt('A', 1, 1)))
	b.LockOccupied()
	is.NoErr(b.Place(5, pt('B', 3, 2)))

	tiles := b.Clear()
	is.Equal(tiles, []PlacedTile{pt('A', 1, 1), pt('B', 3, 2), pt('C', 3, 3)})
	for i := 0; i < b.Dim(); i++ {
		is.True(!b.IsOccupied(i))
		is.True(!b.IsLocked(i))
	}
	is.True(b.Equals(MakeBoard(StandardLayout)))
	is.Equal(len(b.Clear()), 0)
}

func TestLetters(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(ShortLayout)
	is.NoErr(b.Place(1, pt('H', 4, 1)))
	is.NoErr(b.Place(2, pt('I', 1, 2)))
	is.Equal(b.Letters(), " HI   ")
}
