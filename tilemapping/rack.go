package tilemapping

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

const DefaultRackCapacity = 7

var ErrRackFull = errors.New("rack is full")

// Rack holds the tiles a player can currently place, in the order they
// arrived.
type Rack struct {
	tiles    []Tile
	capacity int
}

// NewRack creates an empty rack. A capacity below 1 uses the default.
func NewRack(capacity int) *Rack {
	if capacity < 1 {
		capacity = DefaultRackCapacity
	}
	return &Rack{tiles: make([]Tile, 0, capacity), capacity: capacity}
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	return TilesString(r.tiles)
}

// Tiles returns a copy of the rack's tiles.
func (r *Rack) Tiles() []Tile {
	out := make([]Tile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// Set replaces the rack contents. Tiles past capacity are dropped and
// returned.
func (r *Rack) Set(tiles []Tile) []Tile {
	r.Clear()
	var overflow []Tile
	for _, t := range tiles {
		if err := r.Add(t); err != nil {
			overflow = append(overflow, t)
		}
	}
	return overflow
}

func (r *Rack) Add(t Tile) error {
	if len(r.tiles) >= r.capacity {
		return ErrRackFull
	}
	r.tiles = append(r.tiles, t)
	return nil
}

// Return puts a tile back on the rack even if that overfills it; board
// tiles always have somewhere to go on a reset.
func (r *Rack) Return(t Tile) {
	r.tiles = append(r.tiles, t)
}

// Take removes the tile with the given id.
func (r *Rack) Take(id TileID) (Tile, bool) {
	for i, t := range r.tiles {
		if t.ID == id {
			r.tiles = append(r.tiles[:i], r.tiles[i+1:]...)
			return t, true
		}
	}
	return Tile{}, false
}

// Get returns the tile with the given id without removing it.
func (r *Rack) Get(id TileID) (Tile, bool) {
	return lo.Find(r.tiles, func(t Tile) bool { return t.ID == id })
}

func (r *Rack) Has(id TileID) bool {
	return lo.ContainsBy(r.tiles, func(t Tile) bool { return t.ID == id })
}

// FindLetter returns the first tile on the rack showing letter.
func (r *Rack) FindLetter(letter rune) (Tile, bool) {
	return lo.Find(r.tiles, func(t Tile) bool { return t.Letter == letter })
}

func (r *Rack) CountOf(letter rune) int {
	return lo.CountBy(r.tiles, func(t Tile) bool { return t.Letter == letter })
}

// Clear empties the rack and returns what was on it.
func (r *Rack) Clear() []Tile {
	old := r.tiles
	r.tiles = make([]Tile, 0, r.capacity)
	return old
}

// ScoreOn returns the total value of the tiles on this rack.
func (r *Rack) ScoreOn() int {
	return lo.SumBy(r.tiles, func(t Tile) int { return t.Value })
}

// NumTiles returns the current number of tiles on this rack.
func (r *Rack) NumTiles() int {
	return len(r.tiles)
}

func (r *Rack) Capacity() int {
	return r.capacity
}

// Space is how many more tiles fit before the rack is full.
func (r *Rack) Space() int {
	return max(r.capacity-len(r.tiles), 0)
}

func (r *Rack) Empty() bool {
	return len(r.tiles) == 0
}

// DisplayString shows letters with their values and ids, for the shell.
func (r *Rack) DisplayString() string {
	return strings.Join(lo.Map(r.tiles, func(t Tile, _ int) string {
		return t.String()
	}), " ")
}
