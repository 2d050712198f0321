package tilemapping

import (
	"lukechampine.com/frand"
)

// Randomizer is the random source a bag draws with. *frand.RNG and
// *math/rand.Rand both satisfy it; tests pass a seeded source.
type Randomizer interface {
	Intn(n int) int
}

// A Bag is the bag o'tiles! It only ever shrinks.
type Bag struct {
	tiles              []Tile
	initialNumTiles    int
	letterDistribution *LetterDistribution
	randSource         Randomizer
}

// NewBag fills a bag with Count copies of every letter in ld. Tile IDs are
// assigned in distribution order starting at 1.
func NewBag(ld *LetterDistribution, randSource Randomizer) *Bag {
	if randSource == nil {
		randSource = frand.New()
	}
	tiles := make([]Tile, 0, ld.NumTotalTiles())
	id := TileID(1)
	for _, d := range ld.defs {
		for i := 0; i < d.Count; i++ {
			tiles = append(tiles, Tile{Letter: d.Letter, Value: d.Value, ID: id})
			id++
		}
	}
	return &Bag{
		tiles:              tiles,
		initialNumTiles:    len(tiles),
		letterDistribution: ld,
		randSource:         randSource,
	}
}

// Draw draws at most n tiles from the bag, uniformly at random and without
// replacement. It can draw fewer if there are fewer tiles than n, and even
// draw no tiles at all :o
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	if n <= 0 {
		return []Tile{}
	}
	drawn := make([]Tile, n)
	for i := 0; i < n; i++ {
		idx := b.randSource.Intn(len(b.tiles))
		drawn[i] = b.tiles[idx]
		last := len(b.tiles) - 1
		b.tiles[idx] = b.tiles[last]
		b.tiles = b.tiles[:last]
	}
	return drawn
}

func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

func (b *Bag) InitialNumTiles() int {
	return b.initialNumTiles
}

// Peek returns a copy of the undrawn tiles, in no particular order.
func (b *Bag) Peek() []Tile {
	ret := make([]Tile, len(b.tiles))
	copy(ret, b.tiles)
	return ret
}

// Counts returns how many of each letter remain.
func (b *Bag) Counts() map[rune]int {
	ct := make(map[rune]int)
	for _, t := range b.tiles {
		ct[t.Letter]++
	}
	return ct
}

func (b *Bag) LetterDistribution() *LetterDistribution {
	return b.letterDistribution
}
