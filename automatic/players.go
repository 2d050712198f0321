package automatic

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

const (
	RandomPlayer = "random"
	GreedyPlayer = "greedy"
)

// Placement puts one rack tile on one square.
type Placement struct {
	Position int
	TileID   tilemapping.TileID
}

// A Player picks the placements for one turn on an empty board. It returns
// nil when it has nothing worth playing.
type Player interface {
	Name() string
	Choose(b *board.Board, rack []tilemapping.Tile, rng tilemapping.Randomizer) []Placement
}

func NewPlayer(name string) (Player, error) {
	switch name {
	case RandomPlayer, "":
		return randomPlayer{}, nil
	case GreedyPlayer:
		return greedyPlayer{}, nil
	}
	return nil, fmt.Errorf("unknown player %q", name)
}

// randomPlayer plays a random run of its tiles at a random spot.
type randomPlayer struct{}

func (randomPlayer) Name() string { return RandomPlayer }

func (randomPlayer) Choose(b *board.Board, rack []tilemapping.Tile, rng tilemapping.Randomizer) []Placement {
	maxLen := min(len(rack), b.Dim())
	if maxLen < play.MinWordLength {
		return nil
	}
	length := play.MinWordLength + rng.Intn(maxLen-play.MinWordLength+1)
	start := rng.Intn(b.Dim() - length + 1)

	tiles := make([]tilemapping.Tile, len(rack))
	copy(tiles, rack)
	// Partial Fisher-Yates; only the first length tiles are needed.
	for i := 0; i < length; i++ {
		j := i + rng.Intn(len(tiles)-i)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	return lo.Map(tiles[:length], func(t tilemapping.Tile, i int) Placement {
		return Placement{Position: start + i, TileID: t.ID}
	})
}

// greedyPlayer tries every span and keeps the highest score. Within a span
// its most valuable tiles go on the best letter bonuses.
type greedyPlayer struct{}

func (greedyPlayer) Name() string { return GreedyPlayer }

func (greedyPlayer) Choose(b *board.Board, rack []tilemapping.Tile, _ tilemapping.Randomizer) []Placement {
	maxLen := min(len(rack), b.Dim())
	if maxLen < play.MinWordLength {
		return nil
	}
	tiles := make([]tilemapping.Tile, len(rack))
	copy(tiles, rack)
	sort.SliceStable(tiles, func(i, j int) bool { return tiles[i].Value > tiles[j].Value })

	var best []Placement
	bestScore := -1
	for length := play.MinWordLength; length <= maxLen; length++ {
		for start := 0; start+length <= b.Dim(); start++ {
			placements := assignSpan(b, tiles[:length], start)
			score := scorePlacements(b, tiles, placements)
			if score > bestScore {
				best, bestScore = placements, score
			}
		}
	}
	return best
}

// assignSpan matches tiles (sorted by value, highest first) to the squares
// in [start, start+len(tiles)) with the biggest letter multiplier first.
func assignSpan(b *board.Board, tiles []tilemapping.Tile, start int) []Placement {
	positions := make([]int, len(tiles))
	for i := range positions {
		positions[i] = start + i
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return b.ModifierAt(positions[i]).LetterMultiplier() >
			b.ModifierAt(positions[j]).LetterMultiplier()
	})
	placements := make([]Placement, len(tiles))
	for i, t := range tiles {
		placements[i] = Placement{Position: positions[i], TileID: t.ID}
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].Position < placements[j].Position
	})
	return placements
}

func scorePlacements(b *board.Board, rack []tilemapping.Tile, placements []Placement) int {
	scratch := b.Copy()
	for _, p := range placements {
		t, ok := lo.Find(rack, func(t tilemapping.Tile) bool { return t.ID == p.TileID })
		if !ok {
			return -1
		}
		if err := scratch.Place(p.Position, board.PlacedFromTile(t)); err != nil {
			return -1
		}
	}
	res := play.Compute(scratch)
	if !res.Valid {
		return -1
	}
	return res.Score
}
