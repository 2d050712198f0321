package game

import (
	"time"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

// SquareView is one square of a Snapshot.
type SquareView struct {
	Position int               `json:"position"`
	Bonus    string            `json:"bonus"`
	Tile     *board.PlacedTile `json:"tile,omitempty"`
	Locked   bool              `json:"locked"`
}

// Snapshot is a read-only copy of a session for hosts to render.
type Snapshot struct {
	ID           string             `json:"id"`
	Created      time.Time          `json:"created"`
	State        State              `json:"state"`
	Score        int                `json:"score"`
	Message      string             `json:"message"`
	Rack         []tilemapping.Tile `json:"rack"`
	Board        []SquareView       `json:"board"`
	Word         play.Word          `json:"word"`
	BagRemaining int                `json:"bag_remaining"`
	LowTiles     bool               `json:"low_tiles"`
	History      []Turn             `json:"history"`
}

func (s *Session) Snapshot() Snapshot {
	squares := make([]SquareView, s.board.Dim())
	for i := range squares {
		sq := s.board.Square(i)
		squares[i] = SquareView{Position: i, Bonus: sq.Bonus().String(), Locked: sq.Locked()}
		if t, ok := sq.Tile(); ok {
			squares[i].Tile = &t
		}
	}
	return Snapshot{
		ID:           s.id.String(),
		Created:      s.id.Time(),
		State:        s.state,
		Score:        s.score,
		Message:      s.message,
		Rack:         s.rack.Tiles(),
		Board:        squares,
		Word:         play.Extract(s.board),
		BagRemaining: s.bag.TilesRemaining(),
		LowTiles:     s.LowTiles(),
		History:      s.History(),
	}
}
