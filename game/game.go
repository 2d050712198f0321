// Package game encapsulates the turn lifecycle of a single-line word game:
// dealing a rack, placing tiles, submitting a word and resetting the line.
// A Session is not safe for concurrent use; hosts serialize calls.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

// State is where a session is in its turn lifecycle. Placing tiles is not
// a separate state; it is just a rack-filled session with unlocked tiles.
type State int

const (
	AwaitingDeal State = iota
	RackFilled
	Submitted
)

func (s State) String() string {
	switch s {
	case AwaitingDeal:
		return "awaiting-deal"
	case RackFilled:
		return "rack-filled"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{AwaitingDeal, RackFilled, Submitted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

var ErrTileNotOnRack = errors.New("tile is not on the rack")

type sessionOptions struct {
	rules        *GameRules
	dist         *tilemapping.LetterDistribution
	layout       string
	rackCapacity int
	rng          tilemapping.Randomizer
	listeners    []Listener
}

// An Option configures a new Session.
type Option func(*sessionOptions)

// WithRules takes the layout, distribution and rack capacity from rules.
// Explicit options given after it still override.
func WithRules(rules *GameRules) Option {
	return func(o *sessionOptions) {
		o.rules = rules
		o.dist = rules.LetterDistribution()
		o.layout = rules.Layout()
		o.rackCapacity = rules.RackCapacity()
	}
}

func WithLetterDistribution(ld *tilemapping.LetterDistribution) Option {
	return func(o *sessionOptions) { o.dist = ld }
}

// WithLayout sets the board layout, either a layout name or a literal
// layout string.
func WithLayout(layout string) Option {
	return func(o *sessionOptions) { o.layout = board.LayoutByName(layout) }
}

func WithRackCapacity(n int) Option {
	return func(o *sessionOptions) { o.rackCapacity = n }
}

// WithRandomizer sets the random source for bag draws. Tests pass a
// seeded math/rand source here.
func WithRandomizer(rng tilemapping.Randomizer) Option {
	return func(o *sessionOptions) { o.rng = rng }
}

func WithListener(l Listener) Option {
	return func(o *sessionOptions) { o.listeners = append(o.listeners, l) }
}

// Session owns the bag, rack, board and cumulative score of one game.
type Session struct {
	id      SessionID
	rules   *GameRules
	bag     *tilemapping.Bag
	rack    *tilemapping.Rack
	board   *board.Board
	score   int
	message string
	state   State
	history []Turn

	listeners []Listener
	dealt     bool
	warnedLow bool
}

// NewSession creates a session with a full bag and an empty board. Without
// options it plays the embedded English distribution on the standard
// layout.
func NewSession(opts ...Option) (*Session, error) {
	o := &sessionOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.dist == nil {
		ld, err := tilemapping.EnglishLetterDistribution(config.DefaultConfig())
		if err != nil {
			return nil, err
		}
		o.dist = ld
	}
	if o.layout == "" {
		o.layout = board.StandardLayout
	}
	b, err := board.NewBoard(o.layout)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:        newSessionID(),
		rules:     o.rules,
		bag:       tilemapping.NewBag(o.dist, o.rng),
		rack:      tilemapping.NewRack(o.rackCapacity),
		board:     b,
		state:     AwaitingDeal,
		listeners: o.listeners,
	}
	log.Debug().Str("session", s.id.String()).Str("dist", o.dist.Name).
		Int("squares", b.Dim()).Int("bag", s.bag.TilesRemaining()).Msg("new-session")
	return s, nil
}

// Deal throws away the current rack and fills a fresh one from the bag.
// The board, the score and the discarded tiles' absence from the bag are
// all left as they are.
func (s *Session) Deal() []tilemapping.Tile {
	discarded := s.rack.Clear()
	drawn := s.bag.Draw(s.rack.Capacity())
	s.rack.Set(drawn)
	s.message = ""
	s.state = RackFilled
	s.dealt = true
	log.Debug().Str("session", s.id.String()).Int("discarded", len(discarded)).
		Str("rack", s.rack.String()).Int("bag", s.bag.TilesRemaining()).Msg("deal")
	s.checkLowTiles()
	return drawn
}

// DrawTiles draws up to n more tiles onto the rack, never past its
// capacity.
func (s *Session) DrawTiles(n int) []tilemapping.Tile {
	drawn := s.bag.Draw(min(n, s.rack.Space()))
	for _, t := range drawn {
		// Cannot fail; the draw was bounded by the rack's space.
		_ = s.rack.Add(t)
	}
	if s.state == AwaitingDeal {
		s.state = RackFilled
	}
	s.dealt = true
	s.checkLowTiles()
	return drawn
}

func (s *Session) checkLowTiles() {
	if s.warnedLow || !s.LowTiles() {
		return
	}
	s.warnedLow = true
	log.Warn().Str("session", s.id.String()).Int("bag", s.bag.TilesRemaining()).
		Msg("bag is running low on tiles")
}

// LowTiles reports whether the bag can no longer refill a whole rack.
func (s *Session) LowTiles() bool {
	return s.bag.TilesRemaining() < s.rack.Capacity()
}

// Place moves the tile with the given id from the rack to the board. If
// the board refuses it the tile stays on the rack.
func (s *Session) Place(pos int, id tilemapping.TileID) error {
	t, ok := s.rack.Get(id)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTileNotOnRack, id)
	}
	if err := s.board.Place(pos, board.PlacedFromTile(t)); err != nil {
		return err
	}
	s.rack.Take(id)
	return nil
}

// PlaceLetter places the first rack tile showing letter.
func (s *Session) PlaceLetter(pos int, letter rune) error {
	t, ok := s.rack.FindLetter(letter)
	if !ok {
		return fmt.Errorf("%w: %c", ErrTileNotOnRack, letter)
	}
	return s.Place(pos, t.ID)
}

// Remove takes a tile off an unlocked square and puts it back on the rack.
func (s *Session) Remove(pos int) error {
	t, err := s.board.Remove(pos)
	if err != nil {
		return err
	}
	s.rack.Return(t.Tile())
	return nil
}

// Submit scores the board. A valid word adds to the cumulative score and
// locks every occupied square; an invalid one only changes the message.
// Locked tiles count again on every submit that includes them.
func (s *Session) Submit() play.ScoreResult {
	res := play.Compute(s.board)
	s.message = res.Message
	if !res.Valid {
		log.Debug().Str("session", s.id.String()).Str("word", res.Word).
			Str("reason", res.Reason.String()).Msg("submit-rejected")
		return res
	}
	s.score += res.Score
	s.board.LockOccupied()
	s.state = Submitted

	turn := Turn{
		SessionID:  s.id.String(),
		Number:     len(s.history) + 1,
		Word:       res.Word,
		Score:      res.Score,
		Cumulative: s.score,
		First:      res.First,
		Last:       res.Last,
		LetterSum:  res.LetterSum,
		Multiplier: res.WordMultiplier,
		BagLeft:    s.bag.TilesRemaining(),
		Time:       time.Now(),
	}
	s.history = append(s.history, turn)
	log.Debug().Str("session", s.id.String()).Str("word", res.Word).
		Int("score", res.Score).Int("cumulative", s.score).Msg("submit")
	for _, l := range s.listeners {
		l.TurnSubmitted(turn)
	}
	return res
}

// Reset moves every tile on the board, locked ones included, back onto the
// rack and clears the line. The score and the bag are untouched.
func (s *Session) Reset() []board.PlacedTile {
	tiles := s.board.Clear()
	for _, t := range tiles {
		s.rack.Return(t.Tile())
	}
	s.message = ""
	if s.dealt {
		s.state = RackFilled
	} else {
		s.state = AwaitingDeal
	}
	log.Debug().Str("session", s.id.String()).Int("returned", len(tiles)).Msg("reset")
	return tiles
}

// AddListener registers l for every later submit.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) ID() SessionID {
	return s.id
}

// Rules returns the rules the session was built from, or nil if it was
// built from individual options.
func (s *Session) Rules() *GameRules {
	return s.rules
}

func (s *Session) Rack() *tilemapping.Rack {
	return s.rack
}

func (s *Session) Board() *board.Board {
	return s.board
}

func (s *Session) Bag() *tilemapping.Bag {
	return s.bag
}

// Score is the cumulative score. It never goes down.
func (s *Session) Score() int {
	return s.score
}

func (s *Session) Message() string {
	return s.message
}

func (s *Session) State() State {
	return s.state
}

// History returns the submitted turns, oldest first.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}
