// Package automatic plays many single-line games without a human, for
// testing the engine and collecting score statistics.
package automatic

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/tilemapping"
)

// GameResult is the outcome of one automatic game.
type GameResult struct {
	GameID     int    `yaml:"game_id"`
	Turns      int    `yaml:"turns"`
	Score      int    `yaml:"score"`
	BestWord   string `yaml:"best_word"`
	BestScore  int    `yaml:"best_score"`
	TurnScores []int  `yaml:"-"`
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	rules    *game.GameRules
	player   Player
	rng      tilemapping.Randomizer
	logchan  chan []string
	listener game.Listener

	session *game.Session
}

// NewGameRunner makes a runner that plays with the given rules and player.
// logchan may be nil.
func NewGameRunner(rules *game.GameRules, player Player, logchan chan []string) *GameRunner {
	return &GameRunner{rules: rules, player: player, logchan: logchan, rng: frand.New()}
}

// Seed makes the next games replayable. seed must be 32 bytes long.
func (r *GameRunner) Seed(seed [32]byte) {
	r.rng = frand.NewCustom(seed[:], 1024, 12)
}

// Session returns the session of the game in progress or last played.
func (r *GameRunner) Session() *game.Session {
	return r.session
}

// PlayGame plays out a whole bag: every turn deals a fresh rack, lets the
// player place tiles, submits and resets the line. The game ends once a
// deal leaves fewer tiles than a word needs.
func (r *GameRunner) PlayGame(gameID int) (*GameResult, error) {
	opts := []game.Option{game.WithRules(r.rules), game.WithRandomizer(r.rng)}
	if r.listener != nil {
		opts = append(opts, game.WithListener(r.listener))
	}
	s, err := game.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	r.session = s
	result := &GameResult{GameID: gameID}

	for {
		s.Deal()
		rack := s.Rack().Tiles()
		placements := r.player.Choose(s.Board(), rack, r.rng)
		if placements == nil {
			break
		}
		for _, p := range placements {
			if err := s.Place(p.Position, p.TileID); err != nil {
				return nil, err
			}
		}
		res := s.Submit()
		if !res.Valid {
			// Players only pick contiguous spans, so this means a bug.
			log.Error().Int("game", gameID).Str("word", res.Word).
				Str("reason", res.Reason.String()).Msg("player-made-invalid-play")
			s.Reset()
			continue
		}
		result.Turns++
		result.TurnScores = append(result.TurnScores, res.Score)
		if res.Score > result.BestScore || result.BestWord == "" {
			result.BestWord, result.BestScore = res.Word, res.Score
		}
		if r.logchan != nil {
			r.logchan <- []string{
				strconv.Itoa(gameID),
				strconv.Itoa(len(s.History())),
				r.player.Name(),
				tilemapping.TilesString(rack),
				res.Word,
				strconv.Itoa(res.First),
				strconv.Itoa(res.Score),
				strconv.Itoa(s.Score()),
				strconv.Itoa(s.Bag().TilesRemaining()),
			}
		}
		s.Reset()
	}
	result.Score = s.Score()
	log.Debug().Int("game", gameID).Int("turns", result.Turns).
		Int("score", result.Score).Msg("game-over")
	return result, nil
}
