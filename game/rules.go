package game

import (
	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/tilemapping"
)

// GameRules is a simple struct that encapsulates the instantiated objects
// needed to actually play a game. It is immutable and may be shared by any
// number of sessions.
type GameRules struct {
	cfg          *config.Config
	layout       string
	dist         *tilemapping.LetterDistribution
	rackCapacity int
	boardname    string
	distname     string
}

// NewGameRules loads the named board layout and letter distribution. A
// malformed distribution comes back as a *tilemapping.ConfigurationError.
func NewGameRules(cfg *config.Config, boardLayoutName, letterDistributionName string) (*GameRules, error) {
	dist, err := tilemapping.NamedLetterDistribution(cfg, letterDistributionName)
	if err != nil {
		return nil, err
	}
	layout := board.LayoutByName(boardLayoutName)
	// Validate the layout once here rather than on every new session.
	if _, err := board.NewBoard(layout); err != nil {
		return nil, err
	}
	rackCapacity := cfg.GetInt(config.ConfigRackCapacity)
	if rackCapacity < 1 {
		rackCapacity = tilemapping.DefaultRackCapacity
	}
	return &GameRules{
		cfg:          cfg,
		layout:       layout,
		dist:         dist,
		rackCapacity: rackCapacity,
		boardname:    boardLayoutName,
		distname:     letterDistributionName,
	}, nil
}

// RulesFromConfig uses the board layout and distribution named in cfg.
func RulesFromConfig(cfg *config.Config) (*GameRules, error) {
	return NewGameRules(cfg, cfg.GetString(config.ConfigBoardLayout),
		cfg.GetString(config.ConfigLetterDistribution))
}

func (g GameRules) Config() *config.Config {
	return g.cfg
}

func (g GameRules) Layout() string {
	return g.layout
}

func (g GameRules) LetterDistribution() *tilemapping.LetterDistribution {
	return g.dist
}

func (g GameRules) RackCapacity() int {
	return g.rackCapacity
}

func (g GameRules) BoardName() string {
	return g.boardname
}

func (g GameRules) LetterDistributionName() string {
	return g.distname
}
