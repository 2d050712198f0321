package automatic

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

var DefaultConfig = config.DefaultConfig()

func defaultRules(t *testing.T) *game.GameRules {
	rules, err := game.RulesFromConfig(DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	return rules
}

func testRack(letters string, values ...int) []tilemapping.Tile {
	rack := []tilemapping.Tile{}
	for i, l := range letters {
		rack = append(rack, tilemapping.Tile{Letter: l, Value: values[i], ID: tilemapping.TileID(i + 1)})
	}
	return rack
}

func TestRandomPlayerMakesContiguousWords(t *testing.T) {
	is := is.New(t)
	p, err := NewPlayer(RandomPlayer)
	is.NoErr(err)
	rng := rand.New(rand.NewSource(11))
	rack := testRack("ABCDEFG", 1, 3, 3, 2, 1, 4, 2)
	for i := 0; i < 200; i++ {
		b := board.MakeBoard(board.StandardLayout)
		placements := p.Choose(b, rack, rng)
		is.True(len(placements) >= play.MinWordLength)
		for _, pl := range placements {
			tl, ok := findTile(rack, pl.TileID)
			is.True(ok)
			is.NoErr(b.Place(pl.Position, board.PlacedFromTile(tl)))
		}
		is.True(play.Compute(b).Valid)
	}
}

func findTile(rack []tilemapping.Tile, id tilemapping.TileID) (tilemapping.Tile, bool) {
	for _, t := range rack {
		if t.ID == id {
			return t, true
		}
	}
	return tilemapping.Tile{}, false
}

func TestPlayersNeedTwoTiles(t *testing.T) {
	is := is.New(t)
	b := board.MakeBoard(board.StandardLayout)
	for _, name := range []string{RandomPlayer, GreedyPlayer} {
		p, err := NewPlayer(name)
		is.NoErr(err)
		is.Equal(p.Name(), name)
		is.True(p.Choose(b, testRack("A", 1), rand.New(rand.NewSource(1))) == nil)
	}
	_, err := NewPlayer("oracle")
	is.True(err != nil)
}

func TestGreedyPlayer(t *testing.T) {
	is := is.New(t)
	p, _ := NewPlayer(GreedyPlayer)
	b := board.MakeBoard(board.ShortLayout)
	rack := testRack("ZAE", 10, 1, 1)
	placements := p.Choose(b, rack, nil)

	scratch := b.Copy()
	for _, pl := range placements {
		tl, _ := findTile(rack, pl.TileID)
		is.NoErr(scratch.Place(pl.Position, board.PlacedFromTile(tl)))
	}
	res := play.Compute(scratch)
	is.True(res.Valid)
	// ` '-" =`: Z on the triple letter at 3 and the triple word at 5
	// gives (30 + 1 + 1) * 3, more than any span through the double word.
	is.Equal(res.Score, 96)
	is.Equal(scratch.Letters(), "   ZAE")
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan []string, 100)
	p, _ := NewPlayer(GreedyPlayer)
	r := NewGameRunner(defaultRules(t), p, logchan)
	r.Seed([32]byte{1, 2, 3})

	res, err := r.PlayGame(0)
	is.NoErr(err)
	close(logchan)
	// 100 tiles, 7 per deal: 14 full racks and one of two.
	is.Equal(res.Turns, 15)
	is.Equal(res.Score, r.Session().Score())
	is.Equal(r.Session().Bag().TilesRemaining(), 0)
	is.Equal(len(res.TurnScores), 15)

	rows := 0
	for rec := range logchan {
		is.Equal(len(rec), len(LogHeader))
		rows++
	}
	is.Equal(rows, 15)
}

func TestSeededGamesReplay(t *testing.T) {
	is := is.New(t)
	seed := [32]byte{9}
	p, _ := NewPlayer(RandomPlayer)
	a := NewGameRunner(defaultRules(t), p, nil)
	a.Seed(seed)
	b := NewGameRunner(defaultRules(t), p, nil)
	b.Seed(seed)
	ra, err := a.PlayGame(1)
	is.NoErr(err)
	rb, err := b.PlayGame(1)
	is.NoErr(err)
	is.Equal(ra, rb)
}

func TestRunAndAnalyzeLog(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "turns.csv")

	var counter countingListener
	summary, err := Run(context.Background(), DefaultConfig, RunOptions{
		NumGames:   20,
		Threads:    1,
		Player:     GreedyPlayer,
		OutputFile: out,
		Listener:   &counter,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 20)
	is.Equal(summary.Turns, 20*15)
	is.Equal(counter.n, summary.Turns)
	is.Equal(summary.TurnScores.N, summary.Turns)
	is.True(summary.GameScores.Mean > 0)
	is.Equal(summary.Board, "standard")

	fromLog, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.Equal(fromLog.Games, summary.Games)
	is.Equal(fromLog.Turns, summary.Turns)
	is.Equal(fromLog.GameScores, summary.GameScores)
	is.Equal(fromLog.BestWordScore, summary.BestWordScore)
	is.Equal(fromLog.Player, GreedyPlayer)

	y, err := summary.YAML()
	is.NoErr(err)
	var back map[string]any
	is.NoErr(yaml.Unmarshal([]byte(y), &back))
	is.Equal(back["games"], 20)

	var hist bytes.Buffer
	is.NoErr(summary.Histogram(&hist))
	is.True(hist.Len() > 0)
	is.True(strings.Contains(summary.String(), "Games played: 20"))
}

type countingListener struct {
	n int
}

// Only used with a single thread.
func (c *countingListener) TurnSubmitted(game.Turn) {
	c.n++
}

func TestRunCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := Run(ctx, DefaultConfig, RunOptions{NumGames: 1000, Threads: 2})
	is.NoErr(err)
	is.True(summary.Games < 1000)
}

func TestRunWithSeedFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(GenerateSeeds(4), path))

	seeds, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(len(seeds), 4)

	first, err := Run(context.Background(), DefaultConfig, RunOptions{Threads: 2, SeedFile: path})
	is.NoErr(err)
	is.Equal(first.Games, 4)
	second, err := Run(context.Background(), DefaultConfig, RunOptions{Threads: 3, SeedFile: path})
	is.NoErr(err)
	is.Equal(first.GameScores, second.GameScores)
}

func TestLoadSeedsErrors(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "bad.txt")
	is.NoErr(os.WriteFile(path, []byte("# comment\n\nAAAA\n"), 0o644))
	_, err := LoadSeeds(path)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "line 3"))
}

func TestAnalyzeLogBadNumber(t *testing.T) {
	is := is.New(t)
	log := strings.Join(LogHeader, ",") + "\n" + "x,1,greedy,ABC,ABC,3,7,7,90\n"
	_, err := AnalyzeLog(strings.NewReader(log))
	is.True(err != nil)
}
