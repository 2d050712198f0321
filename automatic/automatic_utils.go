package automatic

// Data collection for automatic games.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/game"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int

	running atomic.Bool
)

func init() {
	GamesPlayed = expvar.NewInt("autoplayGames")
	IsPlaying = expvar.NewInt("autoplayIsPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// LogHeader is the first line of a turn log.
var LogHeader = []string{"gameID", "turn", "player", "rack", "word", "position",
	"score", "totalscore", "tilesremaining"}

// RunOptions controls an autoplay run. Zero values fall back to config.
type RunOptions struct {
	NumGames   int
	Threads    int
	Player     string
	OutputFile string
	// SeedFile, if set, makes every game replayable; game i uses seed i.
	SeedFile string
	Rules    *game.GameRules
	// Listener, if set, hears every turn of every game. It must be safe
	// for concurrent use.
	Listener game.Listener
}

type job struct {
	gameID int
	seed   *[32]byte
}

// Run plays opts.NumGames games on opts.Threads goroutines and returns a
// summary once all of them finish or ctx is cancelled. Games that were
// cut short by cancellation are not counted.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) (*Summary, error) {
	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer running.Store(false)

	var err error
	rules := opts.Rules
	if rules == nil {
		if rules, err = game.RulesFromConfig(cfg); err != nil {
			return nil, err
		}
	}
	threads := opts.Threads
	if threads < 1 {
		threads = max(cfg.GetInt(config.ConfigAutoplayThreads), 1)
	}
	var seeds [][32]byte
	if opts.SeedFile != "" {
		if seeds, err = LoadSeeds(opts.SeedFile); err != nil {
			return nil, err
		}
	}
	numGames := opts.NumGames
	if numGames < 1 {
		numGames = max(len(seeds), 1)
	}
	if seeds != nil && numGames > len(seeds) {
		log.Warn().Int("games", numGames).Int("seeds", len(seeds)).
			Msg("more-games-than-seeds-extra-games-are-unseeded")
	}
	if _, err := NewPlayer(opts.Player); err != nil {
		return nil, err
	}

	var logChan chan []string
	logDone := make(chan error, 1)
	if opts.OutputFile != "" {
		logfile, err := os.Create(opts.OutputFile)
		if err != nil {
			return nil, err
		}
		logChan = make(chan []string, 100)
		go writeTurnLog(logfile, logChan, logDone)
	} else {
		close(logDone)
	}

	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	GamesPlayed.Set(0)
	results := make([]*GameResult, numGames)
	jobs := make(chan job, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			j := job{gameID: i}
			if i < len(seeds) {
				j.seed = &seeds[i]
			}
			select {
			case jobs <- j:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			player, _ := NewPlayer(opts.Player)
			r := NewGameRunner(rules, player, logChan)
			r.listener = opts.Listener
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if gctx.Err() != nil {
					continue
				}
				if j.seed != nil {
					r.Seed(*j.seed)
				}
				res, err := r.PlayGame(j.gameID)
				if err != nil {
					return err
				}
				results[j.gameID] = res
				GamesPlayed.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	if logChan != nil {
		close(logChan)
	}
	if logErr := <-logDone; err == nil {
		err = logErr
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int64("games", GamesPlayed.Value()).Msg("All games finished.")

	played := make([]*GameResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			played = append(played, r)
		}
	}
	return Summarize(played, rules, opts.Player), nil
}

func writeTurnLog(f *os.File, logChan chan []string, done chan<- error) {
	w := csv.NewWriter(f)
	err := w.Write(LogHeader)
	for rec := range logChan {
		if err == nil {
			err = w.Write(rec)
		}
	}
	w.Flush()
	if err == nil {
		err = w.Error()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	log.Info().Str("file", f.Name()).Msg("Exiting turn logger goroutine!")
	done <- err
}
