package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/automatic"
	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/tilemapping"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) needSession() error {
	if sc.session == nil {
		return errNoSession
	}
	return nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	boardName := cmd.options.String("board")
	if boardName == "" {
		boardName = sc.config.GetString(config.ConfigBoardLayout)
	}
	distName := cmd.options.String("dist")
	if distName == "" {
		distName = sc.config.GetString(config.ConfigLetterDistribution)
	}
	rules, err := game.NewGameRules(sc.config, boardName, distName)
	if err != nil {
		return nil, err
	}
	opts := []game.Option{game.WithRules(rules)}
	if cmd.options.String("rack") != "" {
		capacity, err := cmd.options.Int("rack")
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithRackCapacity(capacity))
	}
	for _, l := range sc.listeners {
		opts = append(opts, game.WithListener(l))
	}
	s, err := game.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	sc.session = s
	sc.rules = rules
	log.Info().Str("session", s.ID().String()).Str("board", boardName).
		Str("dist", distName).Msg("new-game")
	return msg(s.ToDisplayText()), nil
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	sc.session.Deal()
	return msg(sc.session.ToDisplayText()), nil
}

func (sc *ShellController) draw(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: draw <n>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	drawn := sc.session.DrawTiles(n)
	return msg(fmt.Sprintf("drew %d: %s\n%s", len(drawn),
		tilemapping.TilesString(drawn), sc.session.ToDisplayText())), nil
}

// place takes a position and either a tile id (a number) or letters. Several
// letters go on consecutive squares starting at the position.
func (sc *ShellController) place(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: place <position> <tile-id|letters>")
	}
	pos, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if id, err := strconv.Atoi(cmd.args[1]); err == nil {
		if err := sc.session.Place(pos, tilemapping.TileID(id)); err != nil {
			return nil, err
		}
		return msg(sc.session.ToDisplayText()), nil
	}
	placed := 0
	for i, l := range cmd.args[1] {
		letter, err := tilemapping.NormalizeLetter(string(l))
		if err != nil {
			return nil, err
		}
		if err := sc.session.PlaceLetter(pos+placed, letter); err != nil {
			return msg(fmt.Sprintf("placed %d of %d letters\n%s", placed,
				utf8.RuneCountInString(cmd.args[1]), sc.session.ToDisplayText())),
				fmt.Errorf("letter %d: %w", i+1, err)
		}
		placed++
	}
	return msg(sc.session.ToDisplayText()), nil
}

func (sc *ShellController) remove(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: remove <position> [<position> ...]")
	}
	for _, a := range cmd.args {
		pos, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		if err := sc.session.Remove(pos); err != nil {
			return nil, err
		}
	}
	return msg(sc.session.ToDisplayText()), nil
}

func (sc *ShellController) submit(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	res := sc.session.Submit()
	if !res.Valid {
		return msg(res.Message), nil
	}
	return msg(sc.session.ToDisplayText()), nil
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	returned := sc.session.Reset()
	return msg(fmt.Sprintf("returned %d tiles to the rack\n%s", len(returned),
		sc.session.ToDisplayText())), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	return msg(sc.session.ToDisplayText()), nil
}

func (sc *ShellController) rack(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	return msg(sc.session.Rack().DisplayString()), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	return msg(strconv.Itoa(sc.session.Score())), nil
}

func (sc *ShellController) bag(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	b := sc.session.Bag()
	out := fmt.Sprintf("%d of %d tiles left", b.TilesRemaining(), b.InitialNumTiles())
	if sc.session.LowTiles() {
		out += " (not enough for a full rack)"
	}
	return msg(out), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, t := range sc.session.History() {
		fmt.Fprintf(&b, "%3d: %-15s %2d-%-2d %4d %5d\n", t.Number, t.Word, t.First,
			t.Last, t.Score, t.Cumulative)
	}
	if b.Len() == 0 {
		return msg("no turns yet"), nil
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}

// state prints the session as JSON, mostly for scripts.
func (sc *ShellController) state(cmd *shellcmd) (*Response, error) {
	if err := sc.needSession(); err != nil {
		return nil, err
	}
	out, err := json.Marshal(sc.session.Snapshot())
	if err != nil {
		return nil, err
	}
	return msg(string(out)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		sc.autoplayMu.Lock()
		defer sc.autoplayMu.Unlock()
		if sc.autoplayCancel == nil {
			return nil, errors.New("no autoplay is running")
		}
		sc.autoplayCancel()
		return msg("stopping autoplay"), nil
	}
	defaultGames := 100
	if cmd.options.String("seeds") != "" {
		// One game per seed.
		defaultGames = 0
	}
	games, err := cmd.options.IntDefault("games", defaultGames)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	opts := automatic.RunOptions{
		NumGames:   games,
		Threads:    threads,
		Player:     cmd.options.String("player"),
		OutputFile: cmd.options.String("out"),
		SeedFile:   cmd.options.String("seeds"),
		Rules:      sc.rules,
	}

	sc.autoplayMu.Lock()
	if sc.autoplayCancel != nil {
		sc.autoplayMu.Unlock()
		return nil, automatic.ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel, sc.autoplayDone = cancel, done
	sc.autoplayMu.Unlock()

	run := func() (*automatic.Summary, error) {
		defer func() {
			sc.autoplayMu.Lock()
			sc.autoplayCancel, sc.autoplayDone = nil, nil
			sc.autoplayMu.Unlock()
			cancel()
			close(done)
		}()
		return automatic.Run(ctx, sc.config, opts)
	}

	if cmd.options.Bool("wait") {
		summary, err := run()
		if err != nil {
			return nil, err
		}
		return msg(summary.String()), nil
	}
	go func() {
		summary, err := run()
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(summary.String())
	}()
	return msg(fmt.Sprintf("autoplay started on %d threads; `autoplay stop` to stop", threads)), nil
}

func (sc *ShellController) waitAutoplay() {
	sc.autoplayMu.Lock()
	done := sc.autoplayDone
	sc.autoplayMu.Unlock()
	if done != nil {
		<-done
	}
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze <turnlog.csv>")
	}
	summary, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if cmd.options.String("format") == "yaml" {
		out, err := summary.YAML()
		if err != nil {
			return nil, err
		}
		return msg(out), nil
	}
	var hist strings.Builder
	if err := summary.Histogram(&hist); err != nil {
		return nil, err
	}
	return msg(summary.String() + "\n" + hist.String()), nil
}

func (sc *ShellController) seeds(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: seeds <n> <file>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := automatic.SaveSeeds(automatic.GenerateSeeds(n), cmd.args[1]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("wrote %d seeds to %s", n, cmd.args[1])), nil
}
