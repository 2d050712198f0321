package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/events"
	"github.com/domino14/lineword/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoSession         = errors.New("please start a game first with the `new` command")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	config   *config.Config
	execPath string
	version  string

	session   *game.Session
	rules     *game.GameRules
	listeners []game.Listener
	nc        *nats.Conn

	autoplayMu     sync.Mutex
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewShellController sets up readline and the turn listeners named in
// cfg. A NATS URL that cannot be reached is logged and skipped.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "lineword>"
	if os.Getenv("NO_COLOR") == "" {
		prompt = "\033[32mlineword>\033[0m"
	}
	sc := newController(cfg, os.Stderr)
	sc.execPath = execPath
	sc.version = gitVersion

	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt + " ",
		HistoryFile:     "/tmp/lineword-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()

	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		nc, err := events.Connect(context.Background(), url, 3)
		if err != nil {
			log.Err(err).Str("url", url).Msg("not-publishing-turn-events")
		} else {
			sc.nc = nc
			sc.listeners = append(sc.listeners,
				events.NewNATSListener(nc, cfg.GetString(config.ConfigNatsSubject)))
		}
	}
	return sc
}

// newController makes a controller without a terminal, writing to w.
func newController(cfg *config.Config, w io.Writer) *ShellController {
	return &ShellController{
		out:       w,
		config:    cfg,
		listeners: []game.Listener{events.NewLogListener(log.Logger)},
	}
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			// Negative numbers are arguments, not options.
			if _, err := strconv.Atoi(f); err != nil {
				if idx == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				key := f[1:]
				options[key] = append(options[key], fields[idx+1])
				idx++
				continue
			}
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		if cmd.args == nil {
			return usage("standard")
		}
		return usageTopic(cmd.args[0])
	case "version":
		return msg(fmt.Sprintf("lineword %s (%s)", sc.version, sc.execPath)), nil
	}
	return sc.dispatch(cmd)
}

// dispatch runs every command that does not control the shell itself.
func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "deal", "d":
		return sc.deal(cmd)
	case "draw":
		return sc.draw(cmd)
	case "place", "p":
		return sc.place(cmd)
	case "remove", "rm":
		return sc.remove(cmd)
	case "submit", "sub":
		return sc.submit(cmd)
	case "reset":
		return sc.reset(cmd)
	case "show", "s", "board":
		return sc.show(cmd)
	case "rack":
		return sc.rack(cmd)
	case "score":
		return sc.score(cmd)
	case "bag":
		return sc.bag(cmd)
	case "history":
		return sc.history(cmd)
	case "state":
		return sc.state(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "seeds":
		return sc.seeds(cmd)
	case "script":
		return sc.script(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single line, for non-interactive use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil && !errors.Is(err, errQuit) {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
	sc.waitAutoplay()
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		} else if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any autoplay run and closes the NATS connection.
func (sc *ShellController) Cleanup() {
	sc.autoplayMu.Lock()
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	sc.autoplayMu.Unlock()
	sc.waitAutoplay()
	if sc.nc != nil {
		if err := sc.nc.Drain(); err != nil {
			log.Err(err).Msg("nats-drain")
		}
	}
}
