package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/lineword/automatic"
	"github.com/domino14/lineword/board"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-board", "-dist", "-rack"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-player", "-out", "-seeds", "-wait"},
		Args:    []string{"stop"},
	},
	"analyze": {
		Options: []string{"-format"},
	},
	"help": {
		Args: []string{"new", "place", "submit", "autoplay", "analyze", "script"},
	},
}

var commandNames = []string{
	"help", "new", "deal", "draw", "place", "remove", "submit", "reset",
	"show", "rack", "score", "bag", "history", "state", "autoplay",
	"analyze", "seeds", "script", "version", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes; fall back to simple space splitting.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "board":
				completions = board.LayoutNames()
			case "player":
				completions = []string{automatic.RandomPlayer, automatic.GreedyPlayer}
			case "wait":
				completions = boolValues
			case "format":
				completions = []string{"text", "yaml"}
			}
		}

		// Positions for place and remove come from the current board.
		if completions == nil && (cmdName == "remove" || cmdName == "rm") && c.sc.session != nil {
			b := c.sc.session.Board()
			for i := 0; i < b.Dim(); i++ {
				if b.IsOccupied(i) && !b.IsLocked(i) {
					completions = append(completions, strconv.Itoa(i))
				}
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
