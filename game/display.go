package game

import (
	"fmt"
	"sort"
	"strings"
)

func splitSubN(s string, n int) []string {
	sub := ""
	subs := []string{}

	runes := []rune(s)
	l := len(runes)
	for i, r := range runes {
		sub = sub + string(r)
		if (i+1)%n == 0 {
			subs = append(subs, sub)
			sub = ""
		} else if (i + 1) == l {
			subs = append(subs, sub)
		}
	}

	return subs
}

func addText(lines []string, row int, text string) []string {
	maxTextSize := 60
	for _, chunk := range splitSubN(text, maxTextSize) {
		for row >= len(lines) {
			lines = append(lines, "")
		}
		lines[row] = lines[row] + "   " + chunk
		row++
	}
	return lines
}

// ToDisplayText turns the current state of the session into a displayable
// string: the board, then the rack, score, bag and last message under it.
func (s *Session) ToDisplayText() string {
	bts := strings.Split(strings.TrimRight(s.board.ToDisplayText(), "\n"), "\n")
	row := len(bts)

	bts = addText(bts, row, fmt.Sprintf("Rack: %s", s.rack.DisplayString()))
	bts = addText(bts, row+1, fmt.Sprintf("Score: %d   Turns: %d   State: %s",
		s.score, len(s.history), s.state))

	counts := s.bag.Counts()
	letters := make([]rune, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	var bag strings.Builder
	for _, r := range letters {
		bag.WriteString(strings.Repeat(string(r), counts[r]))
	}
	bts = addText(bts, row+2, fmt.Sprintf("Bag: (%d)", s.bag.TilesRemaining()))
	bts = addText(bts, row+3, bag.String())
	row = len(bts)

	if s.LowTiles() {
		bts = addText(bts, row, "The bag cannot refill a whole rack.")
		row++
	}
	if s.message != "" {
		bts = addText(bts, row, s.message)
	}
	return strings.Join(bts, "\n") + "\n"
}
