package automatic

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/stats"
)

const histogramBins = 10

// Summary is what an autoplay run (or a turn log) adds up to.
type Summary struct {
	Games         int               `yaml:"games"`
	Turns         int               `yaml:"turns"`
	Player        string            `yaml:"player,omitempty"`
	Board         string            `yaml:"board,omitempty"`
	Distribution  string            `yaml:"distribution,omitempty"`
	GameScores    stats.Description `yaml:"game_scores"`
	Margin95      float64           `yaml:"margin_95"`
	TurnScores    stats.Description `yaml:"turn_scores"`
	BestWord      string            `yaml:"best_word"`
	BestWordScore int               `yaml:"best_word_score"`
	BestGameID    int               `yaml:"best_game_id"`

	scores []float64
}

// Summarize adds up finished games. rules may be nil.
func Summarize(results []*GameResult, rules *game.GameRules, player string) *Summary {
	s := &Summary{
		Games:  len(results),
		Turns:  lo.SumBy(results, func(r *GameResult) int { return r.Turns }),
		Player: player,
		scores: lo.Map(results, func(r *GameResult, _ int) float64 { return float64(r.Score) }),
	}
	if rules != nil {
		s.Board = rules.BoardName()
		s.Distribution = rules.LetterDistributionName()
	}
	s.GameScores = stats.Describe(s.scores)
	s.Margin95 = stats.MarginOfError(s.GameScores, 95)

	turnScores := lo.FlatMap(results, func(r *GameResult, _ int) []float64 {
		return lo.Map(r.TurnScores, func(sc int, _ int) float64 { return float64(sc) })
	})
	s.TurnScores = stats.Describe(turnScores)

	if len(results) > 0 {
		best := lo.MaxBy(results, func(a, b *GameResult) bool { return a.BestScore > b.BestScore })
		s.BestWord, s.BestWordScore, s.BestGameID = best.BestWord, best.BestScore, best.GameID
	}
	return s
}

// YAML renders the summary for saving or printing.
func (s *Summary) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Histogram prints the distribution of final game scores.
func (s *Summary) Histogram(w io.Writer) error {
	if len(s.scores) == 0 {
		_, err := io.WriteString(w, "no games\n")
		return err
	}
	hist := histogram.Hist(histogramBins, s.scores)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

func (s *Summary) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Games played: %d\n", s.Games)
	fmt.Fprintf(&b, "Turns played: %d\n", s.Turns)
	fmt.Fprintf(&b, "Mean Score: %.3f  Stdev: %.3f  (95%% +/- %.3f)\n",
		s.GameScores.Mean, s.GameScores.Stdev, s.Margin95)
	fmt.Fprintf(&b, "Mean Turn Score: %.3f  Stdev: %.3f\n",
		s.TurnScores.Mean, s.TurnScores.Stdev)
	if s.BestWord != "" {
		fmt.Fprintf(&b, "Best word: %s for %d (game %d)\n", s.BestWord, s.BestWordScore, s.BestGameID)
	}
	return b.String()
}
