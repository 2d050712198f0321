package play

import (
	"fmt"

	"github.com/domino14/lineword/board"
)

// MinWordLength is the shortest word that scores.
const MinWordLength = 2

// Reason says why a word did not score.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonHasGaps
	ReasonTooShort
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "valid"
	case ReasonEmpty:
		return "no tiles placed."
	case ReasonHasGaps:
		return "word has gaps."
	case ReasonTooShort:
		return "word too short."
	}
	return "unknown"
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	for _, rs := range []Reason{ReasonNone, ReasonEmpty, ReasonHasGaps, ReasonTooShort} {
		if rs.String() == string(text) {
			*r = rs
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", text)
}

// InvalidWordError wraps a Reason for callers that want an error value.
type InvalidWordError struct {
	Reason Reason
	Word   string
}

func (e *InvalidWordError) Error() string {
	if e.Word == "" {
		return e.Reason.String()
	}
	return fmt.Sprintf("%q: %s", e.Word, e.Reason)
}

// ScoreResult is the verdict on the current board.
type ScoreResult struct {
	Valid          bool   `json:"valid"`
	Score          int    `json:"score"`
	Word           string `json:"word"`
	Reason         Reason `json:"reason"`
	Message        string `json:"message"`
	LetterSum      int    `json:"letter_sum"`
	WordMultiplier int    `json:"word_multiplier"`
	First          int    `json:"first"`
	Last           int    `json:"last"`
}

// Err returns nil for a valid result and an *InvalidWordError otherwise.
func (r ScoreResult) Err() error {
	if r.Valid {
		return nil
	}
	return &InvalidWordError{Reason: r.Reason, Word: r.Word}
}

// Invalid builds the result for a word rejected for the given reason.
func Invalid(w Word, reason Reason) ScoreResult {
	return ScoreResult{
		Word:    w.Text,
		Reason:  reason,
		Message: reason.String(),
		First:   w.First,
		Last:    w.Last,
	}
}

// Compute scores the board without changing it. Letter bonuses multiply
// the tile they sit under; every word bonus in the span multiplies the
// total, so two double-word squares give x4.
func Compute(b *board.Board) ScoreResult {
	w := Extract(b)
	switch {
	case w.Empty():
		return Invalid(w, ReasonEmpty)
	case w.HasGaps:
		return Invalid(w, ReasonHasGaps)
	case w.Length < MinWordLength:
		return Invalid(w, ReasonTooShort)
	}

	letterSum := 0
	wordMultiplier := 1
	for i := w.First; i <= w.Last; i++ {
		t, ok := b.TileAt(i)
		if !ok {
			continue
		}
		bonus := b.ModifierAt(i)
		letterSum += t.Value * bonus.LetterMultiplier()
		wordMultiplier *= bonus.WordMultiplier()
	}
	score := letterSum * wordMultiplier
	return ScoreResult{
		Valid:          true,
		Score:          score,
		Word:           w.Text,
		Message:        fmt.Sprintf("%q scores %d points!", w.Text, score),
		LetterSum:      letterSum,
		WordMultiplier: wordMultiplier,
		First:          w.First,
		Last:           w.Last,
	}
}
