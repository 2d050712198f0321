package game

import (
	"time"
)

// A Turn is one successfully submitted word.
type Turn struct {
	SessionID  string    `json:"session_id" yaml:"session_id"`
	Number     int       `json:"number" yaml:"number"`
	Word       string    `json:"word" yaml:"word"`
	Score      int       `json:"score" yaml:"score"`
	Cumulative int       `json:"cumulative" yaml:"cumulative"`
	First      int       `json:"first" yaml:"first"`
	Last       int       `json:"last" yaml:"last"`
	LetterSum  int       `json:"letter_sum" yaml:"letter_sum"`
	Multiplier int       `json:"multiplier" yaml:"multiplier"`
	BagLeft    int       `json:"bag_left" yaml:"bag_left"`
	Time       time.Time `json:"time" yaml:"time"`
}

// A Listener hears about every submitted turn. It is called synchronously
// from Submit, after the session state has been updated.
type Listener interface {
	TurnSubmitted(t Turn)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(t Turn)

func (f ListenerFunc) TurnSubmitted(t Turn) {
	f(t)
}
