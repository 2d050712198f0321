// Package events sends submitted turns somewhere else: the log, or a NATS
// subject that other services can subscribe to.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/game"
)

// LogListener writes every turn to a zerolog logger.
type LogListener struct {
	logger zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) TurnSubmitted(t game.Turn) {
	l.logger.Info().
		Str("session", t.SessionID).
		Int("turn", t.Number).
		Str("word", t.Word).
		Int("score", t.Score).
		Int("cumulative", t.Cumulative).
		Int("bag", t.BagLeft).
		Msg("turn-submitted")
}

// Publisher is the part of *nats.Conn the listener needs.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// TurnEvent is the JSON body published for each turn.
type TurnEvent struct {
	Type string    `json:"type"`
	Turn game.Turn `json:"turn"`
}

// NATSListener publishes each turn as a TurnEvent. Publishing errors are
// logged and otherwise ignored; a lost event never affects the game.
type NATSListener struct {
	pub     Publisher
	subject string
}

func NewNATSListener(pub Publisher, subject string) *NATSListener {
	return &NATSListener{pub: pub, subject: subject}
}

func (l *NATSListener) TurnSubmitted(t game.Turn) {
	data, err := json.Marshal(TurnEvent{Type: "turn", Turn: t})
	if err != nil {
		log.Err(err).Msg("marshal-turn-event")
		return
	}
	if err := l.pub.Publish(l.subject, data); err != nil {
		log.Err(err).Str("subject", l.subject).Msg("publish-turn-event")
	}
}

// Connect dials NATS, backing off between failed attempts until ctx is
// done or the attempts run out.
func Connect(ctx context.Context, url string, attempts uint) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("lineword"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", nc.ConnectedUrl()).Msg("nats-connected")
	return nc, nil
}
