package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

// ScoreRequest asks for the score of a line without a session. Layout may
// be a layout name or a literal layout string.
type ScoreRequest struct {
	Layout string        `json:"layout"`
	Tiles  []RequestTile `json:"tiles"`
}

type RequestTile struct {
	Position int    `json:"position"`
	Letter   string `json:"letter"`
	Value    int    `json:"value"`
}

type ScoreResponse struct {
	Result *play.ScoreResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

var errNoLayout = errors.New("no layout given")

func scoreRequest(req ScoreRequest) (*play.ScoreResult, error) {
	if req.Layout == "" {
		return nil, errNoLayout
	}
	b, err := board.NewBoard(board.LayoutByName(req.Layout))
	if err != nil {
		return nil, err
	}
	for i, t := range req.Tiles {
		letter, err := tilemapping.NormalizeLetter(t.Letter)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		err = b.Place(t.Position, board.PlacedTile{
			Letter: letter, Value: t.Value, TileID: tilemapping.TileID(i + 1)})
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
	}
	res := play.Compute(b)
	return &res, nil
}

// HandleScoreRequest decodes a JSON ScoreRequest and returns a JSON
// ScoreResponse. It never fails; errors go in the response.
func HandleScoreRequest(data []byte) []byte {
	var req ScoreRequest
	var resp ScoreResponse
	if err := json.Unmarshal(data, &req); err != nil {
		resp.Error = err.Error()
	} else if res, err := scoreRequest(req); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = res
	}
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen, ideally, but send something sensible back.
		return []byte(`{"error":"` + err.Error() + `"}`)
	}
	return out
}

// ServeScores answers ScoreRequests sent to subject until the returned
// subscription is unsubscribed or the connection closes.
func ServeScores(nc *nats.Conn, subject string) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Str("subject", subject).Msg("score-request")
		if err := m.Respond(HandleScoreRequest(m.Data)); err != nil {
			log.Err(err).Msg("score-respond")
		}
	})
	if err != nil {
		return nil, err
	}
	if err := nc.Flush(); err != nil {
		return nil, err
	}
	log.Info().Str("subject", subject).Msg("serving-scores")
	return sub, nil
}
