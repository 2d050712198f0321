package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/game"
)

type tileView struct {
	Letter rune `json:"letter"`
	Value  int  `json:"value"`
	ID     int  `json:"id"`
}

type snapshotView struct {
	ID           string     `json:"id"`
	State        string     `json:"state"`
	Score        int        `json:"score"`
	Message      string     `json:"message"`
	Rack         []tileView `json:"rack"`
	BagRemaining int        `json:"bag_remaining"`
	Board        []struct {
		Position int  `json:"position"`
		Locked   bool `json:"locked"`
	} `json:"board"`
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) snapshotView {
	t.Helper()
	var snap snapshotView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func newGame(t *testing.T, s *Server, board string) snapshotView {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", map[string]any{"board": board})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode(t, rec)
}

type recordingListener struct {
	turns []game.Turn
}

func (r *recordingListener) TurnSubmitted(t game.Turn) {
	r.turns = append(r.turns, t)
}

func TestTurnOverHTTP(t *testing.T) {
	var rl recordingListener
	s := New(config.DefaultConfig(), &rl)
	snap := newGame(t, s, "short")
	assert.Equal(t, "awaiting-deal", snap.State)
	assert.Len(t, snap.Board, 6)
	assert.Equal(t, 100, snap.BagRemaining)
	base := "/games/" + snap.ID

	snap = decode(t, do(t, s, http.MethodPost, base+"/deal", nil))
	require.Len(t, snap.Rack, 7)
	assert.Equal(t, 93, snap.BagRemaining)
	a, b := snap.Rack[0], snap.Rack[1]

	rec := do(t, s, http.MethodPost, base+"/place", map[string]any{"position": 0, "tile_id": a.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/place", map[string]any{"position": 1, "letter": string(b.Letter)})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Result struct {
			Valid bool `json:"valid"`
			Score int  `json:"score"`
		} `json:"result"`
		State snapshotView `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Result.Valid)
	// ` '-" =`: position 1 doubles its letter.
	assert.Equal(t, a.Value+2*b.Value, res.Result.Score)
	assert.Equal(t, res.Result.Score, res.State.Score)
	assert.True(t, res.State.Board[0].Locked)
	assert.Equal(t, "submitted", res.State.State)
	require.Len(t, rl.turns, 1)
	assert.Equal(t, res.State.Score, rl.turns[0].Cumulative)

	snap = decode(t, do(t, s, http.MethodPost, base+"/reset", nil))
	assert.Len(t, snap.Rack, 7)
	assert.False(t, snap.Board[0].Locked)
	assert.Equal(t, res.State.Score, snap.Score)
}

func TestInvalidSubmit(t *testing.T) {
	s := New(config.DefaultConfig())
	snap := newGame(t, s, "standard")
	base := "/games/" + snap.ID
	snap = decode(t, do(t, s, http.MethodPost, base+"/deal", nil))

	do(t, s, http.MethodPost, base+"/place", map[string]any{"position": 3, "tile_id": snap.Rack[0].ID})
	rec := do(t, s, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Result struct {
			Valid   bool   `json:"valid"`
			Message string `json:"message"`
		} `json:"result"`
		State snapshotView `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Result.Valid)
	assert.Equal(t, "word too short.", res.Result.Message)
	assert.Equal(t, 0, res.State.Score)
	assert.Equal(t, "word too short.", res.State.Message)
}

func TestPlaceErrors(t *testing.T) {
	s := New(config.DefaultConfig())
	snap := newGame(t, s, "standard")
	base := "/games/" + snap.ID
	snap = decode(t, do(t, s, http.MethodPost, base+"/deal", nil))

	rec := do(t, s, http.MethodPost, base+"/place", map[string]any{"position": 2, "tile_id": snap.Rack[0].ID})
	require.Equal(t, http.StatusOK, rec.Code)

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"occupied", "/place", map[string]any{"position": 2, "tile_id": snap.Rack[1].ID}, http.StatusConflict},
		{"not on rack", "/place", map[string]any{"position": 4, "tile_id": 9999}, http.StatusConflict},
		{"off the board", "/place", map[string]any{"position": 40, "tile_id": snap.Rack[1].ID}, http.StatusBadRequest},
		{"no tile", "/place", map[string]any{"position": 4}, http.StatusBadRequest},
		{"empty square", "/remove", map[string]any{"position": 5}, http.StatusConflict},
		{"bad json", "/remove", "five", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, base+tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec = do(t, s, http.MethodPost, base+"/remove", map[string]any{"position": 2})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec).Rack, 7)
}

func TestUnknownGame(t *testing.T) {
	s := New(config.DefaultConfig())
	rec := do(t, s, http.MethodGet, "/games/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/games", map[string]any{"board": "xyz!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDrawAndState(t *testing.T) {
	s := New(config.DefaultConfig())
	snap := newGame(t, s, "center")
	base := "/games/" + snap.ID

	snap = decode(t, do(t, s, http.MethodPost, base+"/draw", map[string]any{"n": 3}))
	assert.Len(t, snap.Rack, 3)
	assert.Equal(t, "rack-filled", snap.State)
	snap = decode(t, do(t, s, http.MethodPost, base+"/draw", map[string]any{"n": 30}))
	assert.Len(t, snap.Rack, 7)

	got := decode(t, do(t, s, http.MethodGet, base, nil))
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, fmt.Sprint(snap.Rack), fmt.Sprint(got.Rack))
}

func TestRoutes(t *testing.T) {
	s := New(config.DefaultConfig())
	var routes []string
	err := chi.Walk(s.Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	for _, want := range []string{
		"GET /health",
		"POST /games",
		"GET /games/{id}/",
		"POST /games/{id}/deal",
		"POST /games/{id}/draw",
		"POST /games/{id}/place",
		"POST /games/{id}/remove",
		"POST /games/{id}/submit",
		"POST /games/{id}/reset",
	} {
		assert.Contains(t, routes, want)
	}
}
