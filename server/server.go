// Package server hosts game sessions over HTTP. Each session is kept in
// memory and guarded by its own lock; the game package itself is not safe
// for concurrent use.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/board"
	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/play"
	"github.com/domino14/lineword/tilemapping"
)

var errNotFound = errors.New("no such game")

type entry struct {
	sync.Mutex
	session *game.Session
}

type Server struct {
	r         *chi.Mux
	cfg       *config.Config
	listeners []game.Listener

	mu       sync.RWMutex
	sessions map[string]*entry
}

// New builds the router. Every session created through it gets listeners
// attached.
func New(cfg *config.Config, listeners ...game.Listener) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       cfg,
		listeners: listeners,
		sessions:  map[string]*entry{},
	}
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Post("/games", s.handleNewGame)
	s.r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", s.withSession(s.handleState))
		r.Post("/deal", s.withSession(s.handleDeal))
		r.Post("/draw", s.withSession(s.handleDraw))
		r.Post("/place", s.withSession(s.handlePlace))
		r.Post("/remove", s.withSession(s.handleRemove))
		r.Post("/submit", s.withSession(s.handleSubmit))
		r.Post("/reset", s.withSession(s.handleReset))
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found: "+r.URL.Path))
	})
	return s
}

// Router exposes the routes, e.g. for chi.Walk.
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type errorRes struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("encode-response")
	}
}

// statusFor maps session errors onto HTTP statuses. Moves the board refuses
// are conflicts with the current state; anything else is a bad request.
func statusFor(err error) int {
	var occ *board.OccupiedSquareError
	var locked *board.LockedSquareError
	switch {
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.As(err, &occ), errors.As(err, &locked), errors.Is(err, board.ErrEmptySquare),
		errors.Is(err, game.ErrTileNotOnRack):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *game.Session)

// withSession looks up the game named in the path and holds its lock for the
// rest of the request.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.RLock()
		e, ok := s.sessions[id]
		s.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusNotFound, errNotFound)
			return
		}
		e.Lock()
		defer e.Unlock()
		h(w, r, e.session)
	}
}

type newGameReq struct {
	Board        string `json:"board"`
	Distribution string `json:"distribution"`
	RackCapacity int    `json:"rack_capacity"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Board == "" {
		req.Board = s.cfg.GetString(config.ConfigBoardLayout)
	}
	if req.Distribution == "" {
		req.Distribution = s.cfg.GetString(config.ConfigLetterDistribution)
	}
	rules, err := game.NewGameRules(s.cfg, req.Board, req.Distribution)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := []game.Option{game.WithRules(rules)}
	if req.RackCapacity > 0 {
		opts = append(opts, game.WithRackCapacity(req.RackCapacity))
	}
	for _, l := range s.listeners {
		opts = append(opts, game.WithListener(l))
	}
	sess, err := game.NewSession(opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := sess.ID().String()
	s.mu.Lock()
	s.sessions[id] = &entry{session: sess}
	s.mu.Unlock()
	log.Info().Str("session", id).Str("board", req.Board).Msg("new-game")

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, sess.Snapshot())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	writeJSON(w, sess.Snapshot())
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	sess.Deal()
	writeJSON(w, sess.Snapshot())
}

type drawReq struct {
	N int `json:"n"`
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req drawReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess.DrawTiles(req.N)
	writeJSON(w, sess.Snapshot())
}

// placeReq names the tile either by id or by letter.
type placeReq struct {
	Position int    `json:"position"`
	TileID   *int   `json:"tile_id,omitempty"`
	Letter   string `json:"letter,omitempty"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req placeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var err error
	switch {
	case req.TileID != nil:
		err = sess.Place(req.Position, tilemapping.TileID(*req.TileID))
	case req.Letter != "":
		var letter rune
		if letter, err = tilemapping.NormalizeLetter(req.Letter); err == nil {
			err = sess.PlaceLetter(req.Position, letter)
		}
	default:
		err = errors.New("need a tile_id or a letter")
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, sess.Snapshot())
}

type removeReq struct {
	Position int `json:"position"`
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req removeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := sess.Remove(req.Position); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, sess.Snapshot())
}

type submitRes struct {
	Result play.ScoreResult `json:"result"`
	State  game.Snapshot    `json:"state"`
}

// handleSubmit answers 200 for invalid words too; the result says why.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	res := sess.Submit()
	writeJSON(w, submitRes{Result: res, State: sess.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	sess.Reset()
	writeJSON(w, sess.Snapshot())
}
