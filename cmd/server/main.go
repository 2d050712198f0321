package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/config"
	"github.com/domino14/lineword/events"
	"github.com/domino14/lineword/game"
	"github.com/domino14/lineword/server"
)

const GracefulShutdownTimeout = 20 * time.Second

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if os.Getenv("LINEWORD_LOG_JSON") == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	listeners := []game.Listener{events.NewLogListener(log.Logger)}

	var nc *nats.Conn
	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		var err error
		nc, err = events.Connect(context.Background(), url, 5)
		if err != nil {
			log.Fatal().Err(err).Str("url", url).Msg("nats-connect")
		}
		listeners = append(listeners,
			events.NewNATSListener(nc, cfg.GetString(config.ConfigNatsSubject)))
		// Drain at shutdown takes care of the subscription.
		if _, err := events.ServeScores(nc, cfg.GetString(config.ConfigNatsScoreSubject)); err != nil {
			log.Fatal().Err(err).Msg("nats-subscribe")
		}
	}

	h := server.New(cfg, listeners...)
	err := chi.Walk(h.Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Str("route", route).Msg("route")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("walk-routes")
	}
	srv := &http.Server{
		Addr:    cfg.GetString(config.ConfigHTTPAddr),
		Handler: h,
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)

		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	if nc != nil {
		if err := nc.Drain(); err != nil {
			log.Err(err).Msg("nats-drain")
		}
	}
	log.Info().Msg("server gracefully shutting down")
}
