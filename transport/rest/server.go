package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - health endpoints of the game server.
func NewRouter(rooms roomCounter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.HandleFunc("GET /stats", NewStatsHandler(rooms).StatsHandler)

	return mux
}

// Start - serves the health endpoints until ctx is canceled.
func Start(ctx context.Context, port string, rooms roomCounter) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(rooms),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
