package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the JSON API, the single page and, when ws is not nil, the WebSocket endpoint.
func NewRouter(logger *slog.Logger, sessions sessionManager, ws http.Handler) http.Handler {
	handlers := NewHandlers(logger, sessions)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)
	r.Get("/", IndexHandler)

	if ws != nil {
		r.Handle("/ws", ws)
	}

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handlers.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", handlers.GetSession)
			r.Delete("/", handlers.EndSession)
			r.Post("/cells/{cell}", handlers.Play)
			r.Post("/moves/{move}", handlers.JumpTo)
			r.Post("/sort", handlers.ToggleSort)
			r.Post("/new", handlers.NewGame)
		})
	})

	return r
}

// Start - serves handler on port until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
