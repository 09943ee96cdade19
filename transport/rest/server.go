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

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	logger = logger.With("component", "rest")

	return &Server{
		logger: logger,
		handlers: &handlers{
			logger:      logger,
			gameUseCase: gameUseCase,
		},
	}
}

// Router returns the REST routes.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(that.requestLogger)

	r.Get("/ping", that.handlers.Ping)

	r.Post("/games", that.handlers.StartGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", that.handlers.GetGame)
		r.Delete("/", that.handlers.EndGame)
		r.Post("/turns", that.handlers.MakeTurn)
		r.Post("/restart", that.handlers.RestartGame)
		r.Put("/config", that.handlers.ConfigureGame)
		r.Get("/hint", that.handlers.Hint)
	})

	return r
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.DebugContext(r.Context(), "request served",
			"http_method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
