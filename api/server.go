package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/config"
	"github.com/rpupo63/devtracker-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, database database.Database) (Server, error) {
	if cfg == nil {
		return Server{}, errors.New("api: nil config")
	}

	// Bind to 0.0.0.0 for external access
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	startupTime := time.Now()

	router := newRouter(storesFrom(database),
		withOrigins(cfg.Origins()),
		withMaxBodyBytes(cfg.MaxBodyBytes),
		withAccessLog(cfg.LogFormat == "console"),
		withStartupTime(startupTime),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	origins      []string
	maxBodyBytes int64
	colorLogs    bool
	startupTime  time.Time
}

func withOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.origins = origins
	}
}

func withMaxBodyBytes(limit int64) func(*router) {
	return func(r *router) {
		r.maxBodyBytes = limit
	}
}

func withAccessLog(colored bool) func(*router) {
	return func(r *router) {
		r.colorLogs = colored
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(s stores, opts ...func(*router)) *chi.Mux {
	router := router{
		maxBodyBytes: config.Default().MaxBodyBytes,
		startupTime:  time.Now(),
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	if router.colorLogs {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	} else {
		chiRouter.Use(HTTPLoggingMiddleware)
	}

	chiRouter.Use(CORSCheckMiddleware(router.origins))
	chiRouter.Use(corsMiddleware(router.origins))
	chiRouter.Use(LimitBody(router.maxBodyBytes))

	notFound := NewResponder(log.Logger)
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteJSONStatus(w, http.StatusNotFound, ErrorResponse{Error: "Route not found.", Status: "error"})
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteJSONStatus(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed.", Status: "error"})
	})

	setupRoutes(chiRouter, initializeHandlers(s, router))

	return chiRouter
}

// Start serves until the listener fails or Shutdown is called. A clean
// shutdown returns nil.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
