// Package server wires the HTTP surface of the account API: routes, CORS,
// request logging and the test/demo endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"accounts/internal/auth"
	"accounts/internal/cache"
	"accounts/internal/config"
)

// Database is the slice of the data-access layer the server endpoints use.
type Database interface {
	Query(ctx context.Context, sql string, params ...any) []map[string]any
	Health(ctx context.Context) map[string]string
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg    *config.Config
	db     Database
	cache  cache.Store
	auth   *auth.Handler
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// New creates a Server with its collaborators.
func New(cfg *config.Config, db Database, cacheStore cache.Store, authHandler *auth.Handler, tokens *auth.TokenIssuer, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		db:     db,
		cache:  cacheStore,
		auth:   authHandler,
		tokens: tokens,
		logger: logger,
	}
}

// HTTPServer builds the configured *http.Server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:           fmt.Sprintf(":%s", s.cfg.Port),
		Handler:        s.RegisterRoutes(),
		ReadTimeout:    s.cfg.ReadTimeout,
		WriteTimeout:   s.cfg.WriteTimeout,
		IdleTimeout:    s.cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
