package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts/internal/auth"
	"accounts/internal/cache"
	"accounts/internal/config"
	"accounts/internal/database"
	"accounts/internal/logger"
	"accounts/internal/server"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Misconfiguration is fatal at startup, never a per-request failure.
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.IsDevelopment())
	log.Info("starting account API", "env", cfg.Env, "port", cfg.Port,
		"secret", logger.Obscure(string(cfg.SecretKey)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Postgres.DSN())
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("connected to database", "host", cfg.Postgres.Host)

	db := database.New(pool, log)
	if err := db.Migrate(ctx); err != nil {
		log.Error("failed to migrate database", "err", err)
		os.Exit(1)
	}

	cacheStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	if err := cacheStore.Ping(ctx); err != nil {
		log.Warn("cache unreachable at startup", "addr", cfg.RedisAddr, "err", err)
	} else {
		log.Info("connected to cache", "addr", cfg.RedisAddr)
	}

	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL)
	authService := auth.NewService(db, tokens, log)
	authHandler := auth.NewHandler(authService, tokens, log)

	srv := server.New(cfg, db, cacheStore, authHandler, tokens, log).HTTPServer()

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "err", err)
	}

	log.Info("stopped")
}
