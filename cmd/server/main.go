package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/boardkit/go-board-backend/internal/config"
	httpapi "github.com/boardkit/go-board-backend/internal/http"
	"github.com/boardkit/go-board-backend/internal/http/handlers"
	"github.com/boardkit/go-board-backend/internal/http/middleware"
	"github.com/boardkit/go-board-backend/internal/services"
	"github.com/boardkit/go-board-backend/internal/store"
	"github.com/boardkit/go-board-backend/internal/sweep"
	"github.com/boardkit/go-board-backend/internal/sysutil"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Global logger: pretty console in development, JSON elsewhere.
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty || cfg.IsDevelopment() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	st := store.New(cfg.DataFile, log.Logger)
	msgSvc := services.NewMessageService(st)

	sweeper := sweep.New(msgSvc, log.Logger)
	sweeper.OnRemoved = func(n int) { middleware.AddExpired("sweep", n) }
	if sysutil.IsTruthy(os.Getenv("DISABLE_SWEEP")) {
		log.Warn().Msg("background sweep disabled by DISABLE_SWEEP")
	} else {
		if err := sweeper.Reconfigure(cfg.DefaultAutoDeleteHrs); err != nil {
			log.Fatal().Err(err).Msg("install auto-delete schedule failed")
		}
	}
	defer sweeper.Stop()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, handlers.New(msgSvc, sweeper, cfg), cfg)

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Env).
			Str("data_file", cfg.DataFile).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
