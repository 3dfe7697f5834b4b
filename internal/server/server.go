// Package server runs a gin engine behind an http.Server with graceful
// shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"docreview/internal/config"
)

const shutdownTimeout = 15 * time.Second

// SetMode switches gin to release mode outside development.
func SetMode(cfg config.ServerConfig) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// Run serves h until the process is signalled or the listener fails.
func Run(cfg config.ServerConfig, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Port).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Close(); err != nil {
			return fmt.Errorf("forced shutdown failed: %w", err)
		}
	}
	log.Info().Msg("server stopped")
	return nil
}
