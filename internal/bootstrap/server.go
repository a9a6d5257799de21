package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dayflow/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests. onShutdown runs after the listener closes, while the process is
// still alive, for closing external connections.
func Serve(cfg config.Config, engine *gin.Engine, logger *zap.Logger, onShutdown func()) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return err
	}

	if onShutdown != nil {
		onShutdown()
	}

	logger.Info("server stopped cleanly")
	return nil
}
