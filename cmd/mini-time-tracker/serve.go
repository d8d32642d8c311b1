package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mini-time-tracker/internal/app"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort int
	strictCap bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the entry service HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&strictCap, "strict-cap", false, "serialise creates per date (overrides STRICT_DAILY_CAP)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.HTTP.Port = servePort
	}
	if strictCap {
		cfg.Entries.StrictDailyCap = true
	}
	if cfg.Log.Level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Context with signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		return err
	}
	defer application.Close()

	srv := application.HTTPServer(fmt.Sprintf(":%d", cfg.HTTP.Port))
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.Int("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
