package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kmacinski/slidewin/internal/api"
	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/session"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualizer API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :5000)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *options, addr string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := installLogger(os.Stderr, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	gen, err := codegen.New()
	if err != nil {
		return err
	}
	handlers := api.NewHandlers(gen, session.NewStore(cfg.Server.MaxSessions), cfg.Server.MaxElements)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("API listening", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("API shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Server.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := handlers.SweepSessions(cfg.Server.SessionTTL); n > 0 {
					logger.Info("Expired scan sessions", "count", n)
				}
			}
		}
	})

	return g.Wait()
}

// installLogger makes a JSON logger the process default so handler and
// middleware logs follow --log-level.
func installLogger(w io.Writer, level string) *slog.Logger {
	logger := newLogger(w, level, true)
	slog.SetDefault(logger)
	return logger
}
