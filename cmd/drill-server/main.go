// Command drill-server exposes the vocabulary drill as a local JSON API.
//
// Routes live under /api (see internal/transport/rest); probes are served at
// /live, /ready and /health. The server shuts down gracefully on SIGINT or
// SIGTERM.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/heartmarshall/daydrill/internal/app"
	"github.com/heartmarshall/daydrill/internal/config"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/transport/middleware"
	"github.com/heartmarshall/daydrill/internal/transport/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rt.Close()

	format, _ := domain.ParseExportFormat(cfg.Quiz.ExportFormat)

	mux := http.NewServeMux()
	health := rest.NewHealthHandler(rt.Store, cfg.Storage.Driver, app.BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()
	rest.NewDrillHandler(rt.Drill, logger, cfg.Server.MaxUploadBytes, format).
		WithUploadLimit(limiter.Limit(cfg.Server.UploadsPerMinute)).
		Register(mux)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.String("error", err.Error()))
			rt.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("error", err.Error()))
	}
}
