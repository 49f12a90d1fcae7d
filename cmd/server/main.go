/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the sales engine server: configuration, logger,
  SQLite store, report builder, HTTP router, graceful shutdown.

CONFIGURATION:
  Flags (env variables override):
    -addr         HTTP listen address       (ADDR, default :8080)
    -db           SQLite database path      (DB_PATH, default sales.db)
                  Use ":memory:" for an in-memory database
    -goal-preset  Goal estimation constants (GOAL_PRESET, standard|long)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alianza/sales-engine/api"
	"github.com/alianza/sales-engine/config"
	"github.com/alianza/sales-engine/goals"
	"github.com/alianza/sales-engine/report"
	"github.com/alianza/sales-engine/store/sqlite"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err)
	}
	defer store.Close()

	goalCfg := goals.StandardConfig()
	if cfg.GoalPreset == "long" {
		goalCfg = goals.LongMonthConfig()
	}

	builder := report.NewBuilder(goalCfg, logger)
	handler := api.NewHandler(store, builder, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		sugar.Fatalw("server forced to shutdown", "error", err)
	}

	sugar.Info("server stopped")
}
