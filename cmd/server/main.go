/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the catering staffing engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse configuration (flags, env vars, optional .env file)
  2. Set up structured logging
  3. Initialize SQLite store and apply the configured daily limit
  4. Optionally seed demo data (--seed-demo)
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port          HTTP server port (default: 8080)
  -db            SQLite database path (default: ./data/catering.db)
                 Use ":memory:" for in-memory database
  -log-level     debug|info|warn|error (default: info)
  -verbose       pretty log output for development
  -cors-origins  comma-separated allowed origins (default: *)
  -daily-limit   default max events per calendar day (default: 3)
  -seed-demo     seed demo rules, add-ons and staff on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/catering.db"

  # Run with in-memory database and demo data
  ./server -db=":memory:" -seed-demo

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mise/staffing-engine/api"
	"github.com/mise/staffing-engine/config"
	"github.com/mise/staffing-engine/logger"
	"github.com/mise/staffing-engine/store/sqlite"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(logger.Config{
		Verbose:   cfg.Verbose,
		Level:     cfg.LogLevel,
		Component: "staffing-engine",
	})

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to initialize database")
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SetDailyEventLimit(ctx, cfg.DailyLimit); err != nil {
		log.Fatal().Err(err).Msg("failed to apply daily limit")
	}

	handler := api.NewHandler(store, log)

	if cfg.SeedDemo {
		if err := handler.SeedBaseline(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to seed demo data")
		} else {
			log.Info().Msg("demo data seeded")
		}
	}

	router := api.NewRouter(handler, strings.Split(cfg.CORSOrigins, ","))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("db", cfg.DBPath).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}
