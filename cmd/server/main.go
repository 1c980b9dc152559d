/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Carioca Estratégia dashboard server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (file + ESTRATEGIA_* env vars)
  3. Configure structured logging
  4. Initialize SQLite store
  5. Create API handler and router
  6. Arm the digest scheduler
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file. When omitted, ./estrategia.yaml
           is tried and environment variables still apply.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the digest scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with an explicit config file
  ./server -config=./estrategia.yaml

  # Run purely from environment
  ESTRATEGIA_JWT_SECRET=... ESTRATEGIA_DB_PATH=:memory: ./server

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - digest/digest.go: Morning digest job
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carioca/estrategia/api"
	"github.com/carioca/estrategia/config"
	"github.com/carioca/estrategia/digest"
	"github.com/carioca/estrategia/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	handler := api.NewHandler(store, log, cfg.JWTSecret)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	scheduler := digest.NewScheduler(store, cfg.Digest, cfg.SMTP, log)
	if err := scheduler.Start(); err != nil {
		log.WithError(err).Fatal("failed to start digest scheduler")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	scheduler.Stop()

	log.Info("server stopped")
}
