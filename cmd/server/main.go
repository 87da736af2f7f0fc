package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluentoffice/notes-backend/internal/config"
	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/pipeline"
	"github.com/fluentoffice/notes-backend/internal/server"
	"github.com/fluentoffice/notes-backend/internal/store"
	"github.com/fluentoffice/notes-backend/internal/summarizer"
	"github.com/fluentoffice/notes-backend/internal/transcriber"
	"github.com/fluentoffice/notes-backend/internal/translator"
	"github.com/fluentoffice/notes-backend/internal/watcher"
	"github.com/fluentoffice/notes-backend/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Notes Backend")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Open the database and build the store
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Error(ctx, "Failed to open database: %v", err)
		os.Exit(1)
	}
	st := store.New(db)
	stores := store.NewFactory(db)

	// Initialize the processing pipeline
	exec := executor.New()
	tr := transcriber.New(cfg.Whisper, exec, log)
	sum := summarizer.New(cfg.Gemini, translator.NewIdentity(), log)
	runner := pipeline.NewRunner(stores, tr, sum, log)

	pool := pipeline.NewPool(runner, log, cfg.Performance.Workers, cfg.Performance.QueueSize)
	pool.Start()

	// HTTP server
	srv := server.New(cfg, st, pool, log)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	// Optional inbox watcher for file-drop intake
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if cfg.Paths.Inbox != "" {
		handler := watcher.NewIntakeHandler(st, cfg.Paths.Uploads, pool, log)
		w, err := watcher.New(cfg.Paths.Inbox, handler, log, cfg.Performance.Workers)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "Watcher error: %v", err)
			}
		}()
		log.Info(ctx, "Inbox watcher monitoring: %s", cfg.Paths.Inbox)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown: stop accepting requests, then drain the pipeline
	log.Info(ctx, "Shutting down gracefully...")
	cancelWatch()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP shutdown error: %v", err)
	}

	pool.Shutdown()
	log.Info(ctx, "Meeting Notes Backend stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Uploads}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
