package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fomezero/config"
	"fomezero/database"
	"fomezero/handlers"
	"fomezero/services"
	"fomezero/storage"
	"fomezero/utils"
	"fomezero/worker"

	"github.com/rs/cors"
)

// main prepares the dataset once, then serves every dashboard page from that
// snapshot until a reload swaps in a newer one.
func main() {
	cfg := config.Load()
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	preparer, err := services.PreparerFromConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to load reference tables: %v", err)
		os.Exit(1)
	}

	sinks, err := openSinks(cfg, logger)
	if err != nil {
		logger.Error("Failed to open export sinks: %v", err)
		os.Exit(1)
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	prepare := func(path string) (*services.Snapshot, error) {
		snap, err := preparer.PrepareFile(path)
		if err != nil {
			return nil, err
		}
		for _, s := range sinks {
			if err := s.WriteSnapshot(snap); err != nil {
				logger.Error("Snapshot export failed: %v", err)
			}
		}
		return snap, nil
	}

	snap, err := prepare(cfg.DatasetPath)
	if err != nil {
		logger.Error("Failed to prepare dataset %s: %v", cfg.DatasetPath, err)
		os.Exit(1)
	}
	logger.Info("Dataset ready: %s", snap.Describe())
	holder := services.NewHolder(snap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerDone := worker.StartReloadWorker(ctx, holder, prepare, cfg.DatasetPath, cfg.ReloadInterval, logger)

	mux := http.NewServeMux()
	handlers.Register(mux, holder)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", handlers.RequestIDHeader},
		ExposedHeaders:   []string{handlers.RequestIDHeader},
		AllowCredentials: true,
	})
	handler := handlers.RequestID(logger, c.Handler(mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
	<-workerDone
	logger.Info("Server stopped")
}

// openSinks opens the optional export targets named by SQLITE_PATH and DATABASE_URL.
func openSinks(cfg *config.Config, logger *utils.Logger) ([]storage.SnapshotWriter, error) {
	var sinks []storage.SnapshotWriter
	if cfg.SQLitePath != "" {
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, storage.NewSQLiteWriter(db, logger))
	}
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, err
		}
		logger.Info("Connected to PostgreSQL successfully")
		sinks = append(sinks, storage.NewPostgresWriter(db, logger))
	}
	return sinks, nil
}
