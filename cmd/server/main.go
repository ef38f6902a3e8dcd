package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wedding-message-vault/internal/api"
	"github.com/wedding-message-vault/internal/auth"
	"github.com/wedding-message-vault/internal/config"
	"github.com/wedding-message-vault/internal/database"
	"github.com/wedding-message-vault/internal/repository"
	"github.com/wedding-message-vault/internal/service"
	"github.com/wedding-message-vault/pkg/logger"
)

func main() {
	// Load .env if present (secrets come from the environment, never constants)
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting wedding message vault server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the entry store
	var repo repository.EntryRepository
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}
		if err := db.RunMigrations(migrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}

		repo = repository.NewEntryRepo(db)
	case config.StoreBackendFile:
		repo, err = repository.NewFileRepo(cfg.Store.FilePath, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open results file")
		}
		log.Info().Str("path", cfg.Store.FilePath).Msg("Using flat-file entry store")
	}

	// Initialize auth
	authMgr, err := auth.NewManager(&cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth")
	}

	// Initialize services
	services := service.NewServices(repo, authMgr, log)

	// Initialize router
	router := api.NewRouter(services, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
