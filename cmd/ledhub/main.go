// Command ledhub runs the LED Hub server: the web interface for
// controlling a network-connected LED and the polling endpoints its
// microcontroller talks to.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledhub/ledhub-core/internal/api"
	"github.com/ledhub/ledhub-core/internal/auth"
	"github.com/ledhub/ledhub-core/internal/device"
	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
	"github.com/ledhub/ledhub-core/internal/infrastructure/database"
	"github.com/ledhub/ledhub-core/internal/infrastructure/logging"
	"github.com/ledhub/ledhub-core/internal/webui"
	_ "github.com/ledhub/ledhub-core/migrations"
)

// version is set at build time via -ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ledhub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath(), "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ledhub %s\n", version)
		return nil
	}

	// Bootstrap logger until the configured one takes over.
	logger := logging.Default()
	logger.Info("ledhub starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger = logging.New(cfg.Logging, version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	users := auth.NewUserRepository(db.Conn())
	sessions := auth.NewSessionRepository(db.Conn())

	created, err := auth.SeedDefaultAdmin(ctx, users)
	if err != nil {
		return fmt.Errorf("seeding default admin: %w", err)
	}
	if created {
		logger.Warn("default admin account created, change its password immediately",
			"username", auth.DefaultAdminUsername)
	}

	history := device.NewSQLiteHistoryRepository(db.Conn())
	tracker := device.NewTracker(history)

	renderer, err := webui.NewRenderer()
	if err != nil {
		return fmt.Errorf("loading web templates: %w", err)
	}

	server, err := api.New(api.Deps{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Users:    users,
		Sessions: sessions,
		Signer:   auth.NewTokenSigner(cfg.Security.SessionSecret),
		Tracker:  tracker,
		History:  history,
		Renderer: renderer,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("ledhub stopped")
	return nil
}

func defaultConfigPath() string {
	if path := os.Getenv("LEDHUB_CONFIG"); path != "" {
		return path
	}
	return "configs/config.yaml"
}
