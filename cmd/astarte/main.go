// Astarte data access layer.
//
// This is the main entry point for the data access service. It connects
// the realm keyspaces on the cluster and keeps the session alive; the
// planners in internal/ stay pure and hand their statements to the
// executor wired up here.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/noaccOS/astarte/internal/infrastructure/cassandra"
	"github.com/noaccOS/astarte/internal/infrastructure/config"
	"github.com/noaccOS/astarte/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Astarte data access layer",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Connect to the cluster
	client, err := cassandra.Connect(cfg.Cassandra)
	if err != nil {
		return fmt.Errorf("connecting to cassandra: %w", err)
	}
	defer func() {
		log.Info("closing cassandra session")
		if closeErr := client.Close(); closeErr != nil {
			log.Error("error closing cassandra session", "error", closeErr)
		}
	}()
	log.Info("cassandra connected",
		"hosts", cfg.Cassandra.Hosts,
		"port", cfg.Cassandra.Port,
		"consistency", cfg.Cassandra.Consistency,
	)

	// Verify the connection is healthy
	if err := client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("health check passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Astarte data access layer stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses ASTARTE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("ASTARTE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
