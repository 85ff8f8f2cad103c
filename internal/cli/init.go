// Package cli holds the initialization steps shared by the server and
// worker binaries.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"arthika/internal/config"
	"arthika/internal/log"
)

// Bootstrap loads the local .env file, installs the default logger,
// and returns the validated configuration. It exits the process when
// the configuration is unusable, since no binary can run without one.
func Bootstrap(component string) (*log.Logger, *config.Config) {
	// .env is for local development; absence is fine in production.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(component)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return logger, cfg
}
