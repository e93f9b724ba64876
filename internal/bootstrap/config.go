package bootstrap

import (
	"flag"
	"fmt"

	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/logger"
)

// LoadConfig loads configuration. Uses -config flag with an env-driven default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "catalog-api"),
		logger.String("version", version),
	), nil
}
