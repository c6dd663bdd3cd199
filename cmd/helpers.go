package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/BenedictTTM/qualipro/internal/config"
	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `qualipro init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(verbose, cfg.Dev)
}

// loadSite reads the configured content file, or the built-in copy when
// none is set.
func loadSite(cfg *config.Config) (*content.Site, error) {
	if cfg.ContentFile == "" {
		return content.Default()
	}
	s, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return s, nil
}
