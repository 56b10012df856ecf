// Package logger builds the service-wide zap logger from configuration.
package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/autoazul/store-profit/config"
)

func New(cfg config.LoggerConfig) (*zap.SugaredLogger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Encoding == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = level

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Sugar(), nil
}
