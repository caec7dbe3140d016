// Package logging builds the zap logger shared by the server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string `help:"Log level (debug, info, warn, error)." default:"info" env:"STOREFRONT_LOG_LEVEL" enum:"debug,info,warn,error"`
	JSON  bool   `help:"Emit JSON logs instead of console output." default:"true" env:"STOREFRONT_LOG_JSON" negatable:""`
}

func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("zapcore.ParseLevel: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if !cfg.JSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("zcfg.Build: %w", err)
	}

	return logger.With(zap.String("service", "storefront")), nil
}
