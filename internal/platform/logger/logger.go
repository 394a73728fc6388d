package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New builds a sugared zap logger; production encoding outside dev.
func New(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}
	return zapLogger.Sugar(), nil
}
