// Package logging builds the zap logger shared by fingerdraw components.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ModeProduction selects JSON output at info level.
const ModeProduction = "production"

// New builds a logger for the given mode. Anything other than
// ModeProduction gets the colored development console encoder.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == ModeProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build()
}

// Sync flushes buffered entries, ignoring the error stderr returns on some platforms.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
