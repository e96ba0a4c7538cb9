// Package logging wraps zap logger construction for the storage engine.
// Logging here is strictly observability: page fetch/evict/flush decisions
// at Debug, retried lock waits at Warn, I/O failures at Error. No log
// record is part of the storage contract -- that is the explicitly
// out-of-scope write-ahead log, not this.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// JSON selects the JSON encoder; otherwise a human-readable console
	// encoder is used.
	JSON bool
}

// New builds a zap.Logger from cfg. An empty Config produces an info-level
// console logger.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	zcfg := zap.NewProductionConfig()
	if !cfg.JSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// Nop returns a logger that discards everything, used as the default when
// no logger is supplied to a constructor.
func Nop() *zap.Logger { return zap.NewNop() }
