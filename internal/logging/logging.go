// Package logging sets up the server's structured logger. Every log line
// goes to stderr: stdout carries nothing but framed LSP messages
// (internal/codec), so a zap core writing to stdout would corrupt the
// protocol stream.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger at level, writing JSON lines to stderr. If level
// fails to parse, it falls back to info. If the encoder itself cannot be
// built, it falls back to zap.NewNop so a logging failure never prevents
// the server from starting (grounded on dphaener-conduit's zap.NewNop
// fallback in internal/lsp/server.go).
func New(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewDevelopment builds a human-readable, stderr-only development logger,
// used when APEX_LSP_ENV=development (spec.md/SPEC_FULL.md §A.1).
func NewDevelopment() *zap.Logger {
	logger, err := zap.NewDevelopment(zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
