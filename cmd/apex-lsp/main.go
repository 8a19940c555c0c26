// Command apex-lsp runs the Apex language server over stdio, speaking
// Content-Length-framed JSON-RPC on stdin/stdout (spec.md §6).
package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/apexlang/apex-lsp/internal/apexparse"
	"github.com/apexlang/apex-lsp/internal/codec"
	"github.com/apexlang/apex-lsp/internal/config"
	"github.com/apexlang/apex-lsp/internal/logging"
	"github.com/apexlang/apex-lsp/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewNop().Sugar().Errorf("config: %v", err)
		cfg = &config.Config{LogLevel: "info", Environment: "production"}
	}

	var logger *zap.Logger
	if cfg.Environment == "development" {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	defer logger.Sync()

	parser, err := apexparse.NewManager(cfg.TreeSitterLibraryPath)
	if err != nil {
		logger.Warn("tree-sitter grammar unavailable, parsing-dependent features are disabled", zap.Error(err))
		parser = nil
	}

	reader := codec.NewReader(os.Stdin)
	writer := codec.NewWriter(os.Stdout)
	srv := server.New(reader, writer, logger, parser)

	if err := srv.Run(context.Background()); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
