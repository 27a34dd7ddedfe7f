package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"go.uber.org/zap"

	"github.com/woxQAQ/decaf-lsp/internal/config"
	"github.com/woxQAQ/decaf-lsp/internal/lsp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	port := flag.Int("port", 0, "TCP port for LSP server (0 for stdio)")
	flag.Parse()

	// Initialize logger; its level follows the loaded config below
	level := zap.NewAtomicLevel()
	_ = level.UnmarshalText([]byte(*logLevel))
	logger, err := newLogger(*logLevel == "debug", level)
	if err != nil {
		panic(err)
	}

	defer logger.Sync()

	logger.Info("Starting decaf-lsp",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("date", date),
	)

	// Load configuration
	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	cfg.LogLevel = resolveLogLevel(isFlagSet("log-level"), *logLevel, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Fatal("Invalid log level", zap.Error(err))
	}

	// glsp logs through commonlog
	verbosity := 1
	if cfg.LogLevel == "debug" {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	lsp.Version = version

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize LSP server
	server, err := lsp.NewServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	defer server.Close(ctx)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// Start server (stdio or TCP)
	if *port > 0 {
		if err := server.ServeTCP(ctx, *port); err != nil {
			logger.Fatal("TCP server error", zap.Error(err))
		}
	} else {
		if err := server.ServeStdio(ctx); err != nil {
			logger.Fatal("Stdio server error", zap.Error(err))
		}
	}

	logger.Info("Server shutdown complete")
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// newLogger builds a development or production logger whose level is
// controlled by level.
func newLogger(development bool, level zap.AtomicLevel) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}

// resolveLogLevel prefers an explicit -log-level flag over the config file.
func resolveLogLevel(flagSet bool, flagLevel, configLevel string) string {
	if flagSet {
		return flagLevel
	}
	return configLevel
}
