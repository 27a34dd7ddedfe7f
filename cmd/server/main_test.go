package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woxQAQ/decaf-lsp/internal/config"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name        string
		flagSet     bool
		flagLevel   string
		configLevel string
		want        string
	}{
		{"config wins without flag", false, "info", "debug", "debug"},
		{"explicit flag wins", true, "warn", "debug", "warn"},
		{"explicit default flag", true, "info", "error", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveLogLevel(tt.flagSet, tt.flagLevel, tt.configLevel)
			if got != tt.want {
				t.Errorf("resolveLogLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	level := zap.NewAtomicLevel()
	logger, err := newLogger(false, level)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled before the config is applied")
	}

	cfg, err := config.LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig() failed: %v", err)
	}
	if err := level.UnmarshalText([]byte(resolveLogLevel(false, "info", cfg.LogLevel))); err != nil {
		t.Fatalf("UnmarshalText() failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("log_level from the config file did not reach the logger")
	}
}
