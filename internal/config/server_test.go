package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Default log level mismatch: got %s, want info", cfg.LogLevel)
	}

	if cfg.MetricsEnabled {
		t.Errorf("Metrics should be disabled by default")
	}

	if cfg.MetricsPort != 9090 {
		t.Errorf("Default metrics port mismatch: got %d, want 9090", cfg.MetricsPort)
	}

	if cfg.Server.Name != "decaf-lsp" {
		t.Errorf("Default server name mismatch: got %s, want decaf-lsp", cfg.Server.Name)
	}

	if cfg.Diagnostics.Source != "decaf" {
		t.Errorf("Default diagnostics source mismatch: got %s, want decaf", cfg.Diagnostics.Source)
	}

	if cfg.Completion.BuiltinsFile != "" {
		t.Errorf("Default builtins file should be empty, got %s", cfg.Completion.BuiltinsFile)
	}

	want := []string{"Id", "LPar", "RPar", "Semi"}
	if diff := cmp.Diff(want, cfg.Annotate.SkipTokens); diff != "" {
		t.Errorf("Default skip tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadServerConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
metrics_enabled: true
metrics_port: 8080
diagnostics:
  source: decafc
annotate:
  skip_tokens: [Id, Semi, Comma]
`)

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Log level mismatch: got %s, want debug", cfg.LogLevel)
	}

	if cfg.MetricsPort != 8080 {
		t.Errorf("Metrics port mismatch: got %d, want 8080", cfg.MetricsPort)
	}

	if cfg.Diagnostics.Source != "decafc" {
		t.Errorf("Diagnostics source mismatch: got %s, want decafc", cfg.Diagnostics.Source)
	}

	if diff := cmp.Diff([]string{"Id", "Semi", "Comma"}, cfg.Annotate.SkipTokens); diff != "" {
		t.Errorf("Skip tokens mismatch (-want +got):\n%s", diff)
	}

	// Unset keys keep their defaults.
	if cfg.Server.Name != "decaf-lsp" {
		t.Errorf("Server name mismatch: got %s, want decaf-lsp", cfg.Server.Name)
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	if _, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadServerConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"log level", "log_level: verbose\n", "log_level"},
		{"metrics port", "metrics_enabled: true\nmetrics_port: 70000\n", "metrics_port"},
		{"skip token", "annotate:\n  skip_tokens: [Id, Bogus]\n", "Bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadServerConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
