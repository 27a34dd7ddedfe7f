package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/woxQAQ/decaf-lsp/internal/syntax"
)

type ServerConfig struct {
	LogLevel       string            `mapstructure:"log_level"`
	MetricsEnabled bool              `mapstructure:"metrics_enabled"`
	MetricsPort    int               `mapstructure:"metrics_port"`
	Server         ServerInfo        `mapstructure:"server"`
	Diagnostics    DiagnosticsConfig `mapstructure:"diagnostics"`
	Completion     CompletionConfig  `mapstructure:"completion"`
	Annotate       AnnotateConfig    `mapstructure:"annotate"`
}

// ServerInfo is reported to the client during initialize.
type ServerInfo struct {
	Name string `mapstructure:"name"`
}

// DiagnosticsConfig controls published diagnostics.
type DiagnosticsConfig struct {
	// Source tags every diagnostic.
	Source string `mapstructure:"source"`
}

// CompletionConfig controls the built-in completion set.
type CompletionConfig struct {
	// Builtins file overriding the embedded set. Empty uses the embedded set.
	BuiltinsFile string `mapstructure:"builtins_file"`
}

// AnnotateConfig controls the token annotator.
type AnnotateConfig struct {
	// Token kinds, by name, that get no lexical hover.
	SkipTokens []string `mapstructure:"skip_tokens"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func LoadServerConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_port", 9090)

	v.SetDefault("server.name", "decaf-lsp")
	v.SetDefault("diagnostics.source", "decaf")
	v.SetDefault("completion.builtins_file", "")
	v.SetDefault("annotate.skip_tokens", []string{"Id", "LPar", "RPar", "Semi"})

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field values that viper cannot.
func (c *ServerConfig) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	if c.MetricsEnabled && (c.MetricsPort <= 0 || c.MetricsPort > 65535) {
		return fmt.Errorf("invalid metrics_port %d", c.MetricsPort)
	}
	for _, name := range c.Annotate.SkipTokens {
		if _, ok := syntax.KindByName(name); !ok {
			return fmt.Errorf("invalid annotate.skip_tokens entry %q: unknown token kind", name)
		}
	}
	return nil
}
