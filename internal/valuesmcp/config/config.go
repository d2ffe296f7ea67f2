// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package config defines the valuesmcp configuration and its defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
)

// EnvPrefix is the prefix of environment overrides, e.g. VALUESMCP__SOURCE__DEFAULT_REF=v0.26.0.
const EnvPrefix = "VALUESMCP"

// Config is the top-level configuration for valuesmcp.
type Config struct {
	// Source locates the chart repository and tunes remote fetches.
	Source SourceConfig `koanf:"source"`
	// Validator tunes the snippet validator.
	Validator ValidatorConfig `koanf:"validator"`
	// Server defines the tool server transport.
	Server ServerConfig `koanf:"server"`
	// MCP selects the exposed toolsets.
	MCP MCPConfig `koanf:"mcp"`
	// Logging defines logging settings.
	Logging LoggingConfig `koanf:"logging"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Source:    SourceDefaults(),
		Validator: ValidatorDefaults(),
		Server:    ServerDefaults(),
		MCP:       MCPDefaults(),
		Logging:   LoggingDefaults(),
	}
}

// Load loads configuration from defaults, the optional file at configPath, environment variables
// and finally the explicitly set flags named in flagMappings (flag name -> config key).
// The returned loader holds the merged key space, for example to dump it.
func Load(configPath string, flags *pflag.FlagSet, flagMappings map[string]string, logger *slog.Logger) (*Config, *coreconfig.Loader, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loader := coreconfig.NewLoader(EnvPrefix, coreconfig.WithLogger(logger))

	if err := loader.LoadWithDefaults(Defaults(), configPath); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags != nil {
		if err := loader.LoadFlags(flags, flagMappings); err != nil {
			return nil, nil, fmt.Errorf("failed to apply flags: %w", err)
		}
	}

	var cfg Config
	if err := loader.Unmarshal("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, loader, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs coreconfig.ValidationErrors

	errs = append(errs, c.Source.Validate(coreconfig.NewPath("source"))...)
	errs = append(errs, c.Validator.Validate(coreconfig.NewPath("validator"))...)
	errs = append(errs, c.Server.Validate(coreconfig.NewPath("server"))...)
	errs = append(errs, c.MCP.Validate(coreconfig.NewPath("mcp"))...)
	errs = append(errs, c.Logging.Validate(coreconfig.NewPath("logging"))...)

	return errs.OrNil()
}
