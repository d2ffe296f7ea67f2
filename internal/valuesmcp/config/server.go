// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"time"

	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
	"github.com/openchoreo/valuesmcp/internal/server"
)

// Transports supported by the tool server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ServerConfig defines the tool server transport.
type ServerConfig struct {
	// Transport is stdio or http.
	Transport string `koanf:"transport"`
	// Addr is the listen address in http mode.
	Addr string `koanf:"addr"`
	// Path is where the streamable HTTP tool endpoint is mounted.
	Path string `koanf:"path"`
	// MetricsPath exposes Prometheus metrics in http mode; empty disables it.
	MetricsPath string `koanf:"metrics_path"`
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// IdleTimeout is the maximum duration to wait for the next request.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for active connections to close.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ServerDefaults returns the default server configuration.
func ServerDefaults() ServerConfig {
	return ServerConfig{
		Transport:       TransportStdio,
		Addr:            ":8080",
		Path:            "/mcp",
		MetricsPath:     "/metrics",
		ReadTimeout:     15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate(path *coreconfig.Path) coreconfig.ValidationErrors {
	var errs coreconfig.ValidationErrors

	if err := coreconfig.MustBeOneOf(path.Child("transport"), c.Transport, []string{TransportStdio, TransportHTTP}); err != nil {
		errs = append(errs, err)
	}

	if c.Transport == TransportHTTP && c.Addr == "" {
		errs = append(errs, coreconfig.Invalid(path.Child("addr"), "is required for the http transport"))
	}
	if !strings.HasPrefix(c.Path, "/") {
		errs = append(errs, coreconfig.Invalid(path.Child("path"), "must start with /"))
	}
	if c.MetricsPath != "" {
		if !strings.HasPrefix(c.MetricsPath, "/") {
			errs = append(errs, coreconfig.Invalid(path.Child("metrics_path"), "must start with /"))
		} else if c.MetricsPath == c.Path {
			errs = append(errs, coreconfig.Invalid(path.Child("metrics_path"), "must differ from server.path"))
		}
	}

	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"read_timeout", c.ReadTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	} {
		if d.value < 0 {
			errs = append(errs, coreconfig.Invalid(path.Child(d.key), "must be non-negative"))
		}
	}

	return errs
}

// ToServerConfig converts to the server library config. Write timeouts stay unset so
// streamed tool responses are not cut off.
func (c *ServerConfig) ToServerConfig() server.Config {
	return server.Config{
		Addr:            c.Addr,
		ReadTimeout:     c.ReadTimeout,
		IdleTimeout:     c.IdleTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}
