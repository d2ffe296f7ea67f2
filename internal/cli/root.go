// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the valuesmcp command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
	"github.com/openchoreo/valuesmcp/internal/logging"
	"github.com/openchoreo/valuesmcp/internal/metrics"
	"github.com/openchoreo/valuesmcp/internal/output"
	"github.com/openchoreo/valuesmcp/internal/service"
	"github.com/openchoreo/valuesmcp/internal/source"
	"github.com/openchoreo/valuesmcp/internal/validation"
	vconfig "github.com/openchoreo/valuesmcp/internal/valuesmcp/config"
)

// ErrInvalid is returned by the validate command when the snippet fails validation.
var ErrInvalid = errors.New("snippet is invalid")

// Flag names.
const (
	flagConfig     = "config"
	flagLogLevel   = "log-level"
	flagOutput     = "output"
	flagVersionRef = "version-ref"
	flagTransport  = "transport"
	flagAddr       = "addr"
	flagSection    = "section"
	flagLimit      = "limit"
)

// flagMappings maps flags onto config keys. Flags not set on the command line are ignored.
var flagMappings = map[string]string{
	flagLogLevel:  "logging.level",
	flagTransport: "server.transport",
	flagAddr:      "server.addr",
}

// app is built once per invocation by the root PersistentPreRunE.
type app struct {
	cfg      *vconfig.Config
	loader   *coreconfig.Loader
	logger   *slog.Logger
	format   output.Format
	version  string
	registry *prometheus.Registry
	service  *service.Service
}

// NewRootCmd builds the command tree. Command output goes to the command's out writer
// (cmd.SetOut), logs to stderr.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "valuesmcp",
		Short: "Search, explain and validate Helm chart values",
		Long: "valuesmcp looks up a Helm chart's values.yaml and values.schema.json at any released version, " +
			"validates partial YAML snippets against the schema and serves the same operations as MCP tools.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(flagConfig, "", "path to a YAML config file")
	pf.String(flagLogLevel, "", "log level (debug, info, warn, error)")
	pf.StringP(flagOutput, "o", string(output.FormatTable), "output format (table, json, yaml)")
	pf.StringP(flagVersionRef, "r", "", "chart version: a tag, a branch or 'latest' (default: configured default ref)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newValidateCmd(a),
		newSearchCmd(a),
		newGetCmd(a),
		newSchemaCmd(a),
		newRulesCmd(a),
		newVersionsCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	cfg, loader, err := vconfig.Load(configPath, cmd.Flags(), flagMappings, nil)
	if err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString(flagOutput)
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.loader = loader
	a.format = format
	a.version, _ = cmd.Flags().GetString(flagVersionRef)
	a.logger = logging.New(cfg.Logging.ToLoggingConfig())
	slog.SetDefault(a.logger)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(a.registry)

	src, err := source.NewGitHub(cfg.Source.ToGitHubConfig(),
		source.WithLogger(a.logger.With("component", "source")),
		source.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	validator := validation.NewValidator(
		validation.WithCache(validation.NewCache(cfg.Validator.CacheSize)),
		validation.WithMaxSnippetBytes(cfg.Validator.MaxSnippetBytes),
		validation.WithLogger(a.logger.With("component", "validator")),
		validation.WithMetrics(m),
	)

	a.service = service.New(src, validator, cfg.Source.ToServiceConfig(), a.logger.With("component", "service"))
	a.logger.Debug("Initialized",
		"repository", cfg.Source.Owner+"/"+cfg.Source.Repo, "default_ref", cfg.Source.DefaultRef)
	return nil
}

func (a *app) write(w io.Writer, v any) error {
	return output.Write(w, a.format, v)
}
