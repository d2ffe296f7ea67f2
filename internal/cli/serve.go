// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/openchoreo/valuesmcp/internal/mcphandlers"
	"github.com/openchoreo/valuesmcp/internal/server"
	"github.com/openchoreo/valuesmcp/internal/server/middleware/logger"
	vconfig "github.com/openchoreo/valuesmcp/internal/valuesmcp/config"
	"github.com/openchoreo/valuesmcp/pkg/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the values tools over MCP (stdio or streamable HTTP)",
		Example: `  valuesmcp serve
  valuesmcp serve --transport http --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String(flagTransport, vconfig.TransportStdio, "transport (stdio, http)")
	cmd.Flags().String(flagAddr, "", "listen address for the http transport")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	toolsets := mcphandlers.NewMCPHandler(a.service).Toolsets(a.cfg.MCP.ParseToolsets())

	switch a.cfg.Server.Transport {
	case vconfig.TransportHTTP:
		srv := server.New(a.cfg.Server.ToServerConfig(), a.httpHandler(mcp.NewHTTPServer(toolsets)), a.logger)
		return srv.Run(ctx)
	case vconfig.TransportStdio:
		a.logger.Info("Serving MCP on stdio", "toolsets", a.cfg.MCP.Toolsets)
		return mcp.NewSTDIO(toolsets).Run(ctx, &sdkmcp.StdioTransport{})
	}
	return fmt.Errorf("unsupported transport %q", a.cfg.Server.Transport)
}

// httpHandler mounts the tool endpoint and, when configured, the metrics endpoint.
func (a *app) httpHandler(tools http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Server.Path, tools)
	if a.cfg.Server.MetricsPath != "" {
		mux.Handle(a.cfg.Server.MetricsPath, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return logger.Middleware(a.logger)(mux)
}
