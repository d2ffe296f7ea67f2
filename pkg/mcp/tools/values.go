// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (t *Toolsets) RegisterListVersions(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "list_versions",
		Description: "List the chart versions available for lookup and validation. " +
			"Returns release tags (newest first), branches, the latest stable release and the default version " +
			"used when no version is given.",
		InputSchema: createSchema(map[string]any{}, nil),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		result, err := t.ValuesToolset.ListVersions(ctx)
		return handleToolResult(result, err)
	})
}

func (t *Toolsets) RegisterSearchConfig(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "search_config",
		Description: "Search the chart's values.yaml with a natural-language query (e.g. 'ingress host', " +
			"'etcd backup'). Matches key paths, key names, comments and values, and returns the best " +
			"matching configuration entries with their dotted path, current default and documentation comment.",
		InputSchema: createSchema(map[string]any{
			"query":   stringProperty("Words describing the setting to find"),
			"version": versionProperty(),
			"limit":   intProperty("Optional: maximum number of matches to return (default 10)"),
		}, []string{"query"}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		Query   string `json:"query"`
		Version string `json:"version"`
		Limit   int    `json:"limit"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.ValuesToolset.SearchConfig(ctx, args.Query, args.Version, args.Limit)
		return handleToolResult(result, err)
	})
}

func (t *Toolsets) RegisterGetConfigValue(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "get_config_value",
		Description: "Get a single entry of the chart's values.yaml by its dotted path " +
			"(e.g. 'controlPlane.distro.k8s.enabled', 'sync.toHost.pods'). Returns the default value, its " +
			"kind and the documentation comment attached to the key.",
		InputSchema: createSchema(map[string]any{
			"path":    stringProperty("Dotted path of the key; list items use [n], e.g. 'exportKubeConfig.additionalSecrets[0]'"),
			"version": versionProperty(),
		}, []string{"path"}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		Path    string `json:"path"`
		Version string `json:"version"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.ValuesToolset.GetConfigValue(ctx, args.Path, args.Version)
		return handleToolResult(result, err)
	})
}

func (t *Toolsets) RegisterExtractRules(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "extract_rules",
		Description: "Extract configuration rules written in values.yaml comments: requirements, constraints, " +
			"warnings and documented defaults. Optionally restrict extraction to one section path " +
			"(e.g. 'controlPlane.backingStore').",
		InputSchema: createSchema(map[string]any{
			"section": stringProperty("Optional: dotted section path to restrict extraction to"),
			"version": versionProperty(),
		}, nil),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		Section string `json:"section"`
		Version string `json:"version"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.ValuesToolset.ExtractRules(ctx, args.Section, args.Version)
		return handleToolResult(result, err)
	})
}
