// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (t *Toolsets) RegisterGetSchemaSection(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "get_schema_section",
		Description: "Get the JSON Schema for one section of the chart's values (e.g. 'controlPlane', " +
			"'controlPlane.ingress'). The returned schema is self-contained: referenced definitions are included.",
		InputSchema: createSchema(map[string]any{
			"section": stringProperty("Dotted section path"),
			"version": versionProperty(),
		}, []string{"section"}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		Section string `json:"section"`
		Version string `json:"version"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.SchemaToolset.GetSchemaSection(ctx, args.Section, args.Version)
		return handleToolResult(result, err)
	})
}

func (t *Toolsets) RegisterValidateConfig(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "validate_config",
		Description: "Validate a YAML snippet against the chart's JSON Schema. The snippet may be a complete " +
			"values file, one top-level section with or without its key, or a nested sub-tree; the matching schema " +
			"section is detected automatically. Pass 'section' when the snippet omits its parent keys. " +
			"Returns valid/invalid with each error's path, keyword and message.",
		InputSchema: createSchema(map[string]any{
			"yaml":    stringProperty("The YAML snippet to validate"),
			"section": stringProperty("Optional: dotted section path the snippet belongs to (e.g. 'controlPlane.distro')"),
			"version": versionProperty(),
		}, []string{"yaml"}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		YAML    string `json:"yaml"`
		Section string `json:"section"`
		Version string `json:"version"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.SchemaToolset.ValidateConfig(ctx, args.YAML, args.Version, args.Section)
		return handleToolResult(result, err)
	})
}

func (t *Toolsets) RegisterValidatorCacheStats(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "validator_cache_stats",
		Description: "Report the compiled-validator cache: number of cached section validators, capacity " +
			"and the schema version they belong to. Set 'clear' to drop all cached validators and fetched documents.",
		InputSchema: createSchema(map[string]any{
			"clear": boolProperty("Optional: clear the caches before reporting"),
		}, nil),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct {
		Clear bool `json:"clear"`
	}) (*mcp.CallToolResult, any, error) {
		result, err := t.SchemaToolset.ValidatorCacheStats(ctx, args.Clear)
		return handleToolResult(result, err)
	})
}
