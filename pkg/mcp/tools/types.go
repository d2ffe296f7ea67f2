// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolsetType represents a type of toolset that can be enabled
type ToolsetType string

const (
	ToolsetValues ToolsetType = "values"
	ToolsetSchema ToolsetType = "schema"
)

// AllToolsets lists every toolset in registration order.
var AllToolsets = []ToolsetType{ToolsetValues, ToolsetSchema}

type Toolsets struct {
	ValuesToolset ValuesToolsetHandler
	SchemaToolset SchemaToolsetHandler
}

// ValuesToolsetHandler handles values.yaml lookup operations
type ValuesToolsetHandler interface {
	ListVersions(ctx context.Context) (any, error)
	SearchConfig(ctx context.Context, query, version string, limit int) (any, error)
	GetConfigValue(ctx context.Context, path, version string) (any, error)
	ExtractRules(ctx context.Context, section, version string) (any, error)
}

// SchemaToolsetHandler handles schema lookup and snippet validation
type SchemaToolsetHandler interface {
	GetSchemaSection(ctx context.Context, section, version string) (any, error)
	ValidateConfig(ctx context.Context, snippet, version, section string) (any, error)
	ValidatorCacheStats(ctx context.Context, clearCache bool) (any, error)
}

// RegisterFunc registers one tool on the server.
type RegisterFunc func(s *mcp.Server)
