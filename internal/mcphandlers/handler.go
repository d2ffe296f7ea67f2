// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcphandlers adapts the values service to the MCP toolset handler interfaces.
package mcphandlers

import (
	"github.com/openchoreo/valuesmcp/internal/service"
	"github.com/openchoreo/valuesmcp/pkg/mcp/tools"
)

var (
	_ tools.ValuesToolsetHandler = (*MCPHandler)(nil)
	_ tools.SchemaToolsetHandler = (*MCPHandler)(nil)
)

// MCPHandler is a thin adapter between MCP tool interfaces and the service layer.
type MCPHandler struct {
	service *service.Service
}

// NewMCPHandler creates an MCPHandler backed by svc.
func NewMCPHandler(svc *service.Service) *MCPHandler {
	return &MCPHandler{service: svc}
}

// Toolsets returns the toolsets named in enabled, all served by h.
func (h *MCPHandler) Toolsets(enabled map[tools.ToolsetType]bool) *tools.Toolsets {
	ts := &tools.Toolsets{}
	if enabled[tools.ToolsetValues] {
		ts.ValuesToolset = h
	}
	if enabled[tools.ToolsetSchema] {
		ts.SchemaToolset = h
	}
	return ts
}
