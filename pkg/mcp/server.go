// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp exposes the valuesmcp toolsets over the Model Context Protocol.
package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openchoreo/valuesmcp/pkg/mcp/tools"
)

// ServerName identifies the server to clients.
const ServerName = "valuesmcp"

// Version is reported to clients during initialization; set at build time.
var Version = "dev"

func newServer(toolsets *tools.Toolsets) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: Version,
	}, nil)
	toolsets.Register(server)
	return server
}

// NewHTTPServer returns a streamable HTTP handler serving the toolsets.
func NewHTTPServer(toolsets *tools.Toolsets) http.Handler {
	server := newServer(toolsets)
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, nil)
}

// NewSTDIO returns a server to be run on the stdio transport.
func NewSTDIO(toolsets *tools.Toolsets) *mcp.Server {
	return newServer(toolsets)
}
