// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	testVersion = "v0.26.0"
	testSection = "controlPlane.distro"
	testQuery   = "ingress host"
)

func setupTestServer(t *testing.T) (*mcp.ClientSession, *MockToolsetHandler) {
	t.Helper()
	mockHandler := NewMockToolsetHandler()
	toolsets := &Toolsets{
		ValuesToolset: mockHandler,
		SchemaToolset: mockHandler,
	}
	clientSession := setupTestServerWithToolset(t, toolsets)
	return clientSession, mockHandler
}

// setupTestServerWithToolset creates a test MCP server with the provided toolsets
func setupTestServerWithToolset(t *testing.T, toolsets *Toolsets) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-valuesmcp",
		Version: "1.0.0",
	}, nil)

	toolsets.Register(server)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("Failed to connect server: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}

	return clientSession
}

// toolTestSpec defines the complete test specification for a single MCP tool
type toolTestSpec struct {
	name string

	// Toolset association: "values" or "schema"
	toolset string

	// Description validation
	descriptionKeywords []string
	descriptionMinLen   int

	// Schema validation
	requiredParams []string
	optionalParams []string

	// Parameter wiring test
	testArgs       map[string]any
	expectedMethod string
	validateCall   func(t *testing.T, args []interface{})
}

// allToolSpecs aggregates all tool specs from all toolsets
var allToolSpecs = func() []toolTestSpec {
	specs := []toolTestSpec{}
	specs = append(specs, valuesToolSpecs()...)
	specs = append(specs, schemaToolSpecs()...)
	return specs
}()
