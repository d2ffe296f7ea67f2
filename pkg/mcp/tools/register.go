// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// valuesToolRegistrations returns the list of values toolset registration functions
func (t *Toolsets) valuesToolRegistrations() []RegisterFunc {
	return []RegisterFunc{
		t.RegisterListVersions,
		t.RegisterSearchConfig,
		t.RegisterGetConfigValue,
		t.RegisterExtractRules,
	}
}

// schemaToolRegistrations returns the list of schema toolset registration functions
func (t *Toolsets) schemaToolRegistrations() []RegisterFunc {
	return []RegisterFunc{
		t.RegisterGetSchemaSection,
		t.RegisterValidateConfig,
		t.RegisterValidatorCacheStats,
	}
}

func (t *Toolsets) Register(s *mcp.Server) {
	if t.ValuesToolset != nil {
		for _, registerFunc := range t.valuesToolRegistrations() {
			registerFunc(s)
		}
	}

	if t.SchemaToolset != nil {
		for _, registerFunc := range t.schemaToolRegistrations() {
			registerFunc(s)
		}
	}
}
