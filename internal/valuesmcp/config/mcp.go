// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"slices"
	"strings"

	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
	"github.com/openchoreo/valuesmcp/pkg/mcp/tools"
)

// MCPConfig defines Model Context Protocol server settings.
type MCPConfig struct {
	// Toolsets is the list of enabled MCP toolsets.
	Toolsets []string `koanf:"toolsets"`
}

// MCPDefaults returns the default MCP configuration.
func MCPDefaults() MCPConfig {
	toolsets := make([]string, 0, len(tools.AllToolsets))
	for _, ts := range tools.AllToolsets {
		toolsets = append(toolsets, string(ts))
	}
	return MCPConfig{Toolsets: toolsets}
}

// Validate validates the MCP configuration.
func (c *MCPConfig) Validate(path *coreconfig.Path) coreconfig.ValidationErrors {
	var errs coreconfig.ValidationErrors

	valid := make([]string, 0, len(tools.AllToolsets))
	for _, ts := range tools.AllToolsets {
		valid = append(valid, string(ts))
	}

	if len(c.Toolsets) == 0 {
		errs = append(errs, coreconfig.Invalid(path.Child("toolsets"), "at least one toolset must be enabled"))
	}
	for i, ts := range c.Toolsets {
		if !slices.Contains(valid, ts) {
			errs = append(errs, coreconfig.Invalid(path.Child("toolsets").Child(fmt.Sprint(i)),
				fmt.Sprintf("unknown toolset %q; valid toolsets: %s", ts, strings.Join(valid, ", "))))
		}
	}

	return errs
}

// ParseToolsets converts the toolset strings to a map of ToolsetType for lookup.
func (c *MCPConfig) ParseToolsets() map[tools.ToolsetType]bool {
	result := make(map[tools.ToolsetType]bool, len(c.Toolsets))
	for _, ts := range c.Toolsets {
		result[tools.ToolsetType(ts)] = true
	}
	return result
}
