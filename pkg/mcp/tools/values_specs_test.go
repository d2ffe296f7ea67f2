// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import "testing"

// valuesToolSpecs returns test specs for the values toolset
func valuesToolSpecs() []toolTestSpec {
	return []toolTestSpec{
		{
			name:                "list_versions",
			toolset:             "values",
			descriptionKeywords: []string{"versions", "tags", "latest"},
			descriptionMinLen:   20,
			testArgs:            map[string]any{},
			expectedMethod:      "ListVersions",
			validateCall: func(t *testing.T, args []interface{}) {
				if len(args) != 0 {
					t.Errorf("Expected no args, got %v", args)
				}
			},
		},
		{
			name:                "search_config",
			toolset:             "values",
			descriptionKeywords: []string{"search", "values.yaml"},
			descriptionMinLen:   20,
			requiredParams:      []string{"query"},
			optionalParams:      []string{"version", "limit"},
			testArgs: map[string]any{
				"query":   testQuery,
				"version": testVersion,
				"limit":   5,
			},
			expectedMethod: "SearchConfig",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != testQuery || args[1] != testVersion || args[2] != 5 {
					t.Errorf("Expected (%s, %s, 5), got %v", testQuery, testVersion, args)
				}
			},
		},
		{
			name:                "get_config_value",
			toolset:             "values",
			descriptionKeywords: []string{"path", "default"},
			descriptionMinLen:   20,
			requiredParams:      []string{"path"},
			optionalParams:      []string{"version"},
			testArgs: map[string]any{
				"path": "controlPlane.distro.k8s.enabled",
			},
			expectedMethod: "GetConfigValue",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != "controlPlane.distro.k8s.enabled" || args[1] != "" {
					t.Errorf("Expected (controlPlane.distro.k8s.enabled, \"\"), got %v", args)
				}
			},
		},
		{
			name:                "extract_rules",
			toolset:             "values",
			descriptionKeywords: []string{"rules", "comments"},
			descriptionMinLen:   20,
			optionalParams:      []string{"section", "version"},
			testArgs: map[string]any{
				"section": testSection,
				"version": "latest",
			},
			expectedMethod: "ExtractRules",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != testSection || args[1] != "latest" {
					t.Errorf("Expected (%s, latest), got %v", testSection, args)
				}
			},
		},
	}
}
