// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import "testing"

const testSnippet = "distro:\n  k8s:\n    enabled: true\n"

// schemaToolSpecs returns test specs for the schema toolset
func schemaToolSpecs() []toolTestSpec {
	return []toolTestSpec{
		{
			name:                "get_schema_section",
			toolset:             "schema",
			descriptionKeywords: []string{"json schema", "section"},
			descriptionMinLen:   20,
			requiredParams:      []string{"section"},
			optionalParams:      []string{"version"},
			testArgs: map[string]any{
				"section": "controlPlane",
				"version": testVersion,
			},
			expectedMethod: "GetSchemaSection",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != "controlPlane" || args[1] != testVersion {
					t.Errorf("Expected (controlPlane, %s), got %v", testVersion, args)
				}
			},
		},
		{
			name:                "validate_config",
			toolset:             "schema",
			descriptionKeywords: []string{"validate", "yaml", "schema"},
			descriptionMinLen:   20,
			requiredParams:      []string{"yaml"},
			optionalParams:      []string{"section", "version"},
			testArgs: map[string]any{
				"yaml":    testSnippet,
				"section": "controlPlane",
				"version": testVersion,
			},
			expectedMethod: "ValidateConfig",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != testSnippet || args[1] != testVersion || args[2] != "controlPlane" {
					t.Errorf("Expected (snippet, %s, controlPlane), got %v", testVersion, args)
				}
			},
		},
		{
			name:                "validator_cache_stats",
			toolset:             "schema",
			descriptionKeywords: []string{"cache"},
			descriptionMinLen:   20,
			optionalParams:      []string{"clear"},
			testArgs: map[string]any{
				"clear": true,
			},
			expectedMethod: "ValidatorCacheStats",
			validateCall: func(t *testing.T, args []interface{}) {
				if args[0] != true {
					t.Errorf("Expected clear=true, got %v", args[0])
				}
			},
		},
	}
}
