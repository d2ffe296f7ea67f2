// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["controlPlane", "sync"],
  "properties": {
    "controlPlane": {"$ref": "#/$defs/ControlPlane"},
    "sync": {"$ref": "#/$defs/Sync"},
    "networking": {
      "type": "object",
      "properties": {
        "replicateServices": {
          "type": "object",
          "properties": {
            "toHost": {"type": "array", "items": {"$ref": "#/$defs/ServiceMapping"}}
          }
        },
        "advanced": {
          "type": "object",
          "properties": {"clusterDomain": {"type": "string"}}
        }
      },
      "additionalProperties": false
    },
    "experimental": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}}
    },
    "logging": {
      "type": "object",
      "properties": {"encoding": {"type": "string", "enum": ["console", "json"]}}
    },
    "telemetry": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}, "endpoint": {"type": "string", "format": "uri"}}
    }
  },
  "$defs": {
    "ControlPlane": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "distro": {"$ref": "#/$defs/Distro"},
        "ingress": {"$ref": "#/$defs/Ingress"}
      },
      "additionalProperties": false
    },
    "Distro": {
      "type": "object",
      "properties": {
        "k3s": {"$ref": "#/$defs/DistroK3s"},
        "k8s": {"$ref": "#/$defs/DistroK8s"}
      },
      "additionalProperties": false
    },
    "DistroK3s": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}, "image": {"type": "string"}},
      "additionalProperties": false
    },
    "DistroK8s": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}, "version": {"type": "string"}},
      "additionalProperties": false
    },
    "Ingress": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}, "host": {"type": "string"}},
      "additionalProperties": false
    },
    "Sync": {
      "type": "object",
      "properties": {
        "toHost": {
          "type": "object",
          "properties": {"pods": {"$ref": "#/$defs/EnableSwitch"}}
        },
        "fromHost": {
          "type": "object",
          "properties": {"nodes": {"$ref": "#/$defs/EnableSwitch"}}
        }
      }
    },
    "EnableSwitch": {
      "type": "object",
      "properties": {"enabled": {"type": "boolean"}}
    },
    "ServiceMapping": {
      "type": "object",
      "properties": {"from": {"type": "string"}, "to": {"type": "string"}},
      "required": ["from", "to"]
    }
  }
}`

func testDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(testSchemaJSON))
	require.NoError(t, err)
	return doc
}

func mustParseSnippet(t *testing.T, text string) *Snippet {
	t.Helper()
	s, err := ParseSnippet(text)
	require.NoError(t, err)
	return s
}
