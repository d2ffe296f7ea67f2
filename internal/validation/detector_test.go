// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSchemaSection(t *testing.T) {
	doc := testDocument(t)

	tests := []struct {
		name    string
		snippet string
		want    string
	}{
		{
			name:    "root key is a section",
			snippet: "controlPlane:\n  enabled: true\n",
			want:    "controlPlane",
		},
		{
			name:    "first matching key wins",
			snippet: "bogus: 1\nsync:\n  toHost: {}\ncontrolPlane: {}\n",
			want:    "sync",
		},
		{
			name:    "section contents resolved through ref",
			snippet: "distro:\n  k3s:\n    enabled: true\n",
			want:    "controlPlane",
		},
		{
			name:    "section contents with inline properties",
			snippet: "replicateServices: {}\nadvanced: {}\n",
			want:    "networking",
		},
		{
			name:    "key shared by several sections is ambiguous",
			snippet: "enabled: true\n",
			want:    "",
		},
		{
			name:    "keys split across sections",
			snippet: "distro: {}\ntoHost: {}\n",
			want:    "",
		},
		{
			name:    "scalar snippet",
			snippet: "just a string",
			want:    "",
		},
		{
			name:    "empty snippet",
			snippet: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSchemaSection(mustParseSnippet(t, tt.snippet), doc)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectSchemaSection_RoundTripsEverySection(t *testing.T) {
	doc := testDocument(t)
	for _, section := range doc.Sections() {
		snippet := mustParseSnippet(t, section+": {}\n")
		assert.Equal(t, section, DetectSchemaSection(snippet, doc))
	}
}

func TestClassify(t *testing.T) {
	doc := testDocument(t)

	tests := []struct {
		name    string
		snippet string
		hint    string
		want    Shape
	}{
		{
			name:    "two sections make a full document",
			snippet: "controlPlane: {}\nsync: {}\n",
			want:    FullDocument{Sections: []string{"controlPlane", "sync"}},
		},
		{
			name:    "hint does not override a full document",
			snippet: "controlPlane: {}\nsync: {}\n",
			hint:    "controlPlane",
			want:    FullDocument{Sections: []string{"controlPlane", "sync"}},
		},
		{
			name:    "section key at root",
			snippet: "controlPlane:\n  enabled: true\n",
			want:    SingleSection{Path: "controlPlane", HasSectionKeyAtRoot: true},
		},
		{
			name:    "headless contents",
			snippet: "distro: {}\n",
			want:    SingleSection{Path: "controlPlane"},
		},
		{
			name:    "hint wins over detection",
			snippet: "enabled: true\n",
			hint:    "experimental",
			want:    SingleSection{Path: "experimental"},
		},
		{
			name:    "nested hint keyed by its last segment",
			snippet: "distro:\n  k3s: {}\n",
			hint:    "controlPlane.distro",
			want:    SingleSection{Path: "controlPlane.distro", HasSectionKeyAtRoot: true},
		},
		{
			name:    "nothing detected",
			snippet: "enabled: true\n",
			want:    Undetectable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(mustParseSnippet(t, tt.snippet), doc, tt.hint))
		})
	}
}
