// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSnippet(t *testing.T) {
	doc := testDocument(t)

	tests := []struct {
		name        string
		snippet     string
		hint        string
		wantValid   bool
		wantSyntax  bool
		wantSection string
		wantKind    FailureKind
		wantErrors  []FieldError
	}{
		{
			name:        "valid section snippet",
			snippet:     "controlPlane:\n  distro:\n    k3s:\n      enabled: true\n",
			wantValid:   true,
			wantSyntax:  true,
			wantSection: "controlPlane",
		},
		{
			name:        "wrong type in section snippet",
			snippet:     "controlPlane:\n  distro:\n    k3s:\n      enabled: \"yes\"\n",
			wantSyntax:  true,
			wantSection: "controlPlane",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "controlPlane.distro.k3s.enabled",
				Keyword: "type",
				Params:  map[string]any{"type": []string{"boolean"}, "got": "string"},
				Context: `"yes"`,
			}},
		},
		{
			name:       "ambiguous key without hint",
			snippet:    "enabled: true\n",
			wantSyntax: true,
			wantKind:   KindSectionUndetectable,
		},
		{
			name:        "ambiguous key with hint",
			snippet:     "enabled: true\n",
			hint:        "controlPlane",
			wantValid:   true,
			wantSyntax:  true,
			wantSection: "controlPlane",
		},
		{
			name:        "headless section contents",
			snippet:     "distro:\n  k3s:\n    enabled: \"yes\"\n",
			wantSyntax:  true,
			wantSection: "controlPlane",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "controlPlane.distro.k3s.enabled",
				Keyword: "type",
				Params:  map[string]any{"type": []string{"boolean"}, "got": "string"},
				Context: `"yes"`,
			}},
		},
		{
			name:        "nested hint with headless contents",
			snippet:     "enabled: \"yes\"\n",
			hint:        "controlPlane.distro.k3s",
			wantSyntax:  true,
			wantSection: "controlPlane.distro.k3s",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "controlPlane.distro.k3s.enabled",
				Keyword: "type",
				Params:  map[string]any{"type": []string{"boolean"}, "got": "string"},
				Context: `"yes"`,
			}},
		},
		{
			name:        "nested hint with wrapped contents",
			snippet:     "distro:\n  k3s:\n    enabled: \"yes\"\n",
			hint:        "controlPlane.distro",
			wantSyntax:  true,
			wantSection: "controlPlane.distro",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "controlPlane.distro.k3s.enabled",
				Keyword: "type",
				Params:  map[string]any{"type": []string{"boolean"}, "got": "string"},
				Context: `"yes"`,
			}},
		},
		{
			name:        "unknown field inside section",
			snippet:     "controlPlane:\n  distro:\n    k3s:\n      enabld: true\n",
			wantSyntax:  true,
			wantSection: "controlPlane",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "controlPlane.distro.k3s",
				Keyword: "additionalProperties",
				Params:  map[string]any{"additionalProperty": []string{"enabld"}},
				Context: `{"enabld":true}`,
			}},
		},
		{
			name:        "enum violation",
			snippet:     "logging:\n  encoding: xml\n",
			wantSyntax:  true,
			wantSection: "logging",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "logging.encoding",
				Keyword: "enum",
				Params:  map[string]any{"allowedValues": []any{"console", "json"}},
				Context: `"xml"`,
			}},
		},
		{
			name:        "required property inside list item",
			snippet:     "networking:\n  replicateServices:\n    toHost:\n      - from: default/a\n",
			wantSyntax:  true,
			wantSection: "networking",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "networking.replicateServices.toHost[0]",
				Keyword: "required",
				Params:  map[string]any{"missingProperty": []string{"to"}},
				Context: `{"from":"default/a"}`,
			}},
		},
		{
			name:        "format assertion",
			snippet:     "telemetry:\n  endpoint: not a uri\n",
			wantSyntax:  true,
			wantSection: "telemetry",
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "telemetry.endpoint",
				Keyword: "format",
				Params:  map[string]any{"format": "uri"},
				Context: `"not a uri"`,
			}},
		},
		{
			name:        "full document with bogus root key",
			snippet:     "controlPlane:\n  enabled: true\nsync:\n  toHost:\n    pods:\n      enabled: true\ninvalidRootField: true\n",
			wantSyntax:  true,
			wantSection: FullDocumentSection,
			wantKind:    KindValidationErrors,
			wantErrors: []FieldError{{
				Path:    "invalidRootField",
				Keyword: "additionalProperties",
				Params:  map[string]any{"additionalProperty": []string{"invalidRootField"}},
			}},
		},
		{
			name:       "malformed yaml",
			snippet:    "foo: [unterminated",
			wantKind:   KindSyntaxError,
			wantSyntax: false,
		},
		{
			name:       "multi-document stream",
			snippet:    "controlPlane: {}\nsync: {}\n---\nfoo: 1\n",
			wantKind:   KindSyntaxError,
			wantSyntax: false,
		},
		{
			name:        "hint not in schema",
			snippet:     "enabled: true\n",
			hint:        "controlPlane.nope",
			wantSyntax:  true,
			wantSection: "controlPlane.nope",
			wantKind:    KindSectionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			got := v.ValidateSnippet(tt.snippet, doc, "v1", tt.hint)

			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantSyntax, got.SyntaxValid)
			assert.Equal(t, tt.wantSection, got.Section)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, "v1", got.Version)

			// Messages come from the evaluator; only require that they are present.
			for _, e := range got.Errors {
				assert.NotEmpty(t, e.Message)
			}
			if diff := cmp.Diff(tt.wantErrors, got.Errors, ignoreMessage, cmpContext(tt.wantErrors)); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			if got.Valid {
				assert.Empty(t, got.Summary)
			}
		})
	}
}

var ignoreMessage = cmp.FilterPath(func(p cmp.Path) bool {
	return p.Last().String() == ".Message"
}, cmp.Ignore())

// cmpContext ignores Context when the expectation leaves it empty.
func cmpContext(want []FieldError) cmp.Option {
	return cmp.FilterPath(func(p cmp.Path) bool {
		if p.Last().String() != ".Context" {
			return false
		}
		for _, e := range want {
			if e.Context != "" {
				return false
			}
		}
		return true
	}, cmp.Ignore())
}

func TestValidateSnippet_FullDocumentWithBogusKeyReportsAdditionalProperties(t *testing.T) {
	v := NewValidator()
	got := v.ValidateSnippet("controlPlane:\n  enabled: true\nlogging:\n  encoding: json\nbogus: 1\n", testDocument(t), "v1", "")

	require.False(t, got.Valid)
	assert.Equal(t, FullDocumentSection, got.Section)
	var keywords []string
	for _, e := range got.Errors {
		keywords = append(keywords, e.Keyword)
	}
	assert.Contains(t, keywords, "additionalProperties")
}

func TestValidateSnippet_UnknownRootKeysAreLocated(t *testing.T) {
	v := NewValidator()
	got := v.ValidateSnippet("controlPlane:\n  enabled: true\nlogging:\n  encoding: json\nzeta: 1\nalpha: [x]\n",
		testDocument(t), "v1", "")

	require.False(t, got.Valid)
	want := []FieldError{
		{
			Path:    "alpha",
			Keyword: "additionalProperties",
			Params:  map[string]any{"additionalProperty": []string{"alpha"}},
			Context: `["x"]`,
		},
		{
			Path:    "zeta",
			Keyword: "additionalProperties",
			Params:  map[string]any{"additionalProperty": []string{"zeta"}},
			Context: "1",
		},
	}
	if diff := cmp.Diff(want, got.Errors, ignoreMessage); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	for _, e := range got.Errors {
		assert.Contains(t, e.Message, e.Path)
	}
}

func TestParseSnippet_RejectsMultipleDocuments(t *testing.T) {
	_, err := ParseSnippet("controlPlane: {}\nsync: {}\n---\nfoo: 1\n")
	require.ErrorIs(t, err, ErrMultipleDocuments)

	s, err := ParseSnippet("---\ncontrolPlane: {}\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"controlPlane"}, s.Keys)

	s, err = ParseSnippet("")
	require.NoError(t, err)
	assert.Empty(t, s.Keys)
}

func TestValidateSnippet_FullDocumentIgnoresHint(t *testing.T) {
	v := NewValidator()
	got := v.ValidateSnippet("controlPlane:\n  enabled: true\nlogging:\n  encoding: json\n", testDocument(t), "v1", "logging")

	assert.True(t, got.Valid)
	assert.Equal(t, FullDocumentSection, got.Section)
}

func TestValidateSnippet_Undetectable(t *testing.T) {
	doc := testDocument(t)
	v := NewValidator()
	got := v.ValidateSnippet("enabled: true\n", doc, "v1", "")

	require.False(t, got.Valid)
	var failure *SectionUndetectable
	require.ErrorAs(t, got.Failure, &failure)
	assert.Equal(t, doc.Sections(), failure.AvailableSections)
	assert.Contains(t, got.Failure.Error(), "Could not detect schema section")
	assert.Equal(t, 0, v.CacheStats().Size)
}

func TestValidateSnippet_SizeLimit(t *testing.T) {
	v := NewValidator(WithMaxSnippetBytes(16))
	snippet := "controlPlane:\n  enabled: true\n"
	got := v.ValidateSnippet(snippet, testDocument(t), "v1", "")

	assert.False(t, got.Valid)
	assert.False(t, got.SyntaxValid)
	var failure *SizeLimitExceeded
	require.ErrorAs(t, got.Failure, &failure)
	assert.Equal(t, len(snippet), failure.Size)
	assert.Equal(t, 16, failure.Limit)
}

func TestValidateSnippet_DefaultSizeLimit(t *testing.T) {
	snippet := "controlPlane:\n  ingress:\n    host: " + strings.Repeat("a", DefaultMaxSnippetBytes) + "\n"
	got := NewValidator().ValidateSnippet(snippet, testDocument(t), "v1", "")

	assert.Equal(t, KindSizeLimitExceeded, got.Kind())
}

func TestValidateSnippet_NilDocument(t *testing.T) {
	got := NewValidator().ValidateSnippet("controlPlane: {}\n", nil, "v1", "")

	assert.False(t, got.Valid)
	assert.True(t, got.SyntaxValid)
	assert.Equal(t, KindSchemaCompilationError, got.Kind())
}

func TestValidateSnippet_Idempotent(t *testing.T) {
	doc := testDocument(t)
	v := NewValidator()
	snippet := "controlPlane:\n  distro:\n    k3s:\n      enabled: \"yes\"\n      image: 3\n"

	first := v.ValidateSnippet(snippet, doc, "v1", "")
	second := v.ValidateSnippet(snippet, doc, "v1", "")

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Section, second.Section)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Len(t, first.Errors, 2)
}

func TestValidateSnippet_CacheTransparency(t *testing.T) {
	doc := testDocument(t)
	snippet := "sync:\n  toHost:\n    pods:\n      enabled: 1\n"

	cold := NewValidator()
	missResult := cold.ValidateSnippet(snippet, doc, "v1", "")
	assert.Equal(t, 1, cold.CacheStats().Size)

	hitResult := cold.ValidateSnippet(snippet, doc, "v1", "")
	assert.Equal(t, 1, cold.CacheStats().Size)

	fresh := NewValidator().ValidateSnippet(snippet, doc, "v1", "")

	for _, got := range []*Result{hitResult, fresh} {
		assert.Equal(t, missResult.Valid, got.Valid)
		assert.Equal(t, missResult.Section, got.Section)
		assert.Equal(t, missResult.Errors, got.Errors)
	}
}

func TestValidateSnippet_WrappedAndHeadlessDoNotShareValidator(t *testing.T) {
	doc := testDocument(t)
	v := NewValidator()

	wrapped := v.ValidateSnippet("logging:\n  encoding: json\n", doc, "v1", "logging")
	headless := v.ValidateSnippet("encoding: json\n", doc, "v1", "logging")

	assert.True(t, wrapped.Valid)
	assert.True(t, headless.Valid)
	assert.Equal(t, 2, v.CacheStats().Size)
}

func TestValidateSnippet_VersionIsolation(t *testing.T) {
	strict := testDocument(t)
	loose := NewDocument(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"controlPlane": map[string]any{"type": "object"},
		},
	})
	v := NewValidator()
	snippet := "controlPlane:\n  distro:\n    k3s:\n      enabled: \"yes\"\n"

	got := v.ValidateSnippet(snippet, strict, "v1", "")
	assert.False(t, got.Valid)
	assert.Equal(t, "v1", v.CacheStats().Version)

	got = v.ValidateSnippet(snippet, loose, "v2", "")
	assert.True(t, got.Valid)
	assert.Equal(t, "v2", v.CacheStats().Version)
	assert.Equal(t, 1, v.CacheStats().Size)

	got = v.ValidateSnippet(snippet, strict, "v1", "")
	assert.False(t, got.Valid, "validator compiled for v2 must not be reused for v1")
	assert.Equal(t, "v1", v.CacheStats().Version)
}

func TestValidateSnippet_CapacityBound(t *testing.T) {
	props := map[string]any{}
	for i := 0; i <= DefaultCacheSize; i++ {
		props[fmt.Sprintf("section%02d", i)] = map[string]any{"type": "object"}
	}
	doc := NewDocument(map[string]any{"type": "object", "properties": props})

	v := NewValidator()
	for i := 0; i <= DefaultCacheSize; i++ {
		name := fmt.Sprintf("section%02d", i)
		got := v.ValidateSnippet(name+":\n  a: 1\n", doc, "v1", "")
		require.True(t, got.Valid, name)
		assert.LessOrEqual(t, v.CacheStats().Size, DefaultCacheSize)
	}
	assert.Equal(t, DefaultCacheSize, v.CacheStats().Size)
}

func TestValidateSnippet_SharedCache(t *testing.T) {
	cache := NewCache(3)
	a := NewValidator(WithCache(cache))
	b := NewValidator(WithCache(cache))

	a.ValidateSnippet("logging:\n  encoding: json\n", testDocument(t), "v1", "")
	assert.Equal(t, CacheStats{Size: 1, MaxSize: 3, Version: "v1"}, b.CacheStats())

	b.ClearCache()
	assert.Equal(t, 0, a.CacheStats().Size)
}

func TestResult_MarshalJSON(t *testing.T) {
	doc := testDocument(t)
	v := NewValidator()

	decode := func(t *testing.T, r *Result) map[string]any {
		t.Helper()
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		return out
	}

	t.Run("syntax error", func(t *testing.T) {
		out := decode(t, v.ValidateSnippet("foo: [unterminated", doc, "v1", ""))
		assert.Equal(t, false, out["valid"])
		assert.Equal(t, false, out["syntax_valid"])
		assert.Nil(t, out["section"])
		assert.Contains(t, out, "section")
		assert.NotEmpty(t, out["syntax_error"])
		assert.Equal(t, string(KindSyntaxError), out["error_kind"])
	})

	t.Run("undetectable", func(t *testing.T) {
		out := decode(t, v.ValidateSnippet("enabled: true\n", doc, "v1", ""))
		assert.Contains(t, out["error"], "Could not detect schema section")
		assert.Contains(t, out["hint"], "controlPlane")
		assert.Len(t, out["available_sections"], len(doc.Sections()))
	})

	t.Run("validation errors", func(t *testing.T) {
		out := decode(t, v.ValidateSnippet("logging:\n  encoding: xml\n", doc, "v1", ""))
		assert.Equal(t, "logging", out["section"])
		assert.Equal(t, string(KindValidationErrors), out["error_kind"])
		assert.Equal(t, `Found 1 validation error(s) in section "logging"`, out["summary"])
		errs, ok := out["errors"].([]any)
		require.True(t, ok)
		require.Len(t, errs, 1)
		assert.Equal(t, "enum", errs[0].(map[string]any)["keyword"])
	})

	t.Run("valid", func(t *testing.T) {
		out := decode(t, v.ValidateSnippet("logging:\n  encoding: json\n", doc, "v1", ""))
		assert.Equal(t, true, out["valid"])
		assert.NotContains(t, out, "errors")
		assert.NotContains(t, out, "error_kind")
		assert.Equal(t, "v1", out["version"])
	})
}
