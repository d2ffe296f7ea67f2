// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"sync"
)

var errMockNotFound = errors.New("path not found: missing.key")

// MockToolsetHandler implements all toolset handler interfaces for testing.
type MockToolsetHandler struct {
	mu sync.Mutex
	// Track which methods were called and with what parameters
	calls map[string][]interface{}
}

func NewMockToolsetHandler() *MockToolsetHandler {
	return &MockToolsetHandler{
		calls: make(map[string][]interface{}),
	}
}

func (m *MockToolsetHandler) recordCall(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method] = append(m.calls[method], args)
}

func (m *MockToolsetHandler) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make(map[string][]interface{})
}

// ValuesToolsetHandler methods

func (m *MockToolsetHandler) ListVersions(ctx context.Context) (any, error) {
	m.recordCall("ListVersions")
	return map[string]any{"tags": []string{"v0.26.0"}, "latest": "v0.26.0", "default": "main"}, nil
}

func (m *MockToolsetHandler) SearchConfig(ctx context.Context, query, version string, limit int) (any, error) {
	m.recordCall("SearchConfig", query, version, limit)
	return map[string]any{"query": query, "matches": []any{}}, nil
}

func (m *MockToolsetHandler) GetConfigValue(ctx context.Context, path, version string) (any, error) {
	m.recordCall("GetConfigValue", path, version)
	if path == "missing.key" {
		return nil, errMockNotFound
	}
	return map[string]any{"path": path, "value": true}, nil
}

func (m *MockToolsetHandler) ExtractRules(ctx context.Context, section, version string) (any, error) {
	m.recordCall("ExtractRules", section, version)
	return map[string]any{"section": section, "rules": []any{}}, nil
}

// SchemaToolsetHandler methods

func (m *MockToolsetHandler) GetSchemaSection(ctx context.Context, section, version string) (any, error) {
	m.recordCall("GetSchemaSection", section, version)
	return map[string]any{"section": section, "schema": map[string]any{"type": "object"}}, nil
}

func (m *MockToolsetHandler) ValidateConfig(ctx context.Context, snippet, version, section string) (any, error) {
	m.recordCall("ValidateConfig", snippet, version, section)
	return map[string]any{"valid": true, "section": section}, nil
}

func (m *MockToolsetHandler) ValidatorCacheStats(ctx context.Context, clearCache bool) (any, error) {
	m.recordCall("ValidatorCacheStats", clearCache)
	return map[string]any{"size": 0, "maxSize": 20}, nil
}
