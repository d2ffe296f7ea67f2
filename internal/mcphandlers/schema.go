// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package mcphandlers

import (
	"context"

	"github.com/openchoreo/valuesmcp/internal/logging"
	"github.com/openchoreo/valuesmcp/internal/validation"
)

func (h *MCPHandler) GetSchemaSection(ctx context.Context, section, version string) (any, error) {
	return h.service.GetSchemaSection(ctx, section, version)
}

// ValidateConfig reports an invalid snippet as a successful call whose result has valid=false.
// Only a schema that cannot be fetched or parsed is a tool error.
func (h *MCPHandler) ValidateConfig(ctx context.Context, snippet, version, section string) (any, error) {
	result, err := h.service.Validate(ctx, snippet, version, section)
	if err != nil {
		logging.FromContext(ctx).Warn("validate_config failed", "version", version, "error", err)
		return nil, err
	}
	return result, nil
}

// CacheStatsResult is returned by ValidatorCacheStats.
type CacheStatsResult struct {
	validation.CacheStats
	Cleared bool `json:"cleared"`
}

func (h *MCPHandler) ValidatorCacheStats(ctx context.Context, clearCache bool) (any, error) {
	if clearCache {
		return &CacheStatsResult{CacheStats: h.service.ClearCache(), Cleared: true}, nil
	}
	return &CacheStatsResult{CacheStats: h.service.CacheStats()}, nil
}
