// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package mcphandlers

import (
	"context"

	"github.com/openchoreo/valuesmcp/internal/logging"
)

func (h *MCPHandler) ListVersions(ctx context.Context) (any, error) {
	return h.service.ListVersions(ctx), nil
}

func (h *MCPHandler) SearchConfig(ctx context.Context, query, version string, limit int) (any, error) {
	result, err := h.service.Search(ctx, query, version, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("search_config failed", "query", query, "version", version, "error", err)
		return nil, err
	}
	return result, nil
}

func (h *MCPHandler) GetConfigValue(ctx context.Context, path, version string) (any, error) {
	return h.service.GetValue(ctx, path, version)
}

func (h *MCPHandler) ExtractRules(ctx context.Context, section, version string) (any, error) {
	return h.service.ExtractRules(ctx, section, version)
}
