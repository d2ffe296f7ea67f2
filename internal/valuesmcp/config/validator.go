// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
	"github.com/openchoreo/valuesmcp/internal/validation"
)

// ValidatorConfig tunes the snippet validator.
type ValidatorConfig struct {
	// CacheSize bounds the number of compiled section validators.
	CacheSize int `koanf:"cache_size"`
	// MaxSnippetBytes rejects larger snippets before parsing.
	MaxSnippetBytes int `koanf:"max_snippet_bytes"`
}

// ValidatorDefaults returns the default validator configuration.
func ValidatorDefaults() ValidatorConfig {
	return ValidatorConfig{
		CacheSize:       validation.DefaultCacheSize,
		MaxSnippetBytes: validation.DefaultMaxSnippetBytes,
	}
}

// Validate validates the validator configuration.
func (c *ValidatorConfig) Validate(path *coreconfig.Path) coreconfig.ValidationErrors {
	var errs coreconfig.ValidationErrors

	if err := coreconfig.MustBeInRange(path.Child("cache_size"), c.CacheSize, 1, 1000); err != nil {
		errs = append(errs, err)
	}
	if err := coreconfig.MustBeInRange(path.Child("max_snippet_bytes"), c.MaxSnippetBytes, 1, 64<<20); err != nil {
		errs = append(errs, err)
	}

	return errs
}
