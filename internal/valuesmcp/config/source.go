// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"

	coreconfig "github.com/openchoreo/valuesmcp/internal/config"
	"github.com/openchoreo/valuesmcp/internal/service"
	"github.com/openchoreo/valuesmcp/internal/source"
)

// SourceConfig locates the chart and its schema in a GitHub repository.
type SourceConfig struct {
	Owner string `koanf:"owner" validate:"required"`
	Repo  string `koanf:"repo" validate:"required"`
	// RawBaseURL serves raw file content as {base}/{owner}/{repo}/{ref}/{path}.
	RawBaseURL string `koanf:"raw_base_url" validate:"required,http_url"`
	// APIBaseURL is set for GitHub Enterprise; empty means api.github.com.
	APIBaseURL string `koanf:"api_base_url" validate:"omitempty,http_url"`
	// GitURL is the clone URL used by the git ref lister.
	GitURL string `koanf:"git_url" validate:"omitempty,url"`
	Token  string `koanf:"token"`
	// RefLister selects how tags and branches are listed (api, git).
	RefLister string `koanf:"ref_lister" validate:"oneof=api git"`

	ValuesPath string `koanf:"values_path" validate:"required"`
	SchemaPath string `koanf:"schema_path" validate:"required"`
	DefaultRef string `koanf:"default_ref" validate:"required"`

	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	CacheSize  int           `koanf:"cache_size" validate:"gte=1"`
	CacheTTL   time.Duration `koanf:"cache_ttl"`
}

// SourceDefaults returns the default source configuration.
func SourceDefaults() SourceConfig {
	return SourceConfig{
		Owner:      "loft-sh",
		Repo:       "vcluster",
		RawBaseURL: source.DefaultRawBaseURL,
		RefLister:  string(source.RefListerAPI),
		ValuesPath: "chart/values.yaml",
		SchemaPath: "chart/values.schema.json",
		DefaultRef: "main",
		Timeout:    source.DefaultTimeout,
		MaxRetries: source.DefaultMaxRetries,
		CacheSize:  source.DefaultCacheSize,
		CacheTTL:   source.DefaultCacheTTL,
	}
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate(path *coreconfig.Path) coreconfig.ValidationErrors {
	errs := coreconfig.ValidateStruct(path, c)

	if err := coreconfig.MustBeInRange(path.Child("timeout"), c.Timeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if err := coreconfig.MustBeInRange(path.Child("cache_ttl"), c.CacheTTL, time.Second, 24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	for _, p := range []struct{ key, value string }{
		{"values_path", c.ValuesPath},
		{"schema_path", c.SchemaPath},
	} {
		if p.value == "" {
			continue
		}
		if err := source.ValidatePath(p.value); err != nil {
			errs = append(errs, coreconfig.Invalid(path.Child(p.key), fmt.Sprintf("invalid repository path: %v", err)))
		}
	}

	return errs
}

// ToGitHubConfig converts to the source library config.
func (c *SourceConfig) ToGitHubConfig() source.Config {
	return source.Config{
		Owner:      c.Owner,
		Repo:       c.Repo,
		RawBaseURL: c.RawBaseURL,
		APIBaseURL: c.APIBaseURL,
		GitURL:     c.GitURL,
		Token:      c.Token,
		RefLister:  source.RefListerType(c.RefLister),
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
		CacheSize:  c.CacheSize,
		CacheTTL:   c.CacheTTL,
	}
}

// ToServiceConfig converts to the service config.
func (c *SourceConfig) ToServiceConfig() service.Config {
	return service.Config{
		ValuesPath: c.ValuesPath,
		SchemaPath: c.SchemaPath,
		DefaultRef: c.DefaultRef,
		CacheTTL:   c.CacheTTL,
	}
}
