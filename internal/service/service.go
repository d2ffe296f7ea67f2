// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package service combines the remote source, the values model and the snippet validator
// behind the operations offered by the CLI and the tool server.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/openchoreo/valuesmcp/internal/source"
	"github.com/openchoreo/valuesmcp/internal/validation"
	"github.com/openchoreo/valuesmcp/internal/values"
)

// VersionLatest resolves to the newest stable release tag.
const VersionLatest = "latest"

const (
	defaultDocumentCacheSize = 8
	defaultDocumentCacheTTL  = 10 * time.Minute
)

// Config locates the values file and its schema in the repository.
type Config struct {
	ValuesPath string
	SchemaPath string
	// DefaultRef is used when a caller does not name a version.
	DefaultRef string
	// CacheSize bounds the number of versions whose parsed documents are kept.
	CacheSize int
	CacheTTL  time.Duration
}

// Service implements the values operations.
type Service struct {
	src       source.Source
	validator *validation.Validator
	cfg       Config
	logger    *slog.Logger

	schemas *expirable.LRU[string, *validation.Document]
	values  *expirable.LRU[string, *values.Values]
	group   singleflight.Group

	mu sync.Mutex
	// digests remembers the schema digest last parsed for each ref.
	digests map[string]string
}

// New creates a Service. A nil logger discards output.
func New(src source.Source, validator *validation.Validator, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultDocumentCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultDocumentCacheTTL
	}
	return &Service{
		src:       src,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
		schemas:   expirable.NewLRU[string, *validation.Document](cfg.CacheSize, nil, cfg.CacheTTL),
		values:    expirable.NewLRU[string, *values.Values](cfg.CacheSize, nil, cfg.CacheTTL),
		digests:   map[string]string{},
	}
}

// Versions lists the refs that can be passed as a version.
type Versions struct {
	Tags     []string `json:"tags"`
	Branches []string `json:"branches"`
	Latest   string   `json:"latest,omitempty"`
	Default  string   `json:"default"`
}

// ListVersions returns the repository tags and branches.
func (s *Service) ListVersions(ctx context.Context) *Versions {
	tags := s.src.GetTags(ctx)
	branches := s.src.GetBranches(ctx)
	s.logger.Debug("Listed versions", "tags", len(tags), "branches", len(branches))
	return &Versions{
		Tags:     tags,
		Branches: branches,
		Latest:   source.LatestVersion(tags),
		Default:  s.cfg.DefaultRef,
	}
}

// ResolveVersion maps "" to the default ref and "latest" to the newest release tag.
func (s *Service) ResolveVersion(ctx context.Context, version string) (string, error) {
	switch strings.TrimSpace(version) {
	case "":
		return s.cfg.DefaultRef, nil
	case VersionLatest:
		latest := source.LatestVersion(s.src.GetTags(ctx))
		if latest == "" {
			return "", ErrNoReleases
		}
		return latest, nil
	}
	return strings.TrimSpace(version), nil
}

// Schema returns the parsed schema document for version.
func (s *Service) Schema(ctx context.Context, version string) (*validation.Document, string, error) {
	ref, err := s.ResolveVersion(ctx, version)
	if err != nil {
		return nil, "", err
	}
	if doc, ok := s.schemas.Get(ref); ok {
		return doc, ref, nil
	}

	v, err, _ := s.group.Do("schema:"+ref, func() (any, error) {
		content, err := s.fetch(context.WithoutCancel(ctx), s.cfg.SchemaPath, ref)
		if err != nil {
			return nil, err
		}
		doc, err := validation.ParseDocument([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s at %s: %w", ErrInvalidSchema, s.cfg.SchemaPath, ref, err)
		}
		s.noteSchemaDigest(ref, doc.Digest())
		s.schemas.Add(ref, doc)
		return doc, nil
	})
	if err != nil {
		return nil, ref, err
	}
	return v.(*validation.Document), ref, nil
}

// noteSchemaDigest drops compiled validators when the schema fetched for ref differs from
// the one parsed before for that ref.
func (s *Service) noteSchemaDigest(ref, digest string) {
	s.mu.Lock()
	prev, seen := s.digests[ref]
	s.digests[ref] = digest
	s.mu.Unlock()

	if seen && prev != digest {
		s.validator.ClearCache()
		s.logger.Info("Schema changed, cleared compiled validators", "version", ref)
	}
}

// Values returns the parsed values file for version.
func (s *Service) Values(ctx context.Context, version string) (*values.Values, string, error) {
	ref, err := s.ResolveVersion(ctx, version)
	if err != nil {
		return nil, "", err
	}
	if vals, ok := s.values.Get(ref); ok {
		return vals, ref, nil
	}

	v, err, _ := s.group.Do("values:"+ref, func() (any, error) {
		content, err := s.fetch(context.WithoutCancel(ctx), s.cfg.ValuesPath, ref)
		if err != nil {
			return nil, err
		}
		vals, err := values.Parse([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("%s at %s: %w", s.cfg.ValuesPath, ref, err)
		}
		s.values.Add(ref, vals)
		return vals, nil
	})
	if err != nil {
		return nil, ref, err
	}
	return v.(*values.Values), ref, nil
}

func (s *Service) fetch(ctx context.Context, path, ref string) (string, error) {
	if err := source.ValidatePath(path); err != nil {
		return "", err
	}
	start := time.Now()
	content, err := s.src.GetFileContent(ctx, path, ref)
	if err != nil {
		s.logger.Warn("Failed to fetch file", "path", path, "ref", ref, "error", err)
		return "", fmt.Errorf("failed to fetch %s at %s: %w", path, ref, err)
	}
	s.logger.Debug("Fetched file", "path", path, "ref", ref, "bytes", len(content), "duration", time.Since(start))
	return content, nil
}

// Validate validates a YAML snippet against the schema of version. The error is non-nil only
// when the schema could not be obtained; validation failures are reported in the result.
func (s *Service) Validate(ctx context.Context, snippet, version, sectionHint string) (*validation.Result, error) {
	doc, ref, err := s.Schema(ctx, version)
	if err != nil {
		return nil, err
	}
	result := s.validator.ValidateSnippet(snippet, doc, ref, strings.TrimSpace(sectionHint))
	s.logger.Debug("Validated snippet",
		"version", ref, "section", result.Section, "valid", result.Valid, "errors", len(result.Errors))
	return result, nil
}

// SearchResult holds the matches of a values search.
type SearchResult struct {
	Version string         `json:"version"`
	Query   string         `json:"query"`
	Matches []values.Match `json:"matches"`
}

// Search finds values entries matching a natural language query.
func (s *Service) Search(ctx context.Context, query, version string, limit int) (*SearchResult, error) {
	vals, ref, err := s.Values(ctx, version)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Version: ref, Query: query, Matches: values.Search(vals, query, limit)}, nil
}

// ValueResult is a single values entry.
type ValueResult struct {
	Version string `json:"version"`
	values.Entry
}

// GetValue returns the entry at a dotted path.
func (s *Service) GetValue(ctx context.Context, path, version string) (*ValueResult, error) {
	vals, ref, err := s.Values(ctx, version)
	if err != nil {
		return nil, err
	}
	entry, ok := vals.Get(strings.TrimSpace(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q at %s", ErrPathNotFound, path, ref)
	}
	return &ValueResult{Version: ref, Entry: entry}, nil
}

// SchemaSection is the standalone schema of one section path.
type SchemaSection struct {
	Version string `json:"version"`
	Section string `json:"section"`
	// Schema validates the section contents and carries the definitions it references.
	Schema map[string]any `json:"schema"`
}

// GetSchemaSection returns the schema for a section path.
func (s *Service) GetSchemaSection(ctx context.Context, section, version string) (*SchemaSection, error) {
	doc, ref, err := s.Schema(ctx, version)
	if err != nil {
		return nil, err
	}
	section = strings.TrimSpace(section)
	node, failure := validation.Synthesize(validation.SingleSection{Path: section}, doc)
	if failure != nil {
		return nil, fmt.Errorf("%w: %q at %s, available sections: %s",
			ErrSectionNotFound, section, ref, strings.Join(doc.Sections(), ", "))
	}
	return &SchemaSection{Version: ref, Section: section, Schema: node}, nil
}

// RulesResult holds the rules extracted from the values comments.
type RulesResult struct {
	Version string        `json:"version"`
	Section string        `json:"section,omitempty"`
	Rules   []values.Rule `json:"rules"`
}

// ExtractRules returns the rules stated in the comments of a section, or the whole file.
func (s *Service) ExtractRules(ctx context.Context, section, version string) (*RulesResult, error) {
	vals, ref, err := s.Values(ctx, version)
	if err != nil {
		return nil, err
	}
	section = strings.TrimSpace(section)
	if section != "" {
		if _, ok := vals.Get(section); !ok {
			return nil, fmt.Errorf("%w: %q at %s", ErrPathNotFound, section, ref)
		}
	}
	return &RulesResult{Version: ref, Section: section, Rules: values.ExtractRules(vals, section)}, nil
}

// CacheStats reports the compiled validator cache.
func (s *Service) CacheStats() validation.CacheStats {
	return s.validator.CacheStats()
}

// ClearCache drops compiled validators, parsed documents and fetched files.
func (s *Service) ClearCache() validation.CacheStats {
	s.validator.ClearCache()
	s.schemas.Purge()
	s.values.Purge()
	if p, ok := s.src.(interface{ Purge() }); ok {
		p.Purge()
	}
	s.logger.Info("Cleared caches")
	return s.validator.CacheStats()
}
