// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/openchoreo/valuesmcp/internal/metrics"
)

// DefaultMaxSnippetBytes is the largest snippet accepted for validation (1 MiB).
const DefaultMaxSnippetBytes = 1 << 20

// Validator validates YAML snippets against a schema document.
// It performs no I/O; the schema document is resolved by the caller.
type Validator struct {
	cache           *Cache
	maxSnippetBytes int
	logger          *slog.Logger
	metrics         *metrics.Metrics
	now             func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithCache shares a compiled-validator cache with the validator.
func WithCache(c *Cache) Option {
	return func(v *Validator) { v.cache = c }
}

// WithMaxSnippetBytes overrides DefaultMaxSnippetBytes.
func WithMaxSnippetBytes(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxSnippetBytes = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithMetrics records validation outcomes and cache lookups.
func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// NewValidator creates a Validator. Without WithCache it owns a private cache of DefaultCacheSize.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		maxSnippetBytes: DefaultMaxSnippetBytes,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.cache == nil {
		v.cache = NewCache(DefaultCacheSize)
	}
	return v
}

// CacheStats reports the compiled-validator cache state.
func (v *Validator) CacheStats() CacheStats {
	return v.cache.Stats()
}

// ClearCache drops all compiled validators.
func (v *Validator) ClearCache() {
	v.cache.Clear()
}

// ValidateSnippet validates snippetYAML against the part of doc it corresponds to.
// sectionHint, when non-empty, names the section path to validate against instead of
// detecting it. The returned result is never nil.
func (v *Validator) ValidateSnippet(snippetYAML string, doc *Document, version, sectionHint string) *Result {
	start := v.now()
	result := v.validate(snippetYAML, doc, version, sectionHint)
	result.Version = version
	result.ElapsedMS = float64(v.now().Sub(start).Microseconds()) / 1000
	v.metrics.ObserveValidation(string(outcome(result)))
	return result
}

func (v *Validator) validate(snippetYAML string, doc *Document, version, sectionHint string) *Result {
	if size := len(snippetYAML); size > v.maxSnippetBytes {
		return &Result{Failure: &SizeLimitExceeded{Size: size, Limit: v.maxSnippetBytes}}
	}

	snippet, err := ParseSnippet(snippetYAML)
	if err != nil {
		return &Result{Failure: &SyntaxError{Message: err.Error()}}
	}

	if doc == nil {
		return &Result{SyntaxValid: true, Failure: &SchemaCompilationError{Message: "no schema document available"}}
	}

	shape := Classify(snippet, doc, sectionHint)
	logger := v.logger.With("version", version, "section", shape.Section())
	logger.Debug("Classified snippet", "shape", fmt.Sprintf("%T", shape), "keys", snippet.Keys)

	compiled, failure := v.compiledFor(shape, doc, version, logger)
	if failure != nil {
		return &Result{SyntaxValid: true, Section: shape.Section(), Failure: failure}
	}

	result := &Result{
		Valid:       true,
		SyntaxValid: true,
		Section:     shape.Section(),
	}
	if errs := compiled.Evaluate(snippet.Value, shape.pathPrefix()); len(errs) > 0 {
		result.Valid = false
		result.Errors = errs
		result.Summary = fmt.Sprintf("Found %d validation error(s) in section %q", len(errs), shape.Section())
	}
	return result
}

func (v *Validator) compiledFor(shape Shape, doc *Document, version string, logger *slog.Logger) (*CompiledValidator, Failure) {
	if _, ok := shape.(Undetectable); ok {
		return nil, &SectionUndetectable{AvailableSections: doc.Sections()}
	}

	key := shape.cacheKey()
	if cached := v.cache.Get(key, version); cached != nil {
		v.metrics.CacheLookup(true)
		logger.Debug("Validator cache hit", "key", key)
		return cached, nil
	}
	v.metrics.CacheLookup(false)

	node, failure := Synthesize(shape, doc)
	if failure != nil {
		return nil, failure
	}
	compiled, err := Compile(node)
	if err != nil {
		logger.Warn("Failed to compile synthesized schema", "error", err)
		return nil, &SchemaCompilationError{Message: err.Error()}
	}
	v.cache.Set(key, version, compiled)
	logger.Debug("Validator compiled", "key", key)
	return compiled, nil
}

func outcome(r *Result) FailureKind {
	if r.Valid {
		return "valid"
	}
	return r.Kind()
}
