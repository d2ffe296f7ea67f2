// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FailureKind names a class of validation failure.
type FailureKind string

const (
	KindSizeLimitExceeded      FailureKind = "size_limit_exceeded"
	KindSyntaxError            FailureKind = "syntax_error"
	KindSectionUndetectable    FailureKind = "section_undetectable"
	KindSectionNotFound        FailureKind = "section_not_found"
	KindSchemaCompilationError FailureKind = "schema_compilation_error"
	KindValidationErrors       FailureKind = "validation_errors"
)

// Failure is a reason a snippet could not be evaluated. The set of implementations is closed:
// SizeLimitExceeded, SyntaxError, SectionUndetectable, SectionNotFound and SchemaCompilationError.
type Failure interface {
	error
	Kind() FailureKind
	failure()
}

// SizeLimitExceeded is returned for snippets larger than the configured limit.
type SizeLimitExceeded struct {
	Size  int
	Limit int
}

// SyntaxError carries the YAML parser message verbatim.
type SyntaxError struct {
	Message string
}

// SectionUndetectable is returned when no section hint was given and none could be inferred.
type SectionUndetectable struct {
	AvailableSections []string
}

// SectionNotFound is returned when the section hint does not resolve to a sub-schema.
type SectionNotFound struct {
	Section           string
	AvailableSections []string
}

// SchemaCompilationError means the synthesized schema was rejected by the compiler.
type SchemaCompilationError struct {
	Message string
}

func (e *SizeLimitExceeded) Error() string {
	return fmt.Sprintf("Snippet too large: %d bytes exceeds the limit of %d bytes", e.Size, e.Limit)
}

func (e *SyntaxError) Error() string { return "YAML syntax error: " + e.Message }

func (e *SectionUndetectable) Error() string {
	return "Could not detect schema section from snippet. Specify the section explicitly."
}

func (e *SectionNotFound) Error() string {
	return fmt.Sprintf("Section %q not found in schema", e.Section)
}

func (e *SchemaCompilationError) Error() string {
	return "Failed to compile validation schema: " + e.Message
}

func (*SizeLimitExceeded) Kind() FailureKind      { return KindSizeLimitExceeded }
func (*SyntaxError) Kind() FailureKind            { return KindSyntaxError }
func (*SectionUndetectable) Kind() FailureKind    { return KindSectionUndetectable }
func (*SectionNotFound) Kind() FailureKind        { return KindSectionNotFound }
func (*SchemaCompilationError) Kind() FailureKind { return KindSchemaCompilationError }

func (*SizeLimitExceeded) failure()      {}
func (*SyntaxError) failure()            {}
func (*SectionUndetectable) failure()    {}
func (*SectionNotFound) failure()        {}
func (*SchemaCompilationError) failure() {}

// FieldError is one evaluator finding.
type FieldError struct {
	// Path is the location in full-document coordinates, e.g. "controlPlane.distro.k3s.enabled".
	Path    string         `json:"path"`
	Message string         `json:"message"`
	Keyword string         `json:"keyword"`
	Params  map[string]any `json:"params,omitempty"`
	// Context is the offending value, rendered compactly.
	Context string `json:"context,omitempty"`
}

// Result is the outcome of one ValidateSnippet call. It is not modified after it is returned.
type Result struct {
	Valid       bool
	SyntaxValid bool
	// Section is the section path the snippet was validated against, FullDocumentSection,
	// or "" when none was determined.
	Section   string
	Version   string
	ElapsedMS float64
	Errors    []FieldError
	Summary   string
	// Failure is set when the snippet could not be evaluated.
	Failure Failure
}

// Kind returns the failure class, or "" for a valid snippet.
func (r *Result) Kind() FailureKind {
	switch {
	case r.Failure != nil:
		return r.Failure.Kind()
	case len(r.Errors) > 0:
		return KindValidationErrors
	}
	return ""
}

type resultJSON struct {
	Valid             bool         `json:"valid"`
	SyntaxValid       bool         `json:"syntax_valid"`
	Section           *string      `json:"section"`
	Version           string       `json:"version"`
	ElapsedMS         float64      `json:"elapsed_ms"`
	Errors            []FieldError `json:"errors,omitempty"`
	Summary           string       `json:"summary,omitempty"`
	ErrorKind         FailureKind  `json:"error_kind,omitempty"`
	Error             string       `json:"error,omitempty"`
	SyntaxError       string       `json:"syntax_error,omitempty"`
	Hint              string       `json:"hint,omitempty"`
	AvailableSections []string     `json:"available_sections,omitempty"`
	SizeBytes         int          `json:"size_bytes,omitempty"`
	LimitBytes        int          `json:"limit_bytes,omitempty"`
}

// MarshalJSON flattens the failure variant into the result object.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Valid:       r.Valid,
		SyntaxValid: r.SyntaxValid,
		Version:     r.Version,
		ElapsedMS:   r.ElapsedMS,
		Errors:      r.Errors,
		Summary:     r.Summary,
		ErrorKind:   r.Kind(),
	}
	if r.Section != "" {
		section := r.Section
		out.Section = &section
	}

	switch f := r.Failure.(type) {
	case nil:
	case *SizeLimitExceeded:
		out.Error = f.Error()
		out.SizeBytes = f.Size
		out.LimitBytes = f.Limit
	case *SyntaxError:
		out.Error = f.Error()
		out.SyntaxError = f.Message
	case *SectionUndetectable:
		out.Error = f.Error()
		out.AvailableSections = f.AvailableSections
		out.Hint = sectionHint(f.AvailableSections)
	case *SectionNotFound:
		out.Error = f.Error()
		out.AvailableSections = f.AvailableSections
		out.Hint = sectionHint(f.AvailableSections)
	case *SchemaCompilationError:
		out.Error = f.Error()
	}
	return json.Marshal(out)
}

func sectionHint(sections []string) string {
	if len(sections) == 0 {
		return "The schema declares no top-level sections."
	}
	return "Pass a section hint. Valid sections: " + strings.Join(sections, ", ")
}
