// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import "strings"

// FullDocumentSection is reported as the section of snippets spanning several top-level sections.
const FullDocumentSection = "__full_document__"

// Shape classifies a snippet. It is one of FullDocument, SingleSection or Undetectable.
type Shape interface {
	// Section is the section reported in results.
	Section() string
	// cacheKey identifies the synthesized schema within one version.
	cacheKey() string
	// pathPrefix is prepended to evaluator instance locations.
	pathPrefix() string
}

// FullDocument is a snippet whose top level names two or more schema sections.
type FullDocument struct {
	Sections []string
}

// SingleSection is a snippet belonging to one section path.
type SingleSection struct {
	Path string
	// HasSectionKeyAtRoot is true when the snippet is keyed by the section
	// (controlPlane: {...}) rather than being its contents ({distro: ...}).
	HasSectionKeyAtRoot bool
}

// Undetectable is a snippet that could not be tied to a section.
type Undetectable struct{}

func (FullDocument) Section() string    { return FullDocumentSection }
func (s SingleSection) Section() string { return s.Path }
func (Undetectable) Section() string    { return "" }

func (f FullDocument) cacheKey() string {
	return FullDocumentSection + "[" + strings.Join(sortedCopy(f.Sections), ",") + "]"
}

func (s SingleSection) cacheKey() string {
	if s.HasSectionKeyAtRoot {
		return s.Path
	}
	return s.Path + "/*"
}

func (Undetectable) cacheKey() string { return "" }

func (FullDocument) pathPrefix() string { return "" }

func (s SingleSection) pathPrefix() string {
	if s.HasSectionKeyAtRoot {
		return parentPath(s.Path)
	}
	return s.Path
}

func (Undetectable) pathPrefix() string { return "" }

// Classify decides how a snippet maps onto the schema. Snippets naming two or more
// sections are full documents; otherwise the hint, when given, wins over detection.
func Classify(snippet *Snippet, doc *Document, hint string) Shape {
	if matches := matchingSections(snippet, doc); len(matches) > 1 {
		return FullDocument{Sections: matches}
	}

	path := hint
	if path == "" {
		path = DetectSchemaSection(snippet, doc)
	}
	if path == "" {
		return Undetectable{}
	}
	return SingleSection{
		Path:                path,
		HasSectionKeyAtRoot: snippet.HasKey(lastSegment(path)),
	}
}
