// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"fmt"
	"sort"
)

// Synthesize builds a self-contained schema that validates exactly the fragment
// described by shape. The source document is never modified.
//
// Wrappers around named sections reject unknown top-level keys so typos surface as
// additionalProperties errors instead of being ignored.
func Synthesize(shape Shape, doc *Document) (Node, Failure) {
	switch s := shape.(type) {
	case FullDocument:
		sections := doc.Properties()
		props := make(map[string]any, len(s.Sections))
		for _, name := range s.Sections {
			props[name] = sections[name]
		}
		return withDefinitions(objectWrapper(props), doc), nil

	case SingleSection:
		sub := ExtractSubSchema(doc, s.Path)
		if sub == nil {
			return nil, &SectionNotFound{Section: s.Path, AvailableSections: doc.Sections()}
		}
		if s.HasSectionKeyAtRoot {
			props := map[string]any{lastSegment(s.Path): map[string]any(sub)}
			return withDefinitions(objectWrapper(props), doc), nil
		}
		node := make(Node, len(sub)+2)
		for k, v := range sub {
			node[k] = v
		}
		if containsRef(node) {
			return withDefinitions(node, doc), nil
		}
		return withSchemaDialect(node, doc), nil

	case Undetectable:
		return nil, &SectionUndetectable{AvailableSections: doc.Sections()}
	}

	return nil, &SchemaCompilationError{Message: fmt.Sprintf("unsupported snippet shape %T", shape)}
}

func objectWrapper(props map[string]any) Node {
	return Node{
		"type":                 "object",
		keyProperties:          props,
		"additionalProperties": false,
	}
}

// withDefinitions carries the document's shared definitions so local references resolve
// inside the synthesized schema.
func withDefinitions(node Node, doc *Document) Node {
	for key, defs := range doc.Defs() {
		if _, exists := node[key]; !exists {
			node[key] = defs
		}
	}
	return withSchemaDialect(node, doc)
}

func withSchemaDialect(node Node, doc *Document) Node {
	if dialect, ok := doc.root[keySchema].(string); ok {
		if _, exists := node[keySchema]; !exists {
			node[keySchema] = dialect
		}
	}
	return node
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
