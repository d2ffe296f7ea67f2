// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package validation validates partial Helm values snippets against the chart's JSON Schema.
//
// A snippet may be a single top-level section, the contents of a section without its key,
// or several sections at once. The package works out which part of the schema the snippet
// corresponds to, synthesizes a schema scoped to exactly that fragment, compiles it and
// evaluates the snippet against it. Compiled validators are memoized per schema version.
package validation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	keyProperties  = "properties"
	keyRef         = "$ref"
	keyDefs        = "$defs"
	keyDefinitions = "definitions"
	keySchema      = "$schema"

	// maxRefDepth bounds $ref chains followed while navigating.
	maxRefDepth = 32
)

// Node is a JSON Schema object, or a sub-tree of one.
type Node map[string]any

// Properties returns the node's "properties" mapping, or nil.
func (n Node) Properties() map[string]any {
	props, _ := n[keyProperties].(map[string]any)
	return props
}

// Ref returns the node's "$ref" pointer, or "".
func (n Node) Ref() string {
	ref, _ := n[keyRef].(string)
	return ref
}

func asNode(v any) (Node, bool) {
	switch t := v.(type) {
	case Node:
		return t, t != nil
	case map[string]any:
		return Node(t), t != nil
	}
	return nil, false
}

// Document is the full JSON Schema for one version of the values file.
// It is never mutated after construction.
type Document struct {
	root   Node
	digest string
}

// ParseDocument decodes a JSON Schema document. Numbers are kept as json.Number
// so that the evaluator sees them with full precision.
func ParseDocument(data []byte) (*Document, error) {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema root must be an object, got %T", v)
	}
	sum := sha256.Sum256(data)
	return &Document{root: root, digest: hex.EncodeToString(sum[:])}, nil
}

// Digest is the hex sha256 of the bytes the document was parsed from, or "" for a document
// built with NewDocument.
func (d *Document) Digest() string {
	return d.digest
}

// NewDocument wraps an already decoded schema object.
func NewDocument(root map[string]any) *Document {
	return &Document{root: root}
}

// Root returns the raw schema object.
func (d *Document) Root() Node {
	return d.root
}

// Properties returns the top-level section schemas keyed by section name.
func (d *Document) Properties() map[string]any {
	return d.root.Properties()
}

// Sections returns the top-level section names in sorted order.
func (d *Document) Sections() []string {
	props := d.Properties()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Required returns the document's top-level required keys in declaration order.
func (d *Document) Required() []string {
	raw, _ := d.root["required"].([]any)
	required := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			required = append(required, s)
		}
	}
	return required
}

// Defs returns the shared type definitions keyed by the keyword they were declared under
// ("$defs" and/or "definitions").
func (d *Document) Defs() map[string]map[string]any {
	defs := map[string]map[string]any{}
	for _, key := range []string{keyDefs, keyDefinitions} {
		if m, ok := d.root[key].(map[string]any); ok {
			defs[key] = m
		}
	}
	return defs
}

// resolve follows local "#/$defs/..." and "#/definitions/..." references until it reaches
// a node without one. Remote references are not followed.
func (d *Document) resolve(n Node) Node {
	for depth := 0; n != nil && depth < maxRefDepth; depth++ {
		ref := n.Ref()
		if ref == "" {
			return n
		}
		target, ok := d.lookupRef(ref)
		if !ok {
			return n
		}
		n = target
	}
	return n
}

func (d *Document) lookupRef(ref string) (Node, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	var current any = map[string]any(d.root)
	for _, token := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[token]
		if !ok {
			return nil, false
		}
	}
	return asNode(current)
}

// propertiesOf returns the properties a node exposes, looking through local references.
func (d *Document) propertiesOf(n Node) map[string]any {
	if n == nil {
		return nil
	}
	if props := n.Properties(); props != nil {
		return props
	}
	return d.resolve(n).Properties()
}

func containsRef(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		if _, ok := t[keyRef]; ok {
			return true
		}
		for _, child := range t {
			if containsRef(child) {
				return true
			}
		}
	case Node:
		return containsRef(map[string]any(t))
	case []any:
		for _, child := range t {
			if containsRef(child) {
				return true
			}
		}
	}
	return false
}
