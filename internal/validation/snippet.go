// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Snippet is a parsed YAML fragment.
type Snippet struct {
	// Value is the decoded tree with string-keyed maps, ready for evaluation.
	Value any
	// Keys holds the top-level mapping keys in document order.
	// It is empty when the root is not a mapping.
	Keys []string
}

// ErrMultipleDocuments is returned by ParseSnippet for a YAML stream holding more than one
// document.
var ErrMultipleDocuments = errors.New("expected a single YAML document, found more than one")

// ParseSnippet parses YAML text holding at most one document.
func ParseSnippet(text string) (*Snippet, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Snippet{}, nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}

	s := &Snippet{}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return s, nil
	}
	root := doc.Content[0]

	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			s.Keys = append(s.Keys, root.Content[i].Value)
		}
	}

	var v any
	if err := root.Decode(&v); err != nil {
		return nil, err
	}
	s.Value = normalize(v)
	return s, nil
}

// HasKey reports whether key is one of the snippet's top-level keys.
func (s *Snippet) HasKey(key string) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// normalize converts the decoder output into JSON-compatible values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = normalize(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = normalize(child)
		}
		return out
	case time.Time:
		return t.Format(time.RFC3339Nano)
	}
	return v
}
