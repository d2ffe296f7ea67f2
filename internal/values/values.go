// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package values models a Helm values.yaml as an ordered list of entries that keep their comments,
// and provides search and comment rule extraction over it.
package values

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the YAML type of an entry's value.
type Kind string

const (
	KindMap    Kind = "map"
	KindList   Kind = "list"
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindNull   Kind = "null"
)

// Entry is one key (or list item) of the values file.
type Entry struct {
	// Path is the dotted location, with list indexes in brackets: "sync.toHost.pods.enabled", "plugins[0].name".
	Path string `json:"path"`
	// Key is the last path element.
	Key   string `json:"key"`
	Kind  Kind   `json:"kind"`
	Value any    `json:"value"`
	// Comment is the text of the head and line comments with the markers removed.
	Comment string `json:"comment,omitempty"`
	Line    int    `json:"line"`
}

// Values is a parsed values file. Entries appear in document order.
type Values struct {
	entries []Entry
	index   map[string]int
}

// Parse parses a values file.
func Parse(data []byte) (*Values, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}

	v := &Values{index: make(map[string]int)}
	if len(doc.Content) == 0 {
		return v, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("values root must be a mapping, got %s", kindOf(root))
	}
	if err := v.walkMapping(root, ""); err != nil {
		return nil, err
	}
	return v, nil
}

// Entries returns every entry in document order.
func (v *Values) Entries() []Entry {
	return v.entries
}

// Len returns the number of entries.
func (v *Values) Len() int {
	return len(v.entries)
}

// Get returns the entry at path.
func (v *Values) Get(path string) (Entry, bool) {
	i, ok := v.index[path]
	if !ok {
		return Entry{}, false
	}
	return v.entries[i], true
}

// Section returns the entry at prefix and all entries below it. An empty prefix returns everything.
func (v *Values) Section(prefix string) []Entry {
	if prefix == "" {
		return v.entries
	}
	var out []Entry
	for _, e := range v.entries {
		if e.Path == prefix || strings.HasPrefix(e.Path, prefix+".") || strings.HasPrefix(e.Path, prefix+"[") {
			out = append(out, e)
		}
	}
	return out
}

// TopLevelKeys returns the root keys in document order.
func (v *Values) TopLevelKeys() []string {
	var keys []string
	for _, e := range v.entries {
		if !strings.ContainsAny(e.Path, ".[") {
			keys = append(keys, e.Path)
		}
	}
	return keys
}

func (v *Values) walkMapping(node *yaml.Node, prefix string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], resolveAlias(node.Content[i+1])
		key := keyNode.Value
		if key == "<<" {
			if err := v.walkMerge(valueNode, prefix); err != nil {
				return err
			}
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		comment := joinComments(keyNode.HeadComment, keyNode.LineComment, valueNode.LineComment)
		if err := v.add(path, key, valueNode, comment, keyNode.Line); err != nil {
			return err
		}
	}
	return nil
}

func (v *Values) walkMerge(node *yaml.Node, prefix string) error {
	switch node.Kind {
	case yaml.MappingNode:
		return v.walkMapping(node, prefix)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := v.walkMerge(resolveAlias(item), prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Values) walkSequence(node *yaml.Node, prefix string) error {
	for i, item := range node.Content {
		item = resolveAlias(item)
		path := prefix + "[" + strconv.Itoa(i) + "]"
		comment := joinComments(item.HeadComment, item.LineComment)
		if err := v.add(path, strconv.Itoa(i), item, comment, item.Line); err != nil {
			return err
		}
	}
	return nil
}

func (v *Values) add(path, key string, node *yaml.Node, comment string, line int) error {
	var value any
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if _, exists := v.index[path]; !exists {
		v.index[path] = len(v.entries)
		v.entries = append(v.entries, Entry{
			Path:    path,
			Key:     key,
			Kind:    kindOf(node),
			Value:   normalize(value),
			Comment: comment,
			Line:    line,
		})
	}

	switch node.Kind {
	case yaml.MappingNode:
		return v.walkMapping(node, path)
	case yaml.SequenceNode:
		return v.walkSequence(node, path)
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func kindOf(n *yaml.Node) Kind {
	switch n.Kind {
	case yaml.MappingNode:
		return KindMap
	case yaml.SequenceNode:
		return KindList
	}
	switch n.ShortTag() {
	case "!!int":
		return KindInt
	case "!!float":
		return KindFloat
	case "!!bool":
		return KindBool
	case "!!null":
		return KindNull
	}
	return KindString
}

// joinComments strips comment markers and joins the non-empty lines with newlines.
func joinComments(comments ...string) string {
	var lines []string
	for _, c := range comments {
		for _, line := range strings.Split(c, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// normalize converts maps with non-string keys so entries can be rendered as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	}
	return v
}
