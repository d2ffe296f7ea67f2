// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

// DetectSchemaSection infers which top-level section a snippet belongs to.
// It returns "" when no single section can be determined.
//
// A snippet whose top-level keys include a section name resolves to the first such key in
// the snippet's own order. Otherwise the snippet is treated as the contents of a section:
// when exactly one section declares every snippet key among its properties, that section
// is returned.
func DetectSchemaSection(snippet *Snippet, doc *Document) string {
	if snippet == nil || doc == nil || len(snippet.Keys) == 0 {
		return ""
	}

	sections := doc.Properties()
	for _, key := range snippet.Keys {
		if _, ok := sections[key]; ok {
			return key
		}
	}

	var match string
	matches := 0
	for _, name := range doc.Sections() {
		section, ok := asNode(sections[name])
		if !ok {
			continue
		}
		props := doc.propertiesOf(section)
		if len(props) == 0 || !containsAll(props, snippet.Keys) {
			continue
		}
		match = name
		matches++
	}
	if matches == 1 {
		return match
	}
	return ""
}

// matchingSections returns the snippet's top-level keys that name a schema section,
// in snippet order.
func matchingSections(snippet *Snippet, doc *Document) []string {
	sections := doc.Properties()
	var matches []string
	for _, key := range snippet.Keys {
		if _, ok := sections[key]; ok {
			matches = append(matches, key)
		}
	}
	return matches
}

func containsAll(props map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := props[k]; !ok {
			return false
		}
	}
	return true
}
