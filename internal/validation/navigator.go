// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import "strings"

// ExtractSubSchema returns the schema node at a dotted section path such as
// "controlPlane.distro", or nil when the path does not exist.
//
// Each segment is looked up in the "properties" of the node reached so far. When more
// segments remain and that node is a local $ref, the reference is followed to reach the
// definition's properties. The returned node itself is not resolved: a node that is a
// bare $ref comes back with the $ref intact.
func ExtractSubSchema(doc *Document, sectionPath string) Node {
	if doc == nil || sectionPath == "" {
		return nil
	}

	segments := strings.Split(sectionPath, ".")
	props := doc.Properties()
	var current Node
	for i, segment := range segments {
		if props == nil {
			return nil
		}
		next, ok := asNode(props[segment])
		if !ok {
			return nil
		}
		current = next
		if i < len(segments)-1 {
			props = doc.propertiesOf(current)
		}
	}
	return current
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}
