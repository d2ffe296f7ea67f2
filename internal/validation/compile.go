// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	synthesizedSchemaURL = "synthesized.schema.json"
	maxContextLength     = 120
)

var printer = message.NewPrinter(language.English)

// CompiledValidator is a compiled, reusable evaluator for one synthesized schema.
type CompiledValidator struct {
	schema *jsonschema.Schema
}

// Compile compiles a synthesized schema. Format assertions are enabled; keywords the
// evaluator does not know are ignored.
func Compile(node Node) (*CompiledValidator, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	c.AssertFormat()

	if err := c.AddResource(synthesizedSchemaURL, toJSONValue(node)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := c.Compile(synthesizedSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &CompiledValidator{schema: schema}, nil
}

// Evaluate validates instance and returns every error found, sorted by path.
// Locations are prefixed with prefix to express them in full-document coordinates.
func (v *CompiledValidator) Evaluate(instance any, prefix string) []FieldError {
	err := v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []FieldError{{Path: prefix, Message: err.Error(), Keyword: "schema"}}
	}

	var leaves []*jsonschema.ValidationError
	collectLeaves(verr, &leaves)

	out := make([]FieldError, 0, len(leaves))
	for _, leaf := range leaves {
		if extra, ok := leaf.ErrorKind.(*kind.AdditionalProperties); ok && prefix == "" && len(leaf.InstanceLocation) == 0 {
			out = append(out, rootAdditionalProperties(instance, extra)...)
			continue
		}
		out = append(out, FieldError{
			Path:    joinPath(prefix, instance, leaf.InstanceLocation),
			Message: messageOf(leaf.ErrorKind),
			Keyword: keywordOf(leaf.ErrorKind),
			Params:  paramsOf(leaf.ErrorKind),
			Context: contextOf(instance, leaf.InstanceLocation),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		if out[i].Keyword != out[j].Keyword {
			return out[i].Keyword < out[j].Keyword
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// rootAdditionalProperties reports each unknown top-level key as its own error located at
// that key.
func rootAdditionalProperties(instance any, k *kind.AdditionalProperties) []FieldError {
	out := make([]FieldError, 0, len(k.Properties))
	for _, name := range sortedCopy(k.Properties) {
		out = append(out, FieldError{
			Path:    name,
			Message: "additional properties " + quoteAll([]string{name}) + " not allowed",
			Keyword: "additionalProperties",
			Params:  map[string]any{"additionalProperty": []string{name}},
			Context: contextOf(instance, []string{name}),
		})
	}
	return out
}

func collectLeaves(err *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, err)
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

func keywordOf(k jsonschema.ErrorKind) string {
	path := k.KeywordPath()
	if len(path) == 0 {
		return "false"
	}
	return path[len(path)-1]
}

// messageOf renders the evaluator message. Property lists are sorted so that repeated
// runs produce identical text.
func messageOf(k jsonschema.ErrorKind) string {
	switch t := k.(type) {
	case *kind.Required:
		return "missing properties " + quoteAll(sortedCopy(t.Missing))
	case *kind.AdditionalProperties:
		return "additional properties " + quoteAll(sortedCopy(t.Properties)) + " not allowed"
	}
	return k.LocalizedString(printer)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}

func paramsOf(k jsonschema.ErrorKind) map[string]any {
	switch t := k.(type) {
	case *kind.Type:
		return map[string]any{"type": t.Want, "got": t.Got}
	case *kind.Enum:
		return map[string]any{"allowedValues": t.Want}
	case *kind.Const:
		return map[string]any{"allowedValue": t.Want}
	case *kind.Required:
		return map[string]any{"missingProperty": sortedCopy(t.Missing)}
	case *kind.AdditionalProperties:
		return map[string]any{"additionalProperty": sortedCopy(t.Properties)}
	case *kind.Pattern:
		return map[string]any{"pattern": t.Want}
	case *kind.Format:
		return map[string]any{"format": t.Want}
	}
	return nil
}

// joinPath renders an instance location as a dotted path, with list indexes in brackets.
func joinPath(prefix string, instance any, location []string) string {
	var b strings.Builder
	b.WriteString(prefix)
	current := instance
	for _, token := range location {
		if list, ok := current.([]any); ok {
			b.WriteString("[" + token + "]")
			if i, err := strconv.Atoi(token); err == nil && i >= 0 && i < len(list) {
				current = list[i]
			} else {
				current = nil
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
		if m, ok := current.(map[string]any); ok {
			current = m[token]
		} else {
			current = nil
		}
	}
	return b.String()
}

func contextOf(instance any, location []string) string {
	current := instance
	for _, token := range location {
		switch t := current.(type) {
		case map[string]any:
			current = t[token]
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(t) {
				return ""
			}
			current = t[i]
		default:
			return ""
		}
	}
	data, err := json.Marshal(current)
	if err != nil {
		return ""
	}
	s := string(data)
	if len(s) > maxContextLength {
		s = s[:maxContextLength] + "..."
	}
	return s
}

// toJSONValue strips the Node type so the compiler sees plain JSON values.
func toJSONValue(v any) any {
	switch t := v.(type) {
	case Node:
		return toJSONValue(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = toJSONValue(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = toJSONValue(child)
		}
		return out
	}
	return v
}
