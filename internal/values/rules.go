// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"regexp"
	"strings"
)

// RuleKind classifies a rule found in a comment.
type RuleKind string

const (
	RuleRequirement RuleKind = "requirement"
	RuleConstraint  RuleKind = "constraint"
	RuleWarning     RuleKind = "warning"
	RuleDefault     RuleKind = "default"
)

// Rule is a sentence from a comment that states how a value must or should be set.
type Rule struct {
	Path string   `json:"path"`
	Kind RuleKind `json:"kind"`
	Text string   `json:"text"`
	Line int      `json:"line"`
}

// Checked in order; "must not" is a constraint before "must" is a requirement.
var ruleMatchers = []struct {
	kind RuleKind
	re   *regexp.Regexp
}{
	{RuleWarning, keywords("warning", "deprecated", "caution", "note")},
	{RuleConstraint, keywords("must not", "cannot", "can not", "only", "at least", "at most", "between", "one of")},
	{RuleRequirement, keywords("must", "required", "requires", "needs to", "has to")},
	{RuleDefault, keywords("default", "defaults to")},
}

func keywords(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

var sentenceEnd = regexp.MustCompile(`[.!?](\s+|$)`)

// ExtractRules returns the rules stated in the comments of section and its descendants, in
// document order. An empty section covers the whole file.
func ExtractRules(v *Values, section string) []Rule {
	rules := []Rule{}
	if v == nil {
		return rules
	}
	for _, e := range v.Section(section) {
		for _, sentence := range sentences(e.Comment) {
			if kind, ok := classify(sentence); ok {
				rules = append(rules, Rule{Path: e.Path, Kind: kind, Text: sentence, Line: e.Line})
			}
		}
	}
	return rules
}

func classify(sentence string) (RuleKind, bool) {
	for _, m := range ruleMatchers {
		if m.re.MatchString(sentence) {
			return m.kind, true
		}
	}
	return "", false
}

// sentences splits a comment into sentences. Comment lines are joined first so that a
// sentence wrapped over several lines stays whole.
func sentences(comment string) []string {
	if comment == "" {
		return nil
	}
	text := strings.Join(strings.Fields(comment), " ")
	var out []string
	for _, loc := range splitKeepingTerminator(text) {
		if s := strings.TrimSpace(loc); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitKeepingTerminator(text string) []string {
	var parts []string
	start := 0
	for _, idx := range sentenceEnd.FindAllStringIndex(text, -1) {
		parts = append(parts, text[start:idx[0]+1])
		start = idx[1]
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}
