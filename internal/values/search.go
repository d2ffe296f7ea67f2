// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// DefaultSearchLimit is used when Search is called with a non-positive limit.
const DefaultSearchLimit = 10

const (
	weightPathSegment = 3
	weightExactKey    = 5
	weightComment     = 1
	weightValue       = 1
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true, "by": true,
	"can": true, "do": true, "for": true, "from": true, "how": true, "i": true, "in": true, "is": true,
	"it": true, "my": true, "of": true, "on": true, "or": true, "set": true, "the": true, "to": true,
	"what": true, "where": true, "which": true, "with": true,
}

// Match is a search hit.
type Match struct {
	Entry
	Score int `json:"score"`
}

// Search ranks entries against a natural language query. Higher scores come first; equal
// scores keep document order.
func Search(v *Values, query string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	tokens := Tokenize(query)
	if len(tokens) == 0 || v == nil {
		return []Match{}
	}
	compact := strings.Join(tokens, "")

	var matches []Match
	for _, e := range v.entries {
		if score := scoreEntry(e, tokens, compact); score > 0 {
			matches = append(matches, Match{Entry: e, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		return []Match{}
	}
	return matches
}

func scoreEntry(e Entry, tokens []string, compact string) int {
	segments := Tokenize(e.Path)
	key := strings.ToLower(e.Key)
	comment := strings.ToLower(e.Comment)
	value := scalarText(e)

	score := 0
	if key == compact {
		score += weightExactKey
	}
	for _, token := range tokens {
		if key != compact && key == token {
			score += weightExactKey
		}
		if containsToken(segments, token) {
			score += weightPathSegment
		}
		if comment != "" && strings.Contains(comment, token) {
			score += weightComment
		}
		if value != "" && strings.Contains(value, token) {
			score += weightValue
		}
	}
	return score
}

func scalarText(e Entry) string {
	switch e.Kind {
	case KindMap, KindList, KindNull:
		return ""
	}
	return strings.ToLower(fmt.Sprint(e.Value))
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Tokenize lowercases text, splits it on non-alphanumerics and camelCase boundaries and
// drops stop words.
func Tokenize(text string) []string {
	var tokens []string
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, part := range splitCamel(word) {
			part = strings.ToLower(part)
			if !stopWords[part] {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// splitCamel splits "replicateServicesToHost" into replicate, Services, To, Host and keeps
// acronyms together: "enableHTTPProxy" gives enable, HTTP, Proxy.
func splitCamel(word string) []string {
	runes := []rune(word)
	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur) ||
			unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	return append(parts, string(runes[start:]))
}
