// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/openchoreo/valuesmcp/internal/service"
	"github.com/openchoreo/valuesmcp/internal/validation"
	"github.com/openchoreo/valuesmcp/internal/values"
)

const maxCellWidth = 60

// writeTable reports false when v has no table layout.
func writeTable(w io.Writer, v any) (bool, error) {
	switch t := v.(type) {
	case *validation.Result:
		return true, printResult(w, t)
	case *service.SearchResult:
		return true, printMatches(w, t.Matches)
	case *service.RulesResult:
		return true, printRules(w, t.Rules)
	case *service.Versions:
		return true, printVersions(w, t)
	case *service.ValueResult:
		return true, printEntries(w, []values.Entry{t.Entry})
	case validation.CacheStats:
		return true, printCacheStats(w, t)
	}
	return false, nil
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

func printResult(w io.Writer, r *validation.Result) error {
	section := r.Section
	if section == "" {
		section = "-"
	}
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "Result:  %s\nSection: %s\nVersion: %s\n", status, section, r.Version)

	if r.Failure != nil {
		fmt.Fprintf(w, "Error:   %s\n", r.Failure.Error())
		switch f := r.Failure.(type) {
		case *validation.SectionUndetectable:
			fmt.Fprintf(w, "Available sections: %s\n", strings.Join(f.AvailableSections, ", "))
		case *validation.SectionNotFound:
			fmt.Fprintf(w, "Available sections: %s\n", strings.Join(f.AvailableSections, ", "))
		}
		return nil
	}
	if len(r.Errors) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n%s\n\n", r.Summary)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "PATH\tKEYWORD\tMESSAGE")
	for _, e := range r.Errors {
		path := e.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, e.Keyword, truncate(e.Message))
	}
	return tw.Flush()
}

func printMatches(w io.Writer, matches []values.Match) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matching values found")
		return nil
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "SCORE\tPATH\tVALUE\tCOMMENT")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.Score, m.Path, formatValue(m.Entry), firstLine(m.Comment))
	}
	return tw.Flush()
}

func printEntries(w io.Writer, entries []values.Entry) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "PATH\tKIND\tVALUE\tCOMMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Path, e.Kind, formatValue(e), firstLine(e.Comment))
	}
	return tw.Flush()
}

func printRules(w io.Writer, rules []values.Rule) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules found")
		return nil
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "KIND\tPATH\tLINE\tRULE")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Kind, r.Path, r.Line, truncate(r.Text))
	}
	return tw.Flush()
}

func printVersions(w io.Writer, v *service.Versions) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "REF\tTYPE\tNOTE")
	for _, b := range v.Branches {
		note := ""
		if b == v.Default {
			note = "default"
		}
		fmt.Fprintf(tw, "%s\tbranch\t%s\n", b, note)
	}
	for _, t := range v.Tags {
		var notes []string
		if t == v.Latest {
			notes = append(notes, "latest")
		}
		if t == v.Default {
			notes = append(notes, "default")
		}
		fmt.Fprintf(tw, "%s\ttag\t%s\n", t, strings.Join(notes, ","))
	}
	return tw.Flush()
}

func printCacheStats(w io.Writer, s validation.CacheStats) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "SIZE\tMAX SIZE\tVERSION")
	fmt.Fprintf(tw, "%d\t%d\t%s\n", s.Size, s.MaxSize, s.Version)
	return tw.Flush()
}

func formatValue(e values.Entry) string {
	switch e.Kind {
	case values.KindMap:
		return "{...}"
	case values.KindList:
		if list, ok := e.Value.([]any); ok {
			return "[" + strconv.Itoa(len(list)) + " items]"
		}
		return "[...]"
	case values.KindNull:
		return "null"
	case values.KindString:
		data, _ := json.Marshal(e.Value)
		return truncate(string(data))
	}
	return truncate(fmt.Sprint(e.Value))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return truncate(s)
}

func truncate(s string) string {
	if len(s) <= maxCellWidth {
		return s
	}
	return s[:maxCellWidth-3] + "..."
}
