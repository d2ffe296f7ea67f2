// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// LatestVersion returns the greatest stable semver tag. Pre-releases are considered only
// when no stable tag exists. It returns "" when no tag parses as a version.
func LatestVersion(tags []string) string {
	var latest, latestPre *semver.Version
	var latestTag, latestPreTag string
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			if latestPre == nil || v.GreaterThan(latestPre) {
				latestPre, latestPreTag = v, tag
			}
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest, latestTag = v, tag
		}
	}
	if latest != nil {
		return latestTag
	}
	return latestPreTag
}

// SortTags orders tags newest first. Tags that are not versions follow, sorted lexically.
func SortTags(tags []string) []string {
	out := append([]string(nil), tags...)
	parsed := make(map[string]*semver.Version, len(out))
	for _, tag := range out {
		if v, err := semver.NewVersion(tag); err == nil {
			parsed[tag] = v
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, iok := parsed[out[i]]
		vj, jok := parsed[out[j]]
		switch {
		case iok && jok:
			if vi.Equal(vj) {
				return out[i] < out[j]
			}
			return vi.GreaterThan(vj)
		case iok != jok:
			return iok
		}
		return out[i] < out[j]
	})
	return out
}
