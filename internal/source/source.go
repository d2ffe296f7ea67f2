// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package source fetches values.yaml, its JSON Schema and the available refs from a remote repository.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the requested file does not exist at the ref.
	ErrNotFound = errors.New("file not found")
	// ErrTimeout is returned when a fetch exceeds its deadline.
	ErrTimeout = errors.New("fetch timed out")
	// ErrInvalidPath is returned for paths that could escape the repository root.
	ErrInvalidPath = errors.New("invalid path")
)

// Source is the remote content source. Implementations must be safe for concurrent use.
type Source interface {
	// GetFileContent returns the content of path at ref.
	GetFileContent(ctx context.Context, path, ref string) (string, error)
	// GetTags returns the repository tags, newest first. Listing failures yield an empty list.
	GetTags(ctx context.Context) []string
	// GetBranches returns the repository branches. Listing failures yield an empty list.
	GetBranches(ctx context.Context) []string
}

// FileInfo is a fetched file together with its content digest.
type FileInfo struct {
	Path    string `json:"path"`
	Ref     string `json:"ref"`
	Content string `json:"-"`
	Size    int    `json:"size"`
	// SHA256 is the hex digest of Content. Identical content under different refs shares it.
	SHA256 string `json:"sha256"`
}

// ValidatePath rejects empty paths, absolute paths and paths with ".." segments.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return fmt.Errorf("%w: %q must be relative to the repository root", ErrInvalidPath, path)
	}
	for _, segment := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return fmt.Errorf("%w: %q must not contain '..'", ErrInvalidPath, path)
		}
	}
	return nil
}

// ValidateRef rejects refs that cannot be used as a URL path component.
func ValidateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("%w: ref is empty", ErrInvalidPath)
	}
	if strings.Contains(ref, "..") || strings.ContainsAny(ref, " \\?#") {
		return fmt.Errorf("%w: ref %q", ErrInvalidPath, ref)
	}
	return nil
}
