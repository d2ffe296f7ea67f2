// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import "errors"

var (
	ErrPathNotFound    = errors.New("path not found in values")
	ErrSectionNotFound = errors.New("section not found in schema")
	ErrNoReleases      = errors.New("no release tags found")
	ErrInvalidSchema   = errors.New("invalid schema document")
)
