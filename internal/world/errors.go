// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import "errors"

// Sentinel errors for the world domain. Callers match these with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same key already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidComplexity indicates a complexity outside [MinComplexity, MaxComplexity].
	ErrInvalidComplexity = errors.New("complexity must be between 1 and 5")

	// ErrSelfReferentialEdge indicates a connection whose source and
	// destination are the same location.
	ErrSelfReferentialEdge = errors.New("connection cannot link a location to itself")

	// ErrDistrictWithoutParent indicates a district with no parent city.
	ErrDistrictWithoutParent = errors.New("district must have a parent city")
)
