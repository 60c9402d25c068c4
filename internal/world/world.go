// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

// Package world contains the generated-world domain types and validation logic.
//
// Every entity is owned by exactly one World; removing the world removes all of
// its children. The generator constructs these records fully populated and
// hands them to the storage layer as plain data.
package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Complexity bounds for world generation.
const (
	MinComplexity = 1
	MaxComplexity = 5
)

// World is the root record of one generation run.
// It is created once per run and immutable thereafter.
type World struct {
	ID         ulid.ULID
	Name       string
	Author     string
	Seed       int64
	Complexity int
	CreatedAt  time.Time
}

// Validate checks the world's fields.
func (w *World) Validate() error {
	if w.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if err := ValidateName(w.Name); err != nil {
		return err
	}
	if w.Complexity < MinComplexity || w.Complexity > MaxComplexity {
		return ErrInvalidComplexity
	}
	return nil
}
