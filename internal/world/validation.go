// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Validation limits for domain types.
const (
	MaxNameLength = 100
	MaxTextLength = 4000
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks that a name is non-empty, valid UTF-8, free of control
// characters, and within the length limit.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if !utf8.ValidString(name) {
		return &ValidationError{Field: "name", Message: "must be valid UTF-8"}
	}
	if len(name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("exceeds maximum length of %d", MaxNameLength)}
	}
	if hasControlChars(name) {
		return &ValidationError{Field: "name", Message: "cannot contain control characters"}
	}
	return nil
}

// ValidateSecurityLevel checks that a security level is within [1,5].
func ValidateSecurityLevel(level int) error {
	if level < MinSecurityLevel || level > MaxSecurityLevel {
		return &ValidationError{Field: "security_level", Message: "must be between 1 and 5"}
	}
	return nil
}

// ClampSecurityLevel bounds a computed security level to [1,5]. Used wherever
// a biased offset could push a derived level out of range.
func ClampSecurityLevel(level int) int {
	if level < MinSecurityLevel {
		return MinSecurityLevel
	}
	if level > MaxSecurityLevel {
		return MaxSecurityLevel
	}
	return level
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
