// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// LocationKind identifies the kind of location.
type LocationKind string

// Location kinds.
const (
	LocationKindCity     LocationKind = "city"
	LocationKindDistrict LocationKind = "district"
	LocationKindSpecial  LocationKind = "special"
)

// String returns the string representation of the location kind.
func (k LocationKind) String() string {
	return string(k)
}

// ErrInvalidLocationKind indicates an unrecognized location kind.
var ErrInvalidLocationKind = &ValidationError{Field: "kind", Message: "must be city, district, or special"}

// Validate checks that the kind is a recognized value.
func (k LocationKind) Validate() error {
	switch k {
	case LocationKindCity, LocationKindDistrict, LocationKindSpecial:
		return nil
	default:
		return ErrInvalidLocationKind
	}
}

// Security level bounds shared by locations, buildings, networks, and devices.
const (
	MinSecurityLevel = 1
	MaxSecurityLevel = 5
)

// Location represents a city, a district within a city, or a special
// location such as an orbital station or darknet hub.
type Location struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	ParentID      *ulid.ULID // Districts point to their city; cities have none.
	Kind          LocationKind
	Archetype     string // District or special-location archetype, empty for cities.
	Name          string
	X             float64
	Y             float64
	SecurityLevel int
	Population    int
	Services      []string
	Tags          []string
	IsVirtual     bool
	IsSpecial     bool
	IsDangerous   bool
	CreatedAt     time.Time
}

// Validate checks the location's fields.
// A district must have a parent; a city must not.
func (l *Location) Validate() error {
	if l.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if l.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if err := l.Kind.Validate(); err != nil {
		return err
	}
	if err := ValidateName(l.Name); err != nil {
		return err
	}
	if err := ValidateSecurityLevel(l.SecurityLevel); err != nil {
		return err
	}
	if l.Kind == LocationKindDistrict && l.ParentID == nil {
		return ErrDistrictWithoutParent
	}
	if l.Kind == LocationKindCity && l.ParentID != nil {
		return &ValidationError{Field: "parent_location_id", Message: "cities cannot have a parent"}
	}
	if l.Population < 0 {
		return &ValidationError{Field: "population", Message: "cannot be negative"}
	}
	return nil
}

// HasService reports whether the location offers the named service.
func (l *Location) HasService(name string) bool {
	for _, s := range l.Services {
		if s == name {
			return true
		}
	}
	return false
}
