// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// TransportType identifies the mode of travel along a connection.
type TransportType string

// Transport types, from short-range to long-range.
const (
	TransportLocalTransit TransportType = "local_transit"
	TransportRegionalRail TransportType = "regional_rail"
	TransportHighSpeed    TransportType = "high_speed"
	TransportSuborbital   TransportType = "suborbital"
	TransportVirtualLink  TransportType = "virtual_link"
)

// String returns the string representation of the transport type.
func (t TransportType) String() string {
	return string(t)
}

// Connection is a directed transport edge between two locations.
// Bidirectional links are stored as two symmetric rows.
type Connection struct {
	ID                    ulid.ULID
	WorldID               ulid.ULID
	SourceID              ulid.ULID
	DestinationID         ulid.ULID
	Transport             TransportType
	TravelTime            int // minutes
	TravelCost            int // credits
	RequiresHacking       bool
	RequiresSpecialAccess bool
	CreatedAt             time.Time
}

// Validate checks the connection's fields.
// Returns ErrSelfReferentialEdge if source and destination are the same.
func (c *Connection) Validate() error {
	if c.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if c.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if c.SourceID.IsZero() || c.DestinationID.IsZero() {
		return &ValidationError{Field: "endpoints", Message: "cannot be zero"}
	}
	if c.SourceID == c.DestinationID {
		return ErrSelfReferentialEdge
	}
	if c.TravelTime < 0 || c.TravelCost < 0 {
		return &ValidationError{Field: "travel", Message: "time and cost cannot be negative"}
	}
	return nil
}
