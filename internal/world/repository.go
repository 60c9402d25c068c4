// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// WorldRepository manages world persistence.
type WorldRepository interface {
	// Get retrieves a world by ID.
	Get(ctx context.Context, id ulid.ULID) (*World, error)

	// Create persists a new world record.
	Create(ctx context.Context, w *World) error

	// Delete removes a world and, through cascade, every entity it owns.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns all worlds, newest first.
	List(ctx context.Context) ([]*World, error)
}

// LocationRepository manages location persistence.
type LocationRepository interface {
	// Get retrieves a location by ID.
	Get(ctx context.Context, id ulid.ULID) (*Location, error)

	// Create persists a new location.
	Create(ctx context.Context, loc *Location) error

	// ListByWorld returns all locations of a world in creation order.
	ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*Location, error)

	// ListByKind returns a world's locations of the given kind in creation order.
	ListByKind(ctx context.Context, worldID ulid.ULID, kind LocationKind) ([]*Location, error)

	// ListChildren returns the districts of a city in creation order.
	ListChildren(ctx context.Context, parentID ulid.ULID) ([]*Location, error)
}

// ConnectionRepository manages transport-edge persistence.
type ConnectionRepository interface {
	// Create persists a new connection.
	Create(ctx context.Context, conn *Connection) error

	// ListByWorld returns all connections of a world.
	ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*Connection, error)

	// Exists reports whether an edge between the two locations exists in
	// either direction.
	Exists(ctx context.Context, sourceID, destinationID ulid.ULID) (bool, error)
}

// StructureRepository manages buildings, rooms, devices, networks, and puzzles.
type StructureRepository interface {
	// CreateBuilding persists a new building.
	CreateBuilding(ctx context.Context, b *Building) error

	// CreateRoom persists a new room.
	CreateRoom(ctx context.Context, r *Room) error

	// CreateDevice persists a new device.
	CreateDevice(ctx context.Context, d *Device) error

	// CreateNetwork persists a new network.
	CreateNetwork(ctx context.Context, n *Network) error

	// CreatePuzzle persists a new hacking puzzle.
	CreatePuzzle(ctx context.Context, p *HackingPuzzle) error

	// ListBuildingsByWorld returns all buildings of a world in creation order.
	ListBuildingsByWorld(ctx context.Context, worldID ulid.ULID) ([]*Building, error)

	// ListBuildingsByLocation returns a location's buildings in creation order.
	ListBuildingsByLocation(ctx context.Context, locationID ulid.ULID) ([]*Building, error)

	// GetBuilding retrieves a building by ID.
	GetBuilding(ctx context.Context, id ulid.ULID) (*Building, error)
}

// PopulationRepository manages characters, missions, objectives, and story elements.
type PopulationRepository interface {
	// CreateCharacter persists a new character.
	CreateCharacter(ctx context.Context, c *Character) error

	// CreateMission persists a new mission.
	CreateMission(ctx context.Context, m *Mission) error

	// CreateObjective persists a new mission objective.
	CreateObjective(ctx context.Context, o *Objective) error

	// CreateStoryElement persists a new story element.
	CreateStoryElement(ctx context.Context, s *StoryElement) error

	// ListCharactersByWorld returns a world's characters in creation order.
	ListCharactersByWorld(ctx context.Context, worldID ulid.ULID) ([]*Character, error)
}

// ItemRepository manages item persistence.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, i *Item) error

	// Get retrieves an item by ID.
	Get(ctx context.Context, id ulid.ULID) (*Item, error)

	// ListByWorld returns a world's items in creation order.
	ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*Item, error)
}

// ShopRepository manages shops and their inventories.
type ShopRepository interface {
	// Create persists a new shop.
	Create(ctx context.Context, s *Shop) error

	// Get retrieves a shop by ID.
	Get(ctx context.Context, id ulid.ULID) (*Shop, error)

	// ListByWorld returns a world's shops in creation order.
	ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*Shop, error)

	// CreateInventoryEntry persists a new inventory entry.
	CreateInventoryEntry(ctx context.Context, e *ShopInventoryEntry) error

	// ListInventory returns a shop's inventory entries in creation order.
	ListInventory(ctx context.Context, shopID ulid.ULID) ([]*ShopInventoryEntry, error)

	// ClearInventory removes all inventory entries of a shop. Used by restock
	// before regenerating.
	ClearInventory(ctx context.Context, shopID ulid.ULID) error
}

// Transactor runs a function within a storage transaction.
type Transactor interface {
	// InTransaction begins a transaction, stores it in context, and calls fn.
	// If fn returns nil the transaction commits, otherwise it rolls back.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every repository a generation run writes through.
type Store struct {
	Worlds      WorldRepository
	Locations   LocationRepository
	Connections ConnectionRepository
	Structures  StructureRepository
	Population  PopulationRepository
	Items       ItemRepository
	Shops       ShopRepository
}
