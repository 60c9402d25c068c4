// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// memStore is an in-memory world.Store for generator tests. Slices preserve
// creation order, matching the ordering guarantees of the SQL repositories.
type memStore struct {
	worlds      []*world.World
	locations   []*world.Location
	connections []*world.Connection
	buildings   []*world.Building
	rooms       []*world.Room
	devices     []*world.Device
	networks    []*world.Network
	puzzles     []*world.HackingPuzzle
	characters  []*world.Character
	missions    []*world.Mission
	objectives  []*world.Objective
	stories     []*world.StoryElement
	items       []*world.Item
	shops       []*world.Shop
	inventory   []*world.ShopInventoryEntry
}

func newMemStore() (*memStore, world.Store) {
	m := &memStore{}
	return m, world.Store{
		Worlds:      (*memWorlds)(m),
		Locations:   (*memLocations)(m),
		Connections: (*memConnections)(m),
		Structures:  (*memStructures)(m),
		Population:  (*memPopulation)(m),
		Items:       (*memItems)(m),
		Shops:       (*memShops)(m),
	}
}

// memTransactor satisfies world.Transactor without transactional semantics.
type memTransactor struct{}

func (memTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memWorlds memStore

func (m *memWorlds) Get(_ context.Context, id ulid.ULID) (*world.World, error) {
	for _, w := range m.worlds {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, world.ErrNotFound
}

func (m *memWorlds) Create(_ context.Context, w *world.World) error {
	m.worlds = append(m.worlds, w)
	return nil
}

func (m *memWorlds) Delete(_ context.Context, id ulid.ULID) error {
	for i, w := range m.worlds {
		if w.ID == id {
			m.worlds = append(m.worlds[:i], m.worlds[i+1:]...)
			return nil
		}
	}
	return world.ErrNotFound
}

func (m *memWorlds) List(_ context.Context) ([]*world.World, error) {
	out := make([]*world.World, len(m.worlds))
	copy(out, m.worlds)
	return out, nil
}

type memLocations memStore

func (m *memLocations) Get(_ context.Context, id ulid.ULID) (*world.Location, error) {
	for _, loc := range m.locations {
		if loc.ID == id {
			return loc, nil
		}
	}
	return nil, world.ErrNotFound
}

func (m *memLocations) Create(_ context.Context, loc *world.Location) error {
	m.locations = append(m.locations, loc)
	return nil
}

func (m *memLocations) ListByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Location, error) {
	var out []*world.Location
	for _, loc := range m.locations {
		if loc.WorldID == worldID {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (m *memLocations) ListByKind(_ context.Context, worldID ulid.ULID, kind world.LocationKind) ([]*world.Location, error) {
	var out []*world.Location
	for _, loc := range m.locations {
		if loc.WorldID == worldID && loc.Kind == kind {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (m *memLocations) ListChildren(_ context.Context, parentID ulid.ULID) ([]*world.Location, error) {
	var out []*world.Location
	for _, loc := range m.locations {
		if loc.ParentID != nil && *loc.ParentID == parentID {
			out = append(out, loc)
		}
	}
	return out, nil
}

type memConnections memStore

func (m *memConnections) Create(_ context.Context, conn *world.Connection) error {
	m.connections = append(m.connections, conn)
	return nil
}

func (m *memConnections) ListByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Connection, error) {
	var out []*world.Connection
	for _, c := range m.connections {
		if c.WorldID == worldID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConnections) Exists(_ context.Context, sourceID, destinationID ulid.ULID) (bool, error) {
	for _, c := range m.connections {
		if (c.SourceID == sourceID && c.DestinationID == destinationID) ||
			(c.SourceID == destinationID && c.DestinationID == sourceID) {
			return true, nil
		}
	}
	return false, nil
}

type memStructures memStore

func (m *memStructures) CreateBuilding(_ context.Context, b *world.Building) error {
	m.buildings = append(m.buildings, b)
	return nil
}

func (m *memStructures) CreateRoom(_ context.Context, r *world.Room) error {
	m.rooms = append(m.rooms, r)
	return nil
}

func (m *memStructures) CreateDevice(_ context.Context, d *world.Device) error {
	m.devices = append(m.devices, d)
	return nil
}

func (m *memStructures) CreateNetwork(_ context.Context, n *world.Network) error {
	m.networks = append(m.networks, n)
	return nil
}

func (m *memStructures) CreatePuzzle(_ context.Context, p *world.HackingPuzzle) error {
	m.puzzles = append(m.puzzles, p)
	return nil
}

func (m *memStructures) ListBuildingsByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Building, error) {
	var out []*world.Building
	for _, b := range m.buildings {
		if b.WorldID == worldID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStructures) ListBuildingsByLocation(_ context.Context, locationID ulid.ULID) ([]*world.Building, error) {
	var out []*world.Building
	for _, b := range m.buildings {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStructures) GetBuilding(_ context.Context, id ulid.ULID) (*world.Building, error) {
	for _, b := range m.buildings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, world.ErrNotFound
}

type memPopulation memStore

func (m *memPopulation) CreateCharacter(_ context.Context, c *world.Character) error {
	m.characters = append(m.characters, c)
	return nil
}

func (m *memPopulation) CreateMission(_ context.Context, mi *world.Mission) error {
	m.missions = append(m.missions, mi)
	return nil
}

func (m *memPopulation) CreateObjective(_ context.Context, o *world.Objective) error {
	m.objectives = append(m.objectives, o)
	return nil
}

func (m *memPopulation) CreateStoryElement(_ context.Context, s *world.StoryElement) error {
	m.stories = append(m.stories, s)
	return nil
}

func (m *memPopulation) ListCharactersByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Character, error) {
	var out []*world.Character
	for _, c := range m.characters {
		if c.WorldID == worldID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memItems memStore

func (m *memItems) Create(_ context.Context, i *world.Item) error {
	m.items = append(m.items, i)
	return nil
}

func (m *memItems) Get(_ context.Context, id ulid.ULID) (*world.Item, error) {
	for _, i := range m.items {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, world.ErrNotFound
}

func (m *memItems) ListByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Item, error) {
	var out []*world.Item
	for _, i := range m.items {
		if i.WorldID == worldID {
			out = append(out, i)
		}
	}
	return out, nil
}

type memShops memStore

func (m *memShops) Create(_ context.Context, s *world.Shop) error {
	m.shops = append(m.shops, s)
	return nil
}

func (m *memShops) Get(_ context.Context, id ulid.ULID) (*world.Shop, error) {
	for _, s := range m.shops {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, world.ErrNotFound
}

func (m *memShops) ListByWorld(_ context.Context, worldID ulid.ULID) ([]*world.Shop, error) {
	var out []*world.Shop
	for _, s := range m.shops {
		if s.WorldID == worldID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memShops) CreateInventoryEntry(_ context.Context, e *world.ShopInventoryEntry) error {
	m.inventory = append(m.inventory, e)
	return nil
}

func (m *memShops) ListInventory(_ context.Context, shopID ulid.ULID) ([]*world.ShopInventoryEntry, error) {
	var out []*world.ShopInventoryEntry
	for _, e := range m.inventory {
		if e.ShopID == shopID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memShops) ClearInventory(_ context.Context, shopID ulid.ULID) error {
	kept := m.inventory[:0]
	for _, e := range m.inventory {
		if e.ShopID != shopID {
			kept = append(kept, e)
		}
	}
	m.inventory = kept
	return nil
}
