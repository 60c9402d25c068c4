// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

//go:build integration

package generation_test

import (
	"context"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/shadowgrid/shadowgrid/internal/gen"
	"github.com/shadowgrid/shadowgrid/internal/world"
)

var _ = Describe("GenerateWorld", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		cleanupWorlds(ctx, env.pool)
	})

	generate := func(seed int64, complexity int) ulid.ULID {
		id, err := env.Generator.GenerateWorld(ctx, gen.GenerateRequest{
			Name:       "Neo Kowloon",
			Author:     "integration",
			Complexity: complexity,
			Seed:       &seed,
		})
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	It("persists the world row with the requested parameters", func() {
		id := generate(42, 1)

		w, err := env.Store.Worlds.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Name).To(Equal("Neo Kowloon"))
		Expect(w.Author).To(Equal("integration"))
		Expect(w.Seed).To(Equal(int64(42)))
		Expect(w.Complexity).To(Equal(1))
	})

	It("creates cities and parented districts", func() {
		id := generate(42, 1)

		cities, err := env.Store.Locations.ListByKind(ctx, id, world.LocationKindCity)
		Expect(err).NotTo(HaveOccurred())
		Expect(cities).To(HaveLen(gen.NumCities(1)))

		for _, city := range cities {
			Expect(city.ParentID).To(BeNil())

			districts, err := env.Store.Locations.ListChildren(ctx, city.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(districts).NotTo(BeEmpty())
			for _, d := range districts {
				Expect(d.Kind).To(Equal(world.LocationKindDistrict))
				Expect(*d.ParentID).To(Equal(city.ID))
				Expect(d.Archetype).NotTo(BeEmpty())
			}
		}
	})

	It("leaves every location reachable over the connection graph", func() {
		id := generate(7, 2)

		locations, err := env.Store.Locations.ListByWorld(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(locations).NotTo(BeEmpty())

		conns, err := env.Store.Connections.ListByWorld(ctx, id)
		Expect(err).NotTo(HaveOccurred())

		adjacency := make(map[ulid.ULID][]ulid.ULID)
		for _, c := range conns {
			adjacency[c.SourceID] = append(adjacency[c.SourceID], c.DestinationID)
		}

		visited := map[ulid.ULID]bool{locations[0].ID: true}
		queue := []ulid.ULID{locations[0].ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adjacency[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		for _, loc := range locations {
			Expect(visited[loc.ID]).To(BeTrue(), "location %s (%s) unreachable", loc.Name, loc.ID)
		}
	})

	It("stores every connection as a symmetric pair", func() {
		id := generate(7, 1)

		conns, err := env.Store.Connections.ListByWorld(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(conns).NotTo(BeEmpty())

		type edge struct{ from, to ulid.ULID }
		seen := make(map[edge]bool, len(conns))
		for _, c := range conns {
			seen[edge{c.SourceID, c.DestinationID}] = true
		}
		for _, c := range conns {
			Expect(seen[edge{c.DestinationID, c.SourceID}]).To(BeTrue(),
				"edge %s -> %s has no reverse", c.SourceID, c.DestinationID)
		}
	})

	It("expands districts into buildings", func() {
		id := generate(13, 1)

		buildings, err := env.Store.Structures.ListBuildingsByWorld(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(buildings).NotTo(BeEmpty())

		for _, b := range buildings {
			Expect(b.Floors).To(BeNumerically(">=", 1))
			Expect(b.SecurityLevel).To(And(BeNumerically(">=", 1), BeNumerically("<=", 5)))
		}
	})

	It("stocks shops with items from the same world", func() {
		id := generate(99, 2)

		shops, err := env.Store.Shops.ListByWorld(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(shops).NotTo(BeEmpty())

		stocked := 0
		for _, s := range shops {
			entries, err := env.Store.Shops.ListInventory(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			stocked += len(entries)
			for _, e := range entries {
				item, err := env.Store.Items.Get(ctx, e.ItemID)
				Expect(err).NotTo(HaveOccurred())
				Expect(item.WorldID).To(Equal(id))
				Expect(item.Family).To(Equal(e.ItemFamily))
				Expect(e.Quantity).To(BeNumerically(">=", 1))
			}
		}
		Expect(stocked).To(BeNumerically(">", 0))
	})

	It("rejects an out-of-range complexity without writing anything", func() {
		seed := int64(1)
		_, err := env.Generator.GenerateWorld(ctx, gen.GenerateRequest{
			Name:       "Bad World",
			Complexity: world.MaxComplexity + 1,
			Seed:       &seed,
		})
		Expect(err).To(MatchError(world.ErrInvalidComplexity))
		Expect(countRows(ctx, env.pool, "worlds")).To(BeZero())
	})

	It("rolls back all rows when a run fails mid-transaction", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		seed := int64(5)
		_, err := env.Generator.GenerateWorld(cancelled, gen.GenerateRequest{
			Name:       "Cancelled",
			Complexity: 1,
			Seed:       &seed,
		})
		Expect(err).To(HaveOccurred())
		Expect(countRows(ctx, env.pool, "worlds")).To(BeZero())
		Expect(countRows(ctx, env.pool, "locations")).To(BeZero())
	})
})

var _ = Describe("RestockShop", func() {
	var (
		ctx     context.Context
		worldID ulid.ULID
		shopID  ulid.ULID
	)

	BeforeEach(func() {
		ctx = context.Background()
		cleanupWorlds(ctx, env.pool)

		seed := int64(99)
		var err error
		worldID, err = env.Generator.GenerateWorld(ctx, gen.GenerateRequest{
			Name:       "Restock World",
			Complexity: 2,
			Seed:       &seed,
		})
		Expect(err).NotTo(HaveOccurred())

		shops, err := env.Store.Shops.ListByWorld(ctx, worldID)
		Expect(err).NotTo(HaveOccurred())
		Expect(shops).NotTo(BeEmpty())
		shopID = shops[0].ID
	})

	It("replaces the shop's inventory", func() {
		before, err := env.Store.Shops.ListInventory(ctx, shopID)
		Expect(err).NotTo(HaveOccurred())

		seed := int64(123)
		Expect(env.Generator.RestockShop(ctx, worldID, shopID, &seed)).To(Succeed())

		after, err := env.Store.Shops.ListInventory(ctx, shopID)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).NotTo(BeEmpty())

		beforeIDs := make(map[ulid.ULID]bool, len(before))
		for _, e := range before {
			beforeIDs[e.ID] = true
		}
		for _, e := range after {
			Expect(beforeIDs[e.ID]).To(BeFalse(), "entry %s survived the restock", e.ID)
		}
	})

	It("refuses a shop that belongs to another world", func() {
		otherSeed := int64(7)
		otherID, err := env.Generator.GenerateWorld(ctx, gen.GenerateRequest{
			Name:       "Other World",
			Complexity: 1,
			Seed:       &otherSeed,
		})
		Expect(err).NotTo(HaveOccurred())

		err = env.Generator.RestockShop(ctx, otherID, shopID, nil)
		Expect(err).To(MatchError(world.ErrNotFound))
	})
})

var _ = Describe("DeleteWorld", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		cleanupWorlds(ctx, env.pool)
	})

	It("cascades the delete to every owned row", func() {
		seed := int64(21)
		id, err := env.Generator.GenerateWorld(ctx, gen.GenerateRequest{
			Name:       "Doomed World",
			Complexity: 1,
			Seed:       &seed,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(env.Generator.DeleteWorld(ctx, id)).To(Succeed())

		for _, table := range []string{
			"worlds", "locations", "connections", "buildings", "rooms",
			"characters", "devices", "networks", "hacking_puzzles",
			"missions", "objectives", "story_elements", "items",
			"shops", "shop_inventory",
		} {
			Expect(countRows(ctx, env.pool, table)).To(BeZero(), "table %s not empty", table)
		}
	})

	It("returns ErrNotFound for an unknown world", func() {
		err := env.Generator.DeleteWorld(ctx, ulid.Make())
		Expect(err).To(MatchError(world.ErrNotFound))
	})
})
