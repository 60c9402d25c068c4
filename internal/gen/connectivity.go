// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// Shortcut edge cap per woven group.
const maxShortcutEdges = 5

// distanceBand maps a Euclidean distance range to a transport type with
// band-specific cost and time ranges.
type distanceBand struct {
	MaxDistance float64
	Transport   world.TransportType
	TimeMin     int // minutes
	TimeMax     int
	CostMin     int // credits
	CostMax     int
}

var distanceBands = []distanceBand{
	{MaxDistance: 60, Transport: world.TransportLocalTransit, TimeMin: 5, TimeMax: 40, CostMin: 2, CostMax: 15},
	{MaxDistance: 300, Transport: world.TransportRegionalRail, TimeMin: 30, TimeMax: 180, CostMin: 15, CostMax: 80},
	{MaxDistance: 700, Transport: world.TransportHighSpeed, TimeMin: 60, TimeMax: 300, CostMin: 80, CostMax: 400},
	{MaxDistance: math.Inf(1), Transport: world.TransportSuborbital, TimeMin: 45, TimeMax: 120, CostMin: 400, CostMax: 2000},
}

// weaveConnections builds the transport graph. Cities are woven into one
// connected component; each city's districts are woven likewise and tied to
// their city with short local-transit links; special locations hang off
// random cities. The city list is read back from storage rather than taken
// from the previous phase, since this is the first phase that consumes rows
// another phase wrote.
func (g *Generator) weaveConnections(ctx context.Context, r *Run, w *world.World) error {
	cities, err := g.store.Locations.ListByKind(ctx, w.ID, world.LocationKindCity)
	if err != nil {
		return err
	}

	if err := g.weaveGroup(ctx, r, w, cities); err != nil {
		return err
	}

	for _, city := range cities {
		districts, err := g.store.Locations.ListChildren(ctx, city.ID)
		if err != nil {
			return err
		}
		if err := g.weaveGroup(ctx, r, w, districts); err != nil {
			return err
		}
		// City <-> district links are always short, cheap local transit,
		// outside the spanning-tree algorithm.
		for _, district := range districts {
			if err := g.createParentLink(ctx, r, w, city, district); err != nil {
				return err
			}
		}
	}

	specials, err := g.store.Locations.ListByKind(ctx, w.ID, world.LocationKindSpecial)
	if err != nil {
		return err
	}
	for _, special := range specials {
		if err := g.linkSpecial(ctx, r, w, special, cities); err != nil {
			return err
		}
	}
	return nil
}

// weaveGroup guarantees every node in the group is reachable from every other:
// a random spanning tree first, then a few redundant shortcut edges for
// alternate routes.
func (g *Generator) weaveGroup(ctx context.Context, r *Run, w *world.World, nodes []*world.Location) error {
	if len(nodes) < 2 {
		return nil
	}

	unconnected := make([]*world.Location, len(nodes))
	copy(unconnected, nodes)
	Shuffle(r, unconnected)

	connected := []*world.Location{unconnected[0]}
	unconnected = unconnected[1:]

	for len(unconnected) > 0 {
		from := Pick(r, connected)
		idx := r.IntN(len(unconnected))
		to := unconnected[idx]
		unconnected = append(unconnected[:idx], unconnected[idx+1:]...)

		if err := g.createBidirectionalEdge(ctx, r, w, from, to); err != nil {
			return err
		}
		connected = append(connected, to)
	}

	shortcuts := len(nodes) / 2
	if shortcuts > maxShortcutEdges {
		shortcuts = maxShortcutEdges
	}
	for i := 0; i < shortcuts; i++ {
		a := Pick(r, connected)
		b := Pick(r, connected)
		if a.ID == b.ID {
			continue
		}
		exists, err := g.store.Connections.Exists(ctx, a.ID, b.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := g.createBidirectionalEdge(ctx, r, w, a, b); err != nil {
			return err
		}
	}
	return nil
}

// createBidirectionalEdge derives transport, time, and cost from the distance
// band between the endpoints and writes the two symmetric rows. Edges touching
// a virtual location always travel over a virtual link; reaching one has a
// chance of requiring hacking.
func (g *Generator) createBidirectionalEdge(ctx context.Context, r *Run, w *world.World, a, b *world.Location) error {
	band := bandFor(distance(a, b))
	transport := band.Transport
	travelTime := r.IntBetween(band.TimeMin, band.TimeMax)
	travelCost := r.IntBetween(band.CostMin, band.CostMax)

	requiresHacking := false
	requiresSpecial := false
	if a.IsVirtual || b.IsVirtual {
		transport = world.TransportVirtualLink
		travelTime = r.IntBetween(1, 5)
		travelCost = 0
		requiresHacking = r.Chance(0.5)
	}
	if hasTag(a, "restricted") || hasTag(b, "restricted") {
		requiresSpecial = true
	}

	return g.insertEdgePair(ctx, r, w, a.ID, b.ID, transport, travelTime, travelCost, requiresHacking, requiresSpecial)
}

// createParentLink ties a district to its city.
func (g *Generator) createParentLink(ctx context.Context, r *Run, w *world.World, city, district *world.Location) error {
	return g.insertEdgePair(ctx, r, w, city.ID, district.ID,
		world.TransportLocalTransit, r.IntBetween(5, 20), r.IntBetween(1, 5), false, false)
}

// linkSpecial attaches a special location to one or two cities. A special
// location with no reachable city would be an orphan, so at least one link is
// always created when any city exists.
func (g *Generator) linkSpecial(ctx context.Context, r *Run, w *world.World, special *world.Location, cities []*world.Location) error {
	if len(cities) == 0 {
		return nil
	}
	links := r.IntBetween(1, 2)
	if links > len(cities) {
		links = len(cities)
	}
	pool := make([]*world.Location, len(cities))
	copy(pool, cities)
	Shuffle(r, pool)
	for _, city := range pool[:links] {
		if err := g.createBidirectionalEdge(ctx, r, w, special, city); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) insertEdgePair(ctx context.Context, r *Run, w *world.World, a, b ulid.ULID,
	transport world.TransportType, travelTime, travelCost int, hacking, special bool) error {
	for _, pair := range [][2]ulid.ULID{{a, b}, {b, a}} {
		conn := &world.Connection{
			ID:                    r.NewID(),
			WorldID:               w.ID,
			SourceID:              pair[0],
			DestinationID:         pair[1],
			Transport:             transport,
			TravelTime:            travelTime,
			TravelCost:            travelCost,
			RequiresHacking:       hacking,
			RequiresSpecialAccess: special,
			CreatedAt:             r.Now(),
		}
		if err := conn.Validate(); err != nil {
			return err
		}
		if err := g.store.Connections.Create(ctx, conn); err != nil {
			return err
		}
		g.metrics.EntityGenerated("connection")
	}
	return nil
}

func distance(a, b *world.Location) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func bandFor(dist float64) distanceBand {
	for _, band := range distanceBands {
		if dist <= band.MaxDistance {
			return band
		}
	}
	return distanceBands[len(distanceBands)-1]
}

func hasTag(loc *world.Location, tag string) bool {
	for _, t := range loc.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
