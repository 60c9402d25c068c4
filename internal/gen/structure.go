// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// buildingSpec drives how one building type expands into floors, rooms,
// networks, and devices.
type buildingSpec struct {
	FloorsMin      int
	FloorsMax      int
	SecurityOffset int // added to the district's security level, then clamped
	SpecialProb    float64
	HackEntryProb  float64
	CorpOwned      bool // named after and owned by a corporation
	RoomTypes      []world.RoomType
	NetworksMin    int
	NetworksMax    int
	NetworkTypes   []weighted[world.NetworkType]
	DevicesMin     int
	DevicesMax     int
	DeviceTypes    []weighted[world.DeviceType]
}

// weighted pairs a value with its sampling weight. Tables are slices, never
// maps, so draws consume the stream in a fixed order.
type weighted[T any] struct {
	Value  T
	Weight float64
}

func pickWeighted[T any](r *Run, table []weighted[T]) T {
	total := 0.0
	for _, w := range table {
		total += w.Weight
	}
	draw := r.Float64() * total
	for _, w := range table {
		draw -= w.Weight
		if draw < 0 {
			return w.Value
		}
	}
	return table[len(table)-1].Value
}

var (
	officeRooms = []world.RoomType{
		world.RoomLobby, world.RoomOffice, world.RoomMeetingRoom,
		world.RoomExecutiveSuite, world.RoomServerRoom, world.RoomSecurityPost,
		world.RoomUtility, world.RoomLounge,
	}
	industrialRooms = []world.RoomType{
		world.RoomWorkshop, world.RoomStorage, world.RoomUtility,
		world.RoomOffice, world.RoomSecurityPost,
	}
	residentialRooms = []world.RoomType{
		world.RoomLobby, world.RoomLiving, world.RoomStorage,
		world.RoomUtility, world.RoomLounge,
	}
	commercialRooms = []world.RoomType{
		world.RoomLobby, world.RoomStorage, world.RoomOffice,
		world.RoomLounge, world.RoomUtility, world.RoomSecurityPost,
	}

	corpNetworks = []weighted[world.NetworkType]{
		{world.NetworkCorporate, 0.7},
		{world.NetworkSecurity, 0.2},
		{world.NetworkPublic, 0.1},
	}
	publicNetworks = []weighted[world.NetworkType]{
		{world.NetworkPublic, 0.7},
		{world.NetworkCorporate, 0.2},
		{world.NetworkDarknet, 0.1},
	}
	industrialNetworks = []weighted[world.NetworkType]{
		{world.NetworkIndustrial, 0.6},
		{world.NetworkCorporate, 0.2},
		{world.NetworkSecurity, 0.2},
	}
	shadyNetworks = []weighted[world.NetworkType]{
		{world.NetworkDarknet, 0.5},
		{world.NetworkPublic, 0.5},
	}

	officeDevices = []weighted[world.DeviceType]{
		{world.DeviceTerminal, 0.45},
		{world.DeviceServer, 0.2},
		{world.DeviceSecurityCam, 0.2},
		{world.DeviceDoorLock, 0.15},
	}
	serverDevices = []weighted[world.DeviceType]{
		{world.DeviceServer, 0.6},
		{world.DeviceSecurityCam, 0.2},
		{world.DeviceDoorLock, 0.1},
		{world.DeviceDrone, 0.1},
	}
	streetDevices = []weighted[world.DeviceType]{
		{world.DeviceTerminal, 0.4},
		{world.DeviceATM, 0.25},
		{world.DeviceSecurityCam, 0.25},
		{world.DeviceDoorLock, 0.1},
	}
)

// buildingSpecs maps every building type to its expansion parameters.
var buildingSpecs = map[world.BuildingType]buildingSpec{
	world.BuildingCorporateHQ: {
		FloorsMin: 20, FloorsMax: 80, SecurityOffset: +2, SpecialProb: 0.8, HackEntryProb: 0.3,
		CorpOwned: true, RoomTypes: officeRooms,
		NetworksMin: 3, NetworksMax: 6, NetworkTypes: corpNetworks,
		DevicesMin: 6, DevicesMax: 14, DeviceTypes: officeDevices,
	},
	world.BuildingOfficeTower: {
		FloorsMin: 8, FloorsMax: 40, SecurityOffset: +1, SpecialProb: 0.2, HackEntryProb: 0.2,
		CorpOwned: true, RoomTypes: officeRooms,
		NetworksMin: 1, NetworksMax: 3, NetworkTypes: corpNetworks,
		DevicesMin: 3, DevicesMax: 8, DeviceTypes: officeDevices,
	},
	world.BuildingDataCenter: {
		FloorsMin: 2, FloorsMax: 6, SecurityOffset: +2, SpecialProb: 0.7, HackEntryProb: 0.5,
		CorpOwned: true,
		RoomTypes: []world.RoomType{world.RoomServerRoom, world.RoomSecurityPost, world.RoomUtility, world.RoomOffice},
		NetworksMin: 3, NetworksMax: 6, NetworkTypes: corpNetworks,
		DevicesMin: 8, DevicesMax: 18, DeviceTypes: serverDevices,
	},
	world.BuildingResearchLab: {
		FloorsMin: 3, FloorsMax: 12, SecurityOffset: +2, SpecialProb: 0.7, HackEntryProb: 0.4,
		CorpOwned: true,
		RoomTypes: []world.RoomType{world.RoomLaboratory, world.RoomServerRoom, world.RoomOffice, world.RoomStorage, world.RoomSecurityPost},
		NetworksMin: 2, NetworksMax: 4, NetworkTypes: corpNetworks,
		DevicesMin: 4, DevicesMax: 10, DeviceTypes: serverDevices,
	},
	world.BuildingFactory: {
		FloorsMin: 1, FloorsMax: 4, SecurityOffset: 0, SpecialProb: 0.1, HackEntryProb: 0.1,
		CorpOwned: true, RoomTypes: industrialRooms,
		NetworksMin: 1, NetworksMax: 3, NetworkTypes: industrialNetworks,
		DevicesMin: 3, DevicesMax: 8, DeviceTypes: officeDevices,
	},
	world.BuildingWarehouse: {
		FloorsMin: 1, FloorsMax: 3, SecurityOffset: -1, SpecialProb: 0.1, HackEntryProb: 0.1,
		RoomTypes:   industrialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: industrialNetworks,
		DevicesMin: 1, DevicesMax: 4, DeviceTypes: streetDevices,
	},
	world.BuildingApartment: {
		FloorsMin: 4, FloorsMax: 20, SecurityOffset: 0, SpecialProb: 0.0, HackEntryProb: 0.05,
		RoomTypes:   residentialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: publicNetworks,
		DevicesMin: 1, DevicesMax: 4, DeviceTypes: streetDevices,
	},
	world.BuildingLuxuryTower: {
		FloorsMin: 10, FloorsMax: 60, SecurityOffset: +1, SpecialProb: 0.4, HackEntryProb: 0.1,
		RoomTypes:   residentialRooms,
		NetworksMin: 1, NetworksMax: 3, NetworkTypes: corpNetworks,
		DevicesMin: 2, DevicesMax: 6, DeviceTypes: officeDevices,
	},
	world.BuildingTenement: {
		FloorsMin: 3, FloorsMax: 10, SecurityOffset: -1, SpecialProb: 0.0, HackEntryProb: 0.05,
		RoomTypes:   residentialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: shadyNetworks,
		DevicesMin: 1, DevicesMax: 3, DeviceTypes: streetDevices,
	},
	world.BuildingMarketHall: {
		FloorsMin: 1, FloorsMax: 3, SecurityOffset: 0, SpecialProb: 0.0, HackEntryProb: 0.05,
		RoomTypes:   commercialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: publicNetworks,
		DevicesMin: 2, DevicesMax: 6, DeviceTypes: streetDevices,
	},
	world.BuildingMall: {
		FloorsMin: 2, FloorsMax: 6, SecurityOffset: 0, SpecialProb: 0.0, HackEntryProb: 0.05,
		RoomTypes:   commercialRooms,
		NetworksMin: 1, NetworksMax: 3, NetworkTypes: publicNetworks,
		DevicesMin: 3, DevicesMax: 8, DeviceTypes: streetDevices,
	},
	world.BuildingNightclub: {
		FloorsMin: 1, FloorsMax: 3, SecurityOffset: -1, SpecialProb: 0.1, HackEntryProb: 0.1,
		RoomTypes:   commercialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: shadyNetworks,
		DevicesMin: 1, DevicesMax: 4, DeviceTypes: streetDevices,
	},
	world.BuildingClinic: {
		FloorsMin: 2, FloorsMax: 8, SecurityOffset: +1, SpecialProb: 0.2, HackEntryProb: 0.1,
		RoomTypes: []world.RoomType{world.RoomLobby, world.RoomOffice, world.RoomLaboratory, world.RoomStorage, world.RoomUtility},
		NetworksMin: 1, NetworksMax: 3, NetworkTypes: corpNetworks,
		DevicesMin: 2, DevicesMax: 6, DeviceTypes: officeDevices,
	},
	world.BuildingPoliceHub: {
		FloorsMin: 2, FloorsMax: 10, SecurityOffset: +2, SpecialProb: 0.9, HackEntryProb: 0.3,
		RoomTypes: []world.RoomType{world.RoomLobby, world.RoomOffice, world.RoomSecurityPost, world.RoomServerRoom, world.RoomVault},
		NetworksMin: 2, NetworksMax: 4,
		NetworkTypes: []weighted[world.NetworkType]{{world.NetworkSecurity, 0.8}, {world.NetworkCorporate, 0.2}},
		DevicesMin: 4, DevicesMax: 10, DeviceTypes: serverDevices,
	},
	world.BuildingTransitHub: {
		FloorsMin: 1, FloorsMax: 4, SecurityOffset: 0, SpecialProb: 0.0, HackEntryProb: 0.05,
		RoomTypes:   commercialRooms,
		NetworksMin: 1, NetworksMax: 2, NetworkTypes: publicNetworks,
		DevicesMin: 2, DevicesMax: 6, DeviceTypes: streetDevices,
	},
	world.BuildingAbandonedLot: {
		FloorsMin: 1, FloorsMax: 2, SecurityOffset: -2, SpecialProb: 0.0, HackEntryProb: 0.2,
		RoomTypes: []world.RoomType{world.RoomStorage, world.RoomUtility, world.RoomWorkshop},
		NetworksMin: 0, NetworksMax: 1, NetworkTypes: shadyNetworks,
		DevicesMin: 0, DevicesMax: 2, DeviceTypes: streetDevices,
	},
}

// archetypeBuildings weights building types by district archetype, so financial
// districts fill with towers and slums with tenements.
var archetypeBuildings = map[string][]weighted[world.BuildingType]{
	"financial": {
		{world.BuildingCorporateHQ, 0.2}, {world.BuildingOfficeTower, 0.5},
		{world.BuildingDataCenter, 0.15}, {world.BuildingLuxuryTower, 0.15},
	},
	"corporate": {
		{world.BuildingCorporateHQ, 0.25}, {world.BuildingOfficeTower, 0.4},
		{world.BuildingDataCenter, 0.15}, {world.BuildingResearchLab, 0.2},
	},
	"government": {
		{world.BuildingOfficeTower, 0.4}, {world.BuildingPoliceHub, 0.3},
		{world.BuildingDataCenter, 0.15}, {world.BuildingTransitHub, 0.15},
	},
	"residential": {
		{world.BuildingApartment, 0.5}, {world.BuildingTenement, 0.2},
		{world.BuildingClinic, 0.15}, {world.BuildingMarketHall, 0.15},
	},
	"entertainment": {
		{world.BuildingNightclub, 0.4}, {world.BuildingMall, 0.3},
		{world.BuildingMarketHall, 0.2}, {world.BuildingApartment, 0.1},
	},
	"market": {
		{world.BuildingMarketHall, 0.4}, {world.BuildingMall, 0.25},
		{world.BuildingWarehouse, 0.2}, {world.BuildingApartment, 0.15},
	},
	"industrial": {
		{world.BuildingFactory, 0.45}, {world.BuildingWarehouse, 0.35},
		{world.BuildingTenement, 0.1}, {world.BuildingOfficeTower, 0.1},
	},
	"harbor": {
		{world.BuildingWarehouse, 0.45}, {world.BuildingTransitHub, 0.25},
		{world.BuildingFactory, 0.15}, {world.BuildingNightclub, 0.15},
	},
	"slums": {
		{world.BuildingTenement, 0.5}, {world.BuildingAbandonedLot, 0.25},
		{world.BuildingMarketHall, 0.15}, {world.BuildingNightclub, 0.1},
	},
	"underground": {
		{world.BuildingAbandonedLot, 0.4}, {world.BuildingTenement, 0.3},
		{world.BuildingNightclub, 0.2}, {world.BuildingWarehouse, 0.1},
	},
}

var defaultBuildingWeights = []weighted[world.BuildingType]{
	{world.BuildingOfficeTower, 0.25}, {world.BuildingApartment, 0.25},
	{world.BuildingMarketHall, 0.2}, {world.BuildingWarehouse, 0.15},
	{world.BuildingTransitHub, 0.15},
}

// numBuildings maps a district's population into a building count bucket.
func numBuildings(r *Run, population int) int {
	switch {
	case population < 50_000:
		return r.IntBetween(2, 4)
	case population < 250_000:
		return r.IntBetween(3, 6)
	case population < 1_000_000:
		return r.IntBetween(5, 9)
	default:
		return r.IntBetween(7, 12)
	}
}

// expandStructures fills every physical district and special location with
// buildings, then expands each building into rooms, networks, devices, and
// hacking puzzles. Virtual locations have no physical structure.
func (g *Generator) expandStructures(ctx context.Context, r *Run, w *world.World) ([]*world.Building, error) {
	locations, err := g.store.Locations.ListByWorld(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	buildings := make([]*world.Building, 0)
	for _, loc := range locations {
		if loc.Kind == world.LocationKindCity || loc.IsVirtual {
			continue
		}
		count := numBuildings(r, loc.Population)
		if loc.Kind == world.LocationKindSpecial {
			count = r.IntBetween(1, 4)
		}
		for i := 0; i < count; i++ {
			b, err := g.generateBuilding(ctx, r, w, loc)
			if err != nil {
				return nil, err
			}
			buildings = append(buildings, b)
		}
	}
	return buildings, nil
}

// generateBuilding creates one building and everything inside it.
func (g *Generator) generateBuilding(ctx context.Context, r *Run, w *world.World, loc *world.Location) (*world.Building, error) {
	weights, ok := archetypeBuildings[loc.Archetype]
	if !ok {
		weights = defaultBuildingWeights
	}
	btype := pickWeighted(r, weights)
	spec := buildingSpecs[btype]

	owner := ""
	name := displayWord(string(btype))
	if spec.CorpOwned {
		owner = corpName(r)
		name = fmt.Sprintf("%s %s", owner, displayWord(string(btype)))
	} else {
		name = fmt.Sprintf("%s %s", Pick(r, districtPrefixes), name)
	}

	b := &world.Building{
		ID:                    r.NewID(),
		WorldID:               w.ID,
		LocationID:            loc.ID,
		Type:                  btype,
		Name:                  name,
		Floors:                r.IntBetween(spec.FloorsMin, spec.FloorsMax),
		SecurityLevel:         world.ClampSecurityLevel(loc.SecurityLevel + spec.SecurityOffset),
		Owner:                 owner,
		Services:              loc.Services,
		RequiresSpecialAccess: r.Chance(spec.SpecialProb),
		RequiresHacking:       r.Chance(spec.HackEntryProb),
		CreatedAt:             r.Now(),
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generated building %q: %w", b.Name, err)
	}
	if err := g.store.Structures.CreateBuilding(ctx, b); err != nil {
		return nil, err
	}
	g.metrics.EntityGenerated("building")

	if err := g.generateRooms(ctx, r, b, spec); err != nil {
		return nil, err
	}
	if err := g.generateNetworks(ctx, r, b, spec); err != nil {
		return nil, err
	}
	if err := g.generateBuildingDevices(ctx, r, b, spec); err != nil {
		return nil, err
	}
	return b, nil
}

// generateRooms places 1-6 rooms per floor from the building's room catalogue.
// Sensitive rooms lock with probability rising with the building's security
// level; a subset of locks is hackable.
func (g *Generator) generateRooms(ctx context.Context, r *Run, b *world.Building, spec buildingSpec) error {
	for floor := 1; floor <= b.Floors; floor++ {
		count := r.IntBetween(1, 6)
		for i := 0; i < count; i++ {
			rtype := Pick(r, spec.RoomTypes)
			locked := false
			if rtype.Sensitive() {
				locked = r.Chance(0.2 + 0.15*float64(b.SecurityLevel))
			} else {
				locked = r.Chance(0.05)
			}
			room := &world.Room{
				ID:         r.NewID(),
				WorldID:    b.WorldID,
				BuildingID: b.ID,
				Floor:      floor,
				Type:       rtype,
				Name:       fmt.Sprintf("%s %d-%d", displayWord(string(rtype)), floor, i+1),
				IsLocked:   locked,
				IsHackable: locked && r.Chance(0.5),
				CreatedAt:  r.Now(),
			}
			if err := room.Validate(b.Floors); err != nil {
				return fmt.Errorf("invalid generated room %q: %w", room.Name, err)
			}
			if err := g.store.Structures.CreateRoom(ctx, room); err != nil {
				return err
			}
			g.metrics.EntityGenerated("room")
		}
	}
	return nil
}

// encryptionForSecurity samples encryption jointly with the security tier, so
// stronger tiers never pair with weaker schemes than weaker tiers allow.
var encryptionForSecurity = [...][]world.EncryptionType{
	1: {world.EncryptionNone, world.EncryptionBasic},
	2: {world.EncryptionBasic, world.EncryptionStandard},
	3: {world.EncryptionStandard, world.EncryptionMilitary},
	4: {world.EncryptionMilitary, world.EncryptionQuantum},
	5: {world.EncryptionMilitary, world.EncryptionQuantum},
}

// generateNetworks attaches the building's networks. Hacking-flagged networks
// spawn a puzzle about half the time.
func (g *Generator) generateNetworks(ctx context.Context, r *Run, b *world.Building, spec buildingSpec) error {
	if spec.NetworksMax == 0 {
		return nil
	}
	count := r.IntBetween(spec.NetworksMin, spec.NetworksMax)
	for i := 0; i < count; i++ {
		ntype := pickWeighted(r, spec.NetworkTypes)
		security := world.ClampSecurityLevel(b.SecurityLevel + r.IntBetween(-1, 1))
		if ntype == world.NetworkDarknet {
			security = world.ClampSecurityLevel(security + 1)
		}
		n := &world.Network{
			ID:              r.NewID(),
			WorldID:         b.WorldID,
			BuildingID:      b.ID,
			Type:            ntype,
			Name:            fmt.Sprintf("%s-%s-%02d", networkPrefix(ntype), b.ID.String()[20:], i+1),
			SecurityLevel:   security,
			Encryption:      Pick(r, encryptionForSecurity[security]),
			IsHidden:        ntype == world.NetworkDarknet || r.Chance(0.1),
			RequiresHacking: ntype == world.NetworkDarknet || security >= 4,
			CreatedAt:       r.Now(),
		}
		if err := n.Validate(); err != nil {
			return fmt.Errorf("invalid generated network %q: %w", n.Name, err)
		}
		if err := g.store.Structures.CreateNetwork(ctx, n); err != nil {
			return err
		}
		g.metrics.EntityGenerated("network")

		if n.RequiresHacking && r.Chance(0.5) {
			if err := g.createPuzzle(ctx, r, b.WorldID, world.PuzzleTargetNetwork, n.ID, n.SecurityLevel); err != nil {
				return err
			}
		}
	}
	return nil
}

func networkPrefix(t world.NetworkType) string {
	switch t {
	case world.NetworkCorporate:
		return "CORP"
	case world.NetworkSecurity:
		return "SEC"
	case world.NetworkIndustrial:
		return "IND"
	case world.NetworkDarknet:
		return "DRK"
	default:
		return "PUB"
	}
}

// generateBuildingDevices places the building's devices. Roughly 30% of
// devices carry a hacking puzzle.
func (g *Generator) generateBuildingDevices(ctx context.Context, r *Run, b *world.Building, spec buildingSpec) error {
	if spec.DevicesMax == 0 {
		return nil
	}
	count := r.IntBetween(spec.DevicesMin, spec.DevicesMax)
	for i := 0; i < count; i++ {
		buildingID := b.ID
		d := &world.Device{
			ID:            r.NewID(),
			WorldID:       b.WorldID,
			LocationID:    b.LocationID,
			BuildingID:    &buildingID,
			Type:          pickWeighted(r, spec.DeviceTypes),
			OS:            deviceOS(r, b.SecurityLevel),
			SecurityLevel: world.ClampSecurityLevel(b.SecurityLevel + r.IntBetween(-1, 1)),
			IPAddress:     nextIP(r),
			CreatedAt:     r.Now(),
		}
		if err := g.createDevice(ctx, r, d); err != nil {
			return err
		}
	}
	return nil
}

// createDevice validates, persists, and maybe attaches a puzzle to a device.
// Shared with the population phase, which generates character-carried devices.
func (g *Generator) createDevice(ctx context.Context, r *Run, d *world.Device) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid generated device %s: %w", d.IPAddress, err)
	}
	if err := g.store.Structures.CreateDevice(ctx, d); err != nil {
		return err
	}
	g.metrics.EntityGenerated("device")

	if r.Chance(0.3) {
		return g.createPuzzle(ctx, r, d.WorldID, world.PuzzleTargetDevice, d.ID, d.SecurityLevel)
	}
	return nil
}

// deviceOS skews toward hardened systems as security rises.
func deviceOS(r *Run, security int) world.OSType {
	if security >= 4 {
		return pickWeighted(r, []weighted[world.OSType]{
			{world.OSBlackline, 0.5}, {world.OSGridware, 0.3}, {world.OSNeonOS, 0.2},
		})
	}
	return pickWeighted(r, []weighted[world.OSType]{
		{world.OSGridware, 0.4}, {world.OSNeonOS, 0.35}, {world.OSLegacyUX, 0.25},
	})
}

// createPuzzle attaches one hacking puzzle to a device or network. Difficulty
// tracks the target's security level; rewards scale with difficulty.
func (g *Generator) createPuzzle(ctx context.Context, r *Run, worldID ulid.ULID, kind world.PuzzleTargetKind, targetID ulid.ULID, security int) error {
	difficulty := clampInt(security+r.IntBetween(-1, 1), world.MinSecurityLevel, world.MaxSecurityLevel)
	p := &world.HackingPuzzle{
		ID:            r.NewID(),
		WorldID:       worldID,
		TargetKind:    kind,
		TargetID:      targetID,
		Type:          Pick(r, puzzleTypes),
		Difficulty:    difficulty,
		RewardCredits: difficulty * r.IntBetween(50, 150),
		RewardXP:      difficulty * r.IntBetween(20, 60),
		CreatedAt:     r.Now(),
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid generated puzzle: %w", err)
	}
	if err := g.store.Structures.CreatePuzzle(ctx, p); err != nil {
		return err
	}
	g.metrics.EntityGenerated("puzzle")
	return nil
}

var puzzleTypes = []world.PuzzleType{
	world.PuzzlePasswordCrack, world.PuzzleFirewallBreak,
	world.PuzzleCipherDecode, world.PuzzleTraceEvade, world.PuzzleICEBreaker,
}

// nextIP hands out pseudo-IPv4 addresses from 10.0.0.0/8, unique per run.
func nextIP(r *Run) string {
	for {
		ip := fmt.Sprintf("10.%d.%d.%d", r.IntBetween(0, 255), r.IntBetween(0, 255), r.IntBetween(1, 254))
		if !r.usedIPs[ip] {
			r.usedIPs[ip] = true
			return ip
		}
	}
}
