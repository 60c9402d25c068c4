// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"errors"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/oklog/ulid/v2"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// shopBuildingGlobs matches shop types to the building types that can host
// them. A shop with no matching building in its district falls back to any
// building, then to the bare location.
var shopBuildingGlobs = map[world.ShopType]glob.Glob{
	world.ShopWeapons:     glob.MustCompile("{market_hall,warehouse,abandoned_lot}"),
	world.ShopHardware:    glob.MustCompile("{market_hall,shopping_mall,factory}"),
	world.ShopSoftware:    glob.MustCompile("{office_tower,data_center,shopping_mall}"),
	world.ShopImplants:    glob.MustCompile("{clinic,luxury_tower}"),
	world.ShopGeneral:     glob.MustCompile("{market_hall,shopping_mall,transit_hub,apartment_*}"),
	world.ShopBlackMarket: glob.MustCompile("{abandoned_lot,tenement,nightclub,warehouse}"),
	world.ShopFashion:     glob.MustCompile("{shopping_mall,luxury_tower,market_hall}"),
	world.ShopPharmacy:    glob.MustCompile("{clinic,shopping_mall,market_hall}"),
}

// archetypeShops weights shop types by district archetype.
var archetypeShops = map[string][]weighted[world.ShopType]{
	"financial":     {{world.ShopFashion, 0.4}, {world.ShopSoftware, 0.3}, {world.ShopGeneral, 0.3}},
	"corporate":     {{world.ShopSoftware, 0.4}, {world.ShopHardware, 0.3}, {world.ShopFashion, 0.3}},
	"residential":   {{world.ShopGeneral, 0.5}, {world.ShopPharmacy, 0.3}, {world.ShopFashion, 0.2}},
	"entertainment": {{world.ShopFashion, 0.35}, {world.ShopGeneral, 0.35}, {world.ShopBlackMarket, 0.3}},
	"market":        {{world.ShopGeneral, 0.3}, {world.ShopHardware, 0.3}, {world.ShopWeapons, 0.2}, {world.ShopFashion, 0.2}},
	"industrial":    {{world.ShopHardware, 0.5}, {world.ShopGeneral, 0.3}, {world.ShopWeapons, 0.2}},
	"harbor":        {{world.ShopGeneral, 0.4}, {world.ShopBlackMarket, 0.3}, {world.ShopWeapons, 0.3}},
	"slums":         {{world.ShopBlackMarket, 0.4}, {world.ShopPharmacy, 0.3}, {world.ShopGeneral, 0.3}},
	"underground":   {{world.ShopBlackMarket, 0.6}, {world.ShopWeapons, 0.2}, {world.ShopImplants, 0.2}},
}

var defaultShopWeights = []weighted[world.ShopType]{
	{world.ShopGeneral, 0.4}, {world.ShopHardware, 0.2},
	{world.ShopPharmacy, 0.2}, {world.ShopFashion, 0.2},
}

// shopInventoryMix is the family distribution a shop type stocks from.
// Types without an entry use the generic mix.
var shopInventoryMix = map[world.ShopType][]weighted[world.ItemFamily]{
	world.ShopWeapons:     {{world.FamilyWeapon, 0.8}, {world.FamilyHardware, 0.1}, {world.FamilyConsumable, 0.1}},
	world.ShopHardware:    {{world.FamilyHardware, 0.7}, {world.FamilySoftware, 0.2}, {world.FamilyConsumable, 0.1}},
	world.ShopSoftware:    {{world.FamilySoftware, 0.8}, {world.FamilyHardware, 0.2}},
	world.ShopImplants:    {{world.FamilyImplant, 0.7}, {world.FamilyConsumable, 0.3}},
	world.ShopPharmacy:    {{world.FamilyConsumable, 0.9}, {world.FamilyImplant, 0.1}},
	world.ShopFashion:     {{world.FamilyClothing, 0.9}, {world.FamilyConsumable, 0.1}},
	world.ShopBlackMarket: {{world.FamilyWeapon, 0.3}, {world.FamilySoftware, 0.25}, {world.FamilyImplant, 0.25}, {world.FamilyConsumable, 0.2}},
}

var genericInventoryMix = []weighted[world.ItemFamily]{
	{world.FamilyHardware, 0.4}, {world.FamilyConsumable, 0.3}, {world.FamilySoftware, 0.3},
}

type slotRange struct {
	Min, Max int
}

// shopSlotRanges bounds inventory size per shop type. Specialist dealers keep
// small curated shelves; general stores pile them high.
var shopSlotRanges = map[world.ShopType]slotRange{
	world.ShopWeapons:     {5, 12},
	world.ShopHardware:    {6, 14},
	world.ShopSoftware:    {5, 15},
	world.ShopImplants:    {3, 6},
	world.ShopGeneral:     {8, 20},
	world.ShopBlackMarket: {3, 8},
	world.ShopFashion:     {6, 18},
	world.ShopPharmacy:    {6, 15},
}

var defaultSlotRange = slotRange{4, 10}

// lawlessArchetypes marks districts where even licensed storefronts drift
// into contraband.
var lawlessArchetypes = map[string]bool{
	"slums":       true,
	"underground": true,
}

func isLawless(loc *world.Location) bool {
	return lawlessArchetypes[loc.Archetype] || hasTag(loc, "lawless")
}

var shopNameNouns = map[world.ShopType][]string{
	world.ShopWeapons:     {"Armory", "Gun Cellar", "Iron Works"},
	world.ShopHardware:    {"Parts Bin", "Circuit Shack", "Tech Depot"},
	world.ShopSoftware:    {"Code Den", "Wareshop", "Null Exchange"},
	world.ShopImplants:    {"Chrome Clinic", "Ripper Lounge", "Body Shop"},
	world.ShopGeneral:     {"Corner Store", "Trade Post", "All-Mart"},
	world.ShopBlackMarket: {"Back Room", "Night Stall", "The Fence"},
	world.ShopFashion:     {"Thread Gallery", "Neon Rack", "Style Vault"},
	world.ShopPharmacy:    {"Med Stop", "Chem Counter", "Dose House"},
}

// assembleShops places and stocks the shops of every district and special
// physical location.
func (g *Generator) assembleShops(ctx context.Context, r *Run, w *world.World) error {
	locations, err := g.store.Locations.ListByWorld(ctx, w.ID)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		if loc.Kind == world.LocationKindCity || loc.IsVirtual {
			continue
		}
		count := shopCount(r, loc)
		for i := 0; i < count; i++ {
			if err := g.generateShop(ctx, r, w, loc); err != nil {
				return err
			}
		}
	}
	return nil
}

// shopCount gives commerce districts more storefronts.
func shopCount(r *Run, loc *world.Location) int {
	if loc.HasService("commerce") || loc.HasService("trade") {
		return r.IntBetween(1, 3)
	}
	if r.Chance(0.4) {
		return 1
	}
	return 0
}

// generateShop creates one shop and fills its inventory.
func (g *Generator) generateShop(ctx context.Context, r *Run, w *world.World, loc *world.Location) error {
	weights, ok := archetypeShops[loc.Archetype]
	if !ok {
		weights = defaultShopWeights
	}
	stype := pickWeighted(r, weights)

	buildings, err := g.store.Structures.ListBuildingsByLocation(ctx, loc.ID)
	if err != nil {
		return err
	}
	buildingID := placeShop(r, stype, buildings)

	isLegal := stype != world.ShopBlackMarket
	if isLegal && isLawless(loc) && r.Chance(0.3) {
		isLegal = false
	}
	reputation := r.IntBetween(world.MinReputation, world.MaxReputation)

	s := &world.Shop{
		ID:            r.NewID(),
		WorldID:       w.ID,
		LocationID:    loc.ID,
		BuildingID:    buildingID,
		Type:          stype,
		Name:          shopName(r, stype),
		IsLegal:       isLegal,
		Reputation:    reputation,
		PriceModifier: shopPriceModifier(r, loc, isLegal, reputation),
		CreatedAt:     r.Now(),
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid generated shop %q: %w", s.Name, err)
	}
	if err := g.store.Shops.Create(ctx, s); err != nil {
		return err
	}
	g.metrics.EntityGenerated("shop")

	return g.stockShop(ctx, r, w, s)
}

// placeShop matches the shop type's building glob against the district's
// buildings in a shuffled order. No match falls back to any building; an empty
// district leaves the shop at street level.
func placeShop(r *Run, stype world.ShopType, buildings []*world.Building) *ulid.ULID {
	if len(buildings) == 0 {
		return nil
	}
	pool := make([]*world.Building, len(buildings))
	copy(pool, buildings)
	Shuffle(r, pool)

	pattern := shopBuildingGlobs[stype]
	for _, b := range pool {
		if pattern.Match(b.Type.String()) {
			id := b.ID
			return &id
		}
	}
	id := Pick(r, pool).ID
	return &id
}

// shopPriceModifier derives pricing from district wealth, legality, and
// reputation. Illegal shops charge a risk premium.
func shopPriceModifier(r *Run, loc *world.Location, isLegal bool, reputation int) float64 {
	mod := 1.0
	if hasTag(loc, "wealthy") {
		mod += 0.2
	}
	if hasTag(loc, "poor") {
		mod -= 0.15
	}
	if !isLegal {
		mod += 0.3
	}
	if reputation >= 8 {
		mod += 0.1
	}
	mod *= r.Jitter(0.9, 1.1)
	if mod < 0.5 {
		mod = 0.5
	}
	return mod
}

// stockShop fills a shop's inventory from its type's family mix. A slot whose
// item fails validation is restocked with a minimal fallback item rather than
// failing the run; storage errors still abort.
func (g *Generator) stockShop(ctx context.Context, r *Run, w *world.World, s *world.Shop) error {
	mix, ok := shopInventoryMix[s.Type]
	if !ok {
		mix = genericInventoryMix
	}
	slots := shopSlots(r, s)
	shopID := s.ID
	for i := 0; i < slots; i++ {
		family := pickWeighted(r, mix)
		item, err := g.generateItem(ctx, r, w, family, !s.IsLegal, world.PlacementShop, &shopID)
		if err != nil {
			var verr *world.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			item, err = g.fallbackItem(ctx, r, w, !s.IsLegal, &shopID)
			if err != nil {
				return err
			}
		}

		entry := &world.ShopInventoryEntry{
			ID:            r.NewID(),
			WorldID:       w.ID,
			ShopID:        s.ID,
			ItemFamily:    item.Family,
			ItemID:        item.ID,
			Quantity:      slotQuantity(r, item.Family),
			PriceModifier: r.Jitter(0.85, 1.25),
			Featured:      r.Chance(0.15),
			CreatedAt:     r.Now(),
		}
		if r.Chance(0.1) {
			entry.LimitedTime = true
			expires := r.Now().AddDate(0, 0, r.IntBetween(1, 7))
			entry.ExpiresAt = &expires
		}
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("invalid generated inventory entry: %w", err)
		}
		if err := g.store.Shops.CreateInventoryEntry(ctx, entry); err != nil {
			return err
		}
		g.metrics.EntityGenerated("inventory_entry")
	}
	return nil
}

// shopSlots draws the inventory size from the type's range. Reputation lifts
// the floor without leaving the range.
func shopSlots(r *Run, s *world.Shop) int {
	rng, ok := shopSlotRanges[s.Type]
	if !ok {
		rng = defaultSlotRange
	}
	lo := clampInt(rng.Min+s.Reputation/4, rng.Min, rng.Max)
	return r.IntBetween(lo, rng.Max)
}

// fallbackItem is the minimal always-valid item a slot degrades to. It keeps
// the shop's legality so contraband shelves stay contraband.
func (g *Generator) fallbackItem(ctx context.Context, r *Run, w *world.World, illegal bool, shopID *ulid.ULID) (*world.Item, error) {
	item := &world.Item{
		ID:          r.NewID(),
		WorldID:     w.ID,
		Family:      world.FamilyConsumable,
		Type:        "stim_pack",
		Name:        "Surplus Stim Pack",
		Rarity:      world.RarityCommon,
		Level:       world.MinItemLevel,
		Stats:       map[string]float64{"potency": 5, "duration": 3},
		Price:       10,
		IsIllegal:   illegal,
		Placement:   world.PlacementShop,
		PlacementID: shopID,
		CreatedAt:   r.Now(),
	}
	if err := g.store.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	g.metrics.EntityGenerated("item")
	return item, nil
}

// slotQuantity stocks unique gear singly and consumables in bulk.
func slotQuantity(r *Run, family world.ItemFamily) int {
	switch family {
	case world.FamilyWeapon, world.FamilyImplant:
		return 1
	case world.FamilyConsumable:
		return r.IntBetween(1, 10)
	case world.FamilySoftware:
		return r.IntBetween(1, 5)
	default:
		return r.IntBetween(1, 3)
	}
}

func shopName(r *Run, stype world.ShopType) string {
	noun := Pick(r, shopNameNouns[stype])
	if r.Chance(0.5) {
		return personName(r) + "'s " + noun
	}
	return "The " + noun
}
