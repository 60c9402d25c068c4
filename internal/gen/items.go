// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// statSpec is one base stat of an item type, scaled by level, rarity tier,
// type modifier, and jitter at generation time.
type statSpec struct {
	Key  string
	Base float64
}

// itemTypeSpec is one entry of a family's type catalogue.
type itemTypeSpec struct {
	Key          string
	Stats        []statSpec
	PriceBase    float64
	TypeModifier float64 // multiplies every scaled stat and the price
	IllegalProb  float64
	SideEffects  bool // consumables and implants carry a rarity-scaled side effect
	Versioned    bool // software carries a semver version in its name
}

// itemCatalogues holds the per-family type catalogues. Every numeric output of
// an entry follows base x level factor x rarity multiplier x type modifier x
// jitter.
var itemCatalogues = map[world.ItemFamily][]itemTypeSpec{
	world.FamilyHardware: {
		{Key: "cyberdeck", Stats: []statSpec{{"processing", 10}, {"memory", 8}, {"durability", 20}}, PriceBase: 400, TypeModifier: 1.2},
		{Key: "signal_booster", Stats: []statSpec{{"range", 15}, {"durability", 25}}, PriceBase: 120, TypeModifier: 0.8},
		{Key: "drone_controller", Stats: []statSpec{{"processing", 8}, {"range", 12}}, PriceBase: 250, TypeModifier: 1.0},
		{Key: "encryption_module", Stats: []statSpec{{"strength", 12}, {"processing", 6}}, PriceBase: 300, TypeModifier: 1.1, IllegalProb: 0.15},
	},
	world.FamilyConsumable: {
		{Key: "stim_pack", Stats: []statSpec{{"potency", 10}, {"duration", 5}}, PriceBase: 25, TypeModifier: 0.9, SideEffects: true},
		{Key: "neuro_booster", Stats: []statSpec{{"potency", 12}, {"duration", 8}}, PriceBase: 60, TypeModifier: 1.1, IllegalProb: 0.3, SideEffects: true},
		{Key: "detox_shot", Stats: []statSpec{{"potency", 8}, {"duration", 3}}, PriceBase: 40, TypeModifier: 0.8, SideEffects: true},
		{Key: "combat_stim", Stats: []statSpec{{"potency", 15}, {"duration", 6}}, PriceBase: 80, TypeModifier: 1.3, IllegalProb: 0.5, SideEffects: true},
	},
	world.FamilyWeapon: {
		{Key: "pistol", Stats: []statSpec{{"damage", 12}, {"accuracy", 14}, {"concealability", 16}}, PriceBase: 150, TypeModifier: 0.9},
		{Key: "smg", Stats: []statSpec{{"damage", 16}, {"accuracy", 10}, {"concealability", 10}}, PriceBase: 300, TypeModifier: 1.0, IllegalProb: 0.3},
		{Key: "assault_rifle", Stats: []statSpec{{"damage", 24}, {"accuracy", 12}, {"concealability", 3}}, PriceBase: 600, TypeModifier: 1.2, IllegalProb: 0.6},
		{Key: "shotgun", Stats: []statSpec{{"damage", 28}, {"accuracy", 7}, {"concealability", 4}}, PriceBase: 350, TypeModifier: 1.0, IllegalProb: 0.3},
		{Key: "katana", Stats: []statSpec{{"damage", 18}, {"accuracy", 15}, {"concealability", 6}}, PriceBase: 400, TypeModifier: 1.1},
		{Key: "monowire", Stats: []statSpec{{"damage", 22}, {"accuracy", 11}, {"concealability", 18}}, PriceBase: 800, TypeModifier: 1.4, IllegalProb: 0.7},
	},
	world.FamilyImplant: {
		{Key: "neural_link", Stats: []statSpec{{"bonus", 8}, {"bandwidth", 12}}, PriceBase: 900, TypeModifier: 1.2, SideEffects: true},
		{Key: "reflex_booster", Stats: []statSpec{{"bonus", 12}, {"bandwidth", 4}}, PriceBase: 1200, TypeModifier: 1.3, IllegalProb: 0.2, SideEffects: true},
		{Key: "subdermal_armor", Stats: []statSpec{{"armor", 15}, {"bonus", 4}}, PriceBase: 700, TypeModifier: 1.0, SideEffects: true},
		{Key: "optic_suite", Stats: []statSpec{{"bonus", 10}, {"bandwidth", 8}}, PriceBase: 800, TypeModifier: 1.1, SideEffects: true},
	},
	world.FamilySoftware: {
		{Key: "ice_breaker", Stats: []statSpec{{"effectiveness", 14}, {"detection_risk", 8}}, PriceBase: 350, TypeModifier: 1.2, IllegalProb: 0.6, Versioned: true},
		{Key: "stealth_suite", Stats: []statSpec{{"effectiveness", 10}, {"detection_risk", 4}}, PriceBase: 280, TypeModifier: 1.0, IllegalProb: 0.4, Versioned: true},
		{Key: "data_miner", Stats: []statSpec{{"effectiveness", 12}, {"detection_risk", 6}}, PriceBase: 200, TypeModifier: 0.9, IllegalProb: 0.2, Versioned: true},
		{Key: "virus_kit", Stats: []statSpec{{"effectiveness", 16}, {"detection_risk", 12}}, PriceBase: 500, TypeModifier: 1.3, IllegalProb: 0.8, Versioned: true},
	},
	world.FamilyClothing: {
		{Key: "armored_jacket", Stats: []statSpec{{"armor", 10}, {"style", 8}}, PriceBase: 180, TypeModifier: 1.0},
		{Key: "streetwear_set", Stats: []statSpec{{"armor", 2}, {"style", 14}}, PriceBase: 60, TypeModifier: 0.8},
		{Key: "corp_suit", Stats: []statSpec{{"armor", 4}, {"style", 16}}, PriceBase: 250, TypeModifier: 1.1},
		{Key: "thermo_cloak", Stats: []statSpec{{"armor", 6}, {"style", 10}}, PriceBase: 320, TypeModifier: 1.2},
	},
}

// ItemFamilies lists every family with a catalogue, in a fixed order.
var ItemFamilies = []world.ItemFamily{
	world.FamilyHardware, world.FamilyConsumable, world.FamilyWeapon,
	world.FamilyImplant, world.FamilySoftware, world.FamilyClothing,
}

// generateItem rolls one item of the family: type from the catalogue, rarity
// from the engine, every stat and the price through the multiplier pattern.
// illegal forces the illegal flag regardless of the type's own probability;
// shops pass their own legality here so contraband dealers never stock clean
// goods.
func (g *Generator) generateItem(ctx context.Context, r *Run, w *world.World, family world.ItemFamily, illegal bool, placement world.PlacementKind, placementID *ulid.ULID) (*world.Item, error) {
	spec := Pick(r, itemCatalogues[family])
	tier := g.rarity.Roll(r, family)
	level := itemLevel(r, w.Complexity)

	stats := make(map[string]float64, len(spec.Stats)+1)
	for _, s := range spec.Stats {
		stats[s.Key] = round2(g.rarity.scaleStat(r, s.Base, level, tier, spec.TypeModifier))
	}
	if spec.SideEffects {
		// Stronger gear bites back harder.
		stats["side_effect"] = round2(float64(tier.Rank()+1) * r.Jitter(0.5, 1.5))
	}

	name := itemName(r, displayWord(spec.Key))
	if spec.Versioned {
		name = fmt.Sprintf("%s v%s", name, softwareVersion(r, tier))
	}

	item := &world.Item{
		ID:          r.NewID(),
		WorldID:     w.ID,
		Family:      family,
		Type:        spec.Key,
		Name:        name,
		Rarity:      tier,
		Level:       level,
		Stats:       stats,
		Price:       g.rarity.scalePrice(r, spec.PriceBase, level, tier, spec.TypeModifier),
		IsIllegal:   illegal || r.Chance(spec.IllegalProb),
		Placement:   placement,
		PlacementID: placementID,
		CreatedAt:   r.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generated item %q: %w", item.Name, err)
	}
	if err := g.store.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	g.metrics.EntityGenerated("item")
	return item, nil
}

// itemLevel scales the level range with world complexity, capped at the level
// ceiling.
func itemLevel(r *Run, complexity int) int {
	return r.IntBetween(world.MinItemLevel, clampInt(complexity*2, world.MinItemLevel, world.MaxItemLevel))
}

// softwareVersion rolls a semver version. Rarer software ships later majors.
func softwareVersion(r *Run, tier world.Rarity) string {
	major := uint64(r.IntBetween(1, 2+tier.Rank()))
	return semver.New(major, uint64(r.IntN(10)), uint64(r.IntN(10)), "", "").String()
}

// placeLoot scatters items outside shops: world loot, character belongings,
// and data loot on high-security servers.
func (g *Generator) placeLoot(ctx context.Context, r *Run, w *world.World) error {
	lootCount := w.Complexity * r.IntBetween(3, 6)
	for i := 0; i < lootCount; i++ {
		family := Pick(r, ItemFamilies)
		if _, err := g.generateItem(ctx, r, w, family, false, world.PlacementWorldLoot, nil); err != nil {
			return err
		}
	}

	characters, err := g.store.Population.ListCharactersByWorld(ctx, w.ID)
	if err != nil {
		return err
	}
	for _, c := range characters {
		if !r.Chance(0.3) {
			continue
		}
		characterID := c.ID
		family := Pick(r, ItemFamilies)
		if _, err := g.generateItem(ctx, r, w, family, false, world.PlacementCharacter, &characterID); err != nil {
			return err
		}
	}

	buildings, err := g.store.Structures.ListBuildingsByWorld(ctx, w.ID)
	if err != nil {
		return err
	}
	for _, b := range buildings {
		if b.SecurityLevel < 4 || !r.Chance(0.4) {
			continue
		}
		buildingID := b.ID
		family := Pick(r, []world.ItemFamily{world.FamilyHardware, world.FamilySoftware})
		if _, err := g.generateItem(ctx, r, w, family, false, world.PlacementBuilding, &buildingID); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
