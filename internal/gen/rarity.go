// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// TierWeight is one entry of a rarity weight table.
type TierWeight struct {
	Tier   world.Rarity
	Weight float64
}

// RarityTable is a discrete distribution over the five rarity tiers, listed in
// ascending tier order with monotonically decreasing weights.
type RarityTable []TierWeight

// Validate checks that the table covers every tier in ascending order with
// positive, monotonically decreasing weights. A malformed table is a fatal
// configuration error: generation must not start with one.
func (t RarityTable) Validate() error {
	if len(t) != len(world.Rarities) {
		return oops.Code("RARITY_TABLE_INVALID").
			Errorf("table must cover all %d tiers, has %d", len(world.Rarities), len(t))
	}
	prev := 0.0
	for i, tw := range t {
		if tw.Tier != world.Rarities[i] {
			return oops.Code("RARITY_TABLE_INVALID").
				With("position", i).
				Errorf("tiers must appear in ascending order, found %q", tw.Tier)
		}
		if tw.Weight <= 0 {
			return oops.Code("RARITY_TABLE_INVALID").
				With("tier", string(tw.Tier)).
				Errorf("weight must be positive, got %v", tw.Weight)
		}
		if i > 0 && tw.Weight >= prev {
			return oops.Code("RARITY_TABLE_INVALID").
				With("tier", string(tw.Tier)).
				Errorf("weights must decrease by tier, %v >= %v", tw.Weight, prev)
		}
		prev = tw.Weight
	}
	return nil
}

// Default and per-family rarity tables. Exact weights vary slightly per item
// family but always decrease by tier.
var (
	defaultRarityTable = RarityTable{
		{world.RarityCommon, 55},
		{world.RarityUncommon, 27},
		{world.RarityRare, 13},
		{world.RarityEpic, 4},
		{world.RarityLegendary, 1},
	}
	familyRarityTables = map[world.ItemFamily]RarityTable{
		world.FamilyWeapon: {
			{world.RarityCommon, 50},
			{world.RarityUncommon, 30},
			{world.RarityRare, 15},
			{world.RarityEpic, 4},
			{world.RarityLegendary, 1},
		},
		world.FamilyImplant: {
			{world.RarityCommon, 52},
			{world.RarityUncommon, 28},
			{world.RarityRare, 14},
			{world.RarityEpic, 5},
			{world.RarityLegendary, 1},
		},
		world.FamilyConsumable: {
			{world.RarityCommon, 60},
			{world.RarityUncommon, 25},
			{world.RarityRare, 11},
			{world.RarityEpic, 3},
			{world.RarityLegendary, 1},
		},
	}
)

// rarityMultipliers maps tier rank to the strictly increasing stat/price
// multiplier. Every derived numeric value follows
// base(level) x multiplier(tier) x type_modifier x jitter.
var rarityMultipliers = [...]float64{1.0, 1.6, 2.8, 5.0, 10.0}

// RarityEngine performs weighted tier sampling and multiplier arithmetic for
// every item, building, and network generator.
type RarityEngine struct {
	defaultTable RarityTable
	familyTables map[world.ItemFamily]RarityTable
}

// NewRarityEngine creates an engine with the built-in weight tables.
// The built-in tables are validated at construction; a failure here means the
// tables were edited into an invalid state and generation must not proceed.
func NewRarityEngine() (*RarityEngine, error) {
	return NewRarityEngineWithTables(defaultRarityTable, familyRarityTables)
}

// NewRarityEngineWithTables creates an engine with explicit weight tables,
// validating every one of them.
func NewRarityEngineWithTables(def RarityTable, families map[world.ItemFamily]RarityTable) (*RarityEngine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	for family, table := range families {
		if err := table.Validate(); err != nil {
			return nil, oops.With("family", string(family)).Wrap(err)
		}
	}
	return &RarityEngine{defaultTable: def, familyTables: families}, nil
}

// Roll samples a rarity tier for the given family from the run's stream.
// Families without a dedicated table use the default table. Sampling is total:
// the tables were validated at construction, so a draw always lands on a tier.
func (e *RarityEngine) Roll(r *Run, family world.ItemFamily) world.Rarity {
	table := e.defaultTable
	if t, ok := e.familyTables[family]; ok {
		table = t
	}
	total := 0.0
	for _, tw := range table {
		total += tw.Weight
	}
	draw := r.Float64() * total
	for _, tw := range table {
		draw -= tw.Weight
		if draw < 0 {
			return tw.Tier
		}
	}
	// Float underflow at the very end of the range lands on the last tier.
	return table[len(table)-1].Tier
}

// Multiplier returns the stat/price multiplier for a tier, strictly increasing
// from 1.0 at common to 10x at legendary. Unknown tiers fall back to common.
func (e *RarityEngine) Multiplier(tier world.Rarity) float64 {
	rank := tier.Rank()
	if rank < 0 {
		return rarityMultipliers[0]
	}
	return rarityMultipliers[rank]
}

// scaleStat applies the shared multiplier pattern to one numeric stat:
// base grows 15% per level above 1, then the tier multiplier, the type
// modifier, and one jitter draw.
func (e *RarityEngine) scaleStat(r *Run, base float64, level int, tier world.Rarity, typeModifier float64) float64 {
	levelFactor := 1.0 + 0.15*float64(level-1)
	return base * levelFactor * e.Multiplier(tier) * typeModifier * r.Jitter(0.8, 1.2)
}

// scalePrice is scaleStat rounded to whole credits with a floor of 1.
func (e *RarityEngine) scalePrice(r *Run, base float64, level int, tier world.Rarity, typeModifier float64) int {
	price := int(e.scaleStat(r, base, level, tier, typeModifier))
	if price < 1 {
		price = 1
	}
	return price
}
