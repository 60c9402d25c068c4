// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"fmt"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// City generation bounds.
const (
	maxCities    = 8
	maxDistricts = 6
	minCityPop   = 100_000
	maxCityPop   = 20_000_000
)

// districtArchetype drives a district's security bias, danger, and flavor.
// Financial and corporate districts skew secure; slums and underground skew
// insecure and dangerous.
type districtArchetype struct {
	Key          string
	SecurityBias int
	DangerProb   float64
	Services     []string
	Tags         []string
}

var districtArchetypes = []districtArchetype{
	{Key: "financial", SecurityBias: +2, DangerProb: 0.05, Services: []string{"banking", "commerce"}, Tags: []string{"wealthy"}},
	{Key: "corporate", SecurityBias: +2, DangerProb: 0.05, Services: []string{"commerce"}, Tags: []string{"corporate"}},
	{Key: "government", SecurityBias: +1, DangerProb: 0.05, Services: []string{"administration"}, Tags: []string{"restricted"}},
	{Key: "residential", SecurityBias: 0, DangerProb: 0.10, Services: []string{"housing"}, Tags: nil},
	{Key: "entertainment", SecurityBias: 0, DangerProb: 0.20, Services: []string{"commerce", "nightlife"}, Tags: []string{"crowded"}},
	{Key: "market", SecurityBias: 0, DangerProb: 0.15, Services: []string{"commerce", "trade"}, Tags: []string{"crowded"}},
	{Key: "industrial", SecurityBias: -1, DangerProb: 0.25, Services: []string{"manufacturing"}, Tags: nil},
	{Key: "harbor", SecurityBias: -1, DangerProb: 0.30, Services: []string{"transport", "trade"}, Tags: []string{"smuggling"}},
	{Key: "slums", SecurityBias: -2, DangerProb: 0.60, Services: nil, Tags: []string{"poor", "dangerous"}},
	{Key: "underground", SecurityBias: -2, DangerProb: 0.70, Services: nil, Tags: []string{"hidden", "dangerous"}},
}

// optionalCityServices supplement the mandatory commerce and transport.
var optionalCityServices = []string{
	"banking", "medical", "education", "entertainment", "manufacturing", "media",
}

// specialLocationSpec is one entry of the fixed special/virtual catalogue.
type specialLocationSpec struct {
	Key           string
	Name          string
	Virtual       bool
	Dangerous     bool
	SecurityMin   int
	SecurityMax   int
	PopulationMin int
	PopulationMax int
	Services      []string
	Tags          []string
}

var specialLocationSpecs = []specialLocationSpec{
	{
		Key: "orbital_station", Name: "Meridian Orbital", SecurityMin: 4, SecurityMax: 5,
		PopulationMin: 2_000, PopulationMax: 40_000,
		Services: []string{"transport", "research"}, Tags: []string{"orbital", "restricted"},
	},
	{
		Key: "darknet_hub", Name: "The Undervoid", Virtual: true, Dangerous: true,
		SecurityMin: 1, SecurityMax: 2, PopulationMin: 0, PopulationMax: 0,
		Services: []string{"data_haven"}, Tags: []string{"virtual", "hidden"},
	},
	{
		Key: "wasteland_refuge", Name: "Cinder Flats", Dangerous: true,
		SecurityMin: 1, SecurityMax: 1, PopulationMin: 500, PopulationMax: 8_000,
		Services: nil, Tags: []string{"wasteland", "lawless"},
	},
	{
		Key: "freeport_anchorage", Name: "Freeport Anchorage",
		SecurityMin: 2, SecurityMax: 3, PopulationMin: 10_000, PopulationMax: 120_000,
		Services: []string{"trade", "transport"}, Tags: []string{"freeport", "smuggling"},
	},
	{
		Key: "deep_grid_archive", Name: "Deep Grid Archive", Virtual: true,
		SecurityMin: 5, SecurityMax: 5, PopulationMin: 0, PopulationMax: 0,
		Services: []string{"data_haven"}, Tags: []string{"virtual", "restricted"},
	},
}

// NumCities returns the city count for a complexity: clamp(complexity+1, 1, 8).
func NumCities(complexity int) int {
	return clampInt(complexity+1, 1, maxCities)
}

// NumDistricts returns the per-city district count range's fixed value for a
// complexity: clamp(complexity+1, 1, 6).
func NumDistricts(complexity int) int {
	return clampInt(complexity+1, 1, maxDistricts)
}

// generateLocations builds the location graph nodes: cities, their districts,
// and the optional special/virtual locations. Returns all created locations in
// generation order.
func (g *Generator) generateLocations(ctx context.Context, r *Run, w *world.World) ([]*world.Location, error) {
	cityPool := newNamePool(r, cityNames, "Settlement %d")
	locations := make([]*world.Location, 0)

	numCities := NumCities(w.Complexity)
	for i := 0; i < numCities; i++ {
		city := &world.Location{
			ID:            r.NewID(),
			WorldID:       w.ID,
			Kind:          world.LocationKindCity,
			Name:          cityPool.Draw(),
			X:             r.FloatBetween(0, 1000),
			Y:             r.FloatBetween(0, 1000),
			SecurityLevel: r.IntBetween(world.MinSecurityLevel, world.MaxSecurityLevel),
			Population:    r.IntBetween(minCityPop, maxCityPop),
			Services:      append([]string{"commerce", "transport"}, pickOptionalServices(r)...),
			CreatedAt:     r.Now(),
		}
		if err := g.createLocation(ctx, city); err != nil {
			return nil, err
		}
		locations = append(locations, city)

		districts, err := g.generateDistricts(ctx, r, w, city)
		if err != nil {
			return nil, err
		}
		locations = append(locations, districts...)
	}

	specials, err := g.generateSpecialLocations(ctx, r, w)
	if err != nil {
		return nil, err
	}
	locations = append(locations, specials...)

	return locations, nil
}

// generateDistricts builds a city's districts. Each district inherits 10-30%
// of the city's population and a security level biased by its archetype.
func (g *Generator) generateDistricts(ctx context.Context, r *Run, w *world.World, city *world.Location) ([]*world.Location, error) {
	numDistricts := NumDistricts(w.Complexity)
	districts := make([]*world.Location, 0, numDistricts)
	for i := 0; i < numDistricts; i++ {
		arch := Pick(r, districtArchetypes)
		parentID := city.ID
		district := &world.Location{
			ID:            r.NewID(),
			WorldID:       w.ID,
			ParentID:      &parentID,
			Kind:          world.LocationKindDistrict,
			Archetype:     arch.Key,
			Name:          districtName(r),
			X:             city.X + r.FloatBetween(-30, 30),
			Y:             city.Y + r.FloatBetween(-30, 30),
			SecurityLevel: world.ClampSecurityLevel(city.SecurityLevel + arch.SecurityBias),
			Population:    int(float64(city.Population) * r.FloatBetween(0.10, 0.30)),
			Services:      arch.Services,
			Tags:          arch.Tags,
			IsDangerous:   r.Chance(arch.DangerProb),
			CreatedAt:     r.Now(),
		}
		if err := g.createLocation(ctx, district); err != nil {
			return nil, err
		}
		districts = append(districts, district)
	}
	return districts, nil
}

// generateSpecialLocations builds 0..(complexity-1) locations from the fixed
// special catalogue, drawing specs without replacement.
func (g *Generator) generateSpecialLocations(ctx context.Context, r *Run, w *world.World) ([]*world.Location, error) {
	count := r.IntN(w.Complexity)
	if count > len(specialLocationSpecs) {
		count = len(specialLocationSpecs)
	}
	specs := make([]specialLocationSpec, len(specialLocationSpecs))
	copy(specs, specialLocationSpecs)
	Shuffle(r, specs)

	specials := make([]*world.Location, 0, count)
	for _, spec := range specs[:count] {
		population := 0
		if spec.PopulationMax > 0 {
			population = r.IntBetween(spec.PopulationMin, spec.PopulationMax)
		}
		loc := &world.Location{
			ID:            r.NewID(),
			WorldID:       w.ID,
			Kind:          world.LocationKindSpecial,
			Archetype:     spec.Key,
			Name:          spec.Name,
			X:             r.FloatBetween(0, 1000),
			Y:             r.FloatBetween(0, 1000),
			SecurityLevel: r.IntBetween(spec.SecurityMin, spec.SecurityMax),
			Population:    population,
			Services:      spec.Services,
			Tags:          spec.Tags,
			IsVirtual:     spec.Virtual,
			IsSpecial:     true,
			IsDangerous:   spec.Dangerous,
			CreatedAt:     r.Now(),
		}
		if err := g.createLocation(ctx, loc); err != nil {
			return nil, err
		}
		specials = append(specials, loc)
	}
	return specials, nil
}

func (g *Generator) createLocation(ctx context.Context, loc *world.Location) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("invalid generated location %q: %w", loc.Name, err)
	}
	if err := g.store.Locations.Create(ctx, loc); err != nil {
		return err
	}
	g.metrics.EntityGenerated("location")
	return nil
}

func pickOptionalServices(r *Run) []string {
	count := r.IntN(4)
	if count == 0 {
		return nil
	}
	pool := make([]string, len(optionalCityServices))
	copy(pool, optionalCityServices)
	Shuffle(r, pool)
	return pool[:count]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
