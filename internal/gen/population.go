// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"fmt"

	"github.com/shadowgrid/shadowgrid/internal/storycond"
	"github.com/shadowgrid/shadowgrid/internal/world"
)

// professionSpec biases a character's traits and faction by line of work.
// Biases are added to a uniform 1-6 base draw and clamped to [1,10].
type professionSpec struct {
	Profession world.Profession
	Importance int
	Hacking    int
	Combat     int
	Charisma   int
	Wealth     int
	Factions   []weighted[world.Faction]
	GiverProb  float64 // weight when choosing mission givers
}

var professionSpecs = []professionSpec{
	{
		Profession: world.ProfessionCorpExec, Importance: +3, Charisma: +2, Wealth: +4,
		Factions:  []weighted[world.Faction]{{world.FactionCorporate, 0.9}, {world.FactionGovernment, 0.1}},
		GiverProb: 0.8,
	},
	{
		Profession: world.ProfessionNetrunner, Hacking: +4, Wealth: +1,
		Factions:  []weighted[world.Faction]{{world.FactionUnderground, 0.6}, {world.FactionIndependent, 0.4}},
		GiverProb: 0.3,
	},
	{
		Profession: world.ProfessionFixer, Importance: +2, Charisma: +3, Wealth: +2,
		Factions:  []weighted[world.Faction]{{world.FactionUnderground, 0.5}, {world.FactionIndependent, 0.5}},
		GiverProb: 1.0,
	},
	{
		Profession: world.ProfessionMercenary, Combat: +4, Importance: +1,
		Factions:  []weighted[world.Faction]{{world.FactionIndependent, 0.6}, {world.FactionUnderground, 0.4}},
		GiverProb: 0.2,
	},
	{
		Profession: world.ProfessionTechie, Hacking: +2, Wealth: +1,
		Factions:  []weighted[world.Faction]{{world.FactionIndependent, 0.7}, {world.FactionCorporate, 0.3}},
		GiverProb: 0.2,
	},
	{
		Profession: world.ProfessionMedtech, Charisma: +1, Wealth: +2,
		Factions:  []weighted[world.Faction]{{world.FactionIndependent, 0.6}, {world.FactionCorporate, 0.4}},
		GiverProb: 0.2,
	},
	{
		Profession: world.ProfessionJournalist, Charisma: +2, Importance: +1,
		Factions:  []weighted[world.Faction]{{world.FactionIndependent, 0.8}, {world.FactionGovernment, 0.2}},
		GiverProb: 0.4,
	},
	{
		Profession: world.ProfessionStreetKid, Combat: +1,
		Factions:  []weighted[world.Faction]{{world.FactionUnderground, 0.5}, {world.FactionIndependent, 0.5}},
		GiverProb: 0.1,
	},
	{
		Profession: world.ProfessionPolice, Combat: +2, Importance: +1,
		Factions:  []weighted[world.Faction]{{world.FactionGovernment, 0.9}, {world.FactionCorporate, 0.1}},
		GiverProb: 0.2,
	},
	{
		Profession: world.ProfessionSmuggler, Combat: +1, Charisma: +1, Wealth: +1,
		Factions:  []weighted[world.Faction]{{world.FactionUnderground, 0.6}, {world.FactionNomad, 0.4}},
		GiverProb: 0.5,
	},
}

// archetypeProfessions skews who lives where. Districts without an entry draw
// uniformly.
var archetypeProfessions = map[string][]world.Profession{
	"financial":  {world.ProfessionCorpExec, world.ProfessionFixer, world.ProfessionJournalist},
	"corporate":  {world.ProfessionCorpExec, world.ProfessionTechie, world.ProfessionNetrunner},
	"government": {world.ProfessionPolice, world.ProfessionCorpExec, world.ProfessionJournalist},
	"slums":      {world.ProfessionStreetKid, world.ProfessionMercenary, world.ProfessionSmuggler},
	"underground": {
		world.ProfessionNetrunner, world.ProfessionFixer,
		world.ProfessionSmuggler, world.ProfessionMercenary,
	},
	"harbor":     {world.ProfessionSmuggler, world.ProfessionMercenary, world.ProfessionTechie},
	"industrial": {world.ProfessionTechie, world.ProfessionStreetKid, world.ProfessionMercenary},
}

// populate creates the world's characters, their carried devices, the mission
// chains, and the story elements.
func (g *Generator) populate(ctx context.Context, r *Run, w *world.World) error {
	locations, err := g.store.Locations.ListByWorld(ctx, w.ID)
	if err != nil {
		return err
	}

	characters := make([]*world.Character, 0)
	for _, loc := range locations {
		if loc.Kind == world.LocationKindCity {
			continue
		}
		count := r.IntBetween(2, 5)
		if loc.Kind == world.LocationKindSpecial {
			count = r.IntBetween(1, 3)
		}
		for i := 0; i < count; i++ {
			c, err := g.generateCharacter(ctx, r, w, loc)
			if err != nil {
				return err
			}
			characters = append(characters, c)
		}
	}

	missions, err := g.generateMissions(ctx, r, w, characters, locations)
	if err != nil {
		return err
	}

	return g.generateStoryElements(ctx, r, w, characters, missions, locations)
}

// generateCharacter creates one inhabitant. Roughly 40% carry a personal
// device on the network.
func (g *Generator) generateCharacter(ctx context.Context, r *Run, w *world.World, loc *world.Location) (*world.Character, error) {
	spec := pickProfession(r, loc.Archetype)
	c := &world.Character{
		ID:         r.NewID(),
		WorldID:    w.ID,
		LocationID: loc.ID,
		Name:       personName(r),
		Profession: spec.Profession,
		Faction:    pickWeighted(r, spec.Factions),
		Importance: traitScore(r, spec.Importance),
		Hacking:    traitScore(r, spec.Hacking),
		Combat:     traitScore(r, spec.Combat),
		Charisma:   traitScore(r, spec.Charisma),
		Wealth:     traitScore(r, spec.Wealth),
		CreatedAt:  r.Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generated character %q: %w", c.Name, err)
	}
	if err := g.store.Population.CreateCharacter(ctx, c); err != nil {
		return nil, err
	}
	g.metrics.EntityGenerated("character")

	if r.Chance(0.4) {
		ownerID := c.ID
		dtype := world.DevicePersonalDeck
		if r.Chance(0.3) {
			dtype = world.DeviceImplantHub
		}
		d := &world.Device{
			ID:            r.NewID(),
			WorldID:       w.ID,
			LocationID:    loc.ID,
			OwnerID:       &ownerID,
			Type:          dtype,
			OS:            deviceOS(r, clampInt(c.Hacking/2, world.MinSecurityLevel, world.MaxSecurityLevel)),
			SecurityLevel: clampInt((c.Hacking+1)/2, world.MinSecurityLevel, world.MaxSecurityLevel),
			IPAddress:     nextIP(r),
			CreatedAt:     r.Now(),
		}
		if err := g.createDevice(ctx, r, d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func pickProfession(r *Run, archetype string) professionSpec {
	if profs, ok := archetypeProfessions[archetype]; ok && r.Chance(0.7) {
		want := Pick(r, profs)
		for _, spec := range professionSpecs {
			if spec.Profession == want {
				return spec
			}
		}
	}
	return Pick(r, professionSpecs)
}

func traitScore(r *Run, bias int) int {
	return clampInt(r.IntBetween(1, 6)+bias, world.MinTraitScore, world.MaxTraitScore)
}

var missionTypes = []world.MissionType{
	world.MissionInfiltration, world.MissionDataTheft, world.MissionCourier,
	world.MissionEscort, world.MissionSabotage, world.MissionInvestigate,
}

// objectiveTypesFor leads each mission type with its signature objective; the
// remaining slots draw from the full set.
var leadObjectives = map[world.MissionType]world.ObjectiveType{
	world.MissionInfiltration: world.ObjectiveReach,
	world.MissionDataTheft:    world.ObjectiveHack,
	world.MissionCourier:      world.ObjectiveRetrieve,
	world.MissionEscort:       world.ObjectiveTalk,
	world.MissionSabotage:     world.ObjectiveEliminate,
	world.MissionInvestigate:  world.ObjectiveTalk,
}

var objectiveTypes = []world.ObjectiveType{
	world.ObjectiveReach, world.ObjectiveRetrieve, world.ObjectiveHack,
	world.ObjectiveTalk, world.ObjectiveEliminate,
}

// generateMissions builds the mission chains. The first few missions form the
// main quest; each mission gets 1-5 ordered objectives.
func (g *Generator) generateMissions(ctx context.Context, r *Run, w *world.World, characters []*world.Character, locations []*world.Location) ([]*world.Mission, error) {
	count := w.Complexity * r.IntBetween(2, 4)
	mainQuests := clampInt(w.Complexity, 1, 3)

	missions := make([]*world.Mission, 0, count)
	for i := 0; i < count; i++ {
		mtype := Pick(r, missionTypes)
		difficulty := r.IntBetween(1, 5)
		isMain := i < mainQuests

		m := &world.Mission{
			ID:            r.NewID(),
			WorldID:       w.ID,
			Type:          mtype,
			Title:         missionTitle(r, mtype),
			Description:   missionDescription(r, mtype),
			Difficulty:    difficulty,
			RewardCredits: difficulty * r.IntBetween(200, 600),
			RewardXP:      difficulty * r.IntBetween(50, 150),
			IsMainQuest:   isMain,
			IsRepeatable:  !isMain && r.Chance(0.2),
			IsHidden:      !isMain && r.Chance(0.1),
			CreatedAt:     r.Now(),
		}
		if giver := pickGiver(r, characters); giver != nil {
			giverID := giver.ID
			locationID := giver.LocationID
			m.GiverID = &giverID
			m.LocationID = &locationID
		} else if len(locations) > 0 {
			locationID := Pick(r, locations).ID
			m.LocationID = &locationID
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("invalid generated mission %q: %w", m.Title, err)
		}
		if err := g.store.Population.CreateMission(ctx, m); err != nil {
			return nil, err
		}
		g.metrics.EntityGenerated("mission")

		if err := g.generateObjectives(ctx, r, m, characters, locations); err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, nil
}

// pickGiver samples a mission giver weighted by profession; fixers and corp
// execs hand out most of the work.
func pickGiver(r *Run, characters []*world.Character) *world.Character {
	if len(characters) == 0 {
		return nil
	}
	table := make([]weighted[*world.Character], 0, len(characters))
	for _, c := range characters {
		for _, spec := range professionSpecs {
			if spec.Profession == c.Profession {
				table = append(table, weighted[*world.Character]{Value: c, Weight: spec.GiverProb})
				break
			}
		}
	}
	if len(table) == 0 {
		return Pick(r, characters)
	}
	return pickWeighted(r, table)
}

func (g *Generator) generateObjectives(ctx context.Context, r *Run, m *world.Mission, characters []*world.Character, locations []*world.Location) error {
	count := r.IntBetween(world.MinObjectivesPerMission, world.MaxObjectivesPerMission)
	for i := 0; i < count; i++ {
		otype := Pick(r, objectiveTypes)
		if i == 0 {
			otype = leadObjectives[m.Type]
		}
		o := &world.Objective{
			ID:         r.NewID(),
			WorldID:    m.WorldID,
			MissionID:  m.ID,
			Type:       otype,
			Target:     objectiveTarget(r, otype, characters, locations),
			Optional:   i > 0 && r.Chance(0.2),
			OrderIndex: i,
			CreatedAt:  r.Now(),
		}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("invalid generated objective: %w", err)
		}
		if err := g.store.Population.CreateObjective(ctx, o); err != nil {
			return err
		}
		g.metrics.EntityGenerated("objective")
	}
	return nil
}

func objectiveTarget(r *Run, t world.ObjectiveType, characters []*world.Character, locations []*world.Location) string {
	switch t {
	case world.ObjectiveReach:
		if len(locations) > 0 {
			return Pick(r, locations).Name
		}
	case world.ObjectiveTalk, world.ObjectiveEliminate:
		if len(characters) > 0 {
			return Pick(r, characters).Name
		}
	case world.ObjectiveHack:
		return Pick(r, []string{"mainframe", "security grid", "data vault", "comms relay"})
	case world.ObjectiveRetrieve:
		return Pick(r, []string{"data shard", "prototype chip", "encrypted case", "medical supplies"})
	}
	return "unknown"
}

// generateStoryElements writes the narrative fragments. About 60% are revealed
// from the start; the rest carry a reveal condition, validated before storage
// so nothing unparseable ever reaches the database.
func (g *Generator) generateStoryElements(ctx context.Context, r *Run, w *world.World, characters []*world.Character, missions []*world.Mission, locations []*world.Location) error {
	count := w.Complexity * r.IntBetween(2, 4)
	for i := 0; i < count; i++ {
		s := &world.StoryElement{
			ID:                r.NewID(),
			WorldID:           w.ID,
			Title:             storyTitle(r),
			Text:              storyText(r),
			RevealedByDefault: r.Chance(0.6),
			CreatedAt:         r.Now(),
		}
		switch r.IntN(3) {
		case 0:
			if len(locations) > 0 {
				id := Pick(r, locations).ID
				s.LocationID = &id
			}
		case 1:
			if len(characters) > 0 {
				id := Pick(r, characters).ID
				s.CharacterID = &id
			}
		case 2:
			if len(missions) > 0 {
				id := Pick(r, missions).ID
				s.MissionID = &id
			}
		}
		if !s.RevealedByDefault {
			cond := g.buildRevealCondition(r, missions, locations)
			if _, err := storycond.Parse(cond); err != nil {
				return fmt.Errorf("generated unparseable reveal condition %q: %w", cond, err)
			}
			s.RevealCondition = cond
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid generated story element %q: %w", s.Title, err)
		}
		if err := g.store.Population.CreateStoryElement(ctx, s); err != nil {
			return err
		}
		g.metrics.EntityGenerated("story_element")
	}
	return nil
}

var revealTraits = []string{"importance", "hacking", "combat", "charisma", "wealth"}

// buildRevealCondition assembles a condition from the storycond builders, so
// it is valid by construction. Conditions reference real generated entities.
func (g *Generator) buildRevealCondition(r *Run, missions []*world.Mission, locations []*world.Location) string {
	parts := []string{storycond.TraitAtLeast(Pick(r, revealTraits), r.IntBetween(3, 8))}
	if len(missions) > 0 && r.Chance(0.5) {
		parts = append(parts, storycond.MissionDone(Pick(r, missions).ID))
	}
	if len(locations) > 0 && r.Chance(0.3) {
		parts = append(parts, storycond.AtLocation(Pick(r, locations).ID))
	}
	if len(parts) > 1 && r.Chance(0.3) {
		return storycond.Or(parts...)
	}
	return storycond.And(parts...)
}

var (
	missionTitleVerbs = map[world.MissionType][]string{
		world.MissionInfiltration: {"Ghost Entry", "Inside Job", "Silent Floor"},
		world.MissionDataTheft:    {"Cold Copy", "Vault Dive", "Zero-Day Harvest"},
		world.MissionCourier:      {"Dead Drop", "Red Parcel", "Last Mile"},
		world.MissionEscort:       {"Safe Passage", "Shadow Walk", "Close Cover"},
		world.MissionSabotage:     {"Blackout Run", "Broken Gears", "Static Storm"},
		world.MissionInvestigate:  {"Cold Trail", "Open Questions", "Paper Ghosts"},
	}
	storyTitles = []string{
		"The Blackout of '58", "Whispers on the Grid", "The Severance Protocol",
		"Ash Economy", "A Debt in Chrome", "The Hollow Signal", "Broken Icons",
		"Night Shift Gospel", "The Last Honest Cop", "Static Between Stations",
	}
	storyTexts = []string{
		"They say the grid never forgets, but somebody paid a lot of money to make it forget this.",
		"Before the towers went up, this block belonged to the dockworkers' union. Three weeks of fires changed that.",
		"The encryption on the old archive predates every corp on the exchange. Nobody knows who holds the keys.",
		"Every fixer in the district knows the name, and every one of them pretends not to.",
		"The refugees came after the reservoir turned. The city never counted them; the syndicates did.",
		"An entire floor of the tower is missing from the public schematics. The elevators skip it too.",
	}
)

func missionTitle(r *Run, t world.MissionType) string {
	return Pick(r, missionTitleVerbs[t])
}

func missionDescription(r *Run, t world.MissionType) string {
	return fmt.Sprintf("A %s job. %s", displayWord(string(t)), Pick(r, []string{
		"Payment on completion, no questions asked.",
		"The client insists on discretion.",
		"Time-sensitive. The window closes at dawn.",
		"Word is the opposition already knows.",
	}))
}

func storyTitle(r *Run) string {
	return Pick(r, storyTitles)
}

func storyText(r *Run) string {
	return Pick(r, storyTexts)
}
