// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Profession identifies a character's line of work.
type Profession string

// Professions.
const (
	ProfessionCorpExec   Profession = "corp_exec"
	ProfessionNetrunner  Profession = "netrunner"
	ProfessionFixer      Profession = "fixer"
	ProfessionMercenary  Profession = "mercenary"
	ProfessionTechie     Profession = "techie"
	ProfessionMedtech    Profession = "medtech"
	ProfessionJournalist Profession = "journalist"
	ProfessionStreetKid  Profession = "street_kid"
	ProfessionPolice     Profession = "police"
	ProfessionSmuggler   Profession = "smuggler"
)

// Faction identifies a character's allegiance.
type Faction string

// Factions.
const (
	FactionCorporate   Faction = "corporate"
	FactionUnderground Faction = "underground"
	FactionGovernment  Faction = "government"
	FactionNomad       Faction = "nomad"
	FactionIndependent Faction = "independent"
)

// Trait score bounds.
const (
	MinTraitScore = 1
	MaxTraitScore = 10
)

// Character is a generated inhabitant of the world. The five trait scores are
// sampled independently but biased by profession.
type Character struct {
	ID         ulid.ULID
	WorldID    ulid.ULID
	LocationID ulid.ULID
	Name       string
	Profession Profession
	Faction    Faction
	Importance int
	Hacking    int
	Combat     int
	Charisma   int
	Wealth     int
	CreatedAt  time.Time
}

// Validate checks the character's fields.
func (c *Character) Validate() error {
	if c.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if c.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if c.LocationID.IsZero() {
		return &ValidationError{Field: "location_id", Message: "cannot be zero"}
	}
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	for _, trait := range []struct {
		name  string
		score int
	}{
		{"importance", c.Importance},
		{"hacking", c.Hacking},
		{"combat", c.Combat},
		{"charisma", c.Charisma},
		{"wealth", c.Wealth},
	} {
		if trait.score < MinTraitScore || trait.score > MaxTraitScore {
			return &ValidationError{Field: trait.name, Message: "must be between 1 and 10"}
		}
	}
	return nil
}
