// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// MissionType identifies the kind of mission.
type MissionType string

// Mission types.
const (
	MissionInfiltration MissionType = "infiltration"
	MissionDataTheft    MissionType = "data_theft"
	MissionCourier      MissionType = "courier"
	MissionEscort       MissionType = "escort"
	MissionSabotage     MissionType = "sabotage"
	MissionInvestigate  MissionType = "investigation"
)

// Objective count bounds per mission.
const (
	MinObjectivesPerMission = 1
	MaxObjectivesPerMission = 5
)

// Mission is a job a character offers somewhere in the world.
type Mission struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	Type          MissionType
	Title         string
	Description   string
	Difficulty    int // 1..5
	GiverID       *ulid.ULID
	LocationID    *ulid.ULID
	RewardCredits int
	RewardXP      int
	IsMainQuest   bool
	IsRepeatable  bool
	IsHidden      bool
	CreatedAt     time.Time
}

// Validate checks the mission's fields.
func (m *Mission) Validate() error {
	if m.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if m.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if err := ValidateName(m.Title); err != nil {
		return err
	}
	if m.Difficulty < MinSecurityLevel || m.Difficulty > MaxSecurityLevel {
		return &ValidationError{Field: "difficulty", Message: "must be between 1 and 5"}
	}
	return nil
}

// ObjectiveType identifies the kind of mission objective.
type ObjectiveType string

// Objective types.
const (
	ObjectiveReach     ObjectiveType = "reach_location"
	ObjectiveRetrieve  ObjectiveType = "retrieve_item"
	ObjectiveHack      ObjectiveType = "hack_target"
	ObjectiveTalk      ObjectiveType = "talk_to"
	ObjectiveEliminate ObjectiveType = "eliminate"
)

// Objective is one step of a mission, ordered by OrderIndex.
type Objective struct {
	ID         ulid.ULID
	WorldID    ulid.ULID
	MissionID  ulid.ULID
	Type       ObjectiveType
	Target     string
	Optional   bool
	OrderIndex int
	CreatedAt  time.Time
}

// Validate checks the objective's fields.
func (o *Objective) Validate() error {
	if o.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if o.MissionID.IsZero() {
		return &ValidationError{Field: "mission_id", Message: "cannot be zero"}
	}
	if o.OrderIndex < 0 {
		return &ValidationError{Field: "order_index", Message: "cannot be negative"}
	}
	return nil
}

// StoryElement is a narrative fragment optionally linked to a location,
// character, or mission. Elements not revealed by default carry a reveal
// condition in the storycond DSL.
type StoryElement struct {
	ID                ulid.ULID
	WorldID           ulid.ULID
	Title             string
	Text              string
	LocationID        *ulid.ULID
	CharacterID       *ulid.ULID
	MissionID         *ulid.ULID
	RevealedByDefault bool
	RevealCondition   string // Empty when revealed by default.
	CreatedAt         time.Time
}

// Validate checks the story element's fields.
func (s *StoryElement) Validate() error {
	if s.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if s.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if s.Text == "" {
		return &ValidationError{Field: "text", Message: "cannot be empty"}
	}
	if !s.RevealedByDefault && s.RevealCondition == "" {
		return &ValidationError{Field: "reveal_condition", Message: "required when not revealed by default"}
	}
	return nil
}
