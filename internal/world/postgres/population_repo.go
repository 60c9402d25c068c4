// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// PopulationRepository implements world.PopulationRepository using PostgreSQL.
type PopulationRepository struct {
	db DB
}

// NewPopulationRepository creates a new PopulationRepository.
func NewPopulationRepository(db DB) *PopulationRepository {
	return &PopulationRepository{db: db}
}

// CreateCharacter persists a new character.
func (r *PopulationRepository) CreateCharacter(ctx context.Context, c *world.Character) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO characters (id, world_id, location_id, name, profession, faction,
			importance, hacking, combat, charisma, wealth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, c.ID.String(), c.WorldID.String(), c.LocationID.String(), c.Name,
		string(c.Profession), string(c.Faction),
		c.Importance, c.Hacking, c.Combat, c.Charisma, c.Wealth, c.CreatedAt)
	if err != nil {
		return oops.With("operation", "create character").With("id", c.ID.String()).Wrap(err)
	}
	return nil
}

// CreateMission persists a new mission.
func (r *PopulationRepository) CreateMission(ctx context.Context, m *world.Mission) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO missions (id, world_id, type, title, description, difficulty,
			giver_id, location_id, reward_credits, reward_xp,
			is_main_quest, is_repeatable, is_hidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, m.ID.String(), m.WorldID.String(), string(m.Type), m.Title, m.Description, m.Difficulty,
		ulidToStringPtr(m.GiverID), ulidToStringPtr(m.LocationID), m.RewardCredits, m.RewardXP,
		m.IsMainQuest, m.IsRepeatable, m.IsHidden, m.CreatedAt)
	if err != nil {
		return oops.With("operation", "create mission").With("id", m.ID.String()).Wrap(err)
	}
	return nil
}

// CreateObjective persists a new mission objective.
func (r *PopulationRepository) CreateObjective(ctx context.Context, o *world.Objective) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO objectives (id, world_id, mission_id, type, target, optional, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, o.ID.String(), o.WorldID.String(), o.MissionID.String(), string(o.Type),
		o.Target, o.Optional, o.OrderIndex, o.CreatedAt)
	if err != nil {
		return oops.With("operation", "create objective").With("id", o.ID.String()).Wrap(err)
	}
	return nil
}

// CreateStoryElement persists a new story element.
func (r *PopulationRepository) CreateStoryElement(ctx context.Context, s *world.StoryElement) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO story_elements (id, world_id, title, text, location_id, character_id,
			mission_id, revealed_by_default, reveal_condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID.String(), s.WorldID.String(), s.Title, s.Text,
		ulidToStringPtr(s.LocationID), ulidToStringPtr(s.CharacterID), ulidToStringPtr(s.MissionID),
		s.RevealedByDefault, s.RevealCondition, s.CreatedAt)
	if err != nil {
		return oops.With("operation", "create story element").With("id", s.ID.String()).Wrap(err)
	}
	return nil
}

// ListCharactersByWorld returns a world's characters in creation order.
func (r *PopulationRepository) ListCharactersByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Character, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `
		SELECT id, world_id, location_id, name, profession, faction,
			importance, hacking, combat, charisma, wealth, created_at
		FROM characters WHERE world_id = $1 ORDER BY seq
	`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list characters").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()

	characters := make([]*world.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate characters").Wrap(err)
	}
	return characters, nil
}

func scanCharacter(row pgx.Row) (*world.Character, error) {
	var c world.Character
	var idStr, worldIDStr, locIDStr, profStr, factionStr string
	if err := row.Scan(&idStr, &worldIDStr, &locIDStr, &c.Name, &profStr, &factionStr,
		&c.Importance, &c.Hacking, &c.Combat, &c.Charisma, &c.Wealth, &c.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan character").Wrap(err)
	}
	var err error
	if c.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse character id").With("id", idStr).Wrap(err)
	}
	if c.WorldID, err = ulid.Parse(worldIDStr); err != nil {
		return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
	}
	if c.LocationID, err = ulid.Parse(locIDStr); err != nil {
		return nil, oops.With("operation", "parse location id").With("location_id", locIDStr).Wrap(err)
	}
	c.Profession = world.Profession(profStr)
	c.Faction = world.Faction(factionStr)
	return &c, nil
}

// Compile-time interface check.
var _ world.PopulationRepository = (*PopulationRepository)(nil)
