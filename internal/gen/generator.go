// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

var tracer = otel.Tracer("shadowgrid/gen")

// Generator runs world generation. All writes of one run happen inside a
// single transaction: a failed run leaves no partial world behind.
type Generator struct {
	store   world.Store
	tx      world.Transactor
	log     *slog.Logger
	metrics *Metrics
	rarity  *RarityEngine
	clock   func() time.Time
}

// GeneratorOption configures a Generator during construction.
type GeneratorOption func(*Generator)

// WithLogger configures the generator's logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.log = log
	}
}

// WithMetrics configures the generator's metrics recorder. If not provided,
// nothing is recorded.
func WithMetrics(m *Metrics) GeneratorOption {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithClock configures the time source feeding generated IDs and timestamps.
// Tests fix it to make runs byte-for-byte reproducible.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithRarityEngine replaces the built-in rarity engine. Construct one with
// NewRarityEngineWithTables to supply custom weight tables.
func WithRarityEngine(engine *RarityEngine) GeneratorOption {
	return func(g *Generator) {
		g.rarity = engine
	}
}

// NewGenerator creates a generator writing through the given store. The
// built-in rarity tables are validated here; a malformed table aborts
// construction rather than a later run.
func NewGenerator(store world.Store, tx world.Transactor, opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		store: store,
		tx:    tx,
		log:   slog.Default(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rarity == nil {
		engine, err := NewRarityEngine()
		if err != nil {
			return nil, err
		}
		g.rarity = engine
	}
	return g, nil
}

// GenerateRequest carries the parameters of one generation run.
type GenerateRequest struct {
	Name       string
	Author     string
	Complexity int
	Seed       *int64 // nil draws a fresh seed from the OS entropy source
}

// Validate checks the request before any write happens.
func (req *GenerateRequest) Validate() error {
	if err := world.ValidateName(req.Name); err != nil {
		return err
	}
	if req.Complexity < world.MinComplexity || req.Complexity > world.MaxComplexity {
		return world.ErrInvalidComplexity
	}
	return nil
}

// GenerateWorld runs the full generation pipeline and returns the new world's
// ID. The world row is written first so every other entity can reference it;
// all phases share one transaction.
func (g *Generator) GenerateWorld(ctx context.Context, req GenerateRequest) (ulid.ULID, error) {
	if err := req.Validate(); err != nil {
		return ulid.ULID{}, err
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		drawn, err := DrawSeed()
		if err != nil {
			return ulid.ULID{}, err
		}
		seed = drawn
	}

	r := NewRunAt(seed, g.clock())
	w := &world.World{
		ID:         r.NewID(),
		Name:       req.Name,
		Author:     req.Author,
		Seed:       seed,
		Complexity: req.Complexity,
		CreatedAt:  r.Now(),
	}
	if err := w.Validate(); err != nil {
		return ulid.ULID{}, err
	}

	ctx, span := tracer.Start(ctx, "gen.generate_world",
		trace.WithAttributes(
			attribute.String("world.id", w.ID.String()),
			attribute.Int64("world.seed", seed),
			attribute.Int("world.complexity", w.Complexity),
		),
	)
	defer span.End()

	start := time.Now()
	err := g.tx.InTransaction(ctx, func(ctx context.Context) error {
		phases := []struct {
			name string
			fn   func(ctx context.Context) error
		}{
			{"world", func(ctx context.Context) error { return g.store.Worlds.Create(ctx, w) }},
			{"locations", func(ctx context.Context) error {
				_, err := g.generateLocations(ctx, r, w)
				return err
			}},
			{"connectivity", func(ctx context.Context) error { return g.weaveConnections(ctx, r, w) }},
			{"structures", func(ctx context.Context) error {
				_, err := g.expandStructures(ctx, r, w)
				return err
			}},
			{"population", func(ctx context.Context) error { return g.populate(ctx, r, w) }},
			{"items", func(ctx context.Context) error { return g.placeLoot(ctx, r, w) }},
			{"shops", func(ctx context.Context) error { return g.assembleShops(ctx, r, w) }},
		}
		for _, phase := range phases {
			if err := g.runPhase(ctx, phase.name, phase.fn); err != nil {
				return oops.Code("GENERATION_FAILED").
					With("phase", phase.name).
					With("world_id", w.ID.String()).
					With("seed", seed).
					Wrap(err)
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ulid.ULID{}, err
	}

	g.metrics.WorldGenerated()
	g.log.InfoContext(ctx, "world generated",
		"world_id", w.ID.String(),
		"name", w.Name,
		"seed", seed,
		"complexity", w.Complexity,
		"duration", time.Since(start),
	)
	return w.ID, nil
}

// runPhase wraps one generation phase with a span, timing, and failure
// accounting.
func (g *Generator) runPhase(ctx context.Context, phase string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "gen.phase."+phase)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	g.metrics.ObservePhase(phase, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.metrics.PhaseFailed(phase)
		return err
	}
	g.log.DebugContext(ctx, "generation phase complete",
		"phase", phase,
		"duration", time.Since(start),
	)
	return nil
}

// RestockShop clears and regenerates one shop's inventory. With a nil seed a
// fresh one is drawn, so each restock offers different stock; a fixed seed
// reproduces the same shelf.
func (g *Generator) RestockShop(ctx context.Context, worldID, shopID ulid.ULID, seed *int64) error {
	w, err := g.store.Worlds.Get(ctx, worldID)
	if err != nil {
		return err
	}
	s, err := g.store.Shops.Get(ctx, shopID)
	if err != nil {
		return err
	}
	if s.WorldID != worldID {
		return world.ErrNotFound
	}

	restockSeed := int64(0)
	if seed != nil {
		restockSeed = *seed
	} else {
		drawn, err := DrawSeed()
		if err != nil {
			return err
		}
		restockSeed = drawn
	}
	r := NewRunAt(restockSeed, g.clock())

	err = g.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := g.store.Shops.ClearInventory(ctx, s.ID); err != nil {
			return err
		}
		return g.stockShop(ctx, r, w, s)
	})
	if err != nil {
		return oops.Code("RESTOCK_FAILED").
			With("world_id", worldID.String()).
			With("shop_id", shopID.String()).
			Wrap(err)
	}

	g.log.InfoContext(ctx, "shop restocked",
		"world_id", worldID.String(),
		"shop_id", shopID.String(),
		"seed", restockSeed,
	)
	return nil
}

// DeleteWorld removes a world; the schema cascades the delete to everything
// the world owns.
func (g *Generator) DeleteWorld(ctx context.Context, id ulid.ULID) error {
	if err := g.store.Worlds.Delete(ctx, id); err != nil {
		return err
	}
	g.log.InfoContext(ctx, "world deleted", "world_id", id.String())
	return nil
}

// ListWorlds returns all generated worlds, newest first.
func (g *Generator) ListWorlds(ctx context.Context) ([]*world.World, error) {
	return g.store.Worlds.List(ctx)
}

// GetWorld returns one world by ID.
func (g *Generator) GetWorld(ctx context.Context, id ulid.ULID) (*world.World, error) {
	return g.store.Worlds.Get(ctx, id)
}
