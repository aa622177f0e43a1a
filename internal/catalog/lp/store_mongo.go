// Copyright (c) 2026 Knihovna. All rights reserved.

package lp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/constants"
)

// MongoRepository implements Repository on top of MongoDB.
type MongoRepository struct {
	lps      *mongo.Collection
	registry *query.Registry
	logger   *slog.Logger
}

// NewMongoRepository creates a MongoDB-backed LP repository.
func NewMongoRepository(db *mongo.Database, registry *query.Registry, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		lps:      db.Collection(constants.CollectionLPs),
		registry: registry,
		logger:   logger,
	}
}

func (r *MongoRepository) List(ctx context.Context, opts query.Options) (*query.Result, error) {
	lookups := []bson.D{
		r.registry.Lookup(constants.CollectionAuthors, "autor", "autor"),
	}
	return query.Fetch(ctx, r.lps, opts, lookups, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*LP, error) {
	var record LP
	err := r.lps.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("LP")
	}
	if err != nil {
		return nil, fmt.Errorf("finding lp %s: %w", id.Hex(), err)
	}
	return &record, nil
}

func (r *MongoRepository) Create(ctx context.Context, lp *LP) error {
	now := time.Now().UTC()
	lp.ID = primitive.NewObjectID()
	lp.CreatedAt = now
	lp.UpdatedAt = now
	lp.NormalizedSearchField = buildIndex(lp)

	if _, err := r.lps.InsertOne(ctx, lp); err != nil {
		return fmt.Errorf("inserting lp: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, lp *LP) error {
	lp.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"title":     lp.Title,
		"subtitle":  lp.Subtitle,
		"note":      lp.Note,
		"speed":     lp.Speed,
		"countLp":   lp.CountLP,
		"published": lp.Published,
		"autor":     lp.Autor,
		"updatedAt": lp.UpdatedAt,
	}
	if index := buildIndex(lp); index != nil {
		set["normalizedSearchField"] = index
	}

	res, err := r.lps.UpdateOne(ctx, bson.M{"_id": lp.ID, "deletedAt": nil}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating lp %s: %w", lp.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("LP")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.lps.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("deleting lp %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("LP")
	}
	return nil
}
