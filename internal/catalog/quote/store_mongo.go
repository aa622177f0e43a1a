// Copyright (c) 2026 Knihovna. All rights reserved.

package quote

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
	quotes   *mongo.Collection
	registry *query.Registry
	logger   *slog.Logger
}

// NewMongoRepository creates a MongoDB-backed quote repository.
func NewMongoRepository(db *mongo.Database, registry *query.Registry, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		quotes:   db.Collection(constants.CollectionQuotes),
		registry: registry,
		logger:   logger,
	}
}

func (r *MongoRepository) List(ctx context.Context, opts query.Options) (*query.Result, error) {
	lookups := []bson.D{
		r.registry.Lookup(constants.CollectionAuthors, "autor", "autor"),
		r.registry.Lookup(constants.CollectionBooks, "book", "book"),
	}
	return query.Fetch(ctx, r.quotes, opts, lookups, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Quote, error) {
	var q Quote
	err := r.quotes.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Quote")
	}
	if err != nil {
		return nil, fmt.Errorf("finding quote %s: %w", id.Hex(), err)
	}
	return &q, nil
}

func (r *MongoRepository) Random(ctx context.Context) (*Quote, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query.NotDeleted()}},
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cursor, err := r.quotes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sampling quote: %w", err)
	}

	var quotes []Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("decoding sampled quote: %w", err)
	}
	if len(quotes) == 0 {
		return nil, apperr.NotFound("Quote")
	}
	return &quotes[0], nil
}

func (r *MongoRepository) Create(ctx context.Context, q *Quote) error {
	now := time.Now().UTC()
	q.ID = primitive.NewObjectID()
	q.CreatedAt = now
	q.UpdatedAt = now

	if _, err := r.quotes.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, q *Quote) error {
	q.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"text":      q.Text,
		"note":      q.Note,
		"autor":     q.Autor,
		"book":      q.Book,
		"updatedAt": q.UpdatedAt,
	}

	res, err := r.quotes.UpdateOne(ctx, bson.M{"_id": q.ID, "deletedAt": nil}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating quote %s: %w", q.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Quote")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.quotes.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("deleting quote %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Quote")
	}
	return nil
}
