// Copyright (c) 2026 Knihovna. All rights reserved.

package author

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
	autors *mongo.Collection
	logger *slog.Logger
}

// NewMongoRepository creates a MongoDB-backed author repository.
func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		autors: db.Collection(constants.CollectionAuthors),
		logger: logger,
	}
}

func (r *MongoRepository) List(ctx context.Context, opts query.Options) (*query.Result, error) {
	return query.Fetch(ctx, r.autors, opts, nil, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error) {
	var a Author
	err := r.autors.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Author")
	}
	if err != nil {
		return nil, fmt.Errorf("finding author %s: %w", id.Hex(), err)
	}
	return &a, nil
}

func (r *MongoRepository) FindByName(ctx context.Context, firstName, lastName string) (*Author, error) {
	filter := bson.M{
		"firstName": firstName,
		"lastName":  lastName,
		"deletedAt": nil,
	}

	var a Author
	err := r.autors.FindOne(ctx, filter).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Author")
	}
	if err != nil {
		return nil, fmt.Errorf("finding author by name: %w", err)
	}
	return &a, nil
}

func (r *MongoRepository) Create(ctx context.Context, a *Author) error {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.NormalizedSearchField = buildIndex(a)

	if _, err := r.autors.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("inserting author: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, a *Author) error {
	a.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"birthYear": a.BirthYear,
		"deathYear": a.DeathYear,
		"portrait":  a.Portrait,
		"updatedAt": a.UpdatedAt,
	}
	if index := buildIndex(a); index != nil {
		set["normalizedSearchField"] = index
	}

	res, err := r.autors.UpdateOne(ctx, bson.M{"_id": a.ID, "deletedAt": nil}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating author %s: %w", a.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.autors.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("deleting author %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}
