// Copyright (c) 2026 Knihovna. All rights reserved.

package boardgame

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/constants"
)

// MongoRepository implements Repository on top of MongoDB.
type MongoRepository struct {
	games    *mongo.Collection
	autors   *mongo.Collection
	registry *query.Registry
	logger   *slog.Logger
}

// NewMongoRepository creates a MongoDB-backed board game repository.
func NewMongoRepository(db *mongo.Database, registry *query.Registry, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		games:    db.Collection(constants.CollectionBoardGames),
		autors:   db.Collection(constants.CollectionAuthors),
		registry: registry,
		logger:   logger,
	}
}

func (r *MongoRepository) List(ctx context.Context, opts query.Options, filter Filter) (*query.Result, error) {
	lookups := []bson.D{
		r.registry.Lookup(constants.CollectionAuthors, "autor", "autor"),
	}

	var extra bson.M
	if filter.Parent != nil {
		if filter.Parent.IsZero() {
			extra = bson.M{"parent": nil}
		} else {
			extra = bson.M{"parent": *filter.Parent}
		}
	}

	return query.Fetch(ctx, r.games, opts, lookups, extra)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*BoardGame, error) {
	var game BoardGame
	err := r.games.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Board game")
	}
	if err != nil {
		return nil, fmt.Errorf("finding board game %s: %w", id.Hex(), err)
	}
	return &game, nil
}

func (r *MongoRepository) Create(ctx context.Context, game *BoardGame) error {
	now := time.Now().UTC()
	game.ID = primitive.NewObjectID()
	game.CreatedAt = now
	game.UpdatedAt = now
	game.NormalizedSearchField = r.searchIndex(ctx, game)

	if _, err := r.games.InsertOne(ctx, game); err != nil {
		return fmt.Errorf("inserting board game: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, game *BoardGame) error {
	game.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"title":      game.Title,
		"autor":      game.Autor,
		"parent":     game.Parent,
		"published":  game.Published,
		"players":    game.Players,
		"dimensions": game.Dimensions,
		"updatedAt":  game.UpdatedAt,
	}
	if index := r.searchIndex(ctx, game); index != nil {
		set["normalizedSearchField"] = index
	}

	res, err := r.games.UpdateOne(ctx, bson.M{"_id": game.ID, "deletedAt": nil}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating board game %s: %w", game.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Board game")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.games.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("deleting board game %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Board game")
	}
	return nil
}

// searchIndex rebuilds the normalized search document for game. Designer
// resolution failures are logged and yield nil so the caller's write still
// goes through.
func (r *MongoRepository) searchIndex(ctx context.Context, game *BoardGame) bson.M {
	names, err := r.resolveNames(ctx, game.Autor)
	if err != nil {
		r.logger.Warn("search index skipped",
			slog.String("collection", constants.CollectionBoardGames),
			slog.String("id", game.ID.Hex()),
			slog.String("error", err.Error()))
		return nil
	}
	return buildIndex(game, names)
}

func (r *MongoRepository) resolveNames(ctx context.Context, ids []primitive.ObjectID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{"firstName": 1, "lastName": 1})
	cursor, err := r.autors.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving designer names: %w", err)
	}

	var docs []struct {
		ID        primitive.ObjectID `bson:"_id"`
		FirstName string             `bson:"firstName"`
		LastName  string             `bson:"lastName"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding designer names: %w", err)
	}

	byID := make(map[primitive.ObjectID]string, len(docs))
	for _, d := range docs {
		byID[d.ID] = query.FullName(d.FirstName, d.LastName)
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = byID[id]
	}
	return names, nil
}
