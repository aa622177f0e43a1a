// Copyright (c) 2026 Knihovna. All rights reserved.

package book

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
	books    *mongo.Collection
	autors   *mongo.Collection
	registry *query.Registry
	logger   *slog.Logger
}

// NewMongoRepository creates a MongoDB-backed book repository.
func NewMongoRepository(db *mongo.Database, registry *query.Registry, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		books:    db.Collection(constants.CollectionBooks),
		autors:   db.Collection(constants.CollectionAuthors),
		registry: registry,
		logger:   logger,
	}
}

func (r *MongoRepository) List(ctx context.Context, opts query.Options) (*query.Result, error) {
	lookups := []bson.D{
		r.registry.Lookup(constants.CollectionAuthors, "autor", "autor"),
		r.registry.Lookup(constants.CollectionAuthors, "editor", "editor"),
		r.registry.Lookup(constants.CollectionAuthors, "ilustrator", "ilustrator"),
		r.registry.Lookup(constants.CollectionAuthors, "translator", "translator"),
	}
	return query.Fetch(ctx, r.books, opts, lookups, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error) {
	var b Book
	err := r.books.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, fmt.Errorf("finding book %s: %w", id.Hex(), err)
	}
	return &b, nil
}

func (r *MongoRepository) Create(ctx context.Context, b *Book) error {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.NormalizedSearchField = r.searchIndex(ctx, b)

	if _, err := r.books.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, b *Book) error {
	b.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"title":      b.Title,
		"subtitle":   b.Subtitle,
		"ISBN":       b.ISBN,
		"edition":    b.Edition,
		"serie":      b.Serie,
		"note":       b.Note,
		"pages":      b.Pages,
		"content":    b.Content,
		"readings":   b.Readings,
		"published":  b.Published,
		"dimensions": b.Dimensions,
		"autor":      b.Autor,
		"editor":     b.Editor,
		"ilustrator": b.Ilustrator,
		"translator": b.Translator,
		"updatedAt":  b.UpdatedAt,
	}
	// A failed normalization keeps the previous index rather than blocking
	// the write.
	if index := r.searchIndex(ctx, b); index != nil {
		set["normalizedSearchField"] = index
	}

	res, err := r.books.UpdateOne(ctx, bson.M{"_id": b.ID, "deletedAt": nil}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating book %s: %w", b.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.books.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("deleting book %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// searchIndex rebuilds the normalized search document for b. Reference
// resolution failures are logged and yield nil so the caller's write still
// goes through.
func (r *MongoRepository) searchIndex(ctx context.Context, b *Book) bson.M {
	names := make([][]string, 4)
	for i, refs := range [][]primitive.ObjectID{b.Autor, b.Editor, b.Ilustrator, b.Translator} {
		resolved, err := r.resolveNames(ctx, refs)
		if err != nil {
			r.logger.Warn("search index skipped",
				slog.String("collection", constants.CollectionBooks),
				slog.String("id", b.ID.Hex()),
				slog.String("error", err.Error()))
			return nil
		}
		names[i] = resolved
	}
	return buildIndex(b, names[0], names[1], names[2], names[3])
}

// resolveNames maps author references to full names, preserving the order of
// ids. Unknown references resolve to an empty string and are dropped by the
// index builder.
func (r *MongoRepository) resolveNames(ctx context.Context, ids []primitive.ObjectID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{"firstName": 1, "lastName": 1})
	cursor, err := r.autors.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving author names: %w", err)
	}

	var docs []struct {
		ID        primitive.ObjectID `bson:"_id"`
		FirstName string             `bson:"firstName"`
		LastName  string             `bson:"lastName"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding author names: %w", err)
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
