// Copyright (c) 2026 Knihovna. All rights reserved.

package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collation orders Czech text correctly, compares case-insensitively
// (strength 2) and sorts embedded numbers numerically ("Díl 10" after
// "Díl 2").
var collation = options.Collation{
	Locale:          "cs",
	Strength:        2,
	NumericOrdering: true,
}

// Fetch runs one paginated list query against coll.
//
// # Steps
//
//  1. Read the collection's latest updatedAt (deleted documents included —
//     a deletion must invalidate client caches too).
//  2. If opts.DataFrom is at or after that timestamp, short-circuit with an
//     empty result; the client's cached view is already current.
//  3. Compose the filter: soft-delete predicate ∧ search predicate ∧ extra.
//  4. Build the base pipeline: $match, then the caller's lookup stages in
//     the order supplied.
//  5. Run base + pagination stages under Czech collation for the page data.
//  6. Run the base pipeline with a $count stage for the total; the filter is
//     identical, so Count always agrees with what an unpaginated Data would
//     contain.
//
// The data and count reads are two independent round trips with no
// transactional coupling; a write landing between them can skew Count by
// one. Accepted for a low-concurrency personal catalog.
func Fetch(ctx context.Context, coll Collection, opts Options, lookups []bson.D, extra bson.M) (*Result, error) {
	latest, err := latestUpdate(ctx, coll)
	if err != nil {
		return nil, err
	}

	result := &Result{Data: []bson.M{}, LatestUpdate: latest}

	if !opts.DataFrom.IsZero() && !latest.IsZero() && !opts.DataFrom.Before(latest) {
		result.UpToDate = true
		return result, nil
	}

	base := make(mongo.Pipeline, 0, 1+len(lookups))
	base = append(base, bson.D{{Key: "$match", Value: matchFilter(opts, extra)}})
	for _, stage := range lookups {
		base = append(base, stage)
	}

	aggregateOptions := options.Aggregate().SetCollation(&collation)

	dataPipeline := append(append(mongo.Pipeline{}, base...), Paginate(opts.Page, opts.PageSize, opts.Sort)...)
	cursor, err := coll.Aggregate(ctx, dataPipeline, aggregateOptions)
	if err != nil {
		return nil, fmt.Errorf("query: %s data aggregation: %w", coll.Name(), err)
	}
	if err := cursor.All(ctx, &result.Data); err != nil {
		return nil, fmt.Errorf("query: %s data decode: %w", coll.Name(), err)
	}
	if result.Data == nil {
		result.Data = []bson.M{}
	}

	count, err := countMatches(ctx, coll, base)
	if err != nil {
		return nil, err
	}
	result.Count = count

	return result, nil
}

// latestUpdate finds the updatedAt of the most recently written document,
// or the zero time for an empty collection.
func latestUpdate(ctx context.Context, coll Collection) (time.Time, error) {
	findOptions := options.FindOne().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetProjection(bson.M{"updatedAt": 1})

	var doc struct {
		UpdatedAt time.Time `bson:"updatedAt"`
	}

	err := coll.FindOne(ctx, bson.M{}, findOptions).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query: %s latest update: %w", coll.Name(), err)
	}

	return doc.UpdatedAt, nil
}

// matchFilter composes the full $match predicate. The soft-delete filter is
// unconditional; there is no override mechanism exposed to callers.
func matchFilter(opts Options, extra bson.M) bson.M {
	conditions := []bson.M{NotDeleted()}

	if search := SearchFilter(opts.Search, opts.SearchFields); search != nil {
		conditions = append(conditions, search)
	}
	if len(extra) > 0 {
		conditions = append(conditions, extra)
	}

	if len(conditions) == 1 {
		return conditions[0]
	}
	return bson.M{"$and": conditions}
}

// countMatches runs the base pipeline with a trailing $count stage.
func countMatches(ctx context.Context, coll Collection, base mongo.Pipeline) (int, error) {
	countPipeline := append(append(mongo.Pipeline{}, base...), bson.D{{Key: "$count", Value: "count"}})

	cursor, err := coll.Aggregate(ctx, countPipeline)
	if err != nil {
		return 0, fmt.Errorf("query: %s count aggregation: %w", coll.Name(), err)
	}

	var counts []struct {
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, fmt.Errorf("query: %s count decode: %w", coll.Name(), err)
	}

	// $count emits no document at all when nothing matches.
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Count, nil
}
