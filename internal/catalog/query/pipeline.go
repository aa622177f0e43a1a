// Copyright (c) 2026 Knihovna. All rights reserved.

package query

import (
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Paginate builds the trailing pipeline stages for one page of results:
// $sort (when a sort is given), $skip, $limit.
//
// When a sort is present, a final "_id ascending" key is appended (unless
// the caller already sorts on _id) so that equal-keyed documents paginate
// deterministically across requests. Without any sort the stage is omitted
// entirely and natural/index order applies.
func Paginate(page, pageSize int, sort bson.D) mongo.Pipeline {
	stages := make(mongo.Pipeline, 0, 3)

	if len(sort) > 0 {
		stages = append(stages, bson.D{{Key: "$sort", Value: withIDTiebreak(sort)}})
	}

	stages = append(stages,
		bson.D{{Key: "$skip", Value: int64(page-1) * int64(pageSize)}},
		bson.D{{Key: "$limit", Value: int64(pageSize)}},
	)

	return stages
}

// withIDTiebreak returns a copy of sort with an ascending _id key appended
// when absent. Copying avoids aliasing the caller's slice.
func withIDTiebreak(sort bson.D) bson.D {
	out := make(bson.D, len(sort), len(sort)+1)
	copy(out, sort)

	for _, e := range out {
		if e.Key == "_id" {
			return out
		}
	}
	return append(out, bson.E{Key: "_id", Value: 1})
}

// Registry knows the collection names created at startup and builds $lookup
// stages against them.
//
// The existence check is advisory only: a typo'd collection name produces a
// warning and an always-empty join, never a failed request.
type Registry struct {
	known  map[string]struct{}
	logger *slog.Logger
}

// NewRegistry records the set of collection names lookups may target.
func NewRegistry(logger *slog.Logger, collections ...string) *Registry {
	known := make(map[string]struct{}, len(collections))
	for _, name := range collections {
		known[strings.ToLower(name)] = struct{}{}
	}
	return &Registry{known: known, logger: logger}
}

// Lookup builds a $lookup stage joining the lower-cased from collection by
// document ID: documents whose _id appears in localField's array (or equals
// it, if scalar) are embedded under as.
func (r *Registry) Lookup(from, localField, as string) bson.D {
	from = strings.ToLower(from)

	if _, ok := r.known[from]; !ok {
		r.logger.Warn("lookup_unknown_collection", slog.String("collection", from))
	}

	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}
