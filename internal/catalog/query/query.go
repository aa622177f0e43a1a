// Copyright (c) 2026 Knihovna. All rights reserved.

/*
Package query implements the paginated, searchable, soft-deletable
aggregation layer that every catalog list endpoint is built on.

# Overview

A list request flows through a single MongoDB aggregation pipeline:

	$match (soft-delete ∧ search ∧ caller filter)
	→ caller $lookup stages (resolve reference arrays into embedded docs)
	→ $sort / $skip / $limit

executed with Czech locale-aware, case-insensitive, numeric-ordering
collation. The total match count is computed over the same base pipeline, and
a freshness short-circuit skips the whole query when the client proves its
cached view is already current.

# Search Index

Records carry a normalizedSearchField document: a diacritic-free, flattened
shadow copy of their searchable fields maintained on every write. Free-text
search is a case-insensitive regex disjunction over those shadow fields, so
"Strely" matches a title stored as "Strély". Each entity package owns its own
strongly-typed extraction of searchable fields; this package owns the leaf
rules and the [Index] container.
*/
package query

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/knihovna/api/pkg/pagination"
)

// NormalizedField is the document key under which the search index shadow
// copy of a record is stored.
const NormalizedField = "normalizedSearchField"

// Collection is the subset of [*mongo.Collection] the query layer uses.
//
// Narrowing the dependency to two calls keeps the orchestrator testable with
// in-memory fakes built from [mongo.NewCursorFromDocuments].
type Collection interface {
	Name() string
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Options holds the parameters of one paginated list query.
type Options struct {
	// Page is 1-based. PageSize is the number of documents per page.
	// Callers (the HTTP layer) are responsible for clamping both to sane
	// positive integers before they reach this layer.
	Page     int
	PageSize int

	// Search is the free-text term; empty means no search constraint.
	Search string

	// SearchFields lists the normalizedSearchField keys the search term is
	// matched against, in disjunction.
	SearchFields []string

	// Sort is the ordered field-path → ±1 specification from [ParseSort].
	// Empty means no $sort stage (natural/index order applies).
	Sort bson.D

	// DataFrom is the client-supplied freshness timestamp. When it is at or
	// after the collection's latest update, the query short-circuits.
	// Zero means "not supplied".
	DataFrom time.Time
}

// Result is the outcome of one paginated list query.
type Result struct {
	// Data is the page of matching documents, with lookup stages applied.
	// Empty when the freshness short-circuit fired.
	Data []bson.M

	// Count is the total number of matching documents ignoring pagination.
	Count int

	// LatestUpdate is the updatedAt of the most recently written document in
	// the collection, deleted documents included — a deletion must bump
	// client caches too. Zero when the collection is empty.
	LatestUpdate time.Time

	// UpToDate is true when the query short-circuited because DataFrom was
	// already current.
	UpToDate bool
}

// Meta converts the result's totals into response pagination metadata.
func (result *Result) Meta(page, pageSize int) pagination.Meta {
	meta := pagination.NewMeta(page, pageSize, result.Count)
	if !result.LatestUpdate.IsZero() {
		latest := result.LatestUpdate
		meta.LatestUpdate = &latest
	}
	meta.UpToDate = result.UpToDate
	return meta
}

// NotDeleted returns the standing predicate that excludes soft-deleted
// records from all list views.
//
// In MongoDB, {deletedAt: null} matches both an explicit null and an absent
// field, so records created before soft deletion existed are included.
func NotDeleted() bson.M {
	return bson.M{"deletedAt": nil}
}
