// Copyright (c) 2026 Knihovna. All rights reserved.

package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/knihovna/api/internal/catalog/query"
)

// fakeCollection satisfies [query.Collection] with canned documents, using
// the driver's own in-memory cursor and single-result constructors.
type fakeCollection struct {
	name      string
	latestDoc interface{}     // FindOne result; nil simulates an empty collection
	queued    [][]interface{} // documents returned by successive Aggregate calls

	pipelines  []mongo.Pipeline
	aggOptions []*options.AggregateOptions
}

func (f *fakeCollection) Name() string { return f.name }

func (f *fakeCollection) FindOne(_ context.Context, _ interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if f.latestDoc == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(f.latestDoc, nil, nil)
}

func (f *fakeCollection) Aggregate(_ context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	f.pipelines = append(f.pipelines, pipeline.(mongo.Pipeline))
	f.aggOptions = append(f.aggOptions, opts...)

	docs := []interface{}{}
	if len(f.queued) > 0 {
		docs = f.queued[0]
		f.queued = f.queued[1:]
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

var latestStamp = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func latestDoc() bson.D {
	return bson.D{{Key: "updatedAt", Value: latestStamp}}
}

/*
TestFetch_ShortCircuit: a client whose data_from is at (or after) the
collection's latest update gets an empty result without any aggregation.
The latest update deliberately considers deleted documents too — a deletion
must invalidate client caches.
*/
func TestFetch_ShortCircuit(t *testing.T) {
	tests := []struct {
		name     string
		dataFrom time.Time
		upToDate bool
	}{
		{"exactly_current", latestStamp, true},
		{"ahead_of_server", latestStamp.Add(time.Minute), true},
		{"stale_client", latestStamp.Add(-time.Minute), false},
		{"not_supplied", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := &fakeCollection{name: "books", latestDoc: latestDoc()}

			result, err := query.Fetch(context.Background(), coll, query.Options{
				Page:     1,
				PageSize: 10,
				DataFrom: tt.dataFrom,
			}, nil, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.upToDate, result.UpToDate)
			assert.True(t, result.LatestUpdate.Equal(latestStamp))

			if tt.upToDate {
				assert.Empty(t, result.Data)
				assert.Zero(t, result.Count)
				assert.Empty(t, coll.pipelines, "short-circuit must not aggregate")
			} else {
				assert.Len(t, coll.pipelines, 2, "data and count aggregations expected")
			}
		})
	}
}

/*
TestFetch_PipelineComposition checks the composed stages: soft-delete +
search match first, caller lookups next, pagination only on the data run,
$count only on the count run, and Czech collation on the data run.
*/
func TestFetch_PipelineComposition(t *testing.T) {
	coll := &fakeCollection{
		name:      "books",
		latestDoc: latestDoc(),
		queued: [][]interface{}{
			{bson.D{{Key: "title", Value: "Krakatit"}}},    // data run
			{bson.D{{Key: "count", Value: 7}}},             // count run
		},
	}

	lookup := query.NewRegistry(discardLogger(), "autors").Lookup("autors", "autor", "autor")

	result, err := query.Fetch(context.Background(), coll, query.Options{
		Page:         2,
		PageSize:     5,
		Search:       "krakatit",
		SearchFields: []string{"title"},
		Sort:         bson.D{{Key: "title", Value: 1}},
	}, []bson.D{lookup}, bson.M{"parent": nil})
	require.NoError(t, err)

	assert.Len(t, result.Data, 1)
	assert.Equal(t, 7, result.Count)
	assert.True(t, result.LatestUpdate.Equal(latestStamp))
	assert.False(t, result.UpToDate)

	require.Len(t, coll.pipelines, 2)
	dataPipeline, countPipeline := coll.pipelines[0], coll.pipelines[1]

	// Both runs share the same base: $match then the lookup stage.
	for _, pipeline := range coll.pipelines {
		require.Equal(t, "$match", pipeline[0][0].Key)
		match := pipeline[0][0].Value.(bson.M)
		conditions := match["$and"].([]bson.M)
		assert.Equal(t, bson.M{"deletedAt": nil}, conditions[0])

		assert.Equal(t, "$lookup", pipeline[1][0].Key)
	}

	// Data run: $sort, $skip (page 2 → 5 docs), $limit.
	require.Len(t, dataPipeline, 5)
	assert.Equal(t, "$sort", dataPipeline[2][0].Key)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(5)}}, dataPipeline[3])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(5)}}, dataPipeline[4])

	// Count run: same base plus $count, nothing else.
	require.Len(t, countPipeline, 3)
	assert.Equal(t, bson.D{{Key: "$count", Value: "count"}}, countPipeline[2])

	// Czech case-insensitive numeric collation on the data run.
	require.NotEmpty(t, coll.aggOptions)
	collation := coll.aggOptions[0].Collation
	require.NotNil(t, collation)
	assert.Equal(t, "cs", collation.Locale)
	assert.Equal(t, 2, collation.Strength)
	assert.True(t, collation.NumericOrdering)
}

/*
TestFetch_EmptyCollection: no documents means a zero LatestUpdate and a
normal (empty) query result — a supplied data_from must not short-circuit
against an empty collection.
*/
func TestFetch_EmptyCollection(t *testing.T) {
	coll := &fakeCollection{name: "books"}

	result, err := query.Fetch(context.Background(), coll, query.Options{
		Page:     1,
		PageSize: 10,
		DataFrom: latestStamp,
	}, nil, nil)
	require.NoError(t, err)

	assert.True(t, result.LatestUpdate.IsZero())
	assert.False(t, result.UpToDate)
	assert.Empty(t, result.Data)
	assert.Zero(t, result.Count)
	assert.Len(t, coll.pipelines, 2)
}

/*
TestFetch_NoCountDocument: $count emits nothing at all when the filter
matches zero documents; Count must come back 0, not an error.
*/
func TestFetch_NoCountDocument(t *testing.T) {
	coll := &fakeCollection{
		name:      "books",
		latestDoc: latestDoc(),
		queued: [][]interface{}{
			{}, // data run: empty page
			{}, // count run: no $count document
		},
	}

	result, err := query.Fetch(context.Background(), coll, query.Options{Page: 1, PageSize: 10}, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.NotNil(t, result.Data)
}

/*
TestFetch_MatchWithoutExtras: with no search and no caller filter the match
collapses to the bare soft-delete predicate (no $and wrapper).
*/
func TestFetch_MatchWithoutExtras(t *testing.T) {
	coll := &fakeCollection{name: "books", latestDoc: latestDoc()}

	_, err := query.Fetch(context.Background(), coll, query.Options{Page: 1, PageSize: 10}, nil, nil)
	require.NoError(t, err)

	require.NotEmpty(t, coll.pipelines)
	match := coll.pipelines[0][0][0].Value.(bson.M)
	assert.Equal(t, bson.M{"deletedAt": nil}, match)
}
