// Copyright (c) 2026 Knihovna. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// clausePattern digs the regex pattern for a field out of the $or filter.
func clausePattern(t *testing.T, filter bson.M, field string) primitive.Regex {
	t.Helper()

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)

	for _, clause := range clauses {
		if re, ok := clause["normalizedSearchField."+field]; ok {
			return re.(primitive.Regex)
		}
	}

	t.Fatalf("no clause for field %q", field)
	return primitive.Regex{}
}

/*
TestSearchFilter verifies the regex disjunction built from a search term.
*/
func TestSearchFilter(t *testing.T) {
	filter := query.SearchFilter("Strély", []string{"title", "subtitle"})
	require.NotNil(t, filter)

	clauses := filter["$or"].([]bson.M)
	assert.Len(t, clauses, 2)

	// Diacritics are folded before matching and matching is case-insensitive.
	re := clausePattern(t, filter, "title")
	assert.Equal(t, "Strely", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

/*
TestSearchFilter_HyphenInsensitive: a hyphenated ISBN fragment must match
the hyphen-stripped indexed ISBN.
*/
func TestSearchFilter_HyphenInsensitive(t *testing.T) {
	filter := query.SearchFilter("978-80-123", []string{"ISBN"})
	require.NotNil(t, filter)

	re := clausePattern(t, filter, "ISBN")
	assert.Equal(t, "97880123", re.Pattern)
}

/*
TestSearchFilter_EscapesMetacharacters: search is literal text matching,
so regex metacharacters in the term must not change match semantics.
*/
func TestSearchFilter_EscapesMetacharacters(t *testing.T) {
	filter := query.SearchFilter("C++ (2. vydání)", []string{"title"})
	require.NotNil(t, filter)

	re := clausePattern(t, filter, "title")
	assert.Equal(t, `C\+\+ \(2\. vydani\)`, re.Pattern)
}

/*
TestSearchFilter_Empty verifies that a blank term or an empty field list
contributes no restriction.
*/
func TestSearchFilter_Empty(t *testing.T) {
	assert.Nil(t, query.SearchFilter("", []string{"title"}))
	assert.Nil(t, query.SearchFilter("   ", []string{"title"}))
	assert.Nil(t, query.SearchFilter("svejk", nil))
	// A term that folds away entirely is treated as blank.
	assert.Nil(t, query.SearchFilter("--", []string{"title"}))
}
