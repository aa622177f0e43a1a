// Copyright (c) 2026 Knihovna. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/knihovna/api/internal/catalog/query"
)

/*
TestIndex_LeafRules exercises the leaf rules of the search index builder:
diacritic folding, the ISBN hyphen exception, name joining and publish-info
precedence.
*/
func TestIndex_LeafRules(t *testing.T) {
	idx := query.NewIndex().
		SetText("title", "Osudy dobrého vojáka Švejka").
		SetISBN("ISBN", "978-80-7203-924-2").
		SetNames("autor", []string{"Jaroslav Hašek", "", "Josef Lada"}).
		SetPublished("published", "", "Československý spisovatel").
		SetLines("content", []string{"Díl první", "Díl druhý"}).
		Build()

	require.NotNil(t, idx)
	assert.Equal(t, bson.M{
		"title":     "Osudy dobreho vojaka Svejka",
		"ISBN":      "9788072039242",
		"autor":     "Jaroslav Hasek Josef Lada",
		"published": "Ceskoslovensky spisovatel",
		"content":   "Dil prvni Dil druhy",
	}, idx)
}

/*
TestIndex_OmitsEmptyLeaves: absent values must produce no key at all, not
an empty-string key.
*/
func TestIndex_OmitsEmptyLeaves(t *testing.T) {
	idx := query.NewIndex().
		SetText("title", "Krakatit").
		SetText("subtitle", "").
		SetISBN("ISBN", "").
		SetNames("autor", nil).
		SetPublished("published", "", "").
		Build()

	require.NotNil(t, idx)
	assert.Equal(t, bson.M{"title": "Krakatit"}, idx)
	assert.NotContains(t, idx, "subtitle")
}

/*
TestIndex_EmptyBuild: a record with no searchable signal carries no index
document at all.
*/
func TestIndex_EmptyBuild(t *testing.T) {
	assert.Nil(t, query.NewIndex().Build())
	assert.Nil(t, query.NewIndex().SetText("title", "  ").Build())
}

/*
TestIndex_PublishedPrecedence: title wins over publisher when both are set.
*/
func TestIndex_PublishedPrecedence(t *testing.T) {
	idx := query.NewIndex().SetPublished("published", "Válka s mloky", "Fr. Borový").Build()
	require.NotNil(t, idx)
	assert.Equal(t, "Valka s mloky", idx["published"])
}

/*
TestFullName handles partially-filled author names.
*/
func TestFullName(t *testing.T) {
	assert.Equal(t, "Karel Čapek", query.FullName("Karel", "Čapek"))
	assert.Equal(t, "Čapek", query.FullName("", "Čapek"))
	assert.Equal(t, "Karel", query.FullName("Karel", " "))
	assert.Equal(t, "", query.FullName("", ""))
}
