// Copyright (c) 2026 Knihovna. All rights reserved.

package lp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
TestBuildIndex verifies LPs index title, subtitle, note and publisher but not
performer references.
*/
func TestBuildIndex(t *testing.T) {
	record := &LP{
		Title:     "Písně kosmické",
		Note:      "Reedice z roku 1978",
		Published: &Published{Publisher: "Supraphon"},
		Autor:     []primitive.ObjectID{primitive.NewObjectID()},
	}

	index := buildIndex(record)
	require.NotNil(t, index)

	assert.Equal(t, "Pisne kosmicke", index["title"])
	assert.Equal(t, "Reedice z roku 1978", index["note"])
	assert.Equal(t, "Supraphon", index["published"])
	assert.NotContains(t, index, "subtitle")
	assert.NotContains(t, index, "autor")
}

func TestValidateLP(t *testing.T) {
	assert.Error(t, validateLP(&LP{}), "title is required")
	assert.Error(t, validateLP(&LP{Title: "Album", Speed: 50}), "speed must be a known RPM")
	assert.NoError(t, validateLP(&LP{Title: "Album", Speed: 33, CountLP: 2}))
}

/*
TestApply verifies the merge keeps identity and deep-copies mutable fields.
*/
func TestApply(t *testing.T) {
	prev := LP{ID: primitive.NewObjectID(), Title: "Staré"}
	input := LP{Title: "Nové", Published: &Published{Publisher: "Panton"}}

	merged := Apply(prev, input)

	assert.Equal(t, prev.ID, merged.ID)
	assert.Equal(t, "Nové", merged.Title)

	input.Published.Publisher = "changed"
	assert.Equal(t, "Panton", merged.Published.Publisher)
}
