// Copyright (c) 2026 Knihovna. All rights reserved.

package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/platform/apperr"
)

/*
TestBuildIndex verifies authors index their folded first and last names and
nothing else.
*/
func TestBuildIndex(t *testing.T) {
	a := &Author{FirstName: "Božena", LastName: "Němcová"}

	index := buildIndex(a)
	require.NotNil(t, index)

	assert.Equal(t, "Bozena", index["firstName"])
	assert.Equal(t, "Nemcova", index["lastName"])
	assert.Len(t, index, 2)
}

/*
TestBuildIndexPartial verifies a missing first name produces no firstName key.
*/
func TestBuildIndexPartial(t *testing.T) {
	index := buildIndex(&Author{LastName: "Čapek"})

	require.NotNil(t, index)
	assert.NotContains(t, index, "firstName")
	assert.Equal(t, "Capek", index["lastName"])
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		author   Author
		expected string
	}{
		{"both parts", Author{FirstName: "Karel", LastName: "Čapek"}, "Karel Čapek"},
		{"last only", Author{LastName: "Homér"}, "Homér"},
		{"first only", Author{FirstName: "Karel"}, "Karel"},
		{"empty", Author{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.author.FullName())
		})
	}
}

/*
TestApply verifies the update merge keeps identity fields and drops any stale
search index from the input.
*/
func TestApply(t *testing.T) {
	prev := Author{ID: primitive.NewObjectID(), FirstName: "Jan", LastName: "Neruda"}
	input := Author{LastName: "Neruda", BirthYear: 1834}

	merged := Apply(prev, input)

	assert.Equal(t, prev.ID, merged.ID)
	assert.Equal(t, 1834, merged.BirthYear)
	assert.Empty(t, merged.FirstName)
	assert.Nil(t, merged.NormalizedSearchField)
}

/*
TestValidateAuthor verifies last name is required and year values are bounded.
*/
func TestValidateAuthor(t *testing.T) {
	err := validateAuthor(&Author{FirstName: "Karel"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)

	assert.NoError(t, validateAuthor(&Author{LastName: "Čapek", BirthYear: 1890, DeathYear: 1938}))
	assert.Error(t, validateAuthor(&Author{LastName: "Čapek", BirthYear: 3000}))
}
