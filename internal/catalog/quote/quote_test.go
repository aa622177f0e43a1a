// Copyright (c) 2026 Knihovna. All rights reserved.

package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
TestApply verifies the merge keeps identity fields and deep-copies the
reference arrays.
*/
func TestApply(t *testing.T) {
	prev := Quote{ID: primitive.NewObjectID(), Text: "Starý text"}
	input := Quote{
		Text:  "Nový text",
		Autor: []primitive.ObjectID{primitive.NewObjectID()},
	}

	merged := Apply(prev, input)

	assert.Equal(t, prev.ID, merged.ID)
	assert.Equal(t, "Nový text", merged.Text)

	original := input.Autor[0]
	input.Autor[0] = primitive.NewObjectID()
	assert.Equal(t, original, merged.Autor[0])
}

func TestValidateQuote(t *testing.T) {
	assert.Error(t, validateQuote(&Quote{}), "text is required")
	assert.NoError(t, validateQuote(&Quote{Text: "Kdo se moc ptá, moc se dozví."}))
}
