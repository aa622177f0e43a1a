// Copyright (c) 2026 Knihovna. All rights reserved.

package boardgame

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

/*
TestBuildIndex verifies games index title, publisher and resolved designer
names under the shared folding rules.
*/
func TestBuildIndex(t *testing.T) {
	game := &BoardGame{
		Title:     "Osadníci z Katanu",
		Published: &Published{Publisher: "Albi"},
	}

	index := buildIndex(game, []string{"Klaus Teuber"})
	require.NotNil(t, index)

	assert.Equal(t, "Osadnici z Katanu", index["title"])
	assert.Equal(t, "Albi", index["published"])
	assert.Equal(t, "Klaus Teuber", index["autor"])
}

/*
TestApply verifies the merge keeps identity and deep-copies nested fields.
*/
func TestApply(t *testing.T) {
	prev := BoardGame{ID: primitive.NewObjectID(), Title: "Carcassonne"}
	input := BoardGame{
		Title:   "Carcassonne",
		Players: &Players{Min: 2, Max: 5},
	}

	merged := Apply(prev, input)

	assert.Equal(t, prev.ID, merged.ID)

	input.Players.Max = 6
	assert.Equal(t, 5, merged.Players.Max)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepo serves validateBoardGame's parent lookup.
type stubRepo struct {
	Repository
	games map[primitive.ObjectID]*BoardGame
}

func (s *stubRepo) GetByID(_ context.Context, id primitive.ObjectID) (*BoardGame, error) {
	if game, ok := s.games[id]; ok {
		return game, nil
	}
	return nil, assert.AnError
}

func (s *stubRepo) List(context.Context, query.Options, Filter) (*query.Result, error) {
	return &query.Result{}, nil
}

/*
TestValidateBoardGame verifies field constraints and the no-nested-expansions
rule.
*/
func TestValidateBoardGame(t *testing.T) {
	baseID := primitive.NewObjectID()
	expansionID := primitive.NewObjectID()
	repo := &stubRepo{games: map[primitive.ObjectID]*BoardGame{
		baseID:      {ID: baseID, Title: "Base"},
		expansionID: {ID: expansionID, Title: "Expansion", Parent: &baseID},
	}}
	service := NewService(repo, discardLogger())

	ctx := context.Background()

	assert.Error(t, service.validateBoardGame(ctx, &BoardGame{}), "title is required")
	assert.Error(t, service.validateBoardGame(ctx, &BoardGame{
		Title:   "Hra",
		Players: &Players{Min: 4, Max: 2},
	}))

	assert.NoError(t, service.validateBoardGame(ctx, &BoardGame{Title: "Hra", Parent: &baseID}))
	assert.Error(t, service.validateBoardGame(ctx, &BoardGame{Title: "Hra", Parent: &expansionID}),
		"expansions cannot nest")
}
