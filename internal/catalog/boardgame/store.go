// Copyright (c) 2026 Knihovna. All rights reserved.

package boardgame

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Filter narrows a board game list beyond search and pagination.
type Filter struct {
	// Parent restricts the list to expansions of one base game. Nil means no
	// parent constraint; pointing at the nil ObjectID means "base games only".
	Parent *primitive.ObjectID
}

// Repository abstracts board game persistence.
type Repository interface {
	List(ctx context.Context, opts query.Options, filter Filter) (*query.Result, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*BoardGame, error)
	Create(ctx context.Context, game *BoardGame) error
	Update(ctx context.Context, game *BoardGame) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
