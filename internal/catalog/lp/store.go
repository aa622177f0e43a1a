// Copyright (c) 2026 Knihovna. All rights reserved.

package lp

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Repository abstracts LP persistence.
type Repository interface {
	List(ctx context.Context, opts query.Options) (*query.Result, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*LP, error)
	Create(ctx context.Context, lp *LP) error
	Update(ctx context.Context, lp *LP) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
