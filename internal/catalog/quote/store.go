// Copyright (c) 2026 Knihovna. All rights reserved.

package quote

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Repository abstracts quote persistence.
type Repository interface {
	List(ctx context.Context, opts query.Options) (*query.Result, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Quote, error)

	// Random returns one uniformly sampled live quote, or a not-found error
	// when the collection holds none.
	Random(ctx context.Context) (*Quote, error)

	Create(ctx context.Context, q *Quote) error
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
