// Copyright (c) 2026 Knihovna. All rights reserved.

package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Repository abstracts book persistence.
type Repository interface {
	List(ctx context.Context, opts query.Options) (*query.Result, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
