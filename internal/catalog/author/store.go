// Copyright (c) 2026 Knihovna. All rights reserved.

package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Repository abstracts author persistence.
type Repository interface {
	List(ctx context.Context, opts query.Options) (*query.Result, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)
	Create(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// FindByName locates a live author by exact first and last name, used by
	// the CSV importer's resolve-or-create flow.
	FindByName(ctx context.Context, firstName, lastName string) (*Author, error)
}
