// Copyright (c) 2026 Knihovna. All rights reserved.

package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository abstracts account persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// SessionRepository abstracts refresh-token session storage.
//
// Sessions are keyed by the SHA-256 digest of the refresh token; expiry is
// delegated to the store's TTL mechanism.
type SessionRepository interface {
	// Create registers a session mapping tokenHash to the owning user's ID.
	Create(ctx context.Context, tokenHash string, userID primitive.ObjectID, ttl time.Duration) error

	// Get resolves the owning user's ID, or apperr.Unauthorized when the
	// session is absent or expired.
	Get(ctx context.Context, tokenHash string) (primitive.ObjectID, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
