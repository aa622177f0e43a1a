// Copyright (c) 2026 Knihovna. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities and the logic for authentication and
session lifecycle. Knihovna serves a small set of known users, so there is
no self-registration: accounts are created by the administrator.

# Architecture

  - Service: Orchestrates login, refresh rotation, logout, password change.
  - UserRepository: MongoDB-backed account storage.
  - SessionRepository: Redis-backed refresh sessions with native TTL expiry.
*/
package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/platform/sec"
)

// # Domain Entities

// User represents a known member of the household library.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string             `bson:"displayName,omitempty" json:"display_name,omitempty"`
	Role         sec.UserRole       `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldMessage         = "message"
)
