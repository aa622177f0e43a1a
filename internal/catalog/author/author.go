// Copyright (c) 2026 Knihovna. All rights reserved.

// Package author implements the author catalog domain.
//
// The collection is named "autors" for compatibility with the data the
// catalog was originally built on; the misspelling is load-bearing.
package author

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Author represents one person referenced by catalog records.
type Author struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName,omitempty" json:"first_name,omitempty"`
	LastName  string             `bson:"lastName" json:"last_name"`

	// BirthYear and DeathYear are plain years; zero means unknown.
	BirthYear int `bson:"birthYear,omitempty" json:"birth_year,omitempty"`
	DeathYear int `bson:"deathYear,omitempty" json:"death_year,omitempty"`

	// Portrait is a URL to an image of the author.
	Portrait string `bson:"portrait,omitempty" json:"portrait,omitempty"`

	NormalizedSearchField bson.M `bson:"normalizedSearchField,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"` // soft-delete tracker
}

// FullName renders the author as "FirstName LastName" with either part optional.
func (a *Author) FullName() string {
	return query.FullName(a.FirstName, a.LastName)
}

// SearchFields lists the normalizedSearchField keys author list queries match
// the search term against.
func SearchFields() []string {
	return []string{"firstName", "lastName"}
}

// Apply returns a new snapshot carrying prev's identity and bookkeeping with
// input's domain fields.
func Apply(prev Author, input Author) Author {
	next := input
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.DeletedAt = prev.DeletedAt
	next.NormalizedSearchField = nil
	return next
}

// buildIndex derives the author's normalizedSearchField document.
func buildIndex(a *Author) bson.M {
	return query.NewIndex().
		SetText("firstName", a.FirstName).
		SetText("lastName", a.LastName).
		Build()
}

// Global field names for validation
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthYear = "birth_year"
	FieldDeathYear = "death_year"
)
