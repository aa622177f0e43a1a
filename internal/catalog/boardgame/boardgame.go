// Copyright (c) 2026 Knihovna. All rights reserved.

// Package boardgame implements the board game catalog domain, including
// expansion games linked to their base game through a parent reference.
package boardgame

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Published mirrors the book package's publish-info subdocument.
type Published struct {
	Publisher string `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Year      int    `bson:"year,omitempty" json:"year,omitempty"`
	Country   string `bson:"country,omitempty" json:"country,omitempty"`
}

// Dimensions holds the box measurements.
type Dimensions struct {
	Height float64 `bson:"height,omitempty" json:"height,omitempty"`
	Width  float64 `bson:"width,omitempty" json:"width,omitempty"`
	Depth  float64 `bson:"depth,omitempty" json:"depth,omitempty"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// Players is the supported player-count range.
type Players struct {
	Min int `bson:"min,omitempty" json:"min,omitempty"`
	Max int `bson:"max,omitempty" json:"max,omitempty"`
}

// BoardGame represents one board game or expansion in the catalog.
type BoardGame struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`

	// Autor references the game designers in the autors collection.
	Autor []primitive.ObjectID `bson:"autor,omitempty" json:"autor,omitempty"`

	// Parent links an expansion to its base game. Nil for base games.
	Parent *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`

	Published  *Published  `bson:"published,omitempty" json:"published,omitempty"`
	Players    *Players    `bson:"players,omitempty" json:"players,omitempty"`
	Dimensions *Dimensions `bson:"dimensions,omitempty" json:"dimensions,omitempty"`

	NormalizedSearchField bson.M `bson:"normalizedSearchField,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"` // soft-delete tracker
}

// SearchFields lists the normalizedSearchField keys board game list queries
// match the search term against.
func SearchFields() []string {
	return []string{"title", "published", "autor"}
}

// Apply returns a new snapshot carrying prev's identity and bookkeeping with
// input's domain fields.
func Apply(prev BoardGame, input BoardGame) BoardGame {
	next := input
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.DeletedAt = prev.DeletedAt
	next.NormalizedSearchField = nil

	next.Autor = append([]primitive.ObjectID(nil), input.Autor...)
	if input.Parent != nil {
		parent := *input.Parent
		next.Parent = &parent
	}
	if input.Published != nil {
		published := *input.Published
		next.Published = &published
	}
	if input.Players != nil {
		players := *input.Players
		next.Players = &players
	}
	if input.Dimensions != nil {
		dimensions := *input.Dimensions
		next.Dimensions = &dimensions
	}

	return next
}

// buildIndex derives the game's normalizedSearchField document from the
// typed snapshot plus the already-resolved designer names.
func buildIndex(game *BoardGame, autor []string) bson.M {
	idx := query.NewIndex().
		SetText("title", game.Title).
		SetNames("autor", autor)

	if game.Published != nil {
		idx.SetPublished("published", "", game.Published.Publisher)
	}

	return idx.Build()
}

// Global field names for validation
const (
	FieldTitle   = "title"
	FieldPlayers = "players"
	FieldParent  = "parent"
	FieldYear    = "published.year"
)
