// Copyright (c) 2026 Knihovna. All rights reserved.

// Package lp implements the vinyl record catalog domain.
package lp

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

// LP represents one vinyl record in the catalog.
type LP struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Note     string             `bson:"note,omitempty" json:"note,omitempty"`

	// Speed is the playback speed in RPM.
	Speed int `bson:"speed,omitempty" json:"speed,omitempty"`

	// CountLP is the number of discs in the sleeve.
	CountLP int `bson:"countLp,omitempty" json:"count_lp,omitempty"`

	Published *Published `bson:"published,omitempty" json:"published,omitempty"`

	// Autor references performers/composers in the autors collection.
	Autor []primitive.ObjectID `bson:"autor,omitempty" json:"autor,omitempty"`

	NormalizedSearchField bson.M `bson:"normalizedSearchField,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"` // soft-delete tracker
}

// SearchFields lists the normalizedSearchField keys LP list queries match
// the search term against.
func SearchFields() []string {
	return []string{"title", "subtitle", "note", "published"}
}

// Apply returns a new snapshot carrying prev's identity and bookkeeping with
// input's domain fields.
func Apply(prev LP, input LP) LP {
	next := input
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.DeletedAt = prev.DeletedAt
	next.NormalizedSearchField = nil

	next.Autor = append([]primitive.ObjectID(nil), input.Autor...)
	if input.Published != nil {
		published := *input.Published
		next.Published = &published
	}

	return next
}

// buildIndex derives the LP's normalizedSearchField document. Performer
// references are deliberately not indexed; search reaches them through the
// author list instead.
func buildIndex(lp *LP) bson.M {
	idx := query.NewIndex().
		SetText("title", lp.Title).
		SetText("subtitle", lp.Subtitle).
		SetText("note", lp.Note)

	if lp.Published != nil {
		idx.SetPublished("published", "", lp.Published.Publisher)
	}

	return idx.Build()
}

// Global field names for validation
const (
	FieldTitle   = "title"
	FieldSpeed   = "speed"
	FieldCountLP = "count_lp"
	FieldYear    = "published.year"
)
