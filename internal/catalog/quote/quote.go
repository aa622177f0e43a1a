// Copyright (c) 2026 Knihovna. All rights reserved.

// Package quote implements the quote catalog domain.
//
// Quotes are the one catalog entity without a normalized search index: the
// collection is small and browsed, not searched.
package quote

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote represents one saved quotation, optionally attributed to authors
// and source books.
type Quote struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text string             `bson:"text" json:"text"`
	Note string             `bson:"note,omitempty" json:"note,omitempty"`

	Autor []primitive.ObjectID `bson:"autor,omitempty" json:"autor,omitempty"`
	Book  []primitive.ObjectID `bson:"book,omitempty" json:"book,omitempty"`

	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"` // soft-delete tracker
}

// Apply returns a new snapshot carrying prev's identity and bookkeeping with
// input's domain fields.
func Apply(prev Quote, input Quote) Quote {
	next := input
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.DeletedAt = prev.DeletedAt

	next.Autor = append([]primitive.ObjectID(nil), input.Autor...)
	next.Book = append([]primitive.ObjectID(nil), input.Book...)

	return next
}

// Global field names for validation
const (
	FieldText = "text"
)
