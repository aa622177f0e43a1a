// Copyright (c) 2026 Knihovna. All rights reserved.

// Package book implements the book catalog domain.
package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
)

// Published is the nested publish-info subdocument shared by catalog records.
type Published struct {
	Publisher string `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Year      int    `bson:"year,omitempty" json:"year,omitempty"`
	Country   string `bson:"country,omitempty" json:"country,omitempty"`
}

// Dimensions holds the physical measurements. They are stored nested but
// exposed flat to the client as sort columns (see query.ParseSort).
type Dimensions struct {
	Height float64 `bson:"height,omitempty" json:"height,omitempty"`
	Width  float64 `bson:"width,omitempty" json:"width,omitempty"`
	Depth  float64 `bson:"depth,omitempty" json:"depth,omitempty"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// Book represents one catalog record of a physical book.
type Book struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ISBN     string             `bson:"ISBN,omitempty" json:"isbn,omitempty"`
	Edition  string             `bson:"edition,omitempty" json:"edition,omitempty"`
	Serie    string             `bson:"serie,omitempty" json:"serie,omitempty"`
	Note     string             `bson:"note,omitempty" json:"note,omitempty"`
	Pages    int                `bson:"pages,omitempty" json:"pages,omitempty"`

	// Content lists the individual works inside an anthology or collection.
	Content []string `bson:"content,omitempty" json:"content,omitempty"`

	// Readings records the dates the book was (re)read.
	Readings []time.Time `bson:"readings,omitempty" json:"readings,omitempty"`

	Published  *Published  `bson:"published,omitempty" json:"published,omitempty"`
	Dimensions *Dimensions `bson:"dimensions,omitempty" json:"dimensions,omitempty"`

	// Reference arrays into the autors collection.
	Autor      []primitive.ObjectID `bson:"autor,omitempty" json:"autor,omitempty"`
	Editor     []primitive.ObjectID `bson:"editor,omitempty" json:"editor,omitempty"`
	Ilustrator []primitive.ObjectID `bson:"ilustrator,omitempty" json:"ilustrator,omitempty"`
	Translator []primitive.ObjectID `bson:"translator,omitempty" json:"translator,omitempty"`

	// NormalizedSearchField is the derived search index; only the store's
	// normalization path may write it.
	NormalizedSearchField bson.M `bson:"normalizedSearchField,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"` // soft-delete tracker
}

// SearchFields lists the normalizedSearchField keys book list queries match
// the search term against.
func SearchFields() []string {
	return []string{
		"autor", "editor", "ilustrator", "translator",
		"title", "subtitle", "edition", "serie", "note",
		"published", "ISBN", "content",
	}
}

// Apply returns a new snapshot carrying prev's identity and bookkeeping with
// input's domain fields — the update contract is a full replacement.
//
// Pure by design: slices and subdocuments are copied so the result shares no
// mutable state with either argument.
func Apply(prev Book, input Book) Book {
	next := input

	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.DeletedAt = prev.DeletedAt
	next.NormalizedSearchField = nil

	next.Content = append([]string(nil), input.Content...)
	next.Readings = append([]time.Time(nil), input.Readings...)
	next.Autor = append([]primitive.ObjectID(nil), input.Autor...)
	next.Editor = append([]primitive.ObjectID(nil), input.Editor...)
	next.Ilustrator = append([]primitive.ObjectID(nil), input.Ilustrator...)
	next.Translator = append([]primitive.ObjectID(nil), input.Translator...)

	if input.Published != nil {
		published := *input.Published
		next.Published = &published
	}
	if input.Dimensions != nil {
		dimensions := *input.Dimensions
		next.Dimensions = &dimensions
	}

	return next
}

// buildIndex derives the book's normalizedSearchField document from the
// typed snapshot plus the already-resolved reference names.
func buildIndex(b *Book, autor, editor, ilustrator, translator []string) bson.M {
	idx := query.NewIndex().
		SetNames("autor", autor).
		SetNames("editor", editor).
		SetNames("ilustrator", ilustrator).
		SetNames("translator", translator).
		SetText("title", b.Title).
		SetText("subtitle", b.Subtitle).
		SetText("edition", b.Edition).
		SetText("serie", b.Serie).
		SetText("note", b.Note).
		SetISBN("ISBN", b.ISBN).
		SetLines("content", b.Content)

	if b.Published != nil {
		idx.SetPublished("published", "", b.Published.Publisher)
	}

	return idx.Build()
}

// Global field names for validation
const (
	FieldTitle = "title"
	FieldISBN  = "isbn"
	FieldPages = "pages"
	FieldYear  = "published.year"
)
