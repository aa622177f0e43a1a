// Copyright (c) 2026 Knihovna. All rights reserved.

package importer_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/author"
	"github.com/knihovna/api/internal/catalog/book"
	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/importer"
	"github.com/knihovna/api/internal/platform/apperr"
)

// # In-Memory Fakes

type memoryBookRepo struct {
	book.Repository
	books []*book.Book
}

func (m *memoryBookRepo) Create(_ context.Context, b *book.Book) error {
	b.ID = primitive.NewObjectID()
	m.books = append(m.books, b)
	return nil
}

type memoryAuthorRepo struct {
	author.Repository
	authors []*author.Author
}

func (m *memoryAuthorRepo) FindByName(_ context.Context, firstName, lastName string) (*author.Author, error) {
	for _, a := range m.authors {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	return nil, apperr.NotFound("Author")
}

func (m *memoryAuthorRepo) Create(_ context.Context, a *author.Author) error {
	a.ID = primitive.NewObjectID()
	m.authors = append(m.authors, a)
	return nil
}

func (m *memoryAuthorRepo) List(context.Context, query.Options) (*query.Result, error) {
	return &query.Result{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleCSV = `title;subtitle;autor;isbn;publisher;year;pages
Válka s Mloky;;Čapek, Karel;80-0000-123-X;Fr. Borový;1936;320
Krakatit;;Čapek, Karel;;Aventinum;1924;288
;bez názvu;Nikdo, Nula;;;;
Babička;Obrazy venkovského života;Němcová, Božena|Homér;;;1855;
`

/*
TestRun verifies rows import with resolved-or-created authors, repeated
names reuse one record, and titleless rows are skipped.
*/
func TestRun(t *testing.T) {
	books := &memoryBookRepo{}
	authors := &memoryAuthorRepo{}

	run := importer.New(books, authors, discardLogger(), false)
	summary, err := run.Run(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 3, summary.AuthorsCreated, "Karel Čapek is created once, then reused")

	require.Len(t, books.books, 3)
	valka := books.books[0]
	assert.Equal(t, "Válka s Mloky", valka.Title)
	assert.Equal(t, "80-0000-123-X", valka.ISBN)
	require.NotNil(t, valka.Published)
	assert.Equal(t, 1936, valka.Published.Year)
	assert.Equal(t, "Fr. Borový", valka.Published.Publisher)
	require.Len(t, valka.Autor, 1)

	krakatit := books.books[1]
	assert.Equal(t, valka.Autor[0], krakatit.Autor[0], "same author resolves to same record")

	babicka := books.books[2]
	assert.Len(t, babicka.Autor, 2, "bare last names are valid author entries")
}

/*
TestRunDryRun verifies a dry run parses everything but writes nothing.
*/
func TestRunDryRun(t *testing.T) {
	books := &memoryBookRepo{}
	authors := &memoryAuthorRepo{}

	run := importer.New(books, authors, discardLogger(), true)
	summary, err := run.Run(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Imported)
	assert.Empty(t, books.books)
	assert.Empty(t, authors.authors)
}

/*
TestRunMissingTitleColumn verifies a header without the title column is fatal.
*/
func TestRunMissingTitleColumn(t *testing.T) {
	run := importer.New(&memoryBookRepo{}, &memoryAuthorRepo{}, discardLogger(), false)

	_, err := run.Run(context.Background(), strings.NewReader("autor;isbn\nX;Y\n"))
	assert.Error(t, err)
}
