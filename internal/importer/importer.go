// Copyright (c) 2026 Knihovna. All rights reserved.

/*
Package importer loads a semicolon-separated CSV export of books into the
catalog, resolving or creating the referenced authors as it goes.

# Format

The first row is a header; columns are matched by name, so order does not
matter. Recognized columns: autor, title, subtitle, isbn, edition, serie,
note, publisher, year, country, pages. The autor column holds one or more
"LastName, FirstName" entries separated by "|".
*/
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/author"
	"github.com/knihovna/api/internal/catalog/book"
)

// Summary reports what one import run did.
type Summary struct {
	Rows           int
	Imported       int
	Skipped        int
	AuthorsCreated int
}

// Importer drives one CSV import run.
type Importer struct {
	books   book.Repository
	authors author.Repository
	logger  *slog.Logger

	// DryRun parses and validates every row without writing anything.
	DryRun bool

	// created caches authors resolved during this run so repeated names in
	// the file do not produce duplicates before the store sees them.
	created map[string]primitive.ObjectID
}

// New constructs an importer over the given repositories.
func New(books book.Repository, authors author.Repository, logger *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		books:   books,
		authors: authors,
		logger:  logger,
		DryRun:  dryRun,
		created: make(map[string]primitive.ObjectID),
	}
}

/*
Run reads the CSV stream and imports every well-formed row.

Rows without a title are skipped with a warning rather than aborting the
whole run; a malformed CSV structure is fatal.
*/
func (importer *Importer) Run(ctx context.Context, reader io.Reader) (*Summary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = ';'
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("csv header is missing the title column")
	}

	summary := &Summary{}
	for line := 2; ; line++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		summary.Rows++

		row := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if row("title") == "" {
			importer.logger.Warn("import_row_skipped",
				slog.Int("line", line), slog.String("reason", "missing title"))
			summary.Skipped++
			continue
		}

		if err := importer.importRow(ctx, row, summary); err != nil {
			return nil, fmt.Errorf("importing csv line %d: %w", line, err)
		}
		summary.Imported++
	}

	return summary, nil
}

func (importer *Importer) importRow(ctx context.Context, row func(string) string, summary *Summary) error {
	authorIDs, err := importer.resolveAuthors(ctx, row("autor"), summary)
	if err != nil {
		return err
	}

	record := &book.Book{
		Title:    row("title"),
		Subtitle: row("subtitle"),
		ISBN:     row("isbn"),
		Edition:  row("edition"),
		Serie:    row("serie"),
		Note:     row("note"),
		Pages:    parseInt(row("pages")),
		Autor:    authorIDs,
	}

	publisher, year, country := row("publisher"), parseInt(row("year")), row("country")
	if publisher != "" || year != 0 || country != "" {
		record.Published = &book.Published{
			Publisher: publisher,
			Year:      year,
			Country:   country,
		}
	}

	if importer.DryRun {
		return nil
	}
	return importer.books.Create(ctx, record)
}

// resolveAuthors maps "Čapek, Karel|Čapek, Josef" to author IDs, creating
// records for names the catalog has never seen.
func (importer *Importer) resolveAuthors(ctx context.Context, raw string, summary *Summary) ([]primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []primitive.ObjectID
	for _, entry := range strings.Split(raw, "|") {
		firstName, lastName := splitName(entry)
		if lastName == "" {
			continue
		}

		key := firstName + "\x00" + lastName
		if id, ok := importer.created[key]; ok {
			ids = append(ids, id)
			continue
		}

		existing, err := importer.authors.FindByName(ctx, firstName, lastName)
		if err == nil {
			importer.created[key] = existing.ID
			ids = append(ids, existing.ID)
			continue
		}

		created := &author.Author{FirstName: firstName, LastName: lastName}
		if !importer.DryRun {
			if err := importer.authors.Create(ctx, created); err != nil {
				return nil, fmt.Errorf("creating author %q: %w", entry, err)
			}
		} else {
			created.ID = primitive.NewObjectID()
		}

		importer.logger.Info("import_author_created",
			slog.String("name", created.FullName()))
		summary.AuthorsCreated++
		importer.created[key] = created.ID
		ids = append(ids, created.ID)
	}

	return ids, nil
}

// splitName parses "LastName, FirstName"; an entry without a comma is taken
// as a bare last name (e.g. "Homér").
func splitName(entry string) (firstName, lastName string) {
	parts := strings.SplitN(entry, ",", 2)
	lastName = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		firstName = strings.TrimSpace(parts[1])
	}
	return firstName, lastName
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
