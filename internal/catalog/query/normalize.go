// Copyright (c) 2026 Knihovna. All rights reserved.

package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/knihovna/api/pkg/norm"
)

// Index accumulates the normalizedSearchField document for one record.
//
// Only keys with real signal are stored: empty or unresolvable values are
// omitted entirely rather than written as empty strings. Each entity package
// builds its own Index from its typed fields; this file owns the leaf rules.
type Index struct {
	fields bson.M
}

// NewIndex returns an empty search index builder.
func NewIndex() *Index {
	return &Index{fields: bson.M{}}
}

// SetText applies the string-leaf rule (fold diacritics, strip characters
// outside letters/digits/whitespace) and stores the result under key when
// non-empty.
func (i *Index) SetText(key, value string) *Index {
	return i.set(key, norm.Text(value))
}

// SetISBN stores the hyphen-stripped ISBN under key when non-empty. ISBN is
// the explicit format-insensitivity exception: no character filtering beyond
// hyphens is applied.
func (i *Index) SetISBN(key, value string) *Index {
	return i.set(key, norm.ISBN(value))
}

// SetNames joins resolved person names ("FirstName LastName" per entry,
// blanks dropped) with ", " and applies the string-leaf rule.
func (i *Index) SetNames(key string, names []string) *Index {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			kept = append(kept, name)
		}
	}
	return i.set(key, norm.Text(strings.Join(kept, ", ")))
}

// SetPublished indexes a nested publish-info object: the first non-empty of
// title or publisher wins, under the string-leaf rule. Other sub-fields of
// the object are not individually indexed.
func (i *Index) SetPublished(key, title, publisher string) *Index {
	value := title
	if strings.TrimSpace(value) == "" {
		value = publisher
	}
	return i.set(key, norm.Text(value))
}

// SetLines joins an array of free-text lines with ", " and applies the
// string-leaf rule (used for a book's content listing).
func (i *Index) SetLines(key string, lines []string) *Index {
	return i.set(key, norm.Text(strings.Join(lines, ", ")))
}

// Build returns the finished index document, or nil when nothing was set so
// the record carries no normalizedSearchField key at all.
func (i *Index) Build() bson.M {
	if len(i.fields) == 0 {
		return nil
	}
	return i.fields
}

func (i *Index) set(key, value string) *Index {
	if value != "" {
		i.fields[key] = value
	}
	return i
}

// FullName renders an author-like record as "FirstName LastName" with
// either part optional, for reference-array indexing.
func FullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}
