// Copyright (c) 2026 Knihovna. All rights reserved.

package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/pkg/norm"
)

// SearchFilter turns a free-text search term into a disjunction of regex
// matches against the normalized-field index.
//
// The term is diacritic-stripped and hyphen-stripped before matching, so a
// hyphenated ISBN fragment ("978-80-123") matches a hyphen-stripped indexed
// ISBN ("9788012345"). Matching is case-insensitive; the index preserves
// case and regexes level it.
//
// Regex metacharacters in the term are escaped: search is literal text
// matching, never user-supplied regex.
//
// Returns nil when the term is blank or no fields are indexed — the search
// predicate then contributes no restriction.
func SearchFilter(term string, fields []string) bson.M {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}

	pattern := regexp.QuoteMeta(norm.ISBN(norm.Fold(term)))
	if pattern == "" {
		return nil
	}

	clauses := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{
			NormalizedField + "." + field: primitive.Regex{Pattern: pattern, Options: "i"},
		})
	}

	return bson.M{"$or": clauses}
}
