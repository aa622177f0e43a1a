// Copyright (c) 2026 Knihovna. All rights reserved.

package query

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/knihovna/api/internal/platform/apperr"
)

// SortKey is one column of a client-supplied sort specification.
type SortKey struct {
	// Field is the column identifier exposed to the client.
	Field string `json:"id"`

	// Desc flips the direction. The SPA's table component serializes it
	// either as a JSON bool or as the literal string "true"/"false"
	// depending on how the value travelled through the query string, so
	// both encodings are accepted.
	Desc boolish `json:"desc"`
}

// boolish is a bool that also unmarshals from the strings "true"/"false".
type boolish bool

func (b *boolish) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = boolish(asBool)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("sort desc flag: %s", data)
	}

	// Anything but the literal "true" is ascending.
	*b = asString == "true"
	return nil
}

// dimensionFields are exposed flat to the client but stored nested under the
// dimensions subdocument.
var dimensionFields = map[string]struct{}{
	"height": {},
	"width":  {},
	"depth":  {},
	"weight": {},
}

// ParseSort parses a JSON-encoded sort specification ([{"id": "title",
// "desc": true}, ...]) into an ordered field-path → ±1 document.
//
// Key order is preserved: MongoDB honors insertion order for multi-key
// sorts, so earlier keys win and later keys break ties.
//
// An empty input yields a nil sort (no enforced default order). Unparsable
// input returns a VALIDATION_ERROR for the handler to surface as 400.
func ParseSort(raw string) (bson.D, error) {
	if raw == "" {
		return nil, nil
	}

	var keys []SortKey
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, apperr.ValidationError("Malformed sorting parameter")
	}

	return BuildSort(keys), nil
}

// BuildSort converts parsed sort keys into the ordered field-path → ±1
// document, remapping the flat dimension aliases to their storage path.
func BuildSort(keys []SortKey) bson.D {
	if len(keys) == 0 {
		return nil
	}

	sort := make(bson.D, 0, len(keys))
	for _, key := range keys {
		if key.Field == "" {
			continue
		}

		path := key.Field
		if _, ok := dimensionFields[path]; ok {
			path = "dimensions." + path
		}

		direction := 1
		if key.Desc {
			direction = -1
		}

		sort = append(sort, bson.E{Key: path, Value: direction})
	}

	if len(sort) == 0 {
		return nil
	}
	return sort
}
