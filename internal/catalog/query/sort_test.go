// Copyright (c) 2026 Knihovna. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/apperr"
)

/*
TestParseSort covers the JSON sort specification: direction flags in both
bool and string encodings, multi-key ordering, and the dimension remap.
*/
func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bson.D
	}{
		{
			"single_ascending",
			`[{"id":"title","desc":false}]`,
			bson.D{{Key: "title", Value: 1}},
		},
		{
			"bool_descending",
			`[{"id":"title","desc":true}]`,
			bson.D{{Key: "title", Value: -1}},
		},
		{
			"string_descending",
			`[{"id":"title","desc":"true"}]`,
			bson.D{{Key: "title", Value: -1}},
		},
		{
			"string_not_true_is_ascending",
			`[{"id":"title","desc":"yes"}]`,
			bson.D{{Key: "title", Value: 1}},
		},
		{
			"multi_key_order_preserved",
			`[{"id":"serie","desc":false},{"id":"title","desc":true}]`,
			bson.D{{Key: "serie", Value: 1}, {Key: "title", Value: -1}},
		},
		{
			"dimension_remap",
			`[{"id":"height","desc":true},{"id":"weight","desc":false}]`,
			bson.D{{Key: "dimensions.height", Value: -1}, {Key: "dimensions.weight", Value: 1}},
		},
		{
			"empty_input",
			"",
			nil,
		},
		{
			"empty_list",
			`[]`,
			nil,
		},
		{
			"blank_field_skipped",
			`[{"id":"","desc":true}]`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.ParseSort(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestParseSort_Malformed verifies that unparsable input surfaces as a
validation error rather than an opaque failure.
*/
func TestParseSort_Malformed(t *testing.T) {
	_, err := query.ParseSort(`{"not":"a list"`)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
