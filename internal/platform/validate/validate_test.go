// Copyright (c) 2026 Knihovna. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Válka s mloky", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_ISBN checks the ISBN format rule. Empty values pass because
ISBN is optional on catalog records.
*/
func TestValidator_ISBN(t *testing.T) {
	tests := []struct {
		name    string
		isbn    string
		isValid bool
	}{
		{"isbn13_hyphenated", "978-80-257-1049-6", true},
		{"isbn13_plain", "9788025710496", true},
		{"isbn10_with_check_x", "80-00-00123-X", true},
		{"empty_is_optional", "", true},
		{"letters", "not-an-isbn", false},
		{"too_short", "12-3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ISBN("isbn", tt.isbn)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_ObjectID checks the document ID format rule.
*/
func TestValidator_ObjectID(t *testing.T) {
	valid := &validate.Validator{}
	valid.ObjectID("id", "64f1c0ffee0ddba11ca7a1e5")
	assert.False(t, valid.HasErrors())

	invalid := &validate.Validator{}
	invalid.ObjectID("id", "zzz")
	assert.True(t, invalid.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "marek").
		MinLen("username", "marek", 3).
		MaxLen("username", "marek", 10).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").   // Fails
		MinLen("username", "a", 5). // Fails
		ISBN("isbn", "abc").        // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
