package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHeaders_Clean(t *testing.T) {
	result := ValidateHeaders([]string{"name", "age", "city"})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "", result.ToJSON())
}

func TestValidateHeaders_Duplicates(t *testing.T) {
	result := ValidateHeaders([]string{"id", "name", "id", "id"})

	assert.False(t, result.Valid)
	if assert.Len(t, result.Warnings, 2) {
		assert.Equal(t, 3, result.Warnings[0].Column)
		assert.Equal(t, "id", result.Warnings[0].Field)
		assert.Contains(t, result.Warnings[0].Message, "column 1")
		assert.Equal(t, 4, result.Warnings[1].Column)
	}
}

func TestValidateHeaders_Empty(t *testing.T) {
	tests := []struct {
		keys     []string
		warnings int
	}{
		{[]string{""}, 1},
		{[]string{"a", "  "}, 1},
		{[]string{"", ""}, 3},
		{[]string{}, 0},
	}

	for _, tt := range tests {
		result := ValidateHeaders(tt.keys)
		assert.Len(t, result.Warnings, tt.warnings, "keys %q", tt.keys)
	}
}

func TestHeaderValidationResult_ToJSON(t *testing.T) {
	result := &HeaderValidationResult{Valid: true}
	result.AddWarning(2, "x", "header name is empty")

	assert.False(t, result.Valid)
	assert.JSONEq(t, `[{"column":2,"field":"x","message":"header name is empty"}]`, result.ToJSON())
}
