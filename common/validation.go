package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError represents a single problem found in a header row
type ValidationError struct {
	Column  int    `json:"column"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HeaderValidationResult holds the warnings found for one header row.
// Warnings never stop a conversion.
type HeaderValidationResult struct {
	Valid    bool              `json:"valid"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// AddWarning adds a warning to the result
func (r *HeaderValidationResult) AddWarning(column int, field, message string) {
	r.Valid = false
	r.Warnings = append(r.Warnings, ValidationError{
		Column:  column,
		Field:   field,
		Message: message,
	})
}

// ToJSON converts the warnings to a JSON string, empty when there are none
func (r *HeaderValidationResult) ToJSON() string {
	if len(r.Warnings) == 0 {
		return ""
	}
	data, _ := json.Marshal(r.Warnings)
	return string(data)
}

// ValidateHeaders checks the keys derived from a header row for blank and
// repeated names. Columns are 1-based.
func ValidateHeaders(keys []string) *HeaderValidationResult {
	result := &HeaderValidationResult{Valid: true}
	seen := make(map[string]int, len(keys))

	for i, key := range keys {
		column := i + 1
		if strings.TrimSpace(key) == "" {
			result.AddWarning(column, key, "header name is empty")
		}
		if first, ok := seen[key]; ok {
			result.AddWarning(column, key, fmt.Sprintf("header %q repeats column %d, later values overwrite earlier ones", key, first))
			continue
		}
		seen[key] = column
	}
	return result
}
