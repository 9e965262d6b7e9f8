package core

// validation.go checks imported rows before they are mapped.
//
// Validation happens at two levels:
//  1. Header validation: the required columns exist in the file
//  2. Row validation: every required field is non-blank on every row
//
// Only the required fields are ever inspected; other columns may hold
// anything.

import (
	"fmt"
	"strings"
)

// ValidationMode selects how much of a file the importer validates.
type ValidationMode string

const (
	// ValidateAllRows checks every parsed row.
	ValidateAllRows ValidationMode = "all"
	// ValidateFirstRow only checks that the first row carries the
	// required fields. Kept for compatibility with the legacy editor.
	ValidateFirstRow ValidationMode = "first_row"
)

// MissingFields returns the required fields that are blank on row,
// in RequiredCsvFields order.
func MissingFields(row RawCsvRow) []string {
	var missing []string
	for _, f := range RequiredCsvFields {
		if strings.TrimSpace(row.Field(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ValidateRows returns one message per row that lacks a required field,
// formatted "Row N: missing a,b" with N counted from 1. A nil result means
// every row is complete.
func ValidateRows(rows []RawCsvRow) []string {
	var errs []string
	for i, row := range rows {
		if missing := MissingFields(row); len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Row %d: missing %s", i+1, strings.Join(missing, ",")))
		}
	}
	return errs
}

// MissingColumns returns the required fields absent from a header index.
func MissingColumns(header HeaderIndex) []string {
	var missing []string
	for _, f := range RequiredCsvFields {
		if _, ok := header[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// validateBatch applies mode to a parsed file and returns a
// ValidationFailure, or nil if the batch may be mapped.
func validateBatch(res ParseResult, mode ValidationMode) *Error {
	if missing := MissingColumns(res.Header); len(missing) > 0 {
		return &Error{
			Kind:    KindValidationFailure,
			Message: "Missing required fields: " + strings.Join(missing, ", "),
			Details: missing,
		}
	}

	if mode == ValidateFirstRow {
		if missing := MissingFields(res.Rows[0]); len(missing) > 0 {
			return &Error{
				Kind:    KindValidationFailure,
				Message: "Missing required fields: " + strings.Join(missing, ", "),
				Details: missing,
			}
		}
		return nil
	}

	if errs := ValidateRows(res.Rows); len(errs) > 0 {
		return &Error{
			Kind:    KindValidationFailure,
			Message: "Validation errors: " + strings.Join(errs, ", "),
			Details: errs,
		}
	}
	return nil
}
