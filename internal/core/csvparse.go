package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxParseErrors caps how many parse problems are collected from one file.
const maxParseErrors = 20

// HeaderIndex maps a normalized column name to its position in the header row.
type HeaderIndex map[string]int

// ParseResult is the outcome of reading a CSV file.
// Errors holds per-line problems; a result with errors must not be imported.
type ParseResult struct {
	Header HeaderIndex
	Rows   []RawCsvRow
	Errors []string
}

// ParseRows reads a CSV stream whose first row is a header.
//
// The stream has its byte order mark skipped and invalid UTF-8 replaced
// before parsing. Header names are matched case-insensitively after
// trimming, unrecognized columns are ignored and all-blank lines are
// skipped. Malformed lines are collected in ParseResult.Errors instead of
// stopping the read. The returned error is reserved for I/O failures.
func ParseRows(r io.Reader) (ParseResult, error) {
	cr := csv.NewReader(NewSanitizingReader(r))
	cr.FieldsPerRecord = -1

	res := ParseResult{Header: HeaderIndex{}}

	header, err := readRecord(cr, &res)
	if err == io.EOF {
		return res, nil
	}
	if err != nil || header == nil {
		return res, err
	}
	res.Header = MakeHeaderIndex(header)
	width := len(header)

	for len(res.Errors) < maxParseErrors {
		rec, err := readRecord(cr, &res)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}
		if rec == nil || isEmptyRow(rec) {
			continue
		}

		if len(rec) != width {
			line, _ := cr.FieldPos(0)
			res.Errors = append(res.Errors, fieldCountMessage(line, width, len(rec)))
		}
		res.Rows = append(res.Rows, buildRow(rec, res.Header))
	}

	return res, nil
}

// readRecord returns the next record. Parse errors are recorded on res and
// reported as a nil record so the caller moves on to the next line.
func readRecord(cr *csv.Reader, res *ParseResult) ([]string, error) {
	rec, err := cr.Read()
	if err == nil || err == io.EOF {
		return rec, err
	}

	var pe *csv.ParseError
	if errors.As(err, &pe) {
		res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", pe.Line, pe.Err))
		return nil, nil
	}
	return nil, fmt.Errorf("read csv: %w", err)
}

func fieldCountMessage(line, want, got int) string {
	if got < want {
		return fmt.Sprintf("line %d: too few fields: expected %d fields but parsed %d", line, want, got)
	}
	return fmt.Sprintf("line %d: too many fields: expected %d fields but parsed %d", line, want, got)
}

func buildRow(rec []string, header HeaderIndex) RawCsvRow {
	var row RawCsvRow
	for _, col := range CsvColumns {
		i, ok := header[col]
		if !ok || i >= len(rec) {
			continue
		}
		row.setField(col, strings.TrimSpace(rec[i]))
	}
	return row
}

// MakeHeaderIndex builds a HeaderIndex from a header row.
// When a name repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// CleanCell trims spreadsheet export noise from a cell: surrounding space,
// a leading formula marker and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
