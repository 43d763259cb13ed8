package models

import (
	"fmt"
	"strings"
)

// DataLoadError reports a source that could not be fetched or read
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// DataFormatError reports a table that does not have the expected shape.
// Row is 1-based and counts the header row; zero means the whole table.
type DataFormatError struct {
	Columns []string
	Row     int
	Reason  string
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("data format")
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if len(e.Columns) > 0 {
		fmt.Fprintf(&b, ": column %s", strings.Join(e.Columns, ", "))
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// MissingColumnsError builds the DataFormatError for absent header columns
func MissingColumnsError(columns []string) *DataFormatError {
	return &DataFormatError{Columns: columns, Reason: "missing"}
}

// DomainError reports a negative aggregate that would reach the logarithm
type DomainError struct {
	Country string
	Year    int
	Column  string
	Value   float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s %d: %s is %g, logarithm undefined for negative values", e.Country, e.Year, e.Column, e.Value)
}
