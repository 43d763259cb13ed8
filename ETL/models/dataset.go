package models

import (
	"sort"
	"time"
)

// Dataset is the prepared, read-only data context shared by every request.
// It is built once and never mutated; accessors return copies.
type Dataset struct {
	rows      []AggregatedRow
	countries []string
	years     []int
	byYear    map[int][]int // year -> indices into rows, in country order
	source    string
	loadedAt  time.Time
}

// NewDataset copies rows, orders them by country and year and builds the indices
func NewDataset(rows []AggregatedRow, source string, loadedAt time.Time) *Dataset {
	ds := &Dataset{
		rows:     make([]AggregatedRow, len(rows)),
		byYear:   make(map[int][]int),
		source:   source,
		loadedAt: loadedAt,
	}
	copy(ds.rows, rows)
	sort.SliceStable(ds.rows, func(i, j int) bool {
		return ds.rows[i].Less(ds.rows[j])
	})

	seenCountry := make(map[string]bool)
	for i, row := range ds.rows {
		if !seenCountry[row.Country] {
			seenCountry[row.Country] = true
			ds.countries = append(ds.countries, row.Country)
		}
		if _, ok := ds.byYear[row.Year]; !ok {
			ds.years = append(ds.years, row.Year)
		}
		ds.byYear[row.Year] = append(ds.byYear[row.Year], i)
	}
	sort.Ints(ds.years)

	return ds
}

// Len returns the number of aggregated rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns a copy of all rows ordered by country, then year
func (d *Dataset) Rows() []AggregatedRow {
	out := make([]AggregatedRow, len(d.rows))
	copy(out, d.rows)
	return out
}

// Countries returns the unique countries in ascending order
func (d *Dataset) Countries() []string {
	out := make([]string, len(d.countries))
	copy(out, d.countries)
	return out
}

// Years returns the unique years in ascending order
func (d *Dataset) Years() []int {
	out := make([]int, len(d.years))
	copy(out, d.years)
	return out
}

// HasCountry reports whether the country has at least one row
func (d *Dataset) HasCountry(country string) bool {
	i := sort.SearchStrings(d.countries, country)
	return i < len(d.countries) && d.countries[i] == country
}

// RowsForYear returns the rows of one year ordered by country
func (d *Dataset) RowsForYear(year int) []AggregatedRow {
	idx := d.byYear[year]
	out := make([]AggregatedRow, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.rows[i])
	}
	return out
}

// Filter returns rows matching country and year. An empty country or a zero year matches all.
func (d *Dataset) Filter(country string, year int) []AggregatedRow {
	var candidates []AggregatedRow
	if year != 0 {
		candidates = d.RowsForYear(year)
	} else {
		candidates = d.rows
	}

	out := make([]AggregatedRow, 0)
	for _, row := range candidates {
		if country != "" && row.Country != country {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Source returns where the data was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was built
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
