package models

import (
	"time"
)

// TransformedData is the aggregated table ready to be loaded into a Dataset
type TransformedData struct {
	Rows     []AggregatedRow
	Metadata ETLMetadata
}

// ETLMetadata describes one pass of the transform phase
type ETLMetadata struct {
	TransformedAt     time.Time
	RecordsProcessed  int
	RowsAggregated    int
	ZeroSubstitutions int
}
