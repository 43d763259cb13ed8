package models

import (
	"time"
)

// Run statuses
const (
	RunStatusInProgress = "in_progress"
	RunStatusSuccess    = "success"
	RunStatusFailed     = "failed"
)

// ETLRunLog summarizes the startup preparation run. It lives in memory only.
type ETLRunLog struct {
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	Source               string    `json:"source"`
	RecordsExtracted     int       `json:"records_extracted"`
	SkippedRows          int       `json:"skipped_rows"`
	RowsAggregated       int       `json:"rows_aggregated"`
	ZeroSubstitutions    int       `json:"zero_substitutions"`
	Countries            int       `json:"countries"`
	FirstYear            int       `json:"first_year"`
	LastYear             int       `json:"last_year"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// NewETLRunLog starts a run log for the given source
func NewETLRunLog(source string, startTime time.Time) *ETLRunLog {
	return &ETLRunLog{
		StartTime: startTime,
		Status:    RunStatusInProgress,
		Source:    source,
	}
}

// MarkSuccess closes the log with the dataset shape
func (l *ETLRunLog) MarkSuccess(endTime time.Time, extracted *ExtractedData, transformed *TransformedData, ds *Dataset) {
	l.EndTime = endTime
	l.Status = RunStatusSuccess
	l.ExecutionTimeSeconds = endTime.Sub(l.StartTime).Seconds()

	if extracted != nil {
		// raw data rows, skipped ones included
		l.RecordsExtracted = len(extracted.Records) + extracted.SkippedRows
		l.SkippedRows = extracted.SkippedRows
	}
	if transformed != nil {
		l.RowsAggregated = transformed.Metadata.RowsAggregated
		l.ZeroSubstitutions = transformed.Metadata.ZeroSubstitutions
	}
	if ds != nil {
		l.Countries = len(ds.Countries())
		years := ds.Years()
		if len(years) > 0 {
			l.FirstYear = years[0]
			l.LastYear = years[len(years)-1]
		}
	}
}

// MarkFailure closes the log with the error that stopped the run
func (l *ETLRunLog) MarkFailure(endTime time.Time, err error) {
	l.EndTime = endTime
	l.Status = RunStatusFailed
	l.ExecutionTimeSeconds = endTime.Sub(l.StartTime).Seconds()
	if err != nil {
		l.ErrorMessage = err.Error()
	}
}
