package domain

import (
	"time"
)

// StepResult records how a single cleaning step changed the table
type StepResult struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	RowsIn   int           `json:"rows_in"`
	RowsOut  int           `json:"rows_out"`
	Duration time.Duration `json:"duration"`
}

// Removed returns the number of rows the step dropped
func (r StepResult) Removed() int {
	return r.RowsIn - r.RowsOut
}

// CleanupSummary is the outcome of one cleanup run
type CleanupSummary struct {
	SourcePath         string       `json:"source_path"`
	CSVPath            string       `json:"csv_path"`
	ExcelPath          string       `json:"excel_path"`
	OriginalCount      int          `json:"original_count"`
	FinalCount         int          `json:"final_count"`
	WalkInRemoved      int          `json:"walk_in_removed"`
	IncompleteRemoved  int          `json:"incomplete_removed"`
	InvalidDateRemoved int          `json:"invalid_date_removed"`
	DuplicatesRemoved  int          `json:"duplicates_removed"`
	Steps              []StepResult `json:"steps"`
	StartedAt          time.Time    `json:"started_at"`
	FinishedAt         time.Time    `json:"finished_at"`
}

// RetentionPercent returns the share of source rows that survived cleaning
func (s CleanupSummary) RetentionPercent() float64 {
	if s.OriginalCount == 0 {
		return 0
	}
	return float64(s.FinalCount) / float64(s.OriginalCount) * 100
}
