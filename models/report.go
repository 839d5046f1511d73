package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportRecord is the persisted form of a generated report for the archive
type ReportRecord struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Source       string    `db:"source" json:"source"`
	RowCount     int       `db:"row_count" json:"row_count"`
	ColumnCount  int       `db:"column_count" json:"column_count"`
	InsightCount int       `db:"insight_count" json:"insight_count"`
	HTML         string    `db:"html" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// NewReportRecord creates an archive record for a generated report
func NewReportRecord(source string, rows, columns, insights int, html string) *ReportRecord {
	return &ReportRecord{
		ID:           uuid.New(),
		Source:       source,
		RowCount:     rows,
		ColumnCount:  columns,
		InsightCount: insights,
		HTML:         html,
		CreatedAt:    time.Now(),
	}
}
