package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"datareport/models"
	"datareport/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReportRepositoryImpl implements ports.ReportArchive for PostgreSQL
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report archive
func NewReportRepository(db *sqlx.DB) ports.ReportArchive {
	return &ReportRepositoryImpl{db: db}
}

// EnsureSchema creates the reports table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			insight_count INTEGER NOT NULL,
			html TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("creating reports table: %w", err)
	}
	return nil
}

// Save stores a generated report
func (r *ReportRepositoryImpl) Save(ctx context.Context, record *models.ReportRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (id, source, row_count, column_count, insight_count, html, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, record.ID, record.Source, record.RowCount, record.ColumnCount,
		record.InsightCount, record.HTML, record.CreatedAt)
	return err
}

// List returns the most recent reports without their HTML payloads
func (r *ReportRepositoryImpl) List(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	records := make([]models.ReportRecord, 0, limit)
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, source, row_count, column_count, insight_count, '' AS html, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Get retrieves one archived report including its HTML document
func (r *ReportRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.ReportRecord, error) {
	var record models.ReportRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, source, row_count, column_count, insight_count, html, created_at
		FROM reports
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
