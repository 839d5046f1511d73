package ports

import (
	"context"

	"datareport/models"

	"github.com/google/uuid"
)

// ReportArchive stores generated reports for later listing and download.
// Archiving is optional; the pipeline itself never depends on it.
type ReportArchive interface {
	Save(ctx context.Context, record *models.ReportRecord) error
	List(ctx context.Context, limit int) ([]models.ReportRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ReportRecord, error)
}
