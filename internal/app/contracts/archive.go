package contracts

import (
	"context"
	"medilab-service/internal/app/models"
)

// ReportArchiver stores a snapshot of the completed report in object
// storage for audit and export. Archival is best-effort.
type ReportArchiver interface {
	Archive(ctx context.Context, order *models.LabOrder) error
}
