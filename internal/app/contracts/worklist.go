package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/responses"
)

type WorklistUsecase interface {
	// PendingWorklist returns orders still driving technician workflow,
	// optionally filtered by a case-insensitive search term. Priority is
	// surfaced on each entry but entries are not reordered by it.
	PendingWorklist(ctx context.Context, searchTerm string) ([]models.LabOrder, error)
	DashboardStats(ctx context.Context) (*responses.DashboardStats, error)
}
