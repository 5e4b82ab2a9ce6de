package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/requests"
)

// LabOrderFilter narrows List and Count queries. An empty filter
// matches everything in insertion order.
type LabOrderFilter struct {
	Statuses []string
	Priority string
	// Search is matched case-insensitively as a substring of the
	// patient name or the test type.
	Search string
	// SortBy selects an explicit sort key ("createdAt" ascending or
	// "reportDate" descending); empty keeps insertion order.
	SortBy string
	Limit  int64
}

type LabOrderRepository interface {
	// Create persists a fully populated order. The barcode must be
	// unused; a collision yields a DuplicateBarcode error.
	Create(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error)

	// FindByID and FindByBarcode return (nil, nil) when no document
	// matches, leaving not-found semantics to the caller.
	FindByID(ctx context.Context, orderID string) (*models.LabOrder, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.LabOrder, error)

	List(ctx context.Context, filter LabOrderFilter) ([]models.LabOrder, error)
	Count(ctx context.Context, filter LabOrderFilter) (int64, error)

	// The three mutation methods below are compare-and-swap writes:
	// the document is updated only while its current status is in
	// fromStatuses. They return (nil, nil) when the guard does not
	// match, so a racing transition has exactly one winner.
	UpdateStatus(ctx context.Context, orderID string, fromStatuses []string, toStatus string) (*models.LabOrder, error)
	AttachSpecimen(ctx context.Context, orderID string, fromStatuses []string, specimen *models.Specimen) (*models.LabOrder, error)
	Complete(ctx context.Context, orderID string, fromStatuses []string, completion *models.Completion) (*models.LabOrder, error)
}

type LabTestUsecase interface {
	CreateOrder(ctx context.Context, request *requests.CreateLabOrder) (*models.LabOrder, error)
	FindOrderByID(ctx context.Context, orderID string) (*models.LabOrder, error)
	ResolveBarcode(ctx context.Context, barcodeText string) (*models.LabOrder, error)
	UpdateStatus(ctx context.Context, request *requests.UpdateLabOrderStatus) (*models.LabOrder, error)
	RecordSpecimen(ctx context.Context, request *requests.RecordSpecimen) (*models.LabOrder, error)
	CompleteTest(ctx context.Context, request *requests.CompleteTest) (*models.LabOrder, error)
	ListOrders(ctx context.Context, request *requests.ListLabOrders) ([]models.LabOrder, error)
}
