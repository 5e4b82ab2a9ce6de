package contracts

import (
	"context"
	"medilab-service/internal/app/models"
)

// AlertDispatcher notifies the ordering clinician about a critical
// result. Delivery is advisory: a dispatch failure must never roll back
// or fail the already-persisted completion.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, order *models.LabOrder, recipientRef string) error
}
