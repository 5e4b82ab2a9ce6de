package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateBarcode builds a scannable label for a newly placed order.
// Barcodes are opaque identifiers; callers must treat them as such.
func GenerateBarcode(prefix string) string {
	timestamp := time.Now().Format("060102150405")
	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, uuid.NewString()[:8])
}
