// Package store persists the customer registration records the review
// pipeline reads and updates.
package store

import (
	"context"

	"emend/internal/review/models"
)

// Store reads and rewrites registration records by unique id. Update reports
// how many records matched so the caller can tell a vanished record apart
// from a successful write.
type Store interface {
	Get(ctx context.Context, uniqueID string) (*models.Record, error)
	Update(ctx context.Context, uniqueID string, record *models.Record) (matched int64, err error)
}
