package repository

import (
	"context"
	"time"

	"github.com/heliowatt/opsportal/internal/db/models"
)

// TelemetryRepository stores and serves solar array readings for the
// generation dashboard.
type TelemetryRepository interface {
	// Insert records one reading.
	Insert(ctx context.Context, reading *models.ArrayReading) error

	// LatestPerArray returns the most recent reading of each array,
	// ordered by array name.
	LatestPerArray(ctx context.Context) ([]models.ArrayReading, error)

	// Since returns all readings recorded at or after the cutoff, newest
	// first.
	Since(ctx context.Context, cutoff time.Time) ([]models.ArrayReading, error)
}
