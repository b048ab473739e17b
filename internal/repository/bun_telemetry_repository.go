package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/heliowatt/opsportal/internal/db/models"
)

// BunTelemetryRepository persists array readings using Bun against
// PostgreSQL or SQLite.
type BunTelemetryRepository struct {
	db *bun.DB
}

// NewBunTelemetryRepository constructs a repository backed by Bun.
func NewBunTelemetryRepository(db *bun.DB) TelemetryRepository {
	return &BunTelemetryRepository{db: db}
}

// Insert records one reading, assigning an ID when the caller left it empty.
func (r *BunTelemetryRepository) Insert(ctx context.Context, reading *models.ArrayReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}
	if _, err := r.db.NewInsert().Model(reading).Exec(ctx); err != nil {
		return fmt.Errorf("insert reading for %s: %w", reading.ArrayName, err)
	}
	return nil
}

// LatestPerArray returns the most recent reading of each array.
func (r *BunTelemetryRepository) LatestPerArray(ctx context.Context) ([]models.ArrayReading, error) {
	var readings []models.ArrayReading
	err := r.db.NewSelect().
		Model(&readings).
		Where("(array_name, recorded_at) IN (SELECT array_name, MAX(recorded_at) FROM array_readings GROUP BY array_name)").
		Order("array_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query latest readings: %w", err)
	}
	return readings, nil
}

// Since returns readings recorded at or after the cutoff, newest first.
func (r *BunTelemetryRepository) Since(ctx context.Context, cutoff time.Time) ([]models.ArrayReading, error) {
	var readings []models.ArrayReading
	err := r.db.NewSelect().
		Model(&readings).
		Where("recorded_at >= ?", cutoff).
		Order("recorded_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query readings since %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return readings, nil
}
