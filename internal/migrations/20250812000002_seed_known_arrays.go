package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/heliowatt/opsportal/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250812000002, down_20250812000002)
}

// knownArrays are the commissioned generation sites. Each gets a zero
// baseline reading so the dashboard renders before the collectors report.
var knownArrays = []string{"east-field", "west-field", "rooftop"}

// up_20250812000002 seeds a baseline reading per commissioned array
func up_20250812000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] seeding baseline array readings...")

	now := time.Now().UTC()
	readings := make([]models.ArrayReading, 0, len(knownArrays))
	for _, name := range knownArrays {
		readings = append(readings, models.ArrayReading{
			ID:         uuid.NewString(),
			ArrayName:  name,
			PowerKW:    0,
			EnergyKWh:  0,
			RecordedAt: now,
		})
	}

	if _, err := db.NewInsert().Model(&readings).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed array readings: %w", err)
	}

	fmt.Println(" OK")
	return nil
}

// down_20250812000002 removes the zero baseline readings
func down_20250812000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] removing baseline array readings...")

	_, err := db.NewDelete().
		Model((*models.ArrayReading)(nil)).
		Where("power_kw = 0 AND energy_kwh = 0").
		Where("array_name IN (?)", bun.In(knownArrays)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove baseline readings: %w", err)
	}

	fmt.Println(" OK")
	return nil
}
