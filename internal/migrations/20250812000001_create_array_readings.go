package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/heliowatt/opsportal/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250812000001, down_20250812000001)
}

// up_20250812000001 creates the array_readings table
func up_20250812000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating array_readings table...")

	_, err := db.NewCreateTable().
		Model((*models.ArrayReading)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create array_readings table: %w", err)
	}

	_, err = db.NewCreateIndex().
		Model((*models.ArrayReading)(nil)).
		Index("idx_array_readings_recorded_at").
		IfNotExists().
		Column("array_name", "recorded_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to index array_readings: %w", err)
	}

	fmt.Println(" OK")
	return nil
}

// down_20250812000001 drops the array_readings table
func down_20250812000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] dropping array_readings table...")

	_, err := db.NewDropTable().
		Model((*models.ArrayReading)(nil)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop array_readings table: %w", err)
	}

	fmt.Println(" OK")
	return nil
}
