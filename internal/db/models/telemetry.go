package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ArrayReading is one telemetry sample from a solar array: instantaneous
// output plus the running energy total for the day, as reported by the
// site data logger.
type ArrayReading struct {
	bun.BaseModel `bun:"table:array_readings,alias:ar"`

	ID         string    `bun:"id,pk,type:uuid"`
	ArrayName  string    `bun:"array_name,notnull"`
	PowerKW    float64   `bun:"power_kw,notnull"`
	EnergyKWh  float64   `bun:"energy_kwh,notnull"` // cumulative for the reading's day
	RecordedAt time.Time `bun:"recorded_at,notnull"`
}
