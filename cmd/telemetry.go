package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/heliowatt/opsportal/internal/db/bunx"
	"github.com/heliowatt/opsportal/internal/db/models"
	"github.com/heliowatt/opsportal/internal/repository"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Telemetry management commands",
	Long:  `Commands for recording and inspecting solar array readings.`,
}

var (
	recordArray  string
	recordPower  float64
	recordEnergy float64
)

var telemetryRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one array reading",
	Long:  `Records a single power/energy reading for an array. Used by the site collectors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recordArray == "" {
			return fmt.Errorf("--array is required")
		}

		db, err := bunx.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		repo := repository.NewBunTelemetryRepository(db)
		reading := &models.ArrayReading{
			ArrayName: recordArray,
			PowerKW:   recordPower,
			EnergyKWh: recordEnergy,
		}
		if err := repo.Insert(context.Background(), reading); err != nil {
			return fmt.Errorf("failed to record reading: %w", err)
		}

		log.Printf("Recorded reading %s for %s", reading.ID, reading.ArrayName)
		return nil
	},
}

var telemetryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent readings",
	Long:  `Lists the readings recorded over the last 24 hours, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		repo := repository.NewBunTelemetryRepository(db)
		readings, err := repo.Since(context.Background(), time.Now().UTC().Add(-24*time.Hour))
		if err != nil {
			return fmt.Errorf("failed to list readings: %w", err)
		}

		log.Printf("Readings (last 24h):")
		for _, r := range readings {
			log.Printf("  %s  %-20s  %8.1f kW  %8.1f kWh",
				r.RecordedAt.Format(time.RFC3339), r.ArrayName, r.PowerKW, r.EnergyKWh)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryRecordCmd)
	telemetryCmd.AddCommand(telemetryListCmd)

	telemetryRecordCmd.Flags().StringVar(&recordArray, "array", "", "Array name")
	telemetryRecordCmd.Flags().Float64Var(&recordPower, "power", 0, "Instantaneous power in kW")
	telemetryRecordCmd.Flags().Float64Var(&recordEnergy, "energy", 0, "Energy produced today in kWh")
}
