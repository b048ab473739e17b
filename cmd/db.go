package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	"github.com/heliowatt/opsportal/internal/db/bunx"
	"github.com/heliowatt/opsportal/internal/migrations"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Telemetry database commands",
	Long:  `Manages the telemetry database schema: migration tracking, applying the array-readings schema, and rolling it back.`,
}

// withMigrator opens the telemetry database, builds a migrator over the
// portal's migration set, and hands both to fn. The connection is closed
// when fn returns.
func withMigrator(fn func(ctx context.Context, m *migrate.Migrator) error) error {
	db, err := bunx.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to telemetry database: %w", err)
	}
	defer bunx.Close(db)

	return fn(context.Background(), migrate.NewMigrator(db, migrations.Migrations))
}

// withLockedMigrator is withMigrator plus the migration lock, so concurrent
// deploys of the portal cannot run schema changes over each other.
func withLockedMigrator(fn func(ctx context.Context, m *migrate.Migrator) error) error {
	return withMigrator(func(ctx context.Context, m *migrate.Migrator) error {
		if err := m.Lock(ctx); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		defer func() {
			if err := m.Unlock(ctx); err != nil {
				log.Printf("Warning: failed to release migration lock: %v", err)
			}
		}()
		return fn(ctx, m)
	})
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tracking",
	Long:  `Creates the migration tracking tables. Run once when standing up a new portal database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(ctx context.Context, m *migrate.Migrator) error {
			if err := m.Init(ctx); err != nil {
				return fmt.Errorf("failed to initialize migrator: %w", err)
			}
			log.Printf("Migration tracking initialized")
			return nil
		})
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  `Brings the telemetry schema up to date, taking the migration lock so overlapping deploys stay serialized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLockedMigrator(func(ctx context.Context, m *migrate.Migrator) error {
			group, err := m.Migrate(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if group.ID == 0 {
				log.Printf("Telemetry schema already up to date")
			} else {
				log.Printf("Applied migration group %d", group.ID)
			}
			return nil
		})
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Lists every known migration and whether it has been applied to this database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(ctx context.Context, m *migrate.Migrator) error {
			ms, err := m.MigrationsWithStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			log.Printf("Migrations:")
			for _, mig := range ms {
				status := "pending"
				if mig.GroupID > 0 {
					status = fmt.Sprintf("applied (group %d)", mig.GroupID)
				}
				log.Printf("  %s: %s", mig.Name, status)
			}
			return nil
		})
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the last migration group",
	Long:  `Reverts the most recently applied migration group under the migration lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLockedMigrator(func(ctx context.Context, m *migrate.Migrator) error {
			group, err := m.Rollback(ctx)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			if group.ID == 0 {
				log.Printf("Nothing to roll back")
			} else {
				log.Printf("Rolled back migration group %d", group.ID)
			}
			return nil
		})
	},
}

// dbUnlockCmd stays because a migration killed mid-run leaves the lock held
// and the next deploy stuck; this is the recovery path.
var dbUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Force release a stuck migration lock",
	Long:  `Releases the migration lock left behind by a migration that died while holding it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(ctx context.Context, m *migrate.Migrator) error {
			if err := m.Unlock(ctx); err != nil {
				return fmt.Errorf("failed to release migration lock: %w", err)
			}
			log.Printf("Migration lock released")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbRollbackCmd)
	dbCmd.AddCommand(dbUnlockCmd)
}
