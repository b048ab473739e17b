// Package migrations holds the telemetry schema migrations, applied via the
// "opsportal db" commands.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry the db commands run against.
var Migrations = migrate.NewMigrations()
