// Package schemas provides the SQL migrations of the mysql storage driver.
package schemas

import "embed"

// Migrations holds the migration files, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
