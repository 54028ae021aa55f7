// Package migrations embeds the PostgreSQL schema of the data service.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
