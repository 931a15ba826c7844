// Package migrations embeds the SQL schema migration files applied by the
// migration runner at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
