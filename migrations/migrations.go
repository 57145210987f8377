// Package migrations embeds the goose SQL migrations for the postgres storage driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
