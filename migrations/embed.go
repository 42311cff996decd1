// Package migrations embeds the goose SQL migrations so the binary
// can bring the schema up on its own.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
