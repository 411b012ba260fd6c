// Package migrations contains the embedded SQL migrations applied by goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
