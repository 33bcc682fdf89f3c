// Package migrations embeds the SQL files defining the documents table
// schema. The files are applied by golang-migrate through its iofs
// source driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the embedded migrations bring the
// database up to.
const Version = 1
