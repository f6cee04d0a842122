// Package migrations embeds the SQL files that create the catalog schema.
package migrations

import "embed"

// FS holds every *.up.sql file in lexical (application) order.
//
//go:embed *.up.sql
var FS embed.FS
