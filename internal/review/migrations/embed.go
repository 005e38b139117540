// Package migrations embeds the SQL schema of the review queue.
package migrations

import "embed"

// FS contains all SQL migration files.
//
//go:embed *.sql
var FS embed.FS
