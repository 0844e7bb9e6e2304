// Package migrations ships the users and tailor_profiles schema.
package migrations

import "embed"

// Files holds the NNNN_name.sql migrations that db.OpenSQLite applies in
// version order.
//
//go:embed *.sql
var Files embed.FS
