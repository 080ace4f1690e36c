// Package sql embeds the database schema.
package sql

import _ "embed"

//go:embed schema.sql
var schema string

// Schema returns the full database schema as a single statement batch.
func Schema() string {
	return schema
}
