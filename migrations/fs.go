// Package migrations embeds the numbered SQL schema files for every
// supported storage backend. The sqlite and postgres subdirectories hold the
// same logical schema expressed per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
