// Package migrations embeds the Postgres schema so binaries can migrate without the source tree.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS
