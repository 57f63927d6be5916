// Package migrations embeds the SQL migration files for the client's local
// cache database so they can be applied with the goose programmatic API.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to a goose.Provider instead of relying on a filesystem
// path at runtime.
//
//go:embed *.sql
var FS embed.FS
