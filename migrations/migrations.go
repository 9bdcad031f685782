// Package migrations embeds the goose SQL migrations of both services.
// Each service owns its own database and migration set.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed catalogue/*.sql payments/*.sql
var files embed.FS

// Set names a migration directory.
type Set string

const (
	Catalogue Set = "catalogue"
	Payments  Set = "payments"
)

// FS returns the migrations of the given set rooted at the set directory,
// as goose.NewProvider expects.
func FS(set Set) (fs.FS, error) {
	switch set {
	case Catalogue, Payments:
	default:
		return nil, fmt.Errorf("migrations: unknown set %q", set)
	}
	sub, err := fs.Sub(files, string(set))
	if err != nil {
		return nil, fmt.Errorf("migrations: %s: %w", set, err)
	}
	return sub, nil
}
