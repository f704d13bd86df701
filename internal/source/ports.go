// Package source defines the "produce a raw record sequence" capability.
// The bulk CSV export, the Socrata JSON endpoint, and the seeded SQLite
// dataset are interchangeable implementations selected by configuration.
package source

import (
	"context"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// Source produces the full raw record table. A fetch is atomic: it
// returns either every record or a core.LoadError, never a partial set.
type Source interface {
	Fetch(ctx context.Context) (core.Table, error)

	// Key identifies the concrete source and its location, used as part
	// of the record store's memoization key.
	Key() string
}
