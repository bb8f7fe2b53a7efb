package seeder

import (
	"context"

	"jobboard/internal/database"
)

// Seeder loads demo data. Runs must be idempotent so `migrate -seed` can be
// repeated against the same database.
type Seeder interface {
	Name() string
	// Requires lists the columns Run writes to; the runner checks them first.
	Requires() []Table
	Run(ctx context.Context, db database.DB) error
}
