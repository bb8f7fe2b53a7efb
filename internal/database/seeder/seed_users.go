package seeder

import (
	"context"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

const (
	DemoProvider  = "demo"
	DemoAccountID = "demo-recruiter"
	DemoEmail     = "recruiter@jobboard.local"
)

// DemoUserSeeder creates the account that owns the demo listings.
type DemoUserSeeder struct{}

func (DemoUserSeeder) Name() string { return "demo_user" }

func (DemoUserSeeder) Requires() []Table {
	return []Table{
		{Name: "users", Columns: []string{"id", "name", "email", "image", "created_at", "updated_at"}},
		{Name: "accounts", Columns: []string{"user_id", "provider", "provider_account_id"}},
	}
}

func (DemoUserSeeder) Run(ctx context.Context, db database.DB) error {
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var id uuid.UUID
		row := tx.QueryRow(ctx,
			`INSERT INTO users (name, email) VALUES ($1, $2)
			 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			"Demo Recruiter", DemoEmail,
		)
		if err := row.Scan(&id); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO accounts (user_id, provider, provider_account_id) VALUES ($1, $2, $3)
			 ON CONFLICT (provider, provider_account_id) DO NOTHING`,
			id, DemoProvider, DemoAccountID,
		)
		return err
	})
}
