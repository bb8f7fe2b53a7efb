package repository

import (
	"context"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/user"
	"jobboard/internal/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type PostgresUserRepository struct {
	db database.DB
}

var _ user.Repository = (*PostgresUserRepository)(nil)

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertFromProfile resolves the provider account to a user inside one
// transaction. A known account re-syncs the user's profile fields. An unknown
// account attaches to the user owning the same verified email, or to a new
// user. Unverified emails are never stored or matched.
func (r *PostgresUserRepository) UpsertFromProfile(ctx context.Context, p user.ExternalProfile) (user.User, error) {
	var email *string
	if e, ok := p.VerifiedEmail(); ok {
		email = &e
	}

	var out user.User
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		userID, err := findAccountUser(ctx, tx, p.Provider, p.ProviderAccountID)
		if err != nil {
			return err
		}

		if userID == uuid.Nil {
			userID, err = createOrLinkUser(ctx, tx, p.Name, email)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO accounts (user_id, provider, provider_account_id) VALUES ($1, $2, $3)`,
				userID, p.Provider, p.ProviderAccountID,
			); err != nil {
				return errors.Wrap(err, "link account")
			}
		} else if email != nil {
			if err := syncEmail(ctx, tx, userID, *email); err != nil {
				return err
			}
		}

		row := tx.QueryRow(ctx,
			`UPDATE users
			 SET name = COALESCE(NULLIF($2, ''), name),
			     image = COALESCE($3, image),
			     updated_at = now()
			 WHERE id = $1
			 RETURNING id, name, email, image, created_at, updated_at`,
			userID, p.Name, nullable(p.Image),
		)
		if err := row.Scan(userDest(&out)...); err != nil {
			return errors.Wrap(err, "sync user profile")
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return out, nil
}

func findAccountUser(ctx context.Context, q database.Querier, provider, accountID string) (uuid.UUID, error) {
	var id uuid.UUID
	row := q.QueryRow(ctx,
		`SELECT user_id FROM accounts WHERE provider = $1 AND provider_account_id = $2`,
		provider, accountID,
	)
	if err := row.Scan(&id); err != nil {
		if postgres.IsNoRows(err) {
			return uuid.Nil, nil
		}
		return uuid.Nil, errors.Wrap(err, "find account")
	}
	return id, nil
}

// createOrLinkUser returns the user owning email, creating it when absent.
// A nil email always creates a fresh user.
func createOrLinkUser(ctx context.Context, q database.Querier, name string, email *string) (uuid.UUID, error) {
	var id uuid.UUID
	if email == nil {
		row := q.QueryRow(ctx, `INSERT INTO users (name) VALUES ($1) RETURNING id`, name)
		if err := row.Scan(&id); err != nil {
			return uuid.Nil, errors.Wrap(err, "insert user")
		}
		return id, nil
	}

	row := q.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET updated_at = now()
		 RETURNING id`,
		name, *email,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, errors.Wrap(err, "upsert user")
	}
	return id, nil
}

// syncEmail moves the user to the provider's current email. When another user
// already owns it the stored email is kept; the savepoint keeps the
// transaction usable after the constraint violation.
func syncEmail(ctx context.Context, tx database.Tx, userID uuid.UUID, email string) error {
	if _, err := tx.Exec(ctx, `SAVEPOINT sync_email`); err != nil {
		return errors.Wrap(err, "savepoint sync_email")
	}

	_, err := tx.Exec(ctx, `UPDATE users SET email = $2 WHERE id = $1`, userID, email)
	if err == nil {
		if _, err := tx.Exec(ctx, `RELEASE SAVEPOINT sync_email`); err != nil {
			return errors.Wrap(err, "release sync_email")
		}
		return nil
	}
	if !postgres.IsUniqueViolation(err) {
		return errors.Wrap(err, "sync user email")
	}

	log.WithField("user_id", userID).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).
		Warn("provider email belongs to another user, keeping stored email")
	if _, err := tx.Exec(ctx, `ROLLBACK TO SAVEPOINT sync_email`); err != nil {
		return errors.Wrap(err, "rollback to sync_email")
	}
	return nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
