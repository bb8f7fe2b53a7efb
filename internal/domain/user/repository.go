package user

import (
	"context"
)

type Repository interface {
	// UpsertFromProfile links the provider account to a user, creating the
	// user on first login and syncing name/image (and a verified email)
	// afterwards. Only a verified email links to an existing user.
	UpsertFromProfile(ctx context.Context, p ExternalProfile) (User, error)
}
