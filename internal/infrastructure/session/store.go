// Package session holds the server-side state behind signed session tokens:
// revoked token ids and pending OAuth login states.
package session

import (
	"context"
	"errors"
	"time"
)

const (
	revokedPrefix = "session:revoked:"
	statePrefix   = "oauth:state:"
)

var ErrUnavailable = errors.New("session store unavailable")

type Store interface {
	Ping(ctx context.Context) error

	// Revoke marks tokenID as signed out until expiresAt. Already expired
	// tokens need no entry.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	SaveState(ctx context.Context, state, provider string, ttl time.Duration) error
	// ConsumeState returns the provider bound to state and deletes it, so a
	// state is accepted at most once.
	ConsumeState(ctx context.Context, state string) (string, bool, error)
}

func revokedKey(tokenID string) string { return revokedPrefix + tokenID }

func stateKey(state string) string { return statePrefix + state }
