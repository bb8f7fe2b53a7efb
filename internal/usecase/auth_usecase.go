package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/infrastructure/session"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/pkg/jwt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const LoginStateTTL = 10 * time.Minute

type ProviderRegistry interface {
	Get(name string) (oauth.Provider, error)
	Names() []string
}

// Session is the result of a completed login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

type AuthUsecase interface {
	Providers() []string
	BeginLogin(ctx context.Context, provider string) (string, error)
	CompleteLogin(ctx context.Context, provider, state, code string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (user.Identity, error)
}

type Auth struct {
	providers ProviderRegistry
	users     user.Repository
	tokens    jwt.Service
	store     session.Store
}

func NewAuthUsecase(providers ProviderRegistry, users user.Repository, tokens jwt.Service, store session.Store) *Auth {
	return &Auth{providers: providers, users: users, tokens: tokens, store: store}
}

func (u *Auth) Providers() []string {
	return u.providers.Names()
}

// BeginLogin records a fresh state for provider and returns the URL the
// browser is sent to.
func (u *Auth) BeginLogin(ctx context.Context, provider string) (string, error) {
	p, err := u.providers.Get(provider)
	if err != nil {
		return "", err
	}

	state := uuid.NewString()
	if err := u.store.SaveState(ctx, state, p.Name(), LoginStateTTL); err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).Error("save login state failed")
		return "", ErrInternal
	}
	return p.AuthCodeURL(state), nil
}

func (u *Auth) CompleteLogin(ctx context.Context, provider, state, code string) (Session, error) {
	p, err := u.providers.Get(provider)
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(state) == "" || strings.TrimSpace(code) == "" {
		return Session{}, fmt.Errorf("%w: missing state or code", ErrUnauthorized)
	}

	boundTo, ok, err := u.store.ConsumeState(ctx, state)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).Error("consume login state failed")
		return Session{}, ErrInternal
	}
	if !ok || boundTo != p.Name() {
		return Session{}, fmt.Errorf("%w: unknown or expired login state", ErrUnauthorized)
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeOAuth,
			"provider":            p.Name(),
		}).Error("oauth exchange failed")
		return Session{}, fmt.Errorf("%w: provider rejected the login", ErrUnauthorized)
	}

	usr, err := u.users.UpsertFromProfile(ctx, profile)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error("upsert user failed")
		return Session{}, ErrInternal
	}

	token, claims, err := u.tokens.GenerateSessionToken(identityOf(usr))
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).Error("issue session token failed")
		return Session{}, ErrInternal
	}

	metrics.Logins.WithLabelValues(p.Name()).Inc()
	log.WithFields(log.Fields{"user_id": usr.ID, "provider": p.Name()}).Info("user signed in")
	return Session{Token: token, ExpiresAt: claims.ExpiresAtTime(), User: usr}, nil
}

// SignOut revokes token until it would have expired. Invalid or expired
// tokens are already unusable and are ignored.
func (u *Auth) SignOut(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	claims, err := u.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := u.store.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).Error("revoke session failed")
		return ErrInternal
	}
	return nil
}

func (u *Auth) Authenticate(ctx context.Context, token string) (user.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return user.Identity{}, ErrUnauthorized
	}

	claims, err := u.tokens.ValidateToken(token)
	if err != nil {
		return user.Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	revoked, err := u.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).Error("revocation check failed")
		return user.Identity{}, ErrInternal
	}
	if revoked {
		return user.Identity{}, fmt.Errorf("%w: session signed out", ErrUnauthorized)
	}
	return claims.Identity(), nil
}

func identityOf(u user.User) user.Identity {
	id := user.Identity{UserID: u.ID, Name: u.Name}
	if u.Email != nil {
		id.Email = *u.Email
	}
	return id
}

// IsUnknownProvider reports whether err names a provider that is not configured.
func IsUnknownProvider(err error) bool {
	return errors.Is(err, oauth.ErrUnknownProvider)
}
