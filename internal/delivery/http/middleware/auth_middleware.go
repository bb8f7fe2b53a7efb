package middleware

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxIdentityKey = "identity"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Identity, error)
}

type SessionConfig struct {
	CookieName string
	SignInPath string
}

// SessionMiddleware resolves the caller's identity from the session cookie
// or a bearer token.
type SessionMiddleware struct {
	auth Authenticator
	cfg  SessionConfig
}

func NewSessionMiddleware(auth Authenticator, cfg SessionConfig) *SessionMiddleware {
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/sign-in"
	}
	return &SessionMiddleware{auth: auth, cfg: cfg}
}

// Required sends callers without a valid session to the sign-in path with
// 303 See Other instead of running the handler.
func (m *SessionMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := m.resolve(c)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				return c.Redirect().Status(fiber.StatusSeeOther).To(m.cfg.SignInPath)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		c.Locals(CtxIdentityKey, id)
		return c.Next()
	}
}

// Optional attaches the identity when a valid session is present and
// otherwise lets the request through anonymously.
func (m *SessionMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if id, err := m.resolve(c); err == nil {
			c.Locals(CtxIdentityKey, id)
		}
		return c.Next()
	}
}

func (m *SessionMiddleware) resolve(c fiber.Ctx) (user.Identity, error) {
	token, ok := SessionToken(c, m.cfg.CookieName)
	if !ok {
		return user.Identity{}, usecase.ErrUnauthorized
	}
	return m.auth.Authenticate(c.Context(), token)
}

func IdentityFrom(c fiber.Ctx) (user.Identity, bool) {
	id, ok := c.Locals(CtxIdentityKey).(user.Identity)
	if !ok || id.IsZero() {
		return user.Identity{}, false
	}
	return id, true
}

// SessionToken returns the bearer token if present, else the session cookie.
func SessionToken(c fiber.Ctx, cookieName string) (string, bool) {
	if token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization)); ok {
		return token, true
	}
	if cookieName == "" {
		return "", false
	}
	token := strings.TrimSpace(c.Cookies(cookieName))
	return token, token != ""
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
