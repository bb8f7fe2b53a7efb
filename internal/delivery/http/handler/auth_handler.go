package handler

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CookieConfig struct {
	Name       string
	Secure     bool
	SignInPath string
	HomePath   string
}

type AuthHandler struct {
	uc     usecase.AuthUsecase
	cookie CookieConfig
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie CookieConfig) *AuthHandler {
	if cookie.HomePath == "" {
		cookie.HomePath = "/"
	}
	if cookie.SignInPath == "" {
		cookie.SignInPath = "/sign-in"
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, optionalSession fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/providers", h.Providers)
	r.Get("/session", optionalSession, h.Session)
	r.Post("/signout", h.SignOut)
	r.Get("/:provider/login", h.Login)
	r.Get("/:provider/callback", h.Callback)
}

func (h *AuthHandler) Providers(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Providers())
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	redirect, err := h.uc.BeginLogin(c.Context(), c.Params("provider"))
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To(redirect)
}

// Callback finishes the provider round trip. Failed logins go back to the
// sign-in page with an error code rather than an error body.
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	if e := c.Query("error"); e != "" {
		return c.Redirect().Status(fiber.StatusSeeOther).To(h.signInWithError("OAuthCallback"))
	}

	sess, err := h.uc.CompleteLogin(c.Context(), c.Params("provider"), c.Query("state"), c.Query("code"))
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return c.Redirect().Status(fiber.StatusSeeOther).To(h.signInWithError("OAuthCallback"))
		}
		return mapAuthUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect().Status(fiber.StatusSeeOther).To(h.cookie.HomePath)
}

func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	if token, ok := middleware.SessionToken(c, h.cookie.Name); ok {
		if err := h.uc.SignOut(c.Context(), token); err != nil {
			return mapAuthUsecaseError(err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect().Status(fiber.StatusSeeOther).To(h.cookie.SignInPath)
}

// Session reports the signed-in identity, or null data for anonymous callers.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"user": identity})
}

func (h *AuthHandler) signInWithError(code string) string {
	sep := "?"
	if strings.Contains(h.cookie.SignInPath, "?") {
		sep = "&"
	}
	return h.cookie.SignInPath + sep + "error=" + url.QueryEscape(code)
}

func mapAuthUsecaseError(err error) error {
	switch {
	case usecase.IsUnknownProvider(err):
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown provider", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
