package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerTokenFromHeader(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}

func TestNormalizeError(t *testing.T) {
	status, msg, data := normalizeError(NewAppError(fiber.StatusBadRequest, "", map[string]string{"title": "is required"}, nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "bad request", msg)
	assert.NotNil(t, data)

	status, msg, data = normalizeError(NewAppError(fiber.StatusBadGateway, "upstream said no", "secret", errors.New("boom")))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", msg)
	assert.Nil(t, data)

	status, msg, _ = normalizeError(fiber.NewError(fiber.StatusNotFound, "Cannot GET /nope"))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Cannot GET /nope", msg)

	status, _, _ = normalizeError(errors.New("plain"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestErrorMiddleware_RecoversPanics(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware().Middleware())
	app.Get("/panic", func(c fiber.Ctx) error { panic("kaboom") })

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.JSONEq(t, `{"status":500,"message":"internal server error","data":null}`, string(body))
}

func TestAccessLog_PropagatesRequestIDAndStatus(t *testing.T) {
	logger, hook := test.NewNullLogger()

	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger).Middleware())
	app.Use(NewErrorMiddleware().Middleware())
	app.Get("/missing", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "Job not found", nil, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "rid-1", res.Header.Get(HeaderRequestID))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "rid-1", entry.Data["request_id"])
	assert.Equal(t, fiber.StatusNotFound, entry.Data["status"])
}

func TestSessionToken_BearerBeatsCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		token, _ := SessionToken(c, "session_token")
		return c.SendString(token)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "from-cookie"})
	res, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "from-header", string(body))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "from-cookie"})
	res, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	assert.Equal(t, "from-cookie", string(body))
}
