package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h fiber.Handler) (int, []byte) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, MessageNotFound, DefaultMessage(fiber.StatusNotFound))
	assert.Equal(t, MessageCreated, DefaultMessage(fiber.StatusCreated))
	assert.Equal(t, MessageServiceUnavailable, DefaultMessage(fiber.StatusServiceUnavailable))
	assert.Equal(t, MessageInternalServerError, DefaultMessage(fiber.StatusBadGateway))
	assert.Equal(t, MessageError, DefaultMessage(fiber.StatusTeapot))
}

func TestError_FillsMessageAndClampsStatus(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return Error(c, 42, "", nil)
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, fiber.StatusInternalServerError, env.Status)
	assert.Equal(t, MessageInternalServerError, env.Message)
	assert.Nil(t, env.Data)
}

func TestError_CarriesFieldErrors(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return Error(c, fiber.StatusBadRequest, MessageValidationFailed, FieldErrors{"title": "is required"})
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"status":400,"message":"Validation failed","data":{"title":"is required"}}`, string(body))
}

func TestPayload_IsBare(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return Payload(c, fiber.StatusCreated, []string{"a", "b"})
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `["a","b"]`, string(body))
}
