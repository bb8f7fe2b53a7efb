package jwt

import (
	"testing"
	"time"

	"jobboard/internal/domain/user"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = user.Identity{UserID: uuid.MustParse("0b1f8f5e-2b34-4c9a-9b77-5d1c2f3a4b5c"), Name: "Ada", Email: "ada@example.com"}

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, "jobboard")

	token, issued, err := svc.GenerateSessionToken(ada)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ada, claims.Identity())
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAtTime(), 5*time.Second)
}

func TestHMACService_TokenIDsAreUnique(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, "")

	_, a, err := svc.GenerateSessionToken(ada)
	require.NoError(t, err)
	_, b, err := svc.GenerateSessionToken(ada)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute, "")
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := svc.GenerateSessionToken(ada)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsForeignTokens(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, "jobboard")

	other, _, err := NewHMACService("other", time.Hour, "jobboard").GenerateSessionToken(ada)
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongIssuer, _, err := NewHMACService("secret", time.Hour, "elsewhere").GenerateSessionToken(ada)
	require.NoError(t, err)
	_, err = svc.ValidateToken(wrongIssuer)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: ada.UserID, TokenType: TokenTypeSession}).
		SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsWrongTokenType(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, "")
	c := Claims{
		UserID:    ada.UserID,
		TokenType: "refresh",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        "x",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RefusesToSignWithoutSetup(t *testing.T) {
	_, _, err := NewHMACService("", time.Hour, "").GenerateSessionToken(ada)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = NewHMACService("secret", time.Hour, "").GenerateSessionToken(user.Identity{})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
