package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is the authenticated caller derived from a validated session token.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email,omitempty"`
}

func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// ExternalProfile is what an identity provider reports about a signed-in account.
// EmailVerified is set only when the provider attests that the account owns Email.
type ExternalProfile struct {
	Provider          string
	ProviderAccountID string
	Name              string
	Email             string
	EmailVerified     bool
	Image             string
}

// VerifiedEmail returns the trimmed email when the provider verified it.
func (p ExternalProfile) VerifiedEmail() (string, bool) {
	email := strings.TrimSpace(p.Email)
	if !p.EmailVerified || email == "" {
		return "", false
	}
	return email, true
}
