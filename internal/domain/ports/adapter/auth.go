package adapter

import (
	"context"
	"net/http"
	"time"

	"lawvriksh-onboarding/internal/domain/model"
)

// Authenticator checks login credentials against the authentication backend. It returns
// nil on success, a *model.RejectedError when the backend refused the pair, and any
// other error for transport failures.
type Authenticator interface {
	Authenticate(ctx context.Context, creds model.Credentials) error
}

// SessionClaims is what a completion token carries.
type SessionClaims struct {
	SessionID  string   `json:"sid"`
	Email      string   `json:"email"`
	UserName   string   `json:"name,omitempty"`
	Profession string   `json:"profession,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Via        string   `json:"via"`
}

// SessionIssuer mints the token handed over when a wizard completes.
type SessionIssuer interface {
	Mint(claims SessionClaims) (token string, expiresAt time.Time, err error)
	SetCookie(w http.ResponseWriter, token string, expiresAt time.Time)
	ClearCookie(w http.ResponseWriter)
	ParseFromRequest(r *http.Request) (*SessionClaims, error)
}
