package security

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"lawvriksh-onboarding/internal/config"
	"lawvriksh-onboarding/internal/domain/ports/adapter"

	"github.com/golang-jwt/jwt/v5"
)

var _ adapter.SessionIssuer = (*SessionIssuer)(nil)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

const issuer = "lawvriksh-onboarding"

// SessionIssuer mints HS256 tokens for completed wizards and reads them back from a
// bearer header or the session cookie.
type SessionIssuer struct {
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieDomain string
	secure       bool
	now          func() time.Time
}

func NewSessionIssuer(cfg config.SessionConfig) (*SessionIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret empty")
	}
	return &SessionIssuer{
		secret:       []byte(cfg.Secret),
		ttl:          cfg.TTL,
		cookieName:   cfg.CookieName,
		cookieDomain: cfg.CookieDomain,
		secure:       cfg.SecureCookie,
		now:          time.Now,
	}, nil
}

type sessionClaims struct {
	adapter.SessionClaims
	jwt.RegisteredClaims
}

func (s *SessionIssuer) Mint(c adapter.SessionClaims) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := sessionClaims{
		SessionClaims: c,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   c.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *SessionIssuer) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Domain:   s.cookieDomain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionIssuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionIssuer) ParseFromRequest(r *http.Request) (*adapter.SessionClaims, error) {
	// Authorization: Bearer <jwt>
	if hdr := r.Header.Get("Authorization"); len(hdr) > 7 && strings.EqualFold(hdr[:7], "bearer ") {
		return s.parse(strings.TrimSpace(hdr[7:]))
	}
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		return s.parse(c.Value)
	}
	return nil, ErrMissingToken
}

func (s *SessionIssuer) parse(tok string) (*adapter.SessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims.SessionClaims, nil
}
