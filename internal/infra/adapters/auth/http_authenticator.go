// File: internal/infra/adapters/auth/http_authenticator.go
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
)

var _ adapter.Authenticator = (*HTTPAuthenticator)(nil)

// HTTPAuthenticator posts credentials to a remote login endpoint
// (POST {base}/api/login with {"email","passcode"}).
type HTTPAuthenticator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAuthenticator(baseURL string, timeout time.Duration) (*HTTPAuthenticator, error) {
	if baseURL == "" {
		return nil, errors.New("auth backend url empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid auth backend url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPAuthenticator{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/login",
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Authenticate returns nil on 2xx. Any other status with a JSON body is a
// *model.RejectedError carrying the backend's "detail" when it is a string; anything
// else is a transport failure.
func (a *HTTPAuthenticator) Authenticate(ctx context.Context, creds model.Credentials) error {
	b, _ := json.Marshal(map[string]string{
		"email":    creds.Email,
		"passcode": creds.Passcode,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var out struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return fmt.Errorf("auth backend: status %d with unreadable body: %w", resp.StatusCode, err)
	}
	rejected := &model.RejectedError{Status: resp.StatusCode}
	// detail may also be a validation list; only a plain string is shown to the user
	var detail string
	if json.Unmarshal(out.Detail, &detail) == nil {
		rejected.Detail = detail
	}
	return rejected
}
