package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// IntentKind names a signal sent to an external service. The wizard never waits on it.
type IntentKind string

const (
	IntentSendOTP          IntentKind = "send_otp"
	IntentResendOTP        IntentKind = "resend_otp"
	IntentSocialRedirect   IntentKind = "social_redirect"
	IntentSessionCompleted IntentKind = "session_completed"
)

type Intent struct {
	ID        string            `json:"id"`
	Kind      IntentKind        `json:"kind"`
	SessionID string            `json:"session_id"`
	Email     string            `json:"email,omitempty"`
	Provider  SocialProvider    `json:"provider,omitempty"`
	Result    *CompletionResult `json:"result,omitempty"`
	At        time.Time         `json:"at"`
}

// NewIntent stamps a sortable id so consumers can order signals per session.
func NewIntent(kind IntentKind, sessionID string) Intent {
	return Intent{
		ID:        ulid.Make().String(),
		Kind:      kind,
		SessionID: sessionID,
		At:        time.Now().UTC(),
	}
}
