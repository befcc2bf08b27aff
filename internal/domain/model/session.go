package model

import (
	"time"

	"github.com/google/uuid"
)

// WizardState is everything one wizard session owns. It is the unit that is saved and
// loaded between actions.
type WizardState struct {
	ID           string            `json:"id"`
	Flow         Flow              `json:"flow"`
	Mode         Mode              `json:"mode"`
	Draft        ProfileDraft      `json:"draft"`
	OTP          *OTPBuffer        `json:"otp"`
	Error        string            `json:"error"`
	Pending      bool              `json:"pending"`
	PendingSince time.Time         `json:"pending_since,omitempty"`
	PendingEmail string            `json:"pending_email,omitempty"` // identity under check
	Result       *CompletionResult `json:"result,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewWizardState returns a session at the login step with an empty draft.
func NewWizardState(id string, flow Flow) *WizardState {
	if id == "" {
		id = uuid.NewString()
	}
	if flow == "" {
		flow = FlowOnboarding
	}
	now := time.Now()
	return &WizardState{
		ID:        id,
		Flow:      flow,
		Mode:      ModeLogin,
		OTP:       NewOTPBuffer(flow.CodeLength()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *WizardState) Touch() { s.UpdatedAt = time.Now() }

// CompletionResult is handed to collaborators once the wizard reaches ModeCompleted.
type CompletionResult struct {
	Email          string         `json:"email"`
	UserName       string         `json:"user_name,omitempty"`
	Interests      []string       `json:"interests,omitempty"`
	Profession     string         `json:"profession,omitempty"`
	SocialProvider SocialProvider `json:"social_provider,omitempty"`
	RememberMe     bool           `json:"remember_me"`
	Via            string         `json:"via"`
	Token          string         `json:"token,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at,omitempty"`
}

// Credentials is what the login step sends to the authentication backend.
type Credentials struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

// Account is the backend's view of an authenticated user.
type Account struct {
	Email string `json:"email"`
}

// RejectedError is a failure reported by the authentication backend itself, carrying
// the human-readable detail it sent (possibly empty).
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return "login rejected"
	}
	return "login rejected: " + e.Detail
}
