package model

import (
	"fmt"
	"strconv"

	"lawvriksh-onboarding/internal/domain"
)

// MaxInterests bounds SelectedInterests.
const MaxInterests = 3

// SocialProvider is an external identity collaborator.
type SocialProvider string

const (
	ProviderNone     SocialProvider = ""
	ProviderGoogle   SocialProvider = "google"
	ProviderLinkedIn SocialProvider = "linkedin"
)

func ParseSocialProvider(s string) (SocialProvider, error) {
	switch SocialProvider(s) {
	case ProviderGoogle, ProviderLinkedIn:
		return SocialProvider(s), nil
	}
	return ProviderNone, fmt.Errorf("unknown social provider %q: %w", s, domain.ErrInvalidArgument)
}

// DraftField names a settable ProfileDraft field.
type DraftField string

const (
	FieldEmail              DraftField = "email"
	FieldPassword           DraftField = "password"
	FieldConfirmPassword    DraftField = "confirm_password"
	FieldUserName           DraftField = "user_name"
	FieldSelectedProfession DraftField = "selected_profession"
	FieldRememberMe         DraftField = "remember_me"
)

// ProfileDraft accumulates everything collected across steps.
// OTP digits live in the session's OTPBuffer.
type ProfileDraft struct {
	Email              string         `json:"email"`
	Password           string         `json:"password"`
	ConfirmPassword    string         `json:"confirm_password"`
	UserName           string         `json:"user_name"`
	SelectedInterests  []string       `json:"selected_interests"`
	SelectedProfession string         `json:"selected_profession"`
	RememberMe         bool           `json:"remember_me"`
	SocialProvider     SocialProvider `json:"social_provider,omitempty"`
}

// SetField assigns one field from its raw form value.
func (d *ProfileDraft) SetField(field DraftField, value string) error {
	switch field {
	case FieldEmail:
		d.Email = value
	case FieldPassword:
		d.Password = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	case FieldUserName:
		d.UserName = value
	case FieldSelectedProfession:
		d.SelectedProfession = value
	case FieldRememberMe:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("remember_me %q: %w", value, domain.ErrInvalidArgument)
		}
		d.RememberMe = b
	default:
		return fmt.Errorf("unknown draft field %q: %w", field, domain.ErrInvalidArgument)
	}
	return nil
}

// HasInterest reports whether interest is currently selected.
func (d *ProfileDraft) HasInterest(interest string) bool {
	for _, i := range d.SelectedInterests {
		if i == interest {
			return true
		}
	}
	return false
}

// ToggleInterest removes a selected interest, or adds an unselected one while fewer than
// MaxInterests are selected. Adding past the limit is a silent no-op.
func (d *ProfileDraft) ToggleInterest(interest string) {
	if d.HasInterest(interest) {
		kept := d.SelectedInterests[:0]
		for _, i := range d.SelectedInterests {
			if i != interest {
				kept = append(kept, i)
			}
		}
		d.SelectedInterests = kept
		return
	}
	if len(d.SelectedInterests) < MaxInterests {
		d.SelectedInterests = append(d.SelectedInterests, interest)
	}
}
