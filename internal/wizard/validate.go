package wizard

import (
	"fmt"
	"strings"

	"lawvriksh-onboarding/internal/domain/model"
)

// Messages shown to the user. They are part of the render contract and must not change.
const (
	MsgLoginMissing          = "Please enter both email and password."
	MsgEmailMissing          = "Please enter your email address."
	MsgPasswordsMissing      = "Please enter both password fields."
	MsgPasswordsMismatch     = "Passwords do not match."
	MsgPasswordTooShort      = "Password must be at least 6 characters long."
	MsgNameMissing           = "Please enter your name."
	MsgInterestsNone         = "Please select at least one interest."
	MsgInterestsTooMany      = "Please select a maximum of 3 interests."
	MsgProfessionMissing     = "Please select your profession."
	MsgLoginRejectedFallback = "Login failed. Please check your credentials."
	MsgConnectivity          = "Unable to connect to the server. Please check your connection and try again."
)

// MinPasswordLength is the shortest password accepted at set-password.
const MinPasswordLength = 6

// Each validator returns "" when the input is acceptable, otherwise the message to show.

func ValidateLogin(d model.ProfileDraft) string {
	if d.Email == "" || d.Password == "" {
		return MsgLoginMissing
	}
	return ""
}

func ValidateEmail(d model.ProfileDraft) string {
	if d.Email == "" {
		return MsgEmailMissing
	}
	return ""
}

// ValidateCode checks every slot of the buffer is filled.
func ValidateCode(b *model.OTPBuffer) string {
	if len(b.Joined()) != b.Len() {
		return fmt.Sprintf("Please enter the complete %d-digit OTP.", b.Len())
	}
	return ""
}

// ValidatePasscodeLogin is the single-screen login: an email plus every passcode slot.
func ValidatePasscodeLogin(d model.ProfileDraft, b *model.OTPBuffer) string {
	if d.Email == "" || len(b.Joined()) != b.Len() {
		return fmt.Sprintf("Please enter your email and the complete %d-digit passcode.", b.Len())
	}
	return ""
}

// ValidatePasswords applies its rules in order; the first failure wins.
func ValidatePasswords(d model.ProfileDraft) string {
	switch {
	case d.Password == "" || d.ConfirmPassword == "":
		return MsgPasswordsMissing
	case d.Password != d.ConfirmPassword:
		return MsgPasswordsMismatch
	case len(d.Password) < MinPasswordLength:
		return MsgPasswordTooShort
	}
	return ""
}

func ValidateUserName(d model.ProfileDraft) string {
	if strings.TrimSpace(d.UserName) == "" {
		return MsgNameMissing
	}
	return ""
}

func ValidateInterests(d model.ProfileDraft) string {
	switch n := len(d.SelectedInterests); {
	case n < 1:
		return MsgInterestsNone
	case n > model.MaxInterests:
		return MsgInterestsTooMany
	}
	return ""
}

// ValidateProfession only insists on a selection when required is set. An empty
// selection under the optional policy means "not a law person".
func ValidateProfession(d model.ProfileDraft, required bool) string {
	if required && d.SelectedProfession == "" {
		return MsgProfessionMissing
	}
	return ""
}
