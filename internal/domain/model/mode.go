package model

import (
	"fmt"

	"lawvriksh-onboarding/internal/domain"
)

// Mode is the single active step of the onboarding flow.
type Mode string

const (
	ModeLogin         Mode = "login"
	ModeSignup        Mode = "signup"
	ModeOTPVerify     Mode = "otp-verify"
	ModeSocialConfirm Mode = "social-confirm"
	ModeSetPassword   Mode = "set-password"
	ModeUserSetup     Mode = "user-setup"
	ModeInterests     Mode = "interests"
	ModeProfession    Mode = "profession"
	ModeCompleted     Mode = "completed"
)

// ParseMode converts a raw string to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	switch m {
	case ModeLogin, ModeSignup, ModeOTPVerify, ModeSocialConfirm, ModeSetPassword,
		ModeUserSetup, ModeInterests, ModeProfession, ModeCompleted:
		return m, nil
	}
	return "", fmt.Errorf("unknown wizard mode %q: %w", s, domain.ErrInvalidArgument)
}

// Progress is derived from the mode alone and never stored.
func (m Mode) Progress() int {
	switch m {
	case ModeUserSetup:
		return 33
	case ModeInterests:
		return 66
	case ModeProfession:
		return 100
	default:
		return 0
	}
}

// ShowsProgress reports whether the progress indicator is visible.
func (m Mode) ShowsProgress() bool { return m.Progress() > 0 }

// IsEntry reports whether m is one of the two entry points (login, signup).
func (m Mode) IsEntry() bool { return m == ModeLogin || m == ModeSignup }

// IsOTP reports whether m collects a one-time code.
func (m Mode) IsOTP() bool { return m == ModeOTPVerify || m == ModeSocialConfirm }

func (m Mode) IsTerminal() bool { return m == ModeCompleted }

// Flow selects which of the two unified flows a session runs.
type Flow string

const (
	// FlowOnboarding is the full multi-step wizard with a 6-digit OTP.
	FlowOnboarding Flow = "onboarding"
	// FlowPasscode is the single-screen email + 4-digit passcode login.
	FlowPasscode Flow = "passcode"
)

func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case FlowOnboarding, FlowPasscode:
		return Flow(s), nil
	}
	return "", fmt.Errorf("unknown flow %q: %w", s, domain.ErrInvalidArgument)
}

// CodeLength is the number of OTP/passcode slots used by the flow.
func (f Flow) CodeLength() int {
	if f == FlowPasscode {
		return 4
	}
	return 6
}
