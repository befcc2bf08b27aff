// Package wizard is the onboarding state machine: step validators, the transition
// table and the controller that applies one action at a time to a session.
//
// Onboarding flow:
//
//	login ──submit/provider──────────────────────────────────────────────► completed
//	signup ──submit──► otp-verify ─────┐
//	signup ──provider─► social-confirm ┴─► set-password ─► user-setup ─► interests ─► profession ─► completed
//	                                                       ◄──back── interests ◄──back── profession
//
// Passcode flow: login ──submit──► completed.
package wizard

import "lawvriksh-onboarding/internal/domain/model"

// Trigger is what moved the wizard along an edge.
type Trigger string

const (
	TriggerSubmit   Trigger = "submit"
	TriggerProvider Trigger = "provider"
	TriggerBack     Trigger = "back"
)

type edge struct {
	from model.Mode
	on   Trigger
}

var onboardingTransitions = map[edge]model.Mode{
	{model.ModeLogin, TriggerSubmit}:         model.ModeCompleted,
	{model.ModeLogin, TriggerProvider}:       model.ModeCompleted,
	{model.ModeSignup, TriggerSubmit}:        model.ModeOTPVerify,
	{model.ModeSignup, TriggerProvider}:      model.ModeSocialConfirm,
	{model.ModeOTPVerify, TriggerSubmit}:     model.ModeSetPassword,
	{model.ModeSocialConfirm, TriggerSubmit}: model.ModeSetPassword,
	{model.ModeSetPassword, TriggerSubmit}:   model.ModeUserSetup,
	{model.ModeUserSetup, TriggerSubmit}:     model.ModeInterests,
	{model.ModeInterests, TriggerSubmit}:     model.ModeProfession,
	{model.ModeInterests, TriggerBack}:       model.ModeUserSetup,
	{model.ModeProfession, TriggerSubmit}:    model.ModeCompleted,
	{model.ModeProfession, TriggerBack}:      model.ModeInterests,
}

var passcodeTransitions = map[edge]model.Mode{
	{model.ModeLogin, TriggerSubmit}: model.ModeCompleted,
}

// Next looks up the target of (from, on) in the flow's table.
func Next(flow model.Flow, from model.Mode, on Trigger) (model.Mode, bool) {
	table := onboardingTransitions
	if flow == model.FlowPasscode {
		table = passcodeTransitions
	}
	to, ok := table[edge{from, on}]
	return to, ok
}

// CanSwitch reports whether the direct login/signup toggle is available.
func CanSwitch(flow model.Flow, from, to model.Mode) bool {
	return flow == model.FlowOnboarding && from.IsEntry() && to.IsEntry()
}

// Verdict runs the validator owning the current step against the session.
func Verdict(s *model.WizardState, p Policy) string {
	switch s.Mode {
	case model.ModeLogin:
		if s.Flow == model.FlowPasscode {
			return ValidatePasscodeLogin(s.Draft, s.OTP)
		}
		return ValidateLogin(s.Draft)
	case model.ModeSignup:
		return ValidateEmail(s.Draft)
	case model.ModeOTPVerify, model.ModeSocialConfirm:
		return ValidateCode(s.OTP)
	case model.ModeSetPassword:
		return ValidatePasswords(s.Draft)
	case model.ModeUserSetup:
		return ValidateUserName(s.Draft)
	case model.ModeInterests:
		return ValidateInterests(s.Draft)
	case model.ModeProfession:
		return ValidateProfession(s.Draft, p.RequireProfessionSelection)
	}
	return ""
}
