package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
)

// Policy is the per-deployment configuration of the state machine.
type Policy struct {
	RequireProfessionSelection bool
	// Professions is the catalog offered at the profession step; empty means
	// DefaultProfessions.
	Professions []string
	// Interests restricts toggle_interest when non-empty.
	Interests []string
	// CheckCredentials makes a login submit wait on the authentication backend.
	CheckCredentials bool
}

// DefaultProfessions is the profession catalog used when none is configured.
var DefaultProfessions = []string{"Law Professor", "Law Student", "Other"}

// DefaultPolicy requires a profession and checks login credentials.
func DefaultPolicy() Policy {
	return Policy{
		RequireProfessionSelection: true,
		Professions:                DefaultProfessions,
		CheckCredentials:           true,
	}
}

// Effects describes what a handled action asks of the caller. The controller never
// performs I/O itself.
type Effects struct {
	From, To model.Mode
	// Invalid is the validator message when a submit was refused.
	Invalid string
	// Credentials is set when a login submit must be checked by the authentication
	// backend. The caller resolves it with ResolveAuth exactly once.
	Credentials *model.Credentials
	Intents     []model.Intent
	Completed   bool
}

// Transitioned reports whether the mode changed.
func (e Effects) Transitioned() bool { return e.From != e.To }

// Controller applies actions to one session. It is not safe for concurrent use; callers
// serialize access per session.
type Controller struct {
	state  *model.WizardState
	policy Policy
	now    func() time.Time
}

func NewController(state *model.WizardState, policy Policy) *Controller {
	if state.OTP == nil || state.OTP.Len() != state.Flow.CodeLength() {
		state.OTP = model.NewOTPBuffer(state.Flow.CodeLength())
	}
	return &Controller{state: state, policy: policy, now: time.Now}
}

func (c *Controller) State() *model.WizardState { return c.state }

// View renders the current state for the presentation layer.
func (c *Controller) View() model.WizardView { return Render(c.state, c.policy) }

// Dispatch handles one action. Protocol misuse (an action the current mode does not
// accept) returns an error and leaves the state untouched; a refused submit is not an
// error and is reported through the state's Error and Effects.Invalid.
func (c *Controller) Dispatch(a model.Action) (Effects, error) {
	s := c.state
	eff := Effects{From: s.Mode, To: s.Mode}
	if err := a.Validate(); err != nil {
		return eff, err
	}
	if s.Mode.IsTerminal() {
		return eff, domain.ErrWizardCompleted
	}
	if s.Pending && !isEdit(a.Type) {
		return eff, domain.ErrSubmitInFlight
	}

	var err error
	switch a.Type {
	case model.ActionSetField:
		err = c.setField(a.Field, a.Value)
	case model.ActionSetOTPDigit:
		if err = c.requireCodeEntry(); err == nil {
			s.OTP.SetDigit(a.Index, a.Value)
		}
	case model.ActionOTPBackspace:
		if err = c.requireCodeEntry(); err == nil {
			s.OTP.Backspace(a.Index)
		}
	case model.ActionToggleInterest:
		err = c.toggleInterest(a.Value)
	case model.ActionSwitchMode:
		err = c.switchMode(a.Target)
	case model.ActionChooseProvider:
		err = c.chooseProvider(a.Provider, &eff)
	case model.ActionBack:
		err = c.back()
	case model.ActionResend:
		err = c.resend(&eff)
	case model.ActionSubmit:
		err = c.submit(a.Fields, &eff)
	}
	if err != nil {
		return Effects{From: eff.From, To: eff.From}, err
	}
	eff.To = s.Mode
	s.UpdatedAt = c.now()
	return eff, nil
}

// ResolveAuth applies the authentication backend's answer to the outstanding login
// submit. A nil err admits the user; a *model.RejectedError shows its detail; anything
// else is treated as a transport failure.
func (c *Controller) ResolveAuth(authErr error) (Effects, error) {
	s := c.state
	eff := Effects{From: s.Mode, To: s.Mode}
	if !s.Pending {
		return eff, domain.ErrNoPendingSubmit
	}
	authenticated := s.PendingEmail
	s.Pending = false
	s.PendingSince = time.Time{}
	s.PendingEmail = ""
	s.UpdatedAt = c.now()

	if authErr == nil {
		via := "password"
		if s.Flow == model.FlowPasscode {
			via = "passcode"
		}
		s.Draft.Email = authenticated
		c.complete(via, &eff)
		eff.To = s.Mode
		return eff, nil
	}
	s.Error = AuthFailureMessage(authErr)
	return eff, nil
}

// AuthFailureMessage maps an authentication failure to the text shown to the user.
func AuthFailureMessage(err error) string {
	var rejected *model.RejectedError
	if errors.As(err, &rejected) {
		if rejected.Detail != "" {
			return rejected.Detail
		}
		return MsgLoginRejectedFallback
	}
	return MsgConnectivity
}

func isEdit(t model.ActionType) bool {
	switch t {
	case model.ActionSetField, model.ActionSetOTPDigit, model.ActionOTPBackspace, model.ActionToggleInterest:
		return true
	}
	return false
}

func (c *Controller) notAllowed(what string) error {
	return fmt.Errorf("%s in mode %s: %w", what, c.state.Mode, domain.ErrActionNotAllowed)
}

func (c *Controller) setField(field model.DraftField, value string) error {
	if field == model.FieldSelectedProfession && value != "" && !contains(c.professions(), value) {
		return fmt.Errorf("profession %q is not offered: %w", value, domain.ErrInvalidArgument)
	}
	return c.state.Draft.SetField(field, value)
}

func (c *Controller) professions() []string {
	if len(c.policy.Professions) == 0 {
		return DefaultProfessions
	}
	return c.policy.Professions
}

// requireCodeEntry allows the digit slots on the OTP screens and on the passcode login.
func (c *Controller) requireCodeEntry() error {
	s := c.state
	if s.Mode.IsOTP() || (s.Flow == model.FlowPasscode && s.Mode == model.ModeLogin) {
		return nil
	}
	return c.notAllowed("code entry")
}

func (c *Controller) toggleInterest(interest string) error {
	if c.state.Mode != model.ModeInterests {
		return c.notAllowed("toggle_interest")
	}
	if len(c.policy.Interests) > 0 && !contains(c.policy.Interests, interest) {
		return fmt.Errorf("interest %q is not offered: %w", interest, domain.ErrInvalidArgument)
	}
	c.state.Draft.ToggleInterest(interest)
	return nil
}

func (c *Controller) switchMode(target model.Mode) error {
	s := c.state
	if !CanSwitch(s.Flow, s.Mode, target) {
		return c.notAllowed("switch to " + string(target))
	}
	s.Error = ""
	s.Mode = target
	return nil
}

func (c *Controller) chooseProvider(p model.SocialProvider, eff *Effects) error {
	s := c.state
	to, ok := Next(s.Flow, s.Mode, TriggerProvider)
	if !ok {
		return c.notAllowed("choose_provider")
	}
	s.Draft.SocialProvider = p
	s.Error = ""

	redirect := c.intent(model.IntentSocialRedirect)
	redirect.Provider = p
	eff.Intents = append(eff.Intents, redirect)

	if to == model.ModeCompleted {
		c.complete("social:"+string(p), eff)
		return nil
	}
	c.enter(to)
	eff.Intents = append(eff.Intents, c.intent(model.IntentSendOTP))
	return nil
}

func (c *Controller) back() error {
	to, ok := Next(c.state.Flow, c.state.Mode, TriggerBack)
	if !ok {
		return c.notAllowed("back")
	}
	c.state.Error = ""
	c.state.Mode = to
	return nil
}

func (c *Controller) resend(eff *Effects) error {
	s := c.state
	if !s.Mode.IsOTP() {
		return c.notAllowed("resend")
	}
	s.OTP.Reset()
	s.Error = ""
	eff.Intents = append(eff.Intents, c.intent(model.IntentResendOTP))
	return nil
}

func (c *Controller) submit(fields map[model.DraftField]string, eff *Effects) error {
	s := c.state
	to, ok := Next(s.Flow, s.Mode, TriggerSubmit)
	if !ok {
		return c.notAllowed("submit")
	}

	// Apply the submitted fields to a copy first so a bad field leaves the draft as it was.
	draft := s.Draft
	for f, v := range fields {
		if f == model.FieldSelectedProfession && v != "" && !contains(c.professions(), v) {
			return fmt.Errorf("profession %q is not offered: %w", v, domain.ErrInvalidArgument)
		}
		if err := draft.SetField(f, v); err != nil {
			return err
		}
	}
	draft.Email = strings.TrimSpace(draft.Email)
	s.Draft = draft
	s.Error = ""

	if msg := Verdict(s, c.policy); msg != "" {
		s.Error = msg
		eff.Invalid = msg
		return nil
	}

	if s.Mode == model.ModeLogin {
		creds := model.Credentials{Email: s.Draft.Email, Passcode: s.Draft.Password}
		via := "password"
		if s.Flow == model.FlowPasscode {
			creds.Passcode = s.OTP.Joined()
			via = "passcode"
		}
		if c.policy.CheckCredentials {
			s.Pending = true
			s.PendingSince = c.now()
			s.PendingEmail = creds.Email
			eff.Credentials = &creds
			return nil
		}
		c.complete(via, eff)
		return nil
	}

	if to == model.ModeCompleted {
		c.complete("onboarding", eff)
		return nil
	}
	c.enter(to)
	if to == model.ModeOTPVerify {
		eff.Intents = append(eff.Intents, c.intent(model.IntentSendOTP))
	}
	return nil
}

// enter moves to a step, giving OTP screens a fresh buffer.
func (c *Controller) enter(to model.Mode) {
	if to.IsOTP() {
		c.state.OTP.Reset()
	}
	c.state.Mode = to
}

// complete hands the draft over as a result and discards it.
func (c *Controller) complete(via string, eff *Effects) {
	s := c.state
	d := s.Draft
	s.Result = &model.CompletionResult{
		Email:          d.Email,
		UserName:       d.UserName,
		Interests:      append([]string(nil), d.SelectedInterests...),
		Profession:     d.SelectedProfession,
		SocialProvider: d.SocialProvider,
		RememberMe:     d.RememberMe,
		Via:            via,
	}
	s.Mode = model.ModeCompleted
	s.Error = ""
	s.Draft = model.ProfileDraft{}
	s.OTP.Reset()

	done := c.intent(model.IntentSessionCompleted)
	done.Email = s.Result.Email
	done.Result = s.Result
	eff.Intents = append(eff.Intents, done)
	eff.Completed = true
}

func (c *Controller) intent(kind model.IntentKind) model.Intent {
	in := model.NewIntent(kind, c.state.ID)
	in.Email = c.state.Draft.Email
	in.Provider = c.state.Draft.SocialProvider
	return in
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
