//go:build !integration

package wizard

import (
	"errors"
	"testing"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
)

func newTestController(mode model.Mode) *Controller {
	s := model.NewWizardState("sess-1", model.FlowOnboarding)
	s.Mode = mode
	return NewController(s, DefaultPolicy())
}

func mustDispatch(t *testing.T, c *Controller, a model.Action) Effects {
	t.Helper()
	eff, err := c.Dispatch(a)
	if err != nil {
		t.Fatalf("dispatch %s: %v", a.Type, err)
	}
	return eff
}

func enterDigits(t *testing.T, c *Controller, digits string) {
	t.Helper()
	for i, r := range digits {
		mustDispatch(t, c, model.SetOTPDigit(i, string(r)))
	}
}

func hasIntent(eff Effects, kind model.IntentKind) bool {
	for _, in := range eff.Intents {
		if in.Kind == kind {
			return true
		}
	}
	return false
}

func TestController_LoginRequiresBothFields(t *testing.T) {
	c := newTestController(model.ModeLogin)

	eff := mustDispatch(t, c, model.Submit(map[model.DraftField]string{model.FieldEmail: "a@b.com"}))

	if c.State().Error != MsgLoginMissing {
		t.Errorf("expected %q, got %q", MsgLoginMissing, c.State().Error)
	}
	if c.State().Mode != model.ModeLogin {
		t.Errorf("expected mode to stay login, got %s", c.State().Mode)
	}
	if eff.Invalid != MsgLoginMissing || eff.Transitioned() {
		t.Errorf("unexpected effects %+v", eff)
	}
}

func TestController_SwitchModeClearsError(t *testing.T) {
	c := newTestController(model.ModeLogin)
	mustDispatch(t, c, model.SetField(model.FieldEmail, "a@b.com"))
	mustDispatch(t, c, model.Submit(nil))
	if c.State().Error != MsgLoginMissing {
		t.Fatalf("expected %q, got %q", MsgLoginMissing, c.State().Error)
	}

	mustDispatch(t, c, model.SwitchMode(model.ModeSignup))
	if c.State().Mode != model.ModeSignup || c.State().Error != "" {
		t.Errorf("expected a clean signup step, got mode=%s error=%q", c.State().Mode, c.State().Error)
	}
	if c.State().Draft.Email != "a@b.com" {
		t.Errorf("switching must keep the draft, got email %q", c.State().Draft.Email)
	}
}

func TestController_TrimsSubmittedEmail(t *testing.T) {
	c := newTestController(model.ModeLogin)
	eff := mustDispatch(t, c, model.Submit(map[model.DraftField]string{
		model.FieldEmail:    "  a@b.com\t",
		model.FieldPassword: "1234",
	}))
	if eff.Credentials == nil || eff.Credentials.Email != "a@b.com" {
		t.Fatalf("expected trimmed credentials, got %+v", eff.Credentials)
	}

	blank := newTestController(model.ModeSignup)
	mustDispatch(t, blank, model.Submit(map[model.DraftField]string{model.FieldEmail: "   "}))
	if blank.State().Error != MsgEmailMissing {
		t.Errorf("a blank email must be refused, got %q", blank.State().Error)
	}
}

func TestController_SignupAndOTP(t *testing.T) {
	c := newTestController(model.ModeLogin)
	mustDispatch(t, c, model.SwitchMode(model.ModeSignup))

	eff := mustDispatch(t, c, model.Submit(map[model.DraftField]string{model.FieldEmail: "a@b.com"}))
	if c.State().Mode != model.ModeOTPVerify {
		t.Fatalf("expected otp-verify, got %s", c.State().Mode)
	}
	if !hasIntent(eff, model.IntentSendOTP) {
		t.Error("expected a send_otp intent")
	}

	enterDigits(t, c, "12345")
	mustDispatch(t, c, model.Submit(nil))
	if c.State().Error != "Please enter the complete 6-digit OTP." {
		t.Errorf("unexpected error %q", c.State().Error)
	}
	if c.State().Mode != model.ModeOTPVerify {
		t.Fatalf("expected mode to stay otp-verify, got %s", c.State().Mode)
	}

	mustDispatch(t, c, model.SetOTPDigit(5, "6"))
	mustDispatch(t, c, model.Submit(nil))
	if c.State().Mode != model.ModeSetPassword {
		t.Fatalf("expected set-password, got %s", c.State().Mode)
	}
	if c.State().Error != "" {
		t.Errorf("expected error to be cleared, got %q", c.State().Error)
	}
}

func TestController_SetPassword(t *testing.T) {
	c := newTestController(model.ModeSetPassword)

	submit := func(p, cp string) {
		mustDispatch(t, c, model.Submit(map[model.DraftField]string{
			model.FieldPassword:        p,
			model.FieldConfirmPassword: cp,
		}))
	}

	submit("abc", "abcd")
	if c.State().Error != MsgPasswordsMismatch {
		t.Errorf("expected %q, got %q", MsgPasswordsMismatch, c.State().Error)
	}
	submit("abc", "abc")
	if c.State().Error != MsgPasswordTooShort {
		t.Errorf("expected %q, got %q", MsgPasswordTooShort, c.State().Error)
	}
	submit("abcdef", "abcdef")
	if c.State().Mode != model.ModeUserSetup {
		t.Fatalf("expected user-setup, got %s", c.State().Mode)
	}
	if c.View().Progress != 33 {
		t.Errorf("expected progress 33, got %d", c.View().Progress)
	}
}

func TestController_InterestsAndBack(t *testing.T) {
	c := newTestController(model.ModeInterests)

	for _, i := range []string{"Corporate Law", "Tax Law", "IP", "Criminal Law"} {
		mustDispatch(t, c, model.ToggleInterest(i))
	}
	if got := c.State().Draft.SelectedInterests; len(got) != 3 {
		t.Fatalf("expected 3 interests, got %v", got)
	}
	if c.State().Error != "" {
		t.Errorf("toggling must not raise an error, got %q", c.State().Error)
	}

	mustDispatch(t, c, model.Submit(nil))
	if c.State().Mode != model.ModeProfession {
		t.Fatalf("expected profession, got %s", c.State().Mode)
	}

	mustDispatch(t, c, model.Back())
	if c.State().Mode != model.ModeInterests {
		t.Fatalf("expected interests after first back, got %s", c.State().Mode)
	}
	mustDispatch(t, c, model.Back())
	if c.State().Mode != model.ModeUserSetup {
		t.Fatalf("expected user-setup after second back, got %s", c.State().Mode)
	}
	if got := c.State().Draft.SelectedInterests; len(got) != 3 {
		t.Errorf("back must keep the selection, got %v", got)
	}
}

func TestController_InterestCatalog(t *testing.T) {
	s := model.NewWizardState("sess-3", model.FlowOnboarding)
	s.Mode = model.ModeInterests
	p := DefaultPolicy()
	p.Interests = []string{"Tax Law", "IP"}
	c := NewController(s, p)

	if _, err := c.Dispatch(model.ToggleInterest("Maritime Law")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(c.State().Draft.SelectedInterests) != 0 {
		t.Errorf("a refused toggle must not change the selection, got %v", c.State().Draft.SelectedInterests)
	}
	mustDispatch(t, c, model.ToggleInterest("IP"))
	if !c.State().Draft.HasInterest("IP") {
		t.Error("expected IP to be selected")
	}
}

func TestController_ProfessionPolicy(t *testing.T) {
	t.Run("should require a profession by default", func(t *testing.T) {
		c := newTestController(model.ModeProfession)
		mustDispatch(t, c, model.Submit(nil))
		if c.State().Error != MsgProfessionMissing {
			t.Errorf("got %q", c.State().Error)
		}
	})

	t.Run("should complete without a profession when optional", func(t *testing.T) {
		s := model.NewWizardState("sess-2", model.FlowOnboarding)
		s.Mode = model.ModeProfession
		p := DefaultPolicy()
		p.RequireProfessionSelection = false
		c := NewController(s, p)

		eff := mustDispatch(t, c, model.Submit(nil))
		if !eff.Completed || c.State().Mode != model.ModeCompleted {
			t.Fatalf("expected completion, got mode %s", c.State().Mode)
		}
	})

	t.Run("should reject a profession outside the catalog", func(t *testing.T) {
		c := newTestController(model.ModeProfession)
		_, err := c.Dispatch(model.SetField(model.FieldSelectedProfession, "Astronaut"))
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should hand over the draft on completion", func(t *testing.T) {
		c := newTestController(model.ModeProfession)
		c.State().Draft.Email = "a@b.com"
		c.State().Draft.SelectedInterests = []string{"IP"}
		eff := mustDispatch(t, c, model.Submit(map[model.DraftField]string{model.FieldSelectedProfession: "Law Student"}))

		res := c.State().Result
		if res == nil || res.Profession != "Law Student" || res.Email != "a@b.com" || res.Via != "onboarding" {
			t.Fatalf("unexpected result %+v", res)
		}
		if c.State().Draft.Email != "" || len(c.State().Draft.SelectedInterests) != 0 {
			t.Error("expected draft to be discarded")
		}
		if !hasIntent(eff, model.IntentSessionCompleted) {
			t.Error("expected a session_completed intent")
		}
	})
}

func TestController_CredentialCheck(t *testing.T) {
	login := func() *Controller {
		c := newTestController(model.ModeLogin)
		eff := mustDispatch(t, c, model.Submit(map[model.DraftField]string{
			model.FieldEmail:    "a@b.com",
			model.FieldPassword: "1234",
		}))
		if eff.Credentials == nil || eff.Credentials.Passcode != "1234" {
			t.Fatalf("expected credentials to be requested, got %+v", eff)
		}
		return c
	}

	t.Run("should disable submit while pending", func(t *testing.T) {
		c := login()
		if c.View().SubmitEnabled {
			t.Error("submit must be disabled while pending")
		}
		if _, err := c.Dispatch(model.Submit(nil)); !errors.Is(err, domain.ErrSubmitInFlight) {
			t.Errorf("expected ErrSubmitInFlight, got %v", err)
		}
		if _, err := c.Dispatch(model.SwitchMode(model.ModeSignup)); !errors.Is(err, domain.ErrSubmitInFlight) {
			t.Errorf("expected ErrSubmitInFlight for switch_mode, got %v", err)
		}
	})

	t.Run("should complete on success", func(t *testing.T) {
		c := login()
		eff, err := c.ResolveAuth(nil)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !eff.Completed || c.State().Result.Via != "password" {
			t.Errorf("unexpected outcome %+v", c.State().Result)
		}
	})

	t.Run("should complete as the checked email", func(t *testing.T) {
		c := login()
		mustDispatch(t, c, model.SetField(model.FieldEmail, "other@b.com"))
		eff, err := c.ResolveAuth(nil)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if c.State().Result.Email != "a@b.com" {
			t.Errorf("expected a@b.com, got %q", c.State().Result.Email)
		}
		for _, in := range eff.Intents {
			if in.Email != "a@b.com" {
				t.Errorf("intent %s carries %q", in.Kind, in.Email)
			}
		}
	})

	t.Run("should show the backend detail verbatim", func(t *testing.T) {
		c := login()
		_, _ = c.ResolveAuth(&model.RejectedError{Status: 401, Detail: "Invalid email or passcode"})
		if c.State().Error != "Invalid email or passcode" || c.State().Mode != model.ModeLogin {
			t.Errorf("unexpected state error=%q mode=%s", c.State().Error, c.State().Mode)
		}
		if !c.View().SubmitEnabled {
			t.Error("submit must be enabled again")
		}
	})

	t.Run("should fall back when the backend sends no detail", func(t *testing.T) {
		c := login()
		_, _ = c.ResolveAuth(&model.RejectedError{Status: 400})
		if c.State().Error != MsgLoginRejectedFallback {
			t.Errorf("got %q", c.State().Error)
		}
	})

	t.Run("should show the connectivity message on transport errors", func(t *testing.T) {
		c := login()
		_, _ = c.ResolveAuth(errors.New("dial tcp: connection refused"))
		if c.State().Error != MsgConnectivity {
			t.Errorf("got %q", c.State().Error)
		}
	})

	t.Run("should refuse a resolve without a pending submit", func(t *testing.T) {
		c := newTestController(model.ModeLogin)
		if _, err := c.ResolveAuth(nil); !errors.Is(err, domain.ErrNoPendingSubmit) {
			t.Errorf("expected ErrNoPendingSubmit, got %v", err)
		}
	})
}

func TestController_SocialProviders(t *testing.T) {
	t.Run("should complete from login", func(t *testing.T) {
		c := newTestController(model.ModeLogin)
		eff := mustDispatch(t, c, model.ChooseProvider(model.ProviderGoogle))
		if !eff.Completed || c.State().Result.Via != "social:google" {
			t.Fatalf("unexpected result %+v", c.State().Result)
		}
		if !hasIntent(eff, model.IntentSocialRedirect) {
			t.Error("expected a social_redirect intent")
		}
	})

	t.Run("should confirm by code from signup", func(t *testing.T) {
		c := newTestController(model.ModeSignup)
		eff := mustDispatch(t, c, model.ChooseProvider(model.ProviderLinkedIn))
		if c.State().Mode != model.ModeSocialConfirm {
			t.Fatalf("expected social-confirm, got %s", c.State().Mode)
		}
		if !hasIntent(eff, model.IntentSendOTP) {
			t.Error("expected a send_otp intent")
		}
		enterDigits(t, c, "654321")
		mustDispatch(t, c, model.Submit(nil))
		if c.State().Mode != model.ModeSetPassword {
			t.Errorf("expected set-password, got %s", c.State().Mode)
		}
	})
}

func TestController_Resend(t *testing.T) {
	c := newTestController(model.ModeOTPVerify)
	enterDigits(t, c, "123")
	mustDispatch(t, c, model.Submit(nil))

	eff := mustDispatch(t, c, model.Resend())
	if c.State().OTP.Joined() != "" || c.State().OTP.Focus() != 0 {
		t.Errorf("expected an empty buffer, got %v", c.State().OTP.Digits())
	}
	if c.State().Error != "" || c.State().Mode != model.ModeOTPVerify {
		t.Errorf("unexpected state error=%q mode=%s", c.State().Error, c.State().Mode)
	}
	if !hasIntent(eff, model.IntentResendOTP) {
		t.Error("expected a resend_otp intent")
	}
}

func TestController_ProtocolMisuse(t *testing.T) {
	cases := []struct {
		name string
		mode model.Mode
		a    model.Action
		want error
	}{
		{"back from login", model.ModeLogin, model.Back(), domain.ErrActionNotAllowed},
		{"resend outside otp", model.ModeSignup, model.Resend(), domain.ErrActionNotAllowed},
		{"digit outside otp", model.ModeUserSetup, model.SetOTPDigit(0, "1"), domain.ErrActionNotAllowed},
		{"toggle outside interests", model.ModeProfession, model.ToggleInterest("IP"), domain.ErrActionNotAllowed},
		{"switch from set-password", model.ModeSetPassword, model.SwitchMode(model.ModeLogin), domain.ErrActionNotAllowed},
		{"anything after completion", model.ModeCompleted, model.Submit(nil), domain.ErrWizardCompleted},
		{"unknown action", model.ModeLogin, model.Action{Type: "fly"}, domain.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			c := newTestController(tc.mode)
			c.State().Error = "previous"
			eff, err := c.Dispatch(tc.a)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if eff.Transitioned() || c.State().Mode != tc.mode || c.State().Error != "previous" {
				t.Errorf("state must be untouched, mode=%s error=%q", c.State().Mode, c.State().Error)
			}
		})
	}
}

func TestController_PasscodeFlow(t *testing.T) {
	s := model.NewWizardState("sess-p", model.FlowPasscode)
	c := NewController(s, DefaultPolicy())

	mustDispatch(t, c, model.SetField(model.FieldEmail, "a@b.com"))
	enterDigits(t, c, "12")
	mustDispatch(t, c, model.Submit(nil))
	if c.State().Error != "Please enter your email and the complete 4-digit passcode." {
		t.Fatalf("unexpected error %q", c.State().Error)
	}

	enterDigits(t, c, "1234")
	eff := mustDispatch(t, c, model.Submit(nil))
	if eff.Credentials == nil || eff.Credentials.Passcode != "1234" {
		t.Fatalf("expected passcode credentials, got %+v", eff.Credentials)
	}
	if _, err := c.ResolveAuth(nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.State().Result.Via != "passcode" {
		t.Errorf("expected via passcode, got %q", c.State().Result.Via)
	}
}

func TestRender(t *testing.T) {
	t.Run("should never echo passwords", func(t *testing.T) {
		c := newTestController(model.ModeSetPassword)
		c.State().Draft.Password = "secret1"
		v := c.View()
		if v.Fields == nil || v.Fields.PasswordSet == nil || !*v.Fields.PasswordSet {
			t.Fatalf("expected password_set, got %+v", v.Fields)
		}
		if *v.Fields.ConfirmPasswordSet {
			t.Error("confirm password was not set")
		}
	})

	t.Run("should expose the otp buffer on otp screens", func(t *testing.T) {
		c := newTestController(model.ModeOTPVerify)
		enterDigits(t, c, "12")
		v := c.View()
		if v.OTP == nil || v.OTP.Length != 6 || v.OTP.Focus != 2 {
			t.Fatalf("unexpected otp view %+v", v.OTP)
		}
		if !v.CanResend || !v.ShowEmail || v.CanGoBack {
			t.Errorf("unexpected affordances %+v", v)
		}
	})

	t.Run("should show progress only on profile steps", func(t *testing.T) {
		c := newTestController(model.ModeProfession)
		v := c.View()
		if v.Progress != 100 || !v.ShowProgress || !v.CanGoBack {
			t.Errorf("unexpected view %+v", v)
		}
		if v.Professions == nil || len(v.Professions.Options) != 3 || !v.Professions.Required {
			t.Errorf("unexpected professions %+v", v.Professions)
		}
	})
}
