package wizard

import "lawvriksh-onboarding/internal/domain/model"

var socialProviders = []model.SocialProvider{model.ProviderGoogle, model.ProviderLinkedIn}

// Render derives the render contract from the session. Nothing in the view is stored.
func Render(s *model.WizardState, p Policy) model.WizardView {
	v := model.WizardView{
		SessionID:     s.ID,
		Flow:          s.Flow,
		Mode:          s.Mode,
		Progress:      s.Mode.Progress(),
		ShowProgress:  s.Mode.ShowsProgress(),
		Error:         s.Error,
		SubmitEnabled: !s.Pending && !s.Mode.IsTerminal(),
		CanResend:     s.Mode.IsOTP() && !s.Pending,
		ShowEmail:     s.Mode.IsOTP(),
	}
	_, v.CanGoBack = Next(s.Flow, s.Mode, TriggerBack)
	v.CanGoBack = v.CanGoBack && !s.Pending

	d := s.Draft
	switch s.Mode {
	case model.ModeLogin:
		if s.Flow == model.FlowPasscode {
			v.Fields = &model.FieldsView{Email: strPtr(d.Email)}
			v.OTP = otpView(s.OTP)
			break
		}
		v.Fields = &model.FieldsView{
			Email:       strPtr(d.Email),
			PasswordSet: boolPtr(d.Password != ""),
			RememberMe:  boolPtr(d.RememberMe),
		}
		v.Providers = socialProviders
	case model.ModeSignup:
		v.Fields = &model.FieldsView{Email: strPtr(d.Email)}
		v.Providers = socialProviders
	case model.ModeOTPVerify, model.ModeSocialConfirm:
		v.Fields = &model.FieldsView{Email: strPtr(d.Email)}
		v.OTP = otpView(s.OTP)
	case model.ModeSetPassword:
		v.Fields = &model.FieldsView{
			PasswordSet:        boolPtr(d.Password != ""),
			ConfirmPasswordSet: boolPtr(d.ConfirmPassword != ""),
		}
	case model.ModeUserSetup:
		v.Fields = &model.FieldsView{UserName: strPtr(d.UserName)}
	case model.ModeInterests:
		v.Interests = &model.InterestsView{
			Selected: append([]string{}, d.SelectedInterests...),
			Options:  p.Interests,
			Max:      model.MaxInterests,
		}
	case model.ModeProfession:
		opts := p.Professions
		if len(opts) == 0 {
			opts = DefaultProfessions
		}
		v.Professions = &model.ProfessionsView{
			Options:  opts,
			Selected: d.SelectedProfession,
			Required: p.RequireProfessionSelection,
		}
	case model.ModeCompleted:
		v.Result = s.Result
	}
	return v
}

func otpView(b *model.OTPBuffer) *model.OTPView {
	return &model.OTPView{Digits: b.Digits(), Focus: b.Focus(), Length: b.Len()}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
