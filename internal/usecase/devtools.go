package usecase

import (
	"context"
	"fmt"
	"slices"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"

	"github.com/rs/zerolog"
)

// DevPage is a screen the dev tools can jump to.
type DevPage string

const (
	DevPageLogin          DevPage = "login"
	DevPageSignup         DevPage = "signup"
	DevPageOTP            DevPage = "otp"
	DevPageForgotPassword DevPage = "forgot-password"
	DevPageProfile        DevPage = "profile"
	DevPageInterests      DevPage = "interests"
	DevPageProfession     DevPage = "profession"
)

const (
	devEmail    = "dev@lawvriksh.com"
	devPassword = "devpass1"
	devUserName = "Dev User"
)

// DevNavigator jumps a session to a given screen by resetting it and replaying canned
// actions through the regular Dispatch path. Debug builds only.
type DevNavigator struct {
	wizard   WizardUseCase
	interest string
	log      *zerolog.Logger
}

// NewDevNavigator takes the interest catalog so the replayed toggle is one the session
// accepts.
func NewDevNavigator(w WizardUseCase, interests []string, logger *zerolog.Logger) *DevNavigator {
	interest := "Corporate Law"
	if len(interests) > 0 {
		interest = interests[0]
	}
	return &DevNavigator{wizard: w, interest: interest, log: logger}
}

func (d *DevNavigator) Navigate(ctx context.Context, sessionID string, page DevPage) (*model.WizardView, error) {
	steps, err := d.script(page)
	if err != nil {
		return nil, err
	}
	view, err := d.wizard.Reset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i, a := range steps {
		view, err = d.wizard.Dispatch(ctx, sessionID, a)
		if err != nil {
			return nil, fmt.Errorf("replay step %d (%s) towards %s: %w", i, a.Type, page, err)
		}
		if view.Error != "" {
			return nil, fmt.Errorf("replay step %d (%s) towards %s refused: %s: %w", i, a.Type, page, view.Error, domain.ErrOperationFailed)
		}
	}
	d.log.Debug().Str("session_id", sessionID).Str("page", string(page)).Msg("dev navigation")
	return view, nil
}

func (d *DevNavigator) Reset(ctx context.Context, sessionID string) (*model.WizardView, error) {
	return d.wizard.Reset(ctx, sessionID)
}

func (d *DevNavigator) script(page DevPage) ([]model.Action, error) {
	signup := []model.Action{model.SwitchMode(model.ModeSignup)}
	otp := slices.Concat(signup, []model.Action{
		model.Submit(map[model.DraftField]string{model.FieldEmail: devEmail}),
	})
	profile := slices.Concat(otp, devCode(), []model.Action{
		model.Submit(nil),
		model.Submit(map[model.DraftField]string{
			model.FieldPassword:        devPassword,
			model.FieldConfirmPassword: devPassword,
		}),
	})
	interests := slices.Concat(profile, []model.Action{
		model.Submit(map[model.DraftField]string{model.FieldUserName: devUserName}),
	})
	profession := slices.Concat(interests, []model.Action{
		model.ToggleInterest(d.interest),
		model.Submit(nil),
	})

	switch page {
	case DevPageLogin:
		return nil, nil
	case DevPageSignup:
		return signup, nil
	case DevPageOTP:
		return otp, nil
	case DevPageProfile:
		return profile, nil
	case DevPageInterests:
		return interests, nil
	case DevPageProfession:
		return profession, nil
	case DevPageForgotPassword:
		return nil, fmt.Errorf("%s: %w", page, domain.ErrUnsupportedPage)
	}
	return nil, fmt.Errorf("unknown page %q: %w", page, domain.ErrUnsupportedPage)
}

func devCode() []model.Action {
	out := make([]model.Action, 0, 6)
	for i, c := range "123456" {
		out = append(out, model.SetOTPDigit(i, string(c)))
	}
	return out
}
