package model

import (
	"fmt"

	"lawvriksh-onboarding/internal/domain"
)

// ActionType tags an Action.
type ActionType string

const (
	ActionSubmit         ActionType = "submit"
	ActionBack           ActionType = "back"
	ActionResend         ActionType = "resend"
	ActionSwitchMode     ActionType = "switch_mode"
	ActionChooseProvider ActionType = "choose_provider"
	ActionSetField       ActionType = "set_field"
	ActionSetOTPDigit    ActionType = "set_otp_digit"
	ActionOTPBackspace   ActionType = "otp_backspace"
	ActionToggleInterest ActionType = "toggle_interest"
)

// Action is the single message type the presentation layer sends to the wizard.
// Which fields are read depends on Type.
type Action struct {
	Type     ActionType            `json:"type"`
	Fields   map[DraftField]string `json:"fields,omitempty"`   // submit
	Field    DraftField            `json:"field,omitempty"`    // set_field
	Value    string                `json:"value,omitempty"`    // set_field, set_otp_digit, toggle_interest
	Index    int                   `json:"index,omitempty"`    // set_otp_digit, otp_backspace
	Target   Mode                  `json:"target,omitempty"`   // switch_mode
	Provider SocialProvider        `json:"provider,omitempty"` // choose_provider
}

// Validate checks the action is well formed; it does not look at session state.
func (a Action) Validate() error {
	switch a.Type {
	case ActionSubmit, ActionBack, ActionResend, ActionSetOTPDigit, ActionOTPBackspace:
		return nil
	case ActionSwitchMode:
		if _, err := ParseMode(string(a.Target)); err != nil {
			return err
		}
		return nil
	case ActionChooseProvider:
		_, err := ParseSocialProvider(string(a.Provider))
		return err
	case ActionSetField:
		if a.Field == "" {
			return fmt.Errorf("set_field without field: %w", domain.ErrInvalidArgument)
		}
		return nil
	case ActionToggleInterest:
		if a.Value == "" {
			return fmt.Errorf("toggle_interest without value: %w", domain.ErrInvalidArgument)
		}
		return nil
	}
	return fmt.Errorf("unknown action type %q: %w", a.Type, domain.ErrInvalidArgument)
}

func Submit(fields map[DraftField]string) Action { return Action{Type: ActionSubmit, Fields: fields} }
func Back() Action                               { return Action{Type: ActionBack} }
func Resend() Action                             { return Action{Type: ActionResend} }
func SwitchMode(target Mode) Action              { return Action{Type: ActionSwitchMode, Target: target} }
func ChooseProvider(p SocialProvider) Action     { return Action{Type: ActionChooseProvider, Provider: p} }
func SetField(f DraftField, v string) Action     { return Action{Type: ActionSetField, Field: f, Value: v} }
func SetOTPDigit(i int, v string) Action         { return Action{Type: ActionSetOTPDigit, Index: i, Value: v} }
func OTPBackspace(i int) Action                  { return Action{Type: ActionOTPBackspace, Index: i} }
func ToggleInterest(v string) Action             { return Action{Type: ActionToggleInterest, Value: v} }
