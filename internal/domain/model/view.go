package model

// WizardView is the render contract handed to the presentation layer after every action.
type WizardView struct {
	SessionID     string            `json:"session_id"`
	Flow          Flow              `json:"flow"`
	Mode          Mode              `json:"mode"`
	Progress      int               `json:"progress"`
	ShowProgress  bool              `json:"show_progress"`
	Error         string            `json:"error"`
	SubmitEnabled bool              `json:"submit_enabled"`
	CanGoBack     bool              `json:"can_go_back"`
	CanResend     bool              `json:"can_resend"`
	ShowEmail     bool              `json:"show_email"`
	Providers     []SocialProvider  `json:"providers,omitempty"`
	Fields        *FieldsView       `json:"fields,omitempty"`
	OTP           *OTPView          `json:"otp,omitempty"`
	Interests     *InterestsView    `json:"interests,omitempty"`
	Professions   *ProfessionsView  `json:"professions,omitempty"`
	Result        *CompletionResult `json:"result,omitempty"`
}

// FieldsView only carries the draft fields relevant to the current mode. Passwords are
// never echoed back.
type FieldsView struct {
	Email              *string `json:"email,omitempty"`
	PasswordSet        *bool   `json:"password_set,omitempty"`
	ConfirmPasswordSet *bool   `json:"confirm_password_set,omitempty"`
	RememberMe         *bool   `json:"remember_me,omitempty"`
	UserName           *string `json:"user_name,omitempty"`
}

type OTPView struct {
	Digits []string `json:"digits"`
	Focus  int      `json:"focus"`
	Length int      `json:"length"`
}

type InterestsView struct {
	Selected []string `json:"selected"`
	Options  []string `json:"options,omitempty"`
	Max      int      `json:"max"`
}

type ProfessionsView struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
	Required bool     `json:"required"`
}
