package auth

import (
	"context"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/usecase"
)

var _ adapter.Authenticator = (*LocalAuthenticator)(nil)

// LocalAuthenticator checks credentials in-process against the login use case,
// reporting failures with the same status and detail the login endpoint would send.
type LocalAuthenticator struct {
	login usecase.LoginUseCase
}

func NewLocalAuthenticator(login usecase.LoginUseCase) *LocalAuthenticator {
	return &LocalAuthenticator{login: login}
}

func (a *LocalAuthenticator) Authenticate(ctx context.Context, creds model.Credentials) error {
	if _, err := a.login.Login(ctx, creds.Email, creds.Passcode); err != nil {
		status, detail := usecase.LoginFailure(err)
		return &model.RejectedError{Status: status, Detail: detail}
	}
	return nil
}
