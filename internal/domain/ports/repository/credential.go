package repository

import (
	"context"

	"lawvriksh-onboarding/internal/domain/model"
)

// CredentialRepository backs the login endpoint. FindByCredentials returns
// domain.ErrNotFound when no user matches and domain.ErrStoreUnavailable when the store
// cannot be reached.
type CredentialRepository interface {
	FindByCredentials(ctx context.Context, tx Tx, email, passcode string) (*model.Account, error)
	Upsert(ctx context.Context, tx Tx, email, passcode string) error
}
