package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/repository"
	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ LoginUseCase = (*loginUC)(nil)

// LoginUseCase is the authentication backend: a single email/passcode lookup.
type LoginUseCase interface {
	Login(ctx context.Context, email, passcode string) (*model.Account, error)
	// Seed creates or updates a user; used by the seed command.
	Seed(ctx context.Context, email, passcode string) error
}

type loginUC struct {
	creds repository.CredentialRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
	dev   bool
}

func NewLoginUseCase(creds repository.CredentialRepository, tm repository.TransactionManager, logger *zerolog.Logger, dev bool) *loginUC {
	return &loginUC{
		creds: creds,
		tm:    tm,
		log:   logger,
		dev:   dev,
	}
}

func (u *loginUC) Login(ctx context.Context, email, passcode string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "LoginUC.Login")()

	email = strings.TrimSpace(email)
	if email == "" || passcode == "" {
		metrics.IncBackendLogin("invalid")
		return nil, fmt.Errorf("email and passcode are required: %w", domain.ErrInvalidArgument)
	}

	acc, err := u.creds.FindByCredentials(ctx, repository.NoTX, email, passcode)
	switch {
	case err == nil:
		metrics.IncBackendLogin("success")
		u.log.Info().Str("email", logging.Redact(email, u.dev)).Msg("login accepted")
		return acc, nil
	case errors.Is(err, domain.ErrNotFound):
		metrics.IncBackendLogin("invalid")
		return nil, domain.ErrInvalidCredentials
	case errors.Is(err, domain.ErrStoreUnavailable):
		metrics.IncBackendLogin("unavailable")
		u.log.Error().Err(err).Msg("credential store unavailable")
		return nil, err
	default:
		metrics.IncBackendLogin("error")
		u.log.Error().Err(err).Msg("credential lookup failed")
		return nil, err
	}
}

func (u *loginUC) Seed(ctx context.Context, email, passcode string) error {
	defer logging.TraceDuration(u.log, "LoginUC.Seed")()

	email = strings.TrimSpace(email)
	if email == "" || passcode == "" {
		return fmt.Errorf("email and passcode are required: %w", domain.ErrInvalidArgument)
	}
	return u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		return u.creds.Upsert(ctx, tx, email, passcode)
	})
}

// LoginFailure maps a Login error to the status and detail the login endpoint answers with.
func LoginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or passcode"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusUnprocessableEntity, "Email and passcode are required."
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Database service is unavailable."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}
