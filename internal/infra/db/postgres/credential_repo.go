package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/repository"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo looks login pairs up in the users table. Passcodes are compared as
// stored.
type CredentialRepo struct {
	pool *pgxpool.Pool
}

func NewCredentialRepo(pool *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

func (r *CredentialRepo) FindByCredentials(ctx context.Context, tx repository.Tx, email, passcode string) (*model.Account, error) {
	const q = `SELECT email FROM users WHERE email=$1 AND passcode=$2;`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var acc model.Account
	if err := ex.QueryRow(ctx, q, email, passcode).Scan(&acc.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	return &acc, nil
}

func (r *CredentialRepo) Upsert(ctx context.Context, tx repository.Tx, email, passcode string) error {
	const q = `
INSERT INTO users (email, passcode) VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET passcode=$2, updated_at=NOW();`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, q, email, passcode); err != nil {
		return classify(err)
	}
	return nil
}

// classify separates errors reported by the server (the query itself failed) from
// errors reaching it at all.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s: %s: %w", pgErr.Code, pgErr.Message, domain.ErrOperationFailed)
	}
	return fmt.Errorf("%v: %w", err, domain.ErrStoreUnavailable)
}
