//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v4"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/ports/repository"
)

func TestCredentialRepo_Integration(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	repo := NewCredentialRepo(testPool)
	tm := NewTxManager(testPool)

	err := tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		return repo.Upsert(ctx, tx, "prof@lawvriksh.com", "1234")
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	acc, err := repo.FindByCredentials(ctx, nil, "prof@lawvriksh.com", "1234")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if acc.Email != "prof@lawvriksh.com" {
		t.Errorf("unexpected account %+v", acc)
	}

	if _, err := repo.FindByCredentials(ctx, nil, "prof@lawvriksh.com", "9999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a wrong passcode, got %v", err)
	}

	if err := repo.Upsert(ctx, nil, "prof@lawvriksh.com", "4321"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if _, err := repo.FindByCredentials(ctx, nil, "prof@lawvriksh.com", "4321"); err != nil {
		t.Errorf("expected the updated passcode to match, got %v", err)
	}
}
