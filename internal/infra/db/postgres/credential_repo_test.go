//go:build !integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"

	"lawvriksh-onboarding/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Run("should treat server errors as failed operations", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "42P01", Message: `relation "users" does not exist`})
		if !errors.Is(err, domain.ErrOperationFailed) {
			t.Errorf("expected ErrOperationFailed, got %v", err)
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			t.Error("a server error must not look like an outage")
		}
	})

	t.Run("should treat everything else as an outage", func(t *testing.T) {
		for _, in := range []error{errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), context.DeadlineExceeded} {
			if err := classify(in); !errors.Is(err, domain.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable for %v, got %v", in, err)
			}
		}
	})
}

func TestGetExecutor(t *testing.T) {
	if _, err := getExecutor(nil, nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument without a pool, got %v", err)
	}
	if _, err := getExecutor(nil, "not-a-tx"); !errors.Is(err, domain.ErrInvalidExecContext) {
		t.Errorf("expected ErrInvalidExecContext, got %v", err)
	}
}
