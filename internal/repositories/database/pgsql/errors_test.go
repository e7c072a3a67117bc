package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_accounts_owner_currency"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrAccountNotFound},
		{"malformed uuid", &pgconn.PgError{Code: pgInvalidTextRepr}, apperrors.ErrNotFound},
		{"negative balance", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_accounts_balance_non_negative"}, apperrors.ErrInsufficientBalance},
		{"other check", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_ledger_entries_kind"}, apperrors.ErrStorageFailure},
		{"lock not available", &pgconn.PgError{Code: pgLockNotAvailable, Message: "canceling statement due to lock timeout"}, apperrors.ErrLockTimeout},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgDeadlockDetected}), apperrors.ErrLockTimeout},
		{"caller deadline", fmt.Errorf("timeout: %w", context.DeadlineExceeded), apperrors.ErrLockTimeout},
		{"caller canceled", fmt.Errorf("begin: %w", context.Canceled), apperrors.ErrLockTimeout},
		{"connection", errors.New("connection reset by peer"), apperrors.ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err, "op")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.NoError(t, translateError(nil, "op"))
}

func TestTranslateError_CallerDeadlineIsRetryable(t *testing.T) {
	err := translateError(fmt.Errorf("timeout: %w", context.DeadlineExceeded), "failed to lock account a")
	assert.ErrorIs(t, err, apperrors.ErrLockTimeout)
	assert.NotErrorIs(t, err, apperrors.ErrStorageFailure)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestNotFoundAs(t *testing.T) {
	err := notFoundAs(translateError(pgx.ErrNoRows, "find account"), apperrors.ErrAccountNotFound)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	storage := translateError(errors.New("boom"), "find account")
	assert.Equal(t, storage, notFoundAs(storage, apperrors.ErrAccountNotFound))
}
