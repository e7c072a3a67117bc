package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the ledger branches on.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
	pgLockNotAvailable    = "55P03"
	pgDeadlockDetected    = "40P01"
	pgQueryCanceled       = "57014"
)

// translateError maps driver errors onto the ledger taxonomy. Anything
// unrecognised is reported as a storage failure.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrAccountNotFound)
		case pgInvalidTextRepr:
			return fmt.Errorf("%s: %w: malformed identifier", msg, apperrors.ErrNotFound)
		case pgCheckViolation:
			if pgErr.ConstraintName == "chk_accounts_balance_non_negative" {
				return fmt.Errorf("%s: %w", msg, apperrors.ErrInsufficientBalance)
			}
		case pgLockNotAvailable, pgDeadlockDetected, pgQueryCanceled:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrLockTimeout, pgErr.Message)
		}
	}
	// The caller gave up while pgx was waiting, usually on a row lock.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrLockTimeout, err)
	}
	return apperrors.NewStorageError(msg, err)
}

// notFoundAs replaces a generic not-found with a more specific sentinel.
func notFoundAs(err error, specific error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %w", specific, err)
	}
	return err
}
