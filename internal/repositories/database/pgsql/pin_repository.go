package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger/internal/models"
	"github.com/SscSPs/wallet_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPinRepository struct {
	BaseRepository
}

func newPgxPinRepository(pool *pgxpool.Pool) *PgxPinRepository {
	return &PgxPinRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PinRepositoryFacade = (*PgxPinRepository)(nil)

func (r *PgxPinRepository) FindPinByAccountID(ctx context.Context, accountID string) (*domain.AccountPin, error) {
	query := `
		SELECT account_id::text, pin_hash, failed_attempts, created_at, updated_at
		FROM account_pins
		WHERE account_id = $1;
	`
	var m models.AccountPin
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.PinHash,
		&m.FailedAttempts,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("pin for account " + accountID)
		}
		return nil, translateError(err, "failed to find pin for account "+accountID)
	}
	pin := mapping.ToDomainAccountPin(m)
	return &pin, nil
}

// SavePin upserts the hash and clears the failure counter.
func (r *PgxPinRepository) SavePin(ctx context.Context, pin domain.AccountPin) error {
	m := mapping.ToModelAccountPin(pin)
	query := `
		INSERT INTO account_pins (account_id, pin_hash, failed_attempts, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET pin_hash = EXCLUDED.pin_hash, failed_attempts = 0, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, m.AccountID, m.PinHash, m.CreatedAt, m.UpdatedAt); err != nil {
		return notFoundAs(translateError(err, "failed to save pin for account "+m.AccountID), apperrors.ErrAccountNotFound)
	}
	return nil
}

func (r *PgxPinRepository) RecordFailedAttempt(ctx context.Context, accountID string, now time.Time) (int, error) {
	query := `
		UPDATE account_pins
		SET failed_attempts = failed_attempts + 1, updated_at = $2
		WHERE account_id = $1
		RETURNING failed_attempts;
	`
	var attempts int
	if err := r.Pool.QueryRow(ctx, query, accountID, now).Scan(&attempts); err != nil {
		return 0, translateError(err, "failed to record pin attempt for account "+accountID)
	}
	return attempts, nil
}

func (r *PgxPinRepository) ResetFailedAttempts(ctx context.Context, accountID string, now time.Time) error {
	query := `UPDATE account_pins SET failed_attempts = 0, updated_at = $2 WHERE account_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, accountID, now); err != nil {
		return translateError(err, "failed to reset pin attempts for account "+accountID)
	}
	return nil
}
