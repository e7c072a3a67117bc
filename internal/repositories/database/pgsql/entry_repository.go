package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger/internal/models"
	"github.com/SscSPs/wallet_ledger/internal/utils/mapping"
	"github.com/SscSPs/wallet_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id::text, account_id::text, amount, balance_after, kind, idempotency_key, status,
	sequence, reverses_entry_id::text, failure_reason, metadata, created_at, updated_at`

// reserveAttempts bounds the insert-or-select loop in ReserveEntry. A
// select only misses when the conflicting row failed in between.
const reserveAttempts = 3

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entries.
func newPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.Amount,
		&m.BalanceAfter,
		&m.Kind,
		&m.IdempotencyKey,
		&m.Status,
		&m.Sequence,
		&m.ReversesEntryID,
		&m.FailureReason,
		&m.Metadata,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainEntry(m)
	return &e, nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	e, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, translateError(err, "failed to find entry "+entryID)
	}
	return e, nil
}

// FindActiveEntryByKey retrieves the non-failed entry holding an idempotency key.
func (r *PgxEntryRepository) FindActiveEntryByKey(ctx context.Context, accountID string, idempotencyKey string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND idempotency_key = $2 AND status <> 'failed';`
	e, err := scanEntry(r.Pool.QueryRow(ctx, query, accountID, idempotencyKey))
	if err != nil {
		return nil, translateError(err, "failed to find entry for key "+idempotencyKey)
	}
	return e, nil
}

// ReserveEntry inserts a pending entry unless its key is already held. The
// insert commits on its own so that the partial unique index decides races.
func (r *PgxEntryRepository) ReserveEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, bool, error) {
	m := mapping.ToModelEntry(entry)
	insert := `
		INSERT INTO ledger_entries (entry_id, account_id, amount, kind, idempotency_key, status, reverses_entry_id, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7, $8, $9)
		ON CONFLICT (account_id, idempotency_key) WHERE status <> 'failed' DO NOTHING
		RETURNING ` + entryColumns + `;`

	for attempt := 0; attempt < reserveAttempts; attempt++ {
		stored, err := scanEntry(r.Pool.QueryRow(ctx, insert,
			m.EntryID,
			m.AccountID,
			m.Amount,
			m.Kind,
			m.IdempotencyKey,
			m.ReversesEntryID,
			m.Metadata,
			m.CreatedAt,
			m.UpdatedAt,
		))
		if err == nil {
			return stored, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, notFoundAs(translateError(err, "failed to reserve entry "+m.IdempotencyKey), apperrors.ErrAccountNotFound)
		}

		existing, err := r.FindActiveEntryByKey(ctx, m.AccountID, m.IdempotencyKey)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, err
		}
	}
	return nil, false, fmt.Errorf("%w: key %q keeps changing", apperrors.ErrOperationInProgress, m.IdempotencyKey)
}

// MarkEntryFailed moves a pending entry to failed. Entries in any other
// state are left alone.
func (r *PgxEntryRepository) MarkEntryFailed(ctx context.Context, entryID string, reason string, now time.Time) error {
	query := `
		UPDATE ledger_entries
		SET status = 'failed', failure_reason = $2, updated_at = $3
		WHERE entry_id = $1 AND status = 'pending';
	`
	if _, err := r.Pool.Exec(ctx, query, entryID, reason, now); err != nil {
		return translateError(err, "failed to mark entry "+entryID+" as failed")
	}
	return nil
}

// ExpirePendingEntry fails a pending entry created before staleBefore.
func (r *PgxEntryRepository) ExpirePendingEntry(ctx context.Context, entryID string, staleBefore time.Time, now time.Time) (bool, error) {
	query := `
		UPDATE ledger_entries
		SET status = 'failed', failure_reason = 'abandoned', updated_at = $3
		WHERE entry_id = $1 AND status = 'pending' AND created_at < $2;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, staleBefore, now)
	if err != nil {
		return false, translateError(err, "failed to expire entry "+entryID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListEntriesByAccountID lists entries newest first using keyset pagination
// on (created_at, entry_id).
func (r *PgxEntryRepository) ListEntriesByAccountID(ctx context.Context, accountID string, filter domain.EntryFilter) ([]domain.Entry, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1`)
	args := []any{accountID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		sb.WriteString(" AND kind = ANY(" + arg(kinds) + ")")
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		sb.WriteString(" AND status = ANY(" + arg(statuses) + ")")
	}
	if filter.From != nil {
		sb.WriteString(" AND created_at >= " + arg(*filter.From))
	}
	if filter.To != nil {
		sb.WriteString(" AND created_at < " + arg(*filter.To))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeEntryCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sb.WriteString(" AND (created_at, entry_id) < (" + arg(cursorTime) + ", " + arg(cursorID) + "::uuid)")
	}
	sb.WriteString(" ORDER BY created_at DESC, entry_id DESC LIMIT " + arg(limit+1) + ";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to list entries of account "+accountID)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, translateError(err, "failed to scan entry")
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "failed to iterate entries")
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeEntryCursor(last.CreatedAt, last.EntryID)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// SumPostedEntries replays an account's balance from its posted entries.
func (r *PgxEntryRepository) SumPostedEntries(ctx context.Context, accountID string) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM ledger_entries
		WHERE account_id = $1 AND status IN ('completed', 'reversed');
	`
	var sum decimal.Decimal
	var count int64
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum, &count); err != nil {
		return decimal.Zero, 0, translateError(err, "failed to replay account "+accountID)
	}
	return sum, count, nil
}
