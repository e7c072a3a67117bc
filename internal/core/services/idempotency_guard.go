package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
)

// maxReserveAttempts bounds the reserve loop when stale reservations keep
// being replaced under contention.
const maxReserveAttempts = 3

// postFunc applies a reserved entry while the account lock is held.
type postFunc func(ctx context.Context, tx portsrepo.LockedAccountTx, reserved domain.Entry) (*domain.Entry, error)

// idempotencyGuard makes an operation run at most once per (account, key).
//
// The reservation is a pending entry committed on its own, so the storage
// uniqueness rule on active keys decides which concurrent request proceeds.
// The winner posts the entry under the account lock; on any failure the
// reservation is marked failed, which frees the key for a retry.
type idempotencyGuard struct {
	BaseService
	entryRepo  portsrepo.EntryRepositoryFacade
	locker     portsrepo.AccountLocker
	pendingTTL time.Duration
	now        func() time.Time
}

// Execute reserves candidate's key and runs post under the account lock.
// replayed is true when an already posted entry was returned instead.
func (g *idempotencyGuard) Execute(ctx context.Context, candidate domain.Entry, post postFunc) (entry *domain.Entry, replayed bool, err error) {
	reserved, existing, err := g.reserve(ctx, candidate)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	var posted *domain.Entry
	err = g.locker.WithAccountLock(ctx, reserved.AccountID, func(ctx context.Context, tx portsrepo.LockedAccountTx) error {
		e, err := post(ctx, tx, *reserved)
		if err != nil {
			return err
		}
		posted = e
		return nil
	})
	if err != nil {
		err = asLedgerError(err)
		g.markFailed(ctx, reserved, err)
		return nil, false, err
	}
	return posted, false, nil
}

func (g *idempotencyGuard) reserve(ctx context.Context, candidate domain.Entry) (reserved *domain.Entry, existing *domain.Entry, err error) {
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		stored, ok, err := g.entryRepo.ReserveEntry(ctx, candidate)
		if err != nil {
			return nil, nil, asLedgerError(err)
		}
		if ok {
			return stored, nil, nil
		}

		if !stored.SameOperation(candidate) {
			return nil, nil, fmt.Errorf("%w: key %q was used for %s %s", apperrors.ErrIdempotencyConflict,
				candidate.IdempotencyKey, stored.Kind, stored.Amount.String())
		}

		if stored.Status != domain.EntryStatusPending {
			return nil, stored, nil
		}

		now := g.now()
		staleBefore := now.Add(-g.pendingTTL)
		if !stored.CreatedAt.Before(staleBefore) {
			return nil, nil, fmt.Errorf("%w: key %q is held by entry %s", apperrors.ErrOperationInProgress,
				candidate.IdempotencyKey, stored.EntryID)
		}

		expired, err := g.entryRepo.ExpirePendingEntry(ctx, stored.EntryID, staleBefore, now)
		if err != nil {
			return nil, nil, asLedgerError(err)
		}
		if expired {
			g.GetLogger(ctx).Warn("Expired abandoned reservation",
				slog.String("entry_id", stored.EntryID),
				slog.String("idempotency_key", stored.IdempotencyKey),
				slog.Time("reserved_at", stored.CreatedAt))
		}
	}
	return nil, nil, fmt.Errorf("%w: key %q is contended", apperrors.ErrOperationInProgress, candidate.IdempotencyKey)
}

// markFailed records why a reservation did not post. It runs even when ctx
// has expired so a lock timeout does not leave the key blocked.
func (g *idempotencyGuard) markFailed(ctx context.Context, reserved *domain.Entry, cause error) {
	ctx = context.WithoutCancel(ctx)
	if err := g.entryRepo.MarkEntryFailed(ctx, reserved.EntryID, cause.Error(), g.now()); err != nil {
		g.LogError(ctx, err, "Failed to mark reservation as failed",
			slog.String("entry_id", reserved.EntryID),
			slog.String("account_id", reserved.AccountID))
	}
}
