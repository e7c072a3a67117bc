package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxIdempotencyKeyLength = 255

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.EntryRepositoryFacade
	locker      portsrepo.AccountLocker
	guard       *idempotencyGuard

	amountScale int32
	pendingTTL  time.Duration
	now         func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithAmountScale sets how many fractional digits amounts may carry.
func WithAmountScale(scale int32) LedgerOption {
	return func(s *ledgerService) {
		s.amountScale = scale
	}
}

// WithPendingTTL sets how long a pending reservation may live before a retry
// treats it as abandoned.
func WithPendingTTL(ttl time.Duration) LedgerOption {
	return func(s *ledgerService) {
		s.pendingTTL = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service over the given repositories.
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		accountRepo: repos.AccountRepo,
		entryRepo:   repos.EntryRepo,
		locker:      repos.Locker,
		amountScale: 2,
		pendingTTL:  5 * time.Minute,
		now:         time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	svc.guard = &idempotencyGuard{
		entryRepo:  svc.entryRepo,
		locker:     svc.locker,
		pendingTTL: svc.pendingTTL,
		now:        svc.now,
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Credit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error) {
	return s.post(ctx, req, accounting.Credit)
}

func (s *ledgerService) Debit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error) {
	return s.post(ctx, req, accounting.Debit)
}

func (s *ledgerService) post(ctx context.Context, req domain.OperationRequest, dir accounting.Direction) (*domain.Entry, error) {
	logAttrs := []any{
		slog.String("account_id", req.AccountID),
		slog.String("idempotency_key", req.IdempotencyKey),
		slog.String("kind", string(req.Kind)),
		slog.String("direction", dir.String()),
	}

	if err := s.validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected ledger operation", logAttrs...)
		return nil, err
	}

	now := s.now()
	candidate := domain.Entry{
		EntryID:        uuid.NewString(),
		AccountID:      req.AccountID,
		Amount:         accounting.SignedAmount(req.Amount, dir),
		Kind:           req.Kind,
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.EntryStatusPending,
		Metadata:       req.Metadata,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	entry, replayed, err := s.guard.Execute(ctx, candidate, s.apply)
	if err != nil {
		s.LogFailure(ctx, err, "Ledger operation failed", logAttrs...)
		return nil, err
	}

	if replayed {
		s.LogInfo(ctx, "Returned existing entry for idempotency key", append(logAttrs, slog.String("entry_id", entry.EntryID))...)
	} else {
		s.LogInfo(ctx, "Entry posted", append(logAttrs,
			slog.String("entry_id", entry.EntryID),
			slog.String("amount", entry.Amount.String()),
			slog.String("balance_after", entry.BalanceAfter.String()))...)
	}
	return entry, nil
}

// apply validates the locked account against a reserved entry and posts it.
func (s *ledgerService) apply(ctx context.Context, tx portsrepo.LockedAccountTx, reserved domain.Entry) (*domain.Entry, error) {
	acc := tx.Account()
	now := s.now()
	if err := checkAccountAccepts(acc, reserved.Amount, now); err != nil {
		return nil, err
	}
	balanceAfter, err := accounting.ApplyToBalance(acc.Balance, reserved.Amount)
	if err != nil {
		return nil, err
	}
	return tx.PostEntry(ctx, reserved.EntryID, balanceAfter, now)
}

// checkAccountAccepts enforces the status rules: a live lock blocks
// everything, a suspension blocks only debits.
func checkAccountAccepts(acc domain.Account, signed decimal.Decimal, now time.Time) error {
	if acc.IsLocked(now) {
		if acc.LockedUntil != nil {
			return fmt.Errorf("%w: account %s is locked until %s", apperrors.ErrAccountLocked, acc.AccountID, acc.LockedUntil.UTC().Format(time.RFC3339))
		}
		return fmt.Errorf("%w: account %s is locked", apperrors.ErrAccountLocked, acc.AccountID)
	}
	if signed.IsNegative() && acc.IsSuspended() {
		return fmt.Errorf("%w: account %s does not accept debits", apperrors.ErrAccountSuspended, acc.AccountID)
	}
	return nil
}

func (s *ledgerService) validateRequest(req domain.OperationRequest) error {
	if err := accounting.ValidateAmount(req.Amount, s.amountScale); err != nil {
		return err
	}
	if req.AccountID == "" {
		return fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.IdempotencyKey == "" || len(req.IdempotencyKey) > maxIdempotencyKeyLength {
		return fmt.Errorf("%w: idempotency key must be 1 to %d characters", apperrors.ErrValidation, maxIdempotencyKeyLength)
	}
	return nil
}

// ReversalKey is the idempotency key of the entry compensating entryID.
func ReversalKey(entryID string) string {
	return "reversal:" + entryID
}

func (s *ledgerService) Reverse(ctx context.Context, entryID string, reason string) (*domain.Entry, error) {
	logAttrs := []any{slog.String("entry_id", entryID)}

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = fmt.Errorf("%w: %w", apperrors.ErrEntryNotReversible, err)
		}
		err = asLedgerError(err)
		s.LogFailure(ctx, err, "Reversal rejected", logAttrs...)
		return nil, err
	}
	if original.Status != domain.EntryStatusCompleted {
		err := fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotReversible, entryID, original.Status)
		s.LogWarn(ctx, err, "Reversal rejected", logAttrs...)
		return nil, err
	}

	now := s.now()
	reversesID := original.EntryID
	candidate := domain.Entry{
		EntryID:         uuid.NewString(),
		AccountID:       original.AccountID,
		Amount:          original.Amount.Neg(),
		Kind:            domain.EntryKindAdjustment,
		IdempotencyKey:  ReversalKey(original.EntryID),
		Status:          domain.EntryStatusPending,
		ReversesEntryID: &reversesID,
		Metadata: map[string]any{
			"reason":        reason,
			"reversed_kind": string(original.Kind),
		},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	entry, replayed, err := s.guard.Execute(ctx, candidate, func(ctx context.Context, tx portsrepo.LockedAccountTx, reserved domain.Entry) (*domain.Entry, error) {
		// Re-read under the lock; the pre-check above was unlocked.
		current, err := tx.FindEntryByID(ctx, original.EntryID)
		if err != nil {
			return nil, err
		}
		if current.Status != domain.EntryStatusCompleted {
			return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotReversible, original.EntryID, current.Status)
		}
		posted, err := s.apply(ctx, tx, reserved)
		if err != nil {
			return nil, err
		}
		if err := tx.MarkEntryReversed(ctx, original.EntryID, s.now()); err != nil {
			return nil, err
		}
		return posted, nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Reversal failed", logAttrs...)
		return nil, err
	}
	if replayed {
		err := fmt.Errorf("%w: entry %s was already reversed by %s", apperrors.ErrEntryNotReversible, entryID, entry.EntryID)
		s.LogWarn(ctx, err, "Reversal rejected", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Entry reversed", append(logAttrs,
		slog.String("reversal_entry_id", entry.EntryID),
		slog.String("account_id", entry.AccountID))...)
	return entry, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, asLedgerError(err)
	}
	return acc, nil
}

func (s *ledgerService) GetEntries(ctx context.Context, accountID string, filter domain.EntryFilter) (*domain.EntryPage, error) {
	for _, k := range filter.Kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, k)
		}
	}
	for _, st := range filter.Statuses {
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, st)
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}

	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByAccountID(ctx, accountID, filter)
	if err != nil {
		err = asLedgerError(err)
		s.LogFailure(ctx, err, "Failed to list entries", slog.String("account_id", accountID))
		return nil, err
	}
	return &domain.EntryPage{Entries: entries, NextToken: nextToken}, nil
}

func (s *ledgerService) ReplayBalance(ctx context.Context, accountID string) (*domain.ReplayResult, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sum, count, err := s.entryRepo.SumPostedEntries(ctx, accountID)
	if err != nil {
		return nil, asLedgerError(err)
	}

	result := &domain.ReplayResult{
		AccountID:       accountID,
		CachedBalance:   acc.Balance,
		ReplayedBalance: sum,
		PostedEntries:   count,
		EntryCount:      acc.EntryCount,
		Consistent:      sum.Equal(acc.Balance) && count == acc.EntryCount,
	}
	if !result.Consistent {
		s.GetLogger(ctx).Error("Balance replay mismatch",
			slog.String("account_id", accountID),
			slog.String("cached_balance", acc.Balance.String()),
			slog.String("replayed_balance", sum.String()),
			slog.Int64("posted_entries", count),
			slog.Int64("entry_count", acc.EntryCount))
	}
	return result, nil
}

func (s *ledgerService) EnsureAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error) {
	if ownerRef == "" {
		return nil, fmt.Errorf("%w: owner reference is required", apperrors.ErrValidation)
	}
	if !currencyCodePattern.MatchString(currencyCode) {
		return nil, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currencyCode)
	}

	now := s.now()
	acc, err := s.accountRepo.EnsureAccount(ctx, domain.Account{
		AccountID:    uuid.NewString(),
		OwnerRef:     ownerRef,
		CurrencyCode: currencyCode,
		Balance:      decimal.Zero,
		Status:       domain.AccountStatusActive,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		err = asLedgerError(err)
		s.LogFailure(ctx, err, "Failed to ensure account", slog.String("owner_ref", ownerRef), slog.String("currency_code", currencyCode))
		return nil, err
	}
	return acc, nil
}

func (s *ledgerService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, lockedUntil *time.Time) (*domain.Account, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}
	if status != domain.AccountStatusLocked {
		lockedUntil = nil
	}

	var updated *domain.Account
	err := s.locker.WithAccountLock(ctx, accountID, func(ctx context.Context, tx portsrepo.LockedAccountTx) error {
		acc, err := tx.UpdateAccountStatus(ctx, status, lockedUntil, s.now())
		if err != nil {
			return err
		}
		updated = acc
		return nil
	})
	if err != nil {
		err = asLedgerError(err)
		s.LogFailure(ctx, err, "Failed to change account status", slog.String("account_id", accountID), slog.String("status", string(status)))
		return nil, err
	}

	s.LogInfo(ctx, "Account status changed", slog.String("account_id", accountID), slog.String("status", string(status)))
	return updated, nil
}
