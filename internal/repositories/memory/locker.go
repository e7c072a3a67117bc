package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

func (s *Store) lockFor(accountID string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	sem, ok := s.locks[accountID]
	if !ok {
		sem = make(chan struct{}, 1)
		s.locks[accountID] = sem
	}
	return sem
}

// WithAccountLock runs fn while holding the account's semaphore. Writes made
// through the tx are staged and applied in one step when fn returns nil.
func (s *Store) WithAccountLock(ctx context.Context, accountID string, fn portsrepo.LockedFunc) error {
	if _, err := s.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	sem := s.lockFor(accountID)
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
	case <-timer.C:
		return fmt.Errorf("%w: waited %s for account %s", apperrors.ErrLockTimeout, s.lockTimeout, accountID)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrLockTimeout, ctx.Err())
	}
	defer func() { <-sem }()

	acc, err := s.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	tx := &lockedTx{
		store:    s,
		account:  *acc,
		staged:   make(map[string]domain.Entry),
		expected: make(map[string]domain.EntryStatus),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return s.commit(tx)
}

// commit applies the staged writes unless an entry changed underneath the
// transaction, e.g. a pending reservation expired by a concurrent request.
func (s *Store) commit(tx *lockedTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, want := range tx.expected {
		if current := s.entries[id].Status; current != want {
			return fmt.Errorf("%w: entry %s changed to %s before commit", apperrors.ErrOperationInProgress, id, current)
		}
	}
	for id, e := range tx.staged {
		s.entries[id] = e
	}
	if tx.accountChanged {
		s.accounts[tx.account.AccountID] = tx.account
	}
	return nil
}

type lockedTx struct {
	store          *Store
	account        domain.Account
	accountChanged bool
	staged         map[string]domain.Entry
	expected       map[string]domain.EntryStatus // status each staged entry had when first read
}

func (t *lockedTx) Account() domain.Account {
	return t.account
}

func (t *lockedTx) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	if e, ok := t.staged[entryID]; ok {
		e = cloneEntry(e)
		return &e, nil
	}
	return t.store.FindEntryByID(ctx, entryID)
}

func (t *lockedTx) stage(e domain.Entry, previous domain.EntryStatus) {
	if _, seen := t.expected[e.EntryID]; !seen {
		t.expected[e.EntryID] = previous
	}
	t.staged[e.EntryID] = e
}

func (t *lockedTx) ownEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	e, err := t.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.AccountID != t.account.AccountID {
		return nil, fmt.Errorf("%w: entry %s does not belong to account %s", apperrors.ErrValidation, entryID, t.account.AccountID)
	}
	return e, nil
}

func (t *lockedTx) PostEntry(ctx context.Context, entryID string, balanceAfter decimal.Decimal, now time.Time) (*domain.Entry, error) {
	e, err := t.ownEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.EntryStatusPending {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrOperationInProgress, entryID, e.Status)
	}
	if balanceAfter.IsNegative() {
		return nil, fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientBalance, balanceAfter.String())
	}

	seq := t.account.EntryCount + 1
	bal := balanceAfter
	previous := e.Status
	e.Status = domain.EntryStatusCompleted
	e.BalanceAfter = &bal
	e.Sequence = &seq
	e.UpdatedAt = now
	t.stage(*e, previous)

	t.account.Balance = balanceAfter
	t.account.EntryCount = seq
	t.account.UpdatedAt = now
	t.accountChanged = true

	out := cloneEntry(*e)
	return &out, nil
}

func (t *lockedTx) MarkEntryReversed(ctx context.Context, entryID string, now time.Time) error {
	e, err := t.ownEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if e.Status != domain.EntryStatusCompleted {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotReversible, entryID, e.Status)
	}
	previous := e.Status
	e.Status = domain.EntryStatusReversed
	e.UpdatedAt = now
	t.stage(*e, previous)
	return nil
}

func (t *lockedTx) UpdateAccountStatus(_ context.Context, status domain.AccountStatus, lockedUntil *time.Time, now time.Time) (*domain.Account, error) {
	t.account.Status = status
	t.account.LockedUntil = nil
	if status == domain.AccountStatusLocked && lockedUntil != nil {
		until := *lockedUntil
		t.account.LockedUntil = &until
	}
	t.account.UpdatedAt = now
	t.accountChanged = true
	acc := t.account
	return &acc, nil
}
