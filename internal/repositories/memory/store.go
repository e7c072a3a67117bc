// Package memory is an in-process implementation of the ledger repositories.
// It honours the same contracts as the Postgres store (per-account locks with
// a wait timeout, the active idempotency key uniqueness rule, atomic commit of
// a locked section) and backs the service tests and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger/internal/utils/accounting"
	"github.com/SscSPs/wallet_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Store keeps accounts, entries and PINs in maps guarded by one mutex.
// Account locks are separate one-slot semaphores so that waiting on one
// account never blocks another.
type Store struct {
	mu             sync.RWMutex
	accounts       map[string]domain.Account
	ownerIndex     map[string]string // owner_ref|currency -> account id
	entries        map[string]domain.Entry
	accountEntries map[string][]string // account id -> entry ids in insertion order
	activeKeys     map[string]string   // account id|idempotency key -> non-failed entry id
	pins           map[string]domain.AccountPin

	locksMu     sync.Mutex
	locks       map[string]chan struct{}
	lockTimeout time.Duration
}

// NewStore creates an empty store whose account locks give up after lockTimeout.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		accounts:       make(map[string]domain.Account),
		ownerIndex:     make(map[string]string),
		entries:        make(map[string]domain.Entry),
		accountEntries: make(map[string][]string),
		activeKeys:     make(map[string]string),
		pins:           make(map[string]domain.AccountPin),
		locks:          make(map[string]chan struct{}),
		lockTimeout:    lockTimeout,
	}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: store,
		EntryRepo:   store,
		PinRepo:     store,
		Locker:      store,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade   = (*Store)(nil)
	_ portsrepo.PinRepositoryFacade     = (*Store)(nil)
	_ portsrepo.AccountLocker           = (*Store)(nil)
	_ portsrepo.LockedAccountTx         = (*lockedTx)(nil)
)

func ownerKey(ownerRef, currencyCode string) string {
	return ownerRef + "|" + currencyCode
}

func idemKey(accountID, key string) string {
	return accountID + "|" + key
}

func cloneEntry(e domain.Entry) domain.Entry {
	e.Metadata = maps.Clone(e.Metadata)
	return e
}

// --- accounts ---

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return &acc, nil
}

func (s *Store) FindAccountByOwner(_ context.Context, ownerRef string, currencyCode string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ownerIndex[ownerKey(ownerRef, currencyCode)]
	if !ok {
		return nil, fmt.Errorf("%w: owner %s in %s", apperrors.ErrAccountNotFound, ownerRef, currencyCode)
	}
	acc := s.accounts[id]
	return &acc, nil
}

func (s *Store) EnsureAccount(_ context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := ownerKey(account.OwnerRef, account.CurrencyCode)
	if id, ok := s.ownerIndex[k]; ok {
		existing := s.accounts[id]
		return &existing, nil
	}
	if _, taken := s.accounts[account.AccountID]; taken {
		return nil, fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	s.ownerIndex[k] = account.AccountID
	return &account, nil
}

// --- entries ---

func (s *Store) FindEntryByID(_ context.Context, entryID string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("entry " + entryID)
	}
	e = cloneEntry(e)
	return &e, nil
}

func (s *Store) FindActiveEntryByKey(_ context.Context, accountID string, idempotencyKey string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.activeKeys[idemKey(accountID, idempotencyKey)]
	if !ok {
		return nil, apperrors.NewNotFoundError("entry with key " + idempotencyKey)
	}
	e := cloneEntry(s.entries[id])
	return &e, nil
}

func (s *Store) ListEntriesByAccountID(_ context.Context, accountID string, filter domain.EntryFilter) ([]domain.Entry, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var cursorTime time.Time
	var cursorID string
	if filter.NextToken != nil && *filter.NextToken != "" {
		var err error
		cursorTime, cursorID, err = pagination.DecodeEntryCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	kinds := make(map[domain.EntryKind]bool, len(filter.Kinds))
	for _, k := range filter.Kinds {
		kinds[k] = true
	}
	statuses := make(map[domain.EntryStatus]bool, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses[st] = true
	}

	s.mu.RLock()
	matched := make([]domain.Entry, 0, len(s.accountEntries[accountID]))
	for _, id := range s.accountEntries[accountID] {
		e := s.entries[id]
		if len(kinds) > 0 && !kinds[e.Kind] {
			continue
		}
		if len(statuses) > 0 && !statuses[e.Status] {
			continue
		}
		if filter.From != nil && e.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.CreatedAt.Before(*filter.To) {
			continue
		}
		matched = append(matched, cloneEntry(e))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].EntryID > matched[j].EntryID
	})

	if cursorID != "" {
		start := len(matched)
		for i, e := range matched {
			if e.CreatedAt.Before(cursorTime) || (e.CreatedAt.Equal(cursorTime) && e.EntryID < cursorID) {
				start = i
				break
			}
		}
		matched = matched[start:]
	}

	var nextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeEntryCursor(last.CreatedAt, last.EntryID)
		nextToken = &token
	}
	return matched, nextToken, nil
}

func (s *Store) SumPostedEntries(_ context.Context, accountID string) (decimal.Decimal, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.Entry, 0, len(s.accountEntries[accountID]))
	for _, id := range s.accountEntries[accountID] {
		entries = append(entries, s.entries[id])
	}
	sum, count := accounting.SumPosted(entries)
	return sum, count, nil
}

func (s *Store) ReserveEntry(_ context.Context, entry domain.Entry) (*domain.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[entry.AccountID]; !ok {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, entry.AccountID)
	}

	k := idemKey(entry.AccountID, entry.IdempotencyKey)
	if id, ok := s.activeKeys[k]; ok {
		existing := cloneEntry(s.entries[id])
		return &existing, false, nil
	}
	if _, taken := s.entries[entry.EntryID]; taken {
		return nil, false, fmt.Errorf("%w: entry with ID %s already exists", apperrors.ErrDuplicate, entry.EntryID)
	}

	stored := cloneEntry(entry)
	stored.Status = domain.EntryStatusPending
	s.entries[stored.EntryID] = stored
	s.accountEntries[stored.AccountID] = append(s.accountEntries[stored.AccountID], stored.EntryID)
	s.activeKeys[k] = stored.EntryID

	out := cloneEntry(stored)
	return &out, true, nil
}

// failPendingLocked moves a pending entry to failed and frees its key. s.mu must be held.
func (s *Store) failPendingLocked(e domain.Entry, reason string, now time.Time) {
	e.Status = domain.EntryStatusFailed
	e.FailureReason = reason
	e.UpdatedAt = now
	s.entries[e.EntryID] = e
	k := idemKey(e.AccountID, e.IdempotencyKey)
	if s.activeKeys[k] == e.EntryID {
		delete(s.activeKeys, k)
	}
}

func (s *Store) MarkEntryFailed(_ context.Context, entryID string, reason string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("entry " + entryID)
	}
	if e.Status == domain.EntryStatusPending {
		s.failPendingLocked(e, reason, now)
	}
	return nil
}

func (s *Store) ExpirePendingEntry(_ context.Context, entryID string, staleBefore time.Time, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return false, apperrors.NewNotFoundError("entry " + entryID)
	}
	if e.Status != domain.EntryStatusPending || !e.CreatedAt.Before(staleBefore) {
		return false, nil
	}
	s.failPendingLocked(e, "abandoned", now)
	return true, nil
}

// --- pins ---

func (s *Store) FindPinByAccountID(_ context.Context, accountID string) (*domain.AccountPin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pin, ok := s.pins[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("pin for account " + accountID)
	}
	return &pin, nil
}

func (s *Store) SavePin(_ context.Context, pin domain.AccountPin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[pin.AccountID]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, pin.AccountID)
	}
	if existing, ok := s.pins[pin.AccountID]; ok {
		pin.CreatedAt = existing.CreatedAt
	}
	pin.FailedAttempts = 0
	s.pins[pin.AccountID] = pin
	return nil
}

func (s *Store) RecordFailedAttempt(_ context.Context, accountID string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pin, ok := s.pins[accountID]
	if !ok {
		return 0, apperrors.NewNotFoundError("pin for account " + accountID)
	}
	pin.FailedAttempts++
	pin.UpdatedAt = now
	s.pins[accountID] = pin
	return pin.FailedAttempts, nil
}

func (s *Store) ResetFailedAttempts(_ context.Context, accountID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pin, ok := s.pins[accountID]
	if !ok {
		return nil
	}
	pin.FailedAttempts = 0
	pin.UpdatedAt = now
	s.pins[accountID] = pin
	return nil
}
