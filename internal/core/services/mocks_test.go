package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindActiveEntryByKey(ctx context.Context, accountID string, idempotencyKey string) (*domain.Entry, error) {
	args := m.Called(ctx, accountID, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByAccountID(ctx context.Context, accountID string, filter domain.EntryFilter) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Entry), next, args.Error(2)
}

func (m *MockEntryRepository) SumPostedEntries(ctx context.Context, accountID string) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) ReserveEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, bool, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Entry), args.Bool(1), args.Error(2)
}

func (m *MockEntryRepository) MarkEntryFailed(ctx context.Context, entryID string, reason string, now time.Time) error {
	args := m.Called(ctx, entryID, reason, now)
	return args.Error(0)
}

func (m *MockEntryRepository) ExpirePendingEntry(ctx context.Context, entryID string, staleBefore time.Time, now time.Time) (bool, error) {
	args := m.Called(ctx, entryID, staleBefore, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwner(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error) {
	args := m.Called(ctx, ownerRef, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock AccountLocker ---
type MockAccountLocker struct {
	mock.Mock
}

var _ portsrepo.AccountLocker = (*MockAccountLocker)(nil)

func (m *MockAccountLocker) WithAccountLock(ctx context.Context, accountID string, fn portsrepo.LockedFunc) error {
	args := m.Called(ctx, accountID, fn)
	return args.Error(0)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) entryResult(args mock.Arguments) (*domain.Entry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) accountResult(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error) {
	return m.entryResult(m.Called(ctx, req))
}

func (m *MockLedgerService) Debit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error) {
	return m.entryResult(m.Called(ctx, req))
}

func (m *MockLedgerService) Reverse(ctx context.Context, entryID string, reason string) (*domain.Entry, error) {
	return m.entryResult(m.Called(ctx, entryID, reason))
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, accountID))
}

func (m *MockLedgerService) GetEntries(ctx context.Context, accountID string, filter domain.EntryFilter) (*domain.EntryPage, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryPage), args.Error(1)
}

func (m *MockLedgerService) ReplayBalance(ctx context.Context, accountID string) (*domain.ReplayResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReplayResult), args.Error(1)
}

func (m *MockLedgerService) EnsureAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, ownerRef, currencyCode))
}

func (m *MockLedgerService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, lockedUntil *time.Time) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, accountID, status, lockedUntil))
}

// --- Mock PinService ---
type MockPinService struct {
	mock.Mock
}

var _ portssvc.PinSvc = (*MockPinService)(nil)

func (m *MockPinService) SetPIN(ctx context.Context, accountID string, pin string) error {
	args := m.Called(ctx, accountID, pin)
	return args.Error(0)
}

func (m *MockPinService) VerifyPIN(ctx context.Context, accountID string, pin string) error {
	args := m.Called(ctx, accountID, pin)
	return args.Error(0)
}

// --- Mock BalanceCache ---
type MockBalanceCache struct {
	mock.Mock
}

var _ portsrepo.BalanceCache = (*MockBalanceCache)(nil)

func (m *MockBalanceCache) GetAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, bool, error) {
	args := m.Called(ctx, ownerRef, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Bool(1), args.Error(2)
}

func (m *MockBalanceCache) SetAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBalanceCache) Invalidate(ctx context.Context, accounts ...domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}
