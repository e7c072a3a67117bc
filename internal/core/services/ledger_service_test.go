package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/SscSPs/wallet_ledger/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// testClock is a settable clock shared by the service and the test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type LedgerServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	clock   *testClock
	service portssvc.LedgerSvcFacade
	account *domain.Account
	ctx     context.Context
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore(2 * time.Second)
	suite.clock = newTestClock()
	suite.service = services.NewLedgerService(
		memory.NewRepositoryProvider(suite.store),
		services.WithClock(suite.clock.Now),
		services.WithPendingTTL(5*time.Minute),
	)

	acc, err := suite.service.EnsureAccount(suite.ctx, "investor:"+uuid.NewString(), "GHS")
	suite.Require().NoError(err)
	suite.account = acc
}

func (suite *LedgerServiceTestSuite) request(amount string, kind domain.EntryKind, key string) domain.OperationRequest {
	return domain.OperationRequest{
		AccountID:      suite.account.AccountID,
		Amount:         dec(amount),
		Kind:           kind,
		IdempotencyKey: key,
	}
}

func (suite *LedgerServiceTestSuite) credit(amount, key string) (*domain.Entry, error) {
	return suite.service.Credit(suite.ctx, suite.request(amount, domain.EntryKindDeposit, key))
}

func (suite *LedgerServiceTestSuite) debit(amount, key string) (*domain.Entry, error) {
	return suite.service.Debit(suite.ctx, suite.request(amount, domain.EntryKindWithdrawal, key))
}

func (suite *LedgerServiceTestSuite) requireBalance(expected string) {
	balance, err := suite.service.GetBalance(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.True(dec(expected).Equal(balance), "expected balance %s, got %s", expected, balance.String())
}

func (suite *LedgerServiceTestSuite) requireConsistent() *domain.ReplayResult {
	result, err := suite.service.ReplayBalance(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.True(result.Consistent, "replayed %s, cached %s", result.ReplayedBalance.String(), result.CachedBalance.String())
	return result
}

func (suite *LedgerServiceTestSuite) TestCreditAndDebit_Success() {
	first, err := suite.credit("100", "dep-1")
	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusCompleted, first.Status)
	suite.True(dec("100").Equal(*first.BalanceAfter))
	suite.Equal(int64(1), *first.Sequence)

	second, err := suite.debit("30", "wd-1")
	suite.Require().NoError(err)
	suite.True(dec("-30").Equal(second.Amount))
	suite.True(dec("70").Equal(*second.BalanceAfter))
	suite.Equal(int64(2), *second.Sequence)

	_, err = suite.credit("5.50", "dep-2")
	suite.Require().NoError(err)

	suite.requireBalance("75.50")
	result := suite.requireConsistent()
	suite.Equal(int64(3), result.PostedEntries)
}

func (suite *LedgerServiceTestSuite) TestDebit_NeverGoesNegative() {
	_, err := suite.credit("200", "s-1")
	suite.Require().NoError(err)
	_, err = suite.debit("200", "s-2")
	suite.Require().NoError(err)
	suite.requireBalance("0")

	_, err = suite.debit("1", "s-3")
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.requireBalance("0")

	_, err = suite.credit("50", "s-4")
	suite.Require().NoError(err)
	suite.requireBalance("50")

	result := suite.requireConsistent()
	suite.Equal(int64(3), result.PostedEntries)

	failed, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{
		Statuses: []domain.EntryStatus{domain.EntryStatusFailed},
	})
	suite.Require().NoError(err)
	suite.Require().Len(failed.Entries, 1)
	suite.Equal("s-3", failed.Entries[0].IdempotencyKey)
	suite.Contains(failed.Entries[0].FailureReason, "insufficient balance")
	suite.Nil(failed.Entries[0].Sequence)
}

func (suite *LedgerServiceTestSuite) TestCredit_ReplayedKeyReturnsOriginalEntry() {
	first, err := suite.credit("500", "dep-X")
	suite.Require().NoError(err)

	replayed, err := suite.credit("500", "dep-X")
	suite.Require().NoError(err)
	suite.Equal(first.EntryID, replayed.EntryID)
	suite.True(first.BalanceAfter.Equal(*replayed.BalanceAfter))

	_, err = suite.credit("50", "dep-Y")
	suite.Require().NoError(err)

	suite.requireBalance("550")
	result := suite.requireConsistent()
	suite.True(dec("550").Equal(result.ReplayedBalance))
}

func (suite *LedgerServiceTestSuite) TestCredit_KeyReusedWithDifferentAmount() {
	_, err := suite.credit("10", "dep-1")
	suite.Require().NoError(err)

	_, err = suite.credit("11", "dep-1")
	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)

	_, err = suite.debit("10", "dep-1")
	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)
	suite.requireBalance("10")
}

func (suite *LedgerServiceTestSuite) TestFailedKeyCanBeRetried() {
	_, err := suite.debit("5", "wd-1")
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)

	_, err = suite.credit("5", "dep-1")
	suite.Require().NoError(err)

	entry, err := suite.debit("5", "wd-1")
	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusCompleted, entry.Status)
	suite.requireBalance("0")
}

func (suite *LedgerServiceTestSuite) TestInvalidRequests() {
	tests := []struct {
		name    string
		req     domain.OperationRequest
		wantErr error
	}{
		{"zero amount", suite.request("0", domain.EntryKindDeposit, "k"), apperrors.ErrInvalidAmount},
		{"negative amount", suite.request("-5", domain.EntryKindDeposit, "k"), apperrors.ErrInvalidAmount},
		{"too precise", suite.request("1.005", domain.EntryKindDeposit, "k"), apperrors.ErrInvalidAmount},
		{"missing key", suite.request("1", domain.EntryKindDeposit, ""), apperrors.ErrValidation},
		{"unknown kind", suite.request("1", domain.EntryKind("bonus"), "k"), apperrors.ErrValidation},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.Credit(suite.ctx, tt.req)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.requireBalance("0")
}

func (suite *LedgerServiceTestSuite) TestUnknownAccount() {
	req := suite.request("1", domain.EntryKindDeposit, "k")
	req.AccountID = uuid.NewString()
	_, err := suite.service.Credit(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)

	_, err = suite.service.GetBalance(suite.ctx, req.AccountID)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *LedgerServiceTestSuite) TestConcurrentCredits() {
	const n = 100
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.credit("1", fmt.Sprintf("unit-%d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.Require().NoError(err)
	}

	suite.requireBalance("100")
	page, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{
		Statuses: []domain.EntryStatus{domain.EntryStatusCompleted},
		Limit:    100,
	})
	suite.Require().NoError(err)
	suite.Len(page.Entries, n)
	suite.Nil(page.NextToken)

	seen := make(map[int64]bool, n)
	for _, e := range page.Entries {
		suite.False(seen[*e.Sequence], "sequence %d assigned twice", *e.Sequence)
		seen[*e.Sequence] = true
	}
	suite.requireConsistent()
}

func (suite *LedgerServiceTestSuite) TestConcurrentDuplicateKeyPostsOnce() {
	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	entryIDs := make(map[string]bool)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := suite.credit("10", "same-key")
			if err != nil {
				suite.ErrorIs(err, apperrors.ErrOperationInProgress)
				return
			}
			mu.Lock()
			entryIDs[entry.EntryID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	suite.Len(entryIDs, 1)
	suite.requireBalance("10")
	result := suite.requireConsistent()
	suite.Equal(int64(1), result.PostedEntries)
}

func (suite *LedgerServiceTestSuite) TestReverse_RestoresBalance() {
	_, err := suite.credit("100", "dep-1")
	suite.Require().NoError(err)
	withdrawal, err := suite.debit("50", "wd-1")
	suite.Require().NoError(err)
	suite.requireBalance("50")

	reversal, err := suite.service.Reverse(suite.ctx, withdrawal.EntryID, "provider rejected payout")
	suite.Require().NoError(err)
	suite.Equal(domain.EntryKindAdjustment, reversal.Kind)
	suite.True(dec("50").Equal(reversal.Amount))
	suite.Require().NotNil(reversal.ReversesEntryID)
	suite.Equal(withdrawal.EntryID, *reversal.ReversesEntryID)
	suite.Equal(services.ReversalKey(withdrawal.EntryID), reversal.IdempotencyKey)
	suite.Equal("provider rejected payout", reversal.Metadata["reason"])
	suite.requireBalance("100")

	page, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{
		Statuses: []domain.EntryStatus{domain.EntryStatusReversed},
	})
	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 1)
	suite.Equal(withdrawal.EntryID, page.Entries[0].EntryID)

	_, err = suite.service.Reverse(suite.ctx, withdrawal.EntryID, "again")
	suite.ErrorIs(err, apperrors.ErrEntryNotReversible)
	suite.requireBalance("100")

	result := suite.requireConsistent()
	suite.Equal(int64(3), result.PostedEntries)
}

func (suite *LedgerServiceTestSuite) TestReverse_UnknownEntry() {
	_, err := suite.service.Reverse(suite.ctx, uuid.NewString(), "typo")
	suite.ErrorIs(err, apperrors.ErrEntryNotReversible)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestReverse_CreditAlreadySpent() {
	deposit, err := suite.credit("100", "dep-1")
	suite.Require().NoError(err)
	_, err = suite.debit("80", "wd-1")
	suite.Require().NoError(err)

	_, err = suite.service.Reverse(suite.ctx, deposit.EntryID, "chargeback")
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.requireBalance("20")

	original, err := suite.store.FindEntryByID(suite.ctx, deposit.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusCompleted, original.Status)
}

func (suite *LedgerServiceTestSuite) TestLockedAccountRejectsEverything() {
	_, err := suite.credit("100", "dep-1")
	suite.Require().NoError(err)

	until := suite.clock.Now().Add(time.Hour)
	acc, err := suite.service.SetAccountStatus(suite.ctx, suite.account.AccountID, domain.AccountStatusLocked, &until)
	suite.Require().NoError(err)
	suite.Equal(domain.AccountStatusLocked, acc.Status)

	_, err = suite.credit("1", "dep-2")
	suite.ErrorIs(err, apperrors.ErrAccountLocked)
	_, err = suite.debit("1", "wd-1")
	suite.ErrorIs(err, apperrors.ErrAccountLocked)
	suite.requireBalance("100")

	suite.clock.Advance(2 * time.Hour)
	_, err = suite.debit("1", "wd-1")
	suite.Require().NoError(err)
	suite.requireBalance("99")
}

func (suite *LedgerServiceTestSuite) TestSuspendedAccountAcceptsCreditsOnly() {
	_, err := suite.credit("100", "dep-1")
	suite.Require().NoError(err)

	until := suite.clock.Now().Add(time.Hour)
	acc, err := suite.service.SetAccountStatus(suite.ctx, suite.account.AccountID, domain.AccountStatusSuspended, &until)
	suite.Require().NoError(err)
	suite.Nil(acc.LockedUntil)

	_, err = suite.credit("10", "dep-2")
	suite.Require().NoError(err)
	_, err = suite.debit("10", "wd-1")
	suite.ErrorIs(err, apperrors.ErrAccountSuspended)
	suite.requireBalance("110")

	_, err = suite.service.SetAccountStatus(suite.ctx, suite.account.AccountID, domain.AccountStatusActive, nil)
	suite.Require().NoError(err)
	_, err = suite.debit("10", "wd-1")
	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestSetAccountStatus_Invalid() {
	_, err := suite.service.SetAccountStatus(suite.ctx, suite.account.AccountID, domain.AccountStatus("frozen"), nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SetAccountStatus(suite.ctx, uuid.NewString(), domain.AccountStatusSuspended, nil)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *LedgerServiceTestSuite) TestPendingReservationBlocksUntilStale() {
	now := suite.clock.Now()
	stale := domain.Entry{
		EntryID:        uuid.NewString(),
		AccountID:      suite.account.AccountID,
		Amount:         dec("25"),
		Kind:           domain.EntryKindDeposit,
		IdempotencyKey: "dep-crash",
		Status:         domain.EntryStatusPending,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	_, reserved, err := suite.store.ReserveEntry(suite.ctx, stale)
	suite.Require().NoError(err)
	suite.Require().True(reserved)

	_, err = suite.credit("25", "dep-crash")
	suite.ErrorIs(err, apperrors.ErrOperationInProgress)

	suite.clock.Advance(6 * time.Minute)
	entry, err := suite.credit("25", "dep-crash")
	suite.Require().NoError(err)
	suite.NotEqual(stale.EntryID, entry.EntryID)
	suite.requireBalance("25")

	abandoned, err := suite.store.FindEntryByID(suite.ctx, stale.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusFailed, abandoned.Status)
	suite.Equal("abandoned", abandoned.FailureReason)
}

func (suite *LedgerServiceTestSuite) TestGetEntries_Pagination() {
	for i := 0; i < 5; i++ {
		_, err := suite.credit("1", fmt.Sprintf("dep-%d", i))
		suite.Require().NoError(err)
		suite.clock.Advance(time.Second)
	}
	_, err := suite.debit("2", "wd-1")
	suite.Require().NoError(err)

	var keys []string
	var token *string
	pages := 0
	for {
		page, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{Limit: 2, NextToken: token})
		suite.Require().NoError(err)
		for _, e := range page.Entries {
			keys = append(keys, e.IdempotencyKey)
		}
		pages++
		if page.NextToken == nil {
			break
		}
		token = page.NextToken
	}
	suite.Equal(3, pages)
	suite.Equal([]string{"wd-1", "dep-4", "dep-3", "dep-2", "dep-1", "dep-0"}, keys)

	deposits, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{
		Kinds: []domain.EntryKind{domain.EntryKindWithdrawal},
	})
	suite.Require().NoError(err)
	suite.Require().Len(deposits.Entries, 1)
	suite.Equal("wd-1", deposits.Entries[0].IdempotencyKey)
}

func (suite *LedgerServiceTestSuite) TestGetEntries_InvalidFilter() {
	_, err := suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{
		Kinds: []domain.EntryKind{"bonus"},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	bad := "not-a-token"
	_, err = suite.service.GetEntries(suite.ctx, suite.account.AccountID, domain.EntryFilter{NextToken: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.GetEntries(suite.ctx, uuid.NewString(), domain.EntryFilter{})
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *LedgerServiceTestSuite) TestEnsureAccount() {
	again, err := suite.service.EnsureAccount(suite.ctx, suite.account.OwnerRef, "GHS")
	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountID, again.AccountID)

	other, err := suite.service.EnsureAccount(suite.ctx, suite.account.OwnerRef, "USD")
	suite.Require().NoError(err)
	suite.NotEqual(suite.account.AccountID, other.AccountID)
	suite.Equal(domain.AccountStatusActive, other.Status)
	suite.True(other.Balance.IsZero())

	_, err = suite.service.EnsureAccount(suite.ctx, suite.account.OwnerRef, "ghs")
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.EnsureAccount(suite.ctx, "", "GHS")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerService_LockTimeout(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(50 * time.Millisecond)
	svc := services.NewLedgerService(memory.NewRepositoryProvider(store))
	acc, err := svc.EnsureAccount(ctx, "developer:"+uuid.NewString(), "GHS")
	if err != nil {
		t.Fatal(err)
	}

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.WithAccountLock(ctx, acc.AccountID, func(context.Context, portsrepo.LockedAccountTx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	req := domain.OperationRequest{AccountID: acc.AccountID, Amount: dec("10"), Kind: domain.EntryKindDeposit, IdempotencyKey: "dep-1"}
	_, err = svc.Credit(ctx, req)
	if !errors.Is(err, apperrors.ErrLockTimeout) {
		t.Fatalf("expected lock timeout, got %v", err)
	}
	if !apperrors.IsRetryable(err) {
		t.Fatalf("lock timeout must be retryable")
	}

	close(release)
	<-done

	entry, err := svc.Credit(ctx, req)
	if err != nil {
		t.Fatalf("retry with the same key failed: %v", err)
	}
	if entry.Status != domain.EntryStatusCompleted {
		t.Fatalf("expected completed entry, got %s", entry.Status)
	}
	balance, err := svc.GetBalance(ctx, acc.AccountID)
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Equal(dec("10")) {
		t.Fatalf("expected balance 10, got %s", balance)
	}
}
