package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type IdempotencyGuardTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	mockLocker      *MockAccountLocker
	clock           *testClock
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
	req             domain.OperationRequest
}

func TestIdempotencyGuardTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyGuardTestSuite))
}

func (suite *IdempotencyGuardTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLocker = new(MockAccountLocker)
	suite.clock = newTestClock()
	suite.service = services.NewLedgerService(portsrepo.RepositoryProvider{
		AccountRepo: suite.mockAccountRepo,
		EntryRepo:   suite.mockEntryRepo,
		Locker:      suite.mockLocker,
	}, services.WithClock(suite.clock.Now))
	suite.ctx = context.Background()
	suite.req = domain.OperationRequest{
		AccountID:      "acc-1",
		Amount:         dec("10"),
		Kind:           domain.EntryKindDeposit,
		IdempotencyKey: "dep-1",
	}
}

func (suite *IdempotencyGuardTestSuite) reservedEntry() *domain.Entry {
	now := suite.clock.Now()
	return &domain.Entry{
		EntryID:        "entry-1",
		AccountID:      suite.req.AccountID,
		Amount:         suite.req.Amount,
		Kind:           suite.req.Kind,
		IdempotencyKey: suite.req.IdempotencyKey,
		Status:         domain.EntryStatusPending,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func (suite *IdempotencyGuardTestSuite) TestReserveStorageFailure() {
	suite.mockEntryRepo.On("ReserveEntry", suite.ctx, mock.AnythingOfType("domain.Entry")).
		Return(nil, false, errors.New("connection refused")).Once()

	_, err := suite.service.Credit(suite.ctx, suite.req)

	suite.ErrorIs(err, apperrors.ErrStorageFailure)
	suite.True(apperrors.IsRetryable(err))
	suite.mockLocker.AssertNotCalled(suite.T(), "WithAccountLock", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *IdempotencyGuardTestSuite) TestLockFailureMarksReservationFailed() {
	reserved := suite.reservedEntry()
	suite.mockEntryRepo.On("ReserveEntry", suite.ctx, mock.AnythingOfType("domain.Entry")).Return(reserved, true, nil).Once()
	suite.mockLocker.On("WithAccountLock", suite.ctx, "acc-1", mock.Anything).
		Return(errors.New("commit: connection reset")).Once()
	suite.mockEntryRepo.On("MarkEntryFailed", mock.Anything, "entry-1",
		mock.MatchedBy(func(reason string) bool { return reason == "storage failure: commit: connection reset" }),
		suite.clock.Now()).Return(nil).Once()

	_, err := suite.service.Credit(suite.ctx, suite.req)

	suite.ErrorIs(err, apperrors.ErrStorageFailure)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockLocker.AssertExpectations(suite.T())
}

func (suite *IdempotencyGuardTestSuite) TestMarkFailedRunsAfterCancellation() {
	ctx, cancel := context.WithCancel(suite.ctx)
	reserved := suite.reservedEntry()
	suite.mockEntryRepo.On("ReserveEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(reserved, true, nil).Once()
	suite.mockLocker.On("WithAccountLock", ctx, "acc-1", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(apperrors.ErrLockTimeout).Once()
	suite.mockEntryRepo.On("MarkEntryFailed",
		mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		"entry-1", apperrors.ErrLockTimeout.Error(), mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.Credit(ctx, suite.req)

	suite.ErrorIs(err, apperrors.ErrLockTimeout)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *IdempotencyGuardTestSuite) TestCompletedEntryIsReplayedWithoutLocking() {
	existing := suite.reservedEntry()
	existing.Status = domain.EntryStatusCompleted
	suite.mockEntryRepo.On("ReserveEntry", suite.ctx, mock.AnythingOfType("domain.Entry")).Return(existing, false, nil).Once()

	entry, err := suite.service.Credit(suite.ctx, suite.req)

	suite.Require().NoError(err)
	suite.Equal("entry-1", entry.EntryID)
	suite.mockLocker.AssertNotCalled(suite.T(), "WithAccountLock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IdempotencyGuardTestSuite) TestContendedStaleReservations() {
	stale := suite.reservedEntry()
	stale.CreatedAt = suite.clock.Now().Add(-time.Hour)
	suite.mockEntryRepo.On("ReserveEntry", suite.ctx, mock.AnythingOfType("domain.Entry")).Return(stale, false, nil).Times(3)
	suite.mockEntryRepo.On("ExpirePendingEntry", suite.ctx, "entry-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(false, nil).Times(3)

	_, err := suite.service.Credit(suite.ctx, suite.req)

	suite.ErrorIs(err, apperrors.ErrOperationInProgress)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}
