package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/SscSPs/wallet_ledger/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type PinServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	clock   *testClock
	ledger  portssvc.LedgerSvcFacade
	service portssvc.PinSvc
	account *domain.Account
	ctx     context.Context
}

func TestPinServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PinServiceTestSuite))
}

func (suite *PinServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore(time.Second)
	suite.clock = newTestClock()
	repos := memory.NewRepositoryProvider(suite.store)
	suite.ledger = services.NewLedgerService(repos, services.WithClock(suite.clock.Now))
	suite.service = services.NewPinService(repos.PinRepo, suite.ledger,
		services.WithPinPolicy(3, time.Hour),
		services.WithPinHashCost(bcrypt.MinCost),
		services.WithPinClock(suite.clock.Now),
	)

	acc, err := suite.ledger.EnsureAccount(suite.ctx, "developer:"+uuid.NewString(), "GHS")
	suite.Require().NoError(err)
	suite.account = acc
	suite.Require().NoError(suite.service.SetPIN(suite.ctx, acc.AccountID, "1234"))
}

func (suite *PinServiceTestSuite) TestVerifyPIN_Success() {
	suite.NoError(suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "1234"))

	stored, err := suite.store.FindPinByAccountID(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.NotEqual("1234", stored.PinHash)
}

func (suite *PinServiceTestSuite) TestVerifyPIN_WrongPinCountsDown() {
	err := suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "0000")
	suite.ErrorIs(err, apperrors.ErrInvalidPIN)
	suite.NotErrorIs(err, apperrors.ErrAccountLocked)

	var pinErr *apperrors.PINError
	suite.Require().True(errors.As(err, &pinErr))
	suite.Require().NotNil(pinErr.AttemptsRemaining)
	suite.Equal(2, *pinErr.AttemptsRemaining)

	// A success clears the counter.
	suite.Require().NoError(suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "1234"))
	err = suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "0000")
	suite.Require().True(errors.As(err, &pinErr))
	suite.Require().NotNil(pinErr.AttemptsRemaining)
	suite.Equal(2, *pinErr.AttemptsRemaining)
}

func (suite *PinServiceTestSuite) TestVerifyPIN_LocksAccountAfterMaxAttempts() {
	for i := 0; i < 2; i++ {
		err := suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "9999")
		suite.Require().ErrorIs(err, apperrors.ErrInvalidPIN)
	}

	err := suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "9999")
	suite.ErrorIs(err, apperrors.ErrInvalidPIN)
	suite.ErrorIs(err, apperrors.ErrAccountLocked)

	var pinErr *apperrors.PINError
	suite.Require().True(errors.As(err, &pinErr))
	suite.Require().NotNil(pinErr.LockedUntil)
	suite.Equal(suite.clock.Now().Add(time.Hour), *pinErr.LockedUntil)

	acc, err := suite.ledger.GetAccount(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccountStatusLocked, acc.Status)
	suite.True(acc.IsLocked(suite.clock.Now()))

	_, err = suite.ledger.Credit(suite.ctx, domain.OperationRequest{
		AccountID: acc.AccountID, Amount: dec("1"), Kind: domain.EntryKindDeposit, IdempotencyKey: "dep-1",
	})
	suite.ErrorIs(err, apperrors.ErrAccountLocked)

	suite.clock.Advance(61 * time.Minute)
	acc, err = suite.ledger.GetAccount(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccountStatusActive, acc.EffectiveStatus(suite.clock.Now()))

	stored, err := suite.store.FindPinByAccountID(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.Equal(0, stored.FailedAttempts)
}

func (suite *PinServiceTestSuite) TestVerifyPIN_SuspendedAccountStaysSuspended() {
	_, err := suite.ledger.SetAccountStatus(suite.ctx, suite.account.AccountID, domain.AccountStatusSuspended, nil)
	suite.Require().NoError(err)

	for i := 0; i < 3; i++ {
		err = suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "9999")
	}
	suite.ErrorIs(err, apperrors.ErrInvalidPIN)
	suite.NotErrorIs(err, apperrors.ErrAccountLocked)

	acc, err := suite.ledger.GetAccount(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccountStatusSuspended, acc.Status)
}

func (suite *PinServiceTestSuite) TestVerifyPIN_NotSet() {
	other, err := suite.ledger.EnsureAccount(suite.ctx, "developer:"+uuid.NewString(), "GHS")
	suite.Require().NoError(err)

	err = suite.service.VerifyPIN(suite.ctx, other.AccountID, "1234")
	suite.ErrorIs(err, apperrors.ErrInvalidPIN)
	suite.Equal("no transaction PIN set", err.Error())

	var pinErr *apperrors.PINError
	suite.Require().True(errors.As(err, &pinErr))
	suite.Nil(pinErr.AttemptsRemaining, "nothing was checked, so no attempts are reported")
}

func (suite *PinServiceTestSuite) TestSetPIN_Validation() {
	for _, pin := range []string{"", "123", "12345", "12a4"} {
		err := suite.service.SetPIN(suite.ctx, suite.account.AccountID, pin)
		suite.ErrorIs(err, apperrors.ErrValidation, "pin %q", pin)
	}

	err := suite.service.SetPIN(suite.ctx, uuid.NewString(), "1234")
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *PinServiceTestSuite) TestSetPIN_ReplacesPinAndResetsAttempts() {
	suite.Require().ErrorIs(suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "4321"), apperrors.ErrInvalidPIN)

	suite.Require().NoError(suite.service.SetPIN(suite.ctx, suite.account.AccountID, "4321"))
	suite.NoError(suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "4321"))
	suite.ErrorIs(suite.service.VerifyPIN(suite.ctx, suite.account.AccountID, "1234"), apperrors.ErrInvalidPIN)

	stored, err := suite.store.FindPinByAccountID(suite.ctx, suite.account.AccountID)
	suite.Require().NoError(err)
	suite.Equal(1, stored.FailedAttempts)
}
