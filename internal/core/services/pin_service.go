package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/utils"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// pinService implements the PinSvc interface
type pinService struct {
	BaseService
	pinRepo portsrepo.PinRepositoryFacade
	ledger  portssvc.LedgerSvcFacade

	maxAttempts  int
	lockDuration time.Duration
	hashCost     int
	now          func() time.Time
}

// PinOption is a functional option for configuring the PIN service
type PinOption func(*pinService)

// WithPinPolicy sets how many consecutive failures lock the account, and for how long.
func WithPinPolicy(maxAttempts int, lockDuration time.Duration) PinOption {
	return func(s *pinService) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if lockDuration > 0 {
			s.lockDuration = lockDuration
		}
	}
}

// WithPinHashCost sets the bcrypt cost; 0 means bcrypt.DefaultCost.
func WithPinHashCost(cost int) PinOption {
	return func(s *pinService) {
		s.hashCost = cost
	}
}

// WithPinClock replaces time.Now, for tests.
func WithPinClock(now func() time.Time) PinOption {
	return func(s *pinService) {
		s.now = now
	}
}

// NewPinService creates a new PIN service.
func NewPinService(pinRepo portsrepo.PinRepositoryFacade, ledger portssvc.LedgerSvcFacade, options ...PinOption) portssvc.PinSvc {
	svc := &pinService{
		pinRepo:      pinRepo,
		ledger:       ledger,
		maxAttempts:  3,
		lockDuration: time.Hour,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PinSvc = (*pinService)(nil)

func (s *pinService) SetPIN(ctx context.Context, accountID string, pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be exactly 4 digits", apperrors.ErrValidation)
	}

	hash, err := utils.HashSecret(pin, s.hashCost)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash PIN", slog.String("account_id", accountID))
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to hash PIN", fmt.Errorf("%w: %w", apperrors.ErrInternal, err))
	}

	now := s.now()
	err = s.pinRepo.SavePin(ctx, domain.AccountPin{
		AccountID:  accountID,
		PinHash:    hash,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		err = asLedgerError(err)
		s.LogFailure(ctx, err, "Failed to save PIN", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Transaction PIN set", slog.String("account_id", accountID))
	return nil
}

func (s *pinService) VerifyPIN(ctx context.Context, accountID string, pin string) error {
	stored, err := s.pinRepo.FindPinByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &apperrors.PINError{Message: "no transaction PIN set"}
		}
		return asLedgerError(err)
	}

	if utils.CheckSecretHash(pin, stored.PinHash) {
		if stored.FailedAttempts > 0 {
			if err := s.pinRepo.ResetFailedAttempts(ctx, accountID, s.now()); err != nil {
				return asLedgerError(err)
			}
		}
		return nil
	}

	now := s.now()
	attempts, err := s.pinRepo.RecordFailedAttempt(ctx, accountID, now)
	if err != nil {
		return asLedgerError(err)
	}
	logAttrs := []any{slog.String("account_id", accountID), slog.Int("failed_attempts", attempts)}

	if attempts < s.maxAttempts {
		remaining := s.maxAttempts - attempts
		pinErr := &apperrors.PINError{Message: "incorrect transaction PIN", AttemptsRemaining: &remaining}
		s.LogWarn(ctx, pinErr, "PIN verification failed", logAttrs...)
		return pinErr
	}

	until := now.Add(s.lockDuration)
	pinErr := &apperrors.PINError{Message: "too many incorrect PIN attempts", LockedUntil: &until}

	acc, err := s.ledger.GetAccount(ctx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load account after PIN failures", logAttrs...)
		return err
	}
	if acc.IsSuspended() {
		// A suspension outranks the temporary lock; the failure still counts.
		pinErr.LockedUntil = nil
	} else if _, err := s.ledger.SetAccountStatus(ctx, accountID, domain.AccountStatusLocked, &until); err != nil {
		s.LogFailure(ctx, err, "Failed to lock account after PIN failures", logAttrs...)
		return err
	}
	if err := s.pinRepo.ResetFailedAttempts(ctx, accountID, now); err != nil {
		s.LogError(ctx, err, "Failed to reset PIN attempts after lockout", logAttrs...)
	}

	s.LogWarn(ctx, pinErr, "Account locked after PIN failures", logAttrs...)
	return pinErr
}
