package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected operation; business failures are not errors of the system.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogFailure logs storage failures at error level and everything else at warn level.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrStorageFailure) || errors.Is(err, apperrors.ErrInternal) {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogWarn(ctx, err, msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// ledgerErrors are the failures callers are expected to branch on.
var ledgerErrors = []error{
	apperrors.ErrInvalidAmount,
	apperrors.ErrInsufficientBalance,
	apperrors.ErrAccountLocked,
	apperrors.ErrAccountSuspended,
	apperrors.ErrAccountNotFound,
	apperrors.ErrOperationInProgress,
	apperrors.ErrEntryNotReversible,
	apperrors.ErrLockTimeout,
	apperrors.ErrStorageFailure,
	apperrors.ErrIdempotencyConflict,
	apperrors.ErrInvalidPIN,
	apperrors.ErrValidation,
	apperrors.ErrNotFound,
	apperrors.ErrDuplicate,
}

// asLedgerError passes typed failures through and reports anything else as a storage failure.
func asLedgerError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range ledgerErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", apperrors.ErrStorageFailure, err)
}
