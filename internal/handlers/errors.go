package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// lockRetryAfterSeconds is sent with 503 responses for lock timeouts.
const lockRetryAfterSeconds = "1"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error             string     `json:"error"`
	AttemptsRemaining *int       `json:"attemptsRemaining,omitempty"`
	LockedUntil       *time.Time `json:"lockedUntil,omitempty"`
	Retryable         bool       `json:"retryable,omitempty"`
}

// statusForError maps ledger and wallet failures to HTTP status codes.
// Order matters: a PIN failure that locked the account is a 423, and a
// reversal of a missing entry is a 404.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, apperrors.ErrInvalidPIN):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrIdempotencyConflict),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrOperationInProgress),
		errors.Is(err, apperrors.ErrEntryNotReversible),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrLockTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes the matching response. Internal failures
// are reported with fallbackMsg instead of the error text.
func writeError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	resp := ErrorResponse{Error: err.Error(), Retryable: apperrors.IsRetryable(err)}

	var pinErr *apperrors.PINError
	if errors.As(err, &pinErr) {
		resp.Error = pinErr.Message
		resp.LockedUntil = pinErr.LockedUntil
		if pinErr.LockedUntil == nil {
			resp.AttemptsRemaining = pinErr.AttemptsRemaining
		}
	}

	switch {
	case status >= http.StatusInternalServerError:
		if status == http.StatusServiceUnavailable {
			c.Header("Retry-After", lockRetryAfterSeconds)
			logger.Warn(fallbackMsg, slog.String("error", err.Error()))
		} else {
			logger.Error(fallbackMsg, slog.String("error", err.Error()))
		}
		resp.Error = fallbackMsg
	default:
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, resp)
}

// badRequest writes a 400 for input that failed binding.
func badRequest(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}
