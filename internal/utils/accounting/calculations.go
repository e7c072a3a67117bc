package accounting

import (
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction says whether an operation adds to or takes from a balance.
type Direction int

const (
	Credit Direction = iota
	Debit
)

func (d Direction) String() string {
	if d == Debit {
		return "debit"
	}
	return "credit"
}

// ValidateAmount checks that an operation amount is strictly positive and
// carries no more than scale fractional digits.
func ValidateAmount(amount decimal.Decimal, scale int32) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Truncate(scale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), scale)
	}
	return nil
}

// SignedAmount applies the direction's sign to a positive amount.
func SignedAmount(amount decimal.Decimal, dir Direction) decimal.Decimal {
	if dir == Debit {
		return amount.Neg()
	}
	return amount
}

// ApplyToBalance returns the balance after posting a signed amount, failing
// with ErrInsufficientBalance when it would go below zero.
func ApplyToBalance(balance decimal.Decimal, signed decimal.Decimal) (decimal.Decimal, error) {
	next := balance.Add(signed)
	if next.IsNegative() {
		return balance, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientBalance, balance.String(), signed.Abs().String())
	}
	return next, nil
}

// SumPosted replays a set of entries, adding up the amounts of posted ones.
func SumPosted(entries []domain.Entry) (decimal.Decimal, int64) {
	sum := decimal.Zero
	var count int64
	for _, e := range entries {
		if e.Status.IsPosted() {
			sum = sum.Add(e.Amount)
			count++
		}
	}
	return sum, count
}
