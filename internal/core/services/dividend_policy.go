package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// fixedRateDividendPolicy pays a fixed percentage of the invested amount.
type fixedRateDividendPolicy struct {
	ratePercent decimal.Decimal
	scale       int32
}

// NewFixedRateDividendPolicy returns a policy paying ratePercent of the
// investment, rounded half away from zero to scale digits.
func NewFixedRateDividendPolicy(ratePercent decimal.Decimal, scale int32) portssvc.DividendPolicy {
	return &fixedRateDividendPolicy{ratePercent: ratePercent, scale: scale}
}

func (p *fixedRateDividendPolicy) Compute(_ context.Context, input domain.DividendInput) (decimal.Decimal, error) {
	if !input.InvestmentAmount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: investment amount must be positive", apperrors.ErrInvalidAmount)
	}
	amount := input.InvestmentAmount.Mul(p.ratePercent).Div(hundred).Round(p.scale)
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: dividend on %s rounds to zero", apperrors.ErrInvalidAmount, input.InvestmentAmount.String())
	}
	return amount, nil
}
