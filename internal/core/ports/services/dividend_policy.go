package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DividendPolicy decides how much a dividend pays. The ledger only ever sees
// the resulting credit.
type DividendPolicy interface {
	Compute(ctx context.Context, input domain.DividendInput) (decimal.Decimal, error)
}
