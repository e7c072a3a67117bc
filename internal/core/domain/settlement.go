package domain

import "github.com/shopspring/decimal"

// Settlement is the pair of entries produced by settling an investment.
type Settlement struct {
	InvestmentID   string
	InvestorEntry  Entry
	DeveloperEntry Entry
}

// DividendInput describes a dividend to be priced by a DividendPolicy.
type DividendInput struct {
	DividendID       string
	InvestorID       string
	InvestmentID     string
	InvestmentAmount decimal.Decimal
	Type             string
}
