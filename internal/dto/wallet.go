package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest defines a deposit confirmed by a payment provider.
type DepositRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required,money"`
	PaymentMethod    string          `json:"paymentMethod" binding:"required,oneof=momo card bank_transfer"`
	PaymentReference string          `json:"paymentReference" binding:"omitempty,max=255"`
	Currency         string          `json:"currency" binding:"omitempty,len=3,uppercase"` // Optional, defaults to the platform currency
	IdempotencyKey   string          `json:"-"`                                            // Taken from the Idempotency-Key header
}

// WithdrawRequest defines a withdrawal to an external account.
type WithdrawRequest struct {
	Amount             decimal.Decimal `json:"amount" binding:"required,money"`
	PIN                string          `json:"pin" binding:"omitempty,len=4,numeric"` // Required for developer wallets
	WithdrawalAccount  string          `json:"withdrawalAccount" binding:"required,max=100"`
	WithdrawalProvider string          `json:"withdrawalProvider" binding:"required,oneof=MTN Vodafone AirtelTigo Bank"`
	Currency           string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	IdempotencyKey     string          `json:"-"`
}

// SetPINRequest defines a new transaction PIN.
type SetPINRequest struct {
	PIN        string `json:"pin" binding:"required,len=4,numeric"`
	ConfirmPIN string `json:"confirmPin" binding:"required,eqfield=PIN"`
}

// SettleInvestmentRequest defines an approved investment to settle.
type SettleInvestmentRequest struct {
	InvestorID  string          `json:"investorID" binding:"required"`
	DeveloperID string          `json:"developerID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,money"`
	Currency    string          `json:"currency" binding:"omitempty,len=3,uppercase"`
}

// PayDividendRequest defines a dividend to pay out.
type PayDividendRequest struct {
	InvestorID       string          `json:"investorID" binding:"required"`
	InvestmentID     string          `json:"investmentID"`
	InvestmentAmount decimal.Decimal `json:"investmentAmount" binding:"required,money"`
	Currency         string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	Type             string          `json:"type" binding:"omitempty,oneof=quarterly annual special"`
}

// ReverseEntryRequest defines why an entry is being reversed.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// UpdateAccountStatusRequest defines an administrative status change.
type UpdateAccountStatusRequest struct {
	Status      domain.AccountStatus `json:"status" binding:"required,oneof=active suspended locked"`
	LockedUntil *time.Time           `json:"lockedUntil"` // Optional, only for locked; nil locks indefinitely
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	AccountID    string               `json:"accountID"`
	WalletType   domain.WalletType    `json:"walletType"`
	CurrencyCode string               `json:"currencyCode"`
	Balance      decimal.Decimal      `json:"balance"`
	Status       domain.AccountStatus `json:"status"`
	LockedUntil  *time.Time           `json:"lockedUntil,omitempty"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet, now time.Time) WalletResponse {
	resp := WalletResponse{
		AccountID:    w.Account.AccountID,
		WalletType:   w.Type,
		CurrencyCode: w.Account.CurrencyCode,
		Balance:      w.Account.Balance,
		Status:       w.Account.EffectiveStatus(now),
		UpdatedAt:    w.Account.UpdatedAt,
	}
	if resp.Status == domain.AccountStatusLocked {
		resp.LockedUntil = w.Account.LockedUntil
	}
	return resp
}

// AccountResponse defines the data returned for an account on admin routes.
type AccountResponse struct {
	AccountID    string               `json:"accountID"`
	OwnerRef     string               `json:"ownerRef"`
	CurrencyCode string               `json:"currencyCode"`
	Balance      decimal.Decimal      `json:"balance"`
	Status       domain.AccountStatus `json:"status"`
	LockedUntil  *time.Time           `json:"lockedUntil,omitempty"`
	EntryCount   int64                `json:"entryCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		OwnerRef:     acc.OwnerRef,
		CurrencyCode: acc.CurrencyCode,
		Balance:      acc.Balance,
		Status:       acc.Status,
		LockedUntil:  acc.LockedUntil,
		EntryCount:   acc.EntryCount,
		CreatedAt:    acc.CreatedAt,
		UpdatedAt:    acc.UpdatedAt,
	}
}

// SettlementResponse defines the entries produced by an investment settlement.
type SettlementResponse struct {
	InvestmentID   string        `json:"investmentID"`
	InvestorEntry  EntryResponse `json:"investorEntry"`
	DeveloperEntry EntryResponse `json:"developerEntry"`
}

// ToSettlementResponse converts a domain.Settlement to SettlementResponse DTO
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		InvestmentID:   s.InvestmentID,
		InvestorEntry:  ToEntryResponse(&s.InvestorEntry),
		DeveloperEntry: ToEntryResponse(&s.DeveloperEntry),
	}
}

// ReplayResponse defines the result of a balance replay audit.
type ReplayResponse struct {
	AccountID       string          `json:"accountID"`
	CachedBalance   decimal.Decimal `json:"cachedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	PostedEntries   int64           `json:"postedEntries"`
	Consistent      bool            `json:"consistent"`
}

// ToReplayResponse converts a domain.ReplayResult to ReplayResponse DTO
func ToReplayResponse(r *domain.ReplayResult) ReplayResponse {
	return ReplayResponse{
		AccountID:       r.AccountID,
		CachedBalance:   r.CachedBalance,
		ReplayedBalance: r.ReplayedBalance,
		PostedEntries:   r.PostedEntries,
		Consistent:      r.Consistent,
	}
}
