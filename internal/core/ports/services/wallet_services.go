package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/dto"
)

// WalletReaderSvc defines owner-facing reads.
type WalletReaderSvc interface {
	// GetWallet returns the user's wallet of the given type, creating it on first access.
	GetWallet(ctx context.Context, userID string, walletType domain.WalletType) (*domain.Wallet, error)

	// ListWalletEntries lists the wallet's entries.
	ListWalletEntries(ctx context.Context, userID string, walletType domain.WalletType, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// WalletOperationSvc defines owner-initiated money movements.
type WalletOperationSvc interface {
	// Deposit credits the investor wallet with funds confirmed by a payment provider.
	Deposit(ctx context.Context, userID string, req dto.DepositRequest) (*domain.Entry, error)

	// Withdraw debits the wallet. Developer wallets require the transaction PIN.
	Withdraw(ctx context.Context, userID string, walletType domain.WalletType, req dto.WithdrawRequest) (*domain.Entry, error)

	// SetPIN sets the developer wallet's transaction PIN.
	SetPIN(ctx context.Context, userID string, req dto.SetPINRequest) error
}

// WalletAdminSvc defines platform-initiated operations.
type WalletAdminSvc interface {
	// SettleInvestment moves an approved investment from the investor to the developer wallet.
	SettleInvestment(ctx context.Context, investmentID string, req dto.SettleInvestmentRequest) (*domain.Settlement, error)

	// PayDividend credits the investor wallet with the amount from the dividend policy.
	PayDividend(ctx context.Context, dividendID string, req dto.PayDividendRequest) (*domain.Entry, error)

	// ReverseEntry reverses a completed entry.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest) (*domain.Entry, error)

	// UpdateAccountStatus suspends, locks or reactivates an account.
	UpdateAccountStatus(ctx context.Context, accountID string, req dto.UpdateAccountStatusRequest) (*domain.Account, error)

	// ReplayAccount audits an account's cached balance against its entries.
	ReplayAccount(ctx context.Context, accountID string) (*domain.ReplayResult, error)
}

// WalletSvcFacade combines all wallet service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletOperationSvc
	WalletAdminSvc
}
