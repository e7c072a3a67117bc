package services

import (
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil, in which case wallet reads always go to the ledger.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.BalanceCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger comes first; everything else is an adapter over it
	container.Ledger = NewLedgerService(
		repos,
		WithAmountScale(cfg.LedgerAmountScale),
		WithPendingTTL(cfg.LedgerPendingTTL),
	)

	container.Pin = NewPinService(
		repos.PinRepo,
		container.Ledger,
		WithPinPolicy(cfg.PinMaxAttempts, cfg.PinLockDuration),
	)

	walletOpts := []WalletOption{
		WithDividendPolicy(NewFixedRateDividendPolicy(cfg.DividendQuarterlyRate, cfg.LedgerAmountScale)),
		WithWalletRules(WalletRules{
			DefaultCurrency:     cfg.DefaultCurrency,
			DepositMin:          cfg.DepositMinAmount,
			InvestorWithdrawMin: cfg.InvestorWithdrawMinAmount,
			WithdrawMin:         cfg.WithdrawMinAmount,
			WithdrawMax:         cfg.WithdrawMaxAmount,
		}),
	}
	if cache != nil {
		walletOpts = append(walletOpts, WithBalanceCache(cache))
	}
	container.Wallet = NewWalletService(container.Ledger, container.Pin, walletOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
	_ portssvc.WalletSvcFacade = (*walletService)(nil)
	_ portssvc.PinSvc          = (*pinService)(nil)
)
