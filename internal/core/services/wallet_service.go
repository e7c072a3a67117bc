package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletRules are the platform limits applied before anything reaches the ledger.
type WalletRules struct {
	DefaultCurrency string
	DepositMin      decimal.Decimal
	// Investor withdrawals only have a floor. The developer limits apply to
	// PIN-protected withdrawals.
	InvestorWithdrawMin decimal.Decimal
	WithdrawMin         decimal.Decimal
	WithdrawMax         decimal.Decimal
}

// DefaultWalletRules returns the limits used when none are configured.
func DefaultWalletRules() WalletRules {
	return WalletRules{
		DefaultCurrency:     "GHS",
		DepositMin:          decimal.NewFromInt(1),
		InvestorWithdrawMin: decimal.NewFromInt(1),
		WithdrawMin:         decimal.NewFromInt(10),
		WithdrawMax:         decimal.NewFromInt(100000),
	}
}

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	ledger    portssvc.LedgerSvcFacade
	pins      portssvc.PinSvc
	cache     portsrepo.BalanceCache
	dividends portssvc.DividendPolicy
	rules     WalletRules
	now       func() time.Time
}

// WalletOption is a functional option for configuring the wallet service
type WalletOption func(*walletService)

// WithBalanceCache sets the cache used for wallet display reads.
func WithBalanceCache(cache portsrepo.BalanceCache) WalletOption {
	return func(s *walletService) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithDividendPolicy sets how dividend amounts are computed.
func WithDividendPolicy(policy portssvc.DividendPolicy) WalletOption {
	return func(s *walletService) {
		s.dividends = policy
	}
}

// WithWalletRules sets the deposit and withdrawal limits.
func WithWalletRules(rules WalletRules) WalletOption {
	return func(s *walletService) {
		s.rules = rules
	}
}

// WithWalletClock replaces time.Now, for tests.
func WithWalletClock(now func() time.Time) WalletOption {
	return func(s *walletService) {
		s.now = now
	}
}

// NewWalletService creates the wallet adapter over the ledger.
func NewWalletService(ledger portssvc.LedgerSvcFacade, pins portssvc.PinSvc, options ...WalletOption) portssvc.WalletSvcFacade {
	svc := &walletService{
		ledger:    ledger,
		pins:      pins,
		cache:     noopBalanceCache{},
		dividends: NewFixedRateDividendPolicy(decimal.RequireFromString("1.25"), 2),
		rules:     DefaultWalletRules(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) currency(requested string) string {
	if requested != "" {
		return requested
	}
	return s.rules.DefaultCurrency
}

// account resolves a wallet's ledger account, creating it on first use.
// The posting path always reads the ledger, never the cache.
func (s *walletService) account(ctx context.Context, userID string, walletType domain.WalletType, currency string) (*domain.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if !walletType.IsValid() {
		return nil, fmt.Errorf("%w: unknown wallet type %q", apperrors.ErrValidation, walletType)
	}
	return s.ledger.EnsureAccount(ctx, walletType.OwnerRef(userID), s.currency(currency))
}

func (s *walletService) invalidate(ctx context.Context, accounts ...domain.Account) {
	if err := s.cache.Invalidate(ctx, accounts...); err != nil {
		s.LogError(ctx, err, "Failed to invalidate balance cache")
	}
}

func (s *walletService) invalidateByID(ctx context.Context, accountID string) {
	acc, err := s.ledger.GetAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account for cache invalidation", slog.String("account_id", accountID))
		return
	}
	s.invalidate(ctx, *acc)
}

func (s *walletService) GetWallet(ctx context.Context, userID string, walletType domain.WalletType) (*domain.Wallet, error) {
	if !walletType.IsValid() {
		return nil, fmt.Errorf("%w: unknown wallet type %q", apperrors.ErrValidation, walletType)
	}
	ownerRef := walletType.OwnerRef(userID)
	currency := s.currency("")

	cached, ok, err := s.cache.GetAccount(ctx, ownerRef, currency)
	if err != nil {
		s.LogWarn(ctx, err, "Balance cache read failed", slog.String("owner_ref", ownerRef))
	}
	if ok {
		return &domain.Wallet{Type: walletType, UserID: userID, Account: *cached}, nil
	}

	acc, err := s.account(ctx, userID, walletType, currency)
	if err != nil {
		return nil, err
	}
	// A post committing between the read above and this write leaves a stale
	// snapshot; BALANCE_CACHE_TTL bounds how long it is served.
	if err := s.cache.SetAccount(ctx, *acc); err != nil {
		s.LogWarn(ctx, err, "Balance cache write failed", slog.String("owner_ref", ownerRef))
	}
	return &domain.Wallet{Type: walletType, UserID: userID, Account: *acc}, nil
}

func (s *walletService) ListWalletEntries(ctx context.Context, userID string, walletType domain.WalletType, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	acc, err := s.account(ctx, userID, walletType, "")
	if err != nil {
		return nil, err
	}
	page, err := s.ledger.GetEntries(ctx, acc.AccountID, params.ToEntryFilter())
	if err != nil {
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToListEntryResponse(page.Entries),
		NextToken: page.NextToken,
	}, nil
}

func requireIdempotencyKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: idempotency key is required", apperrors.ErrValidation)
	}
	return nil
}

func (s *walletService) Deposit(ctx context.Context, userID string, req dto.DepositRequest) (*domain.Entry, error) {
	if err := requireIdempotencyKey(req.IdempotencyKey); err != nil {
		return nil, err
	}
	if req.Amount.LessThan(s.rules.DepositMin) {
		return nil, fmt.Errorf("%w: minimum deposit is %s", apperrors.ErrInvalidAmount, s.rules.DepositMin.String())
	}

	acc, err := s.account(ctx, userID, domain.WalletTypeInvestor, req.Currency)
	if err != nil {
		return nil, err
	}

	entry, err := s.ledger.Credit(ctx, domain.OperationRequest{
		AccountID:      acc.AccountID,
		Amount:         req.Amount,
		Kind:           domain.EntryKindDeposit,
		IdempotencyKey: "deposit:" + req.IdempotencyKey,
		Metadata: map[string]any{
			"payment_method":    req.PaymentMethod,
			"payment_reference": req.PaymentReference,
		},
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *acc)
	return entry, nil
}

func (s *walletService) checkWithdrawLimits(walletType domain.WalletType, amount decimal.Decimal) error {
	if walletType != domain.WalletTypeDeveloper {
		if amount.LessThan(s.rules.InvestorWithdrawMin) {
			return fmt.Errorf("%w: minimum withdrawal is %s", apperrors.ErrInvalidAmount, s.rules.InvestorWithdrawMin.String())
		}
		return nil
	}
	if amount.LessThan(s.rules.WithdrawMin) || amount.GreaterThan(s.rules.WithdrawMax) {
		return fmt.Errorf("%w: withdrawals must be between %s and %s", apperrors.ErrInvalidAmount,
			s.rules.WithdrawMin.String(), s.rules.WithdrawMax.String())
	}
	return nil
}

func (s *walletService) Withdraw(ctx context.Context, userID string, walletType domain.WalletType, req dto.WithdrawRequest) (*domain.Entry, error) {
	if err := requireIdempotencyKey(req.IdempotencyKey); err != nil {
		return nil, err
	}
	if err := s.checkWithdrawLimits(walletType, req.Amount); err != nil {
		return nil, err
	}

	acc, err := s.account(ctx, userID, walletType, req.Currency)
	if err != nil {
		return nil, err
	}

	if walletType == domain.WalletTypeDeveloper {
		// A locked account must not burn PIN attempts.
		if acc.IsLocked(s.now()) {
			return nil, checkAccountAccepts(*acc, req.Amount.Neg(), s.now())
		}
		if req.PIN == "" {
			return nil, &apperrors.PINError{Message: "transaction PIN is required"}
		}
		if err := s.pins.VerifyPIN(ctx, acc.AccountID, req.PIN); err != nil {
			if errors.Is(err, apperrors.ErrAccountLocked) {
				s.invalidate(ctx, *acc)
			}
			return nil, err
		}
	}

	entry, err := s.ledger.Debit(ctx, domain.OperationRequest{
		AccountID:      acc.AccountID,
		Amount:         req.Amount,
		Kind:           domain.EntryKindWithdrawal,
		IdempotencyKey: "withdraw:" + req.IdempotencyKey,
		Metadata: map[string]any{
			"withdrawal_account":  req.WithdrawalAccount,
			"withdrawal_provider": req.WithdrawalProvider,
		},
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *acc)
	return entry, nil
}

func (s *walletService) SetPIN(ctx context.Context, userID string, req dto.SetPINRequest) error {
	if req.PIN != req.ConfirmPIN {
		return fmt.Errorf("%w: PIN confirmation does not match", apperrors.ErrValidation)
	}
	acc, err := s.account(ctx, userID, domain.WalletTypeDeveloper, "")
	if err != nil {
		return err
	}
	return s.pins.SetPIN(ctx, acc.AccountID, req.PIN)
}

// InvestmentDebitKey and InvestmentCreditKey identify the two legs of a settlement.
func InvestmentDebitKey(investmentID string) string {
	return "investment:" + investmentID + ":debit"
}

func InvestmentCreditKey(investmentID string) string {
	return "investment:" + investmentID + ":settle"
}

// DividendKey identifies the credit paying a dividend.
func DividendKey(dividendID string) string {
	return "dividend:" + dividendID + ":pay"
}

func (s *walletService) SettleInvestment(ctx context.Context, investmentID string, req dto.SettleInvestmentRequest) (*domain.Settlement, error) {
	if investmentID == "" {
		return nil, fmt.Errorf("%w: investment ID is required", apperrors.ErrValidation)
	}
	logAttrs := []any{slog.String("investment_id", investmentID)}

	investor, err := s.account(ctx, req.InvestorID, domain.WalletTypeInvestor, req.Currency)
	if err != nil {
		return nil, err
	}
	developer, err := s.account(ctx, req.DeveloperID, domain.WalletTypeDeveloper, req.Currency)
	if err != nil {
		return nil, err
	}

	debit, err := s.ledger.Debit(ctx, domain.OperationRequest{
		AccountID:      investor.AccountID,
		Amount:         req.Amount,
		Kind:           domain.EntryKindInvestmentDebit,
		IdempotencyKey: InvestmentDebitKey(investmentID),
		Metadata: map[string]any{
			"investment_id": investmentID,
			"developer_id":  req.DeveloperID,
		},
	})
	if err != nil {
		return nil, err
	}
	if debit.Status == domain.EntryStatusReversed {
		return nil, fmt.Errorf("%w: settlement of investment %s was rolled back", apperrors.ErrDuplicate, investmentID)
	}

	credit, err := s.ledger.Credit(ctx, domain.OperationRequest{
		AccountID:      developer.AccountID,
		Amount:         req.Amount,
		Kind:           domain.EntryKindInvestmentCredit,
		IdempotencyKey: InvestmentCreditKey(investmentID),
		Metadata: map[string]any{
			"investment_id":  investmentID,
			"investor_id":    req.InvestorID,
			"debit_entry_id": debit.EntryID,
		},
	})
	if err != nil {
		if apperrors.IsRetryable(err) {
			// The debit stays; retrying with the same investment ID finishes the settlement.
			s.invalidate(ctx, *investor)
			s.LogWarn(ctx, err, "Settlement credit deferred", logAttrs...)
			return nil, err
		}
		if _, revErr := s.ledger.Reverse(ctx, debit.EntryID, "settlement failed: "+err.Error()); revErr != nil {
			s.LogError(ctx, revErr, "Failed to roll back settlement debit", append(logAttrs, slog.String("entry_id", debit.EntryID))...)
		}
		s.invalidate(ctx, *investor)
		return nil, err
	}

	s.invalidate(ctx, *investor, *developer)
	s.LogInfo(ctx, "Investment settled", append(logAttrs,
		slog.String("debit_entry_id", debit.EntryID),
		slog.String("credit_entry_id", credit.EntryID))...)
	return &domain.Settlement{InvestmentID: investmentID, InvestorEntry: *debit, DeveloperEntry: *credit}, nil
}

func (s *walletService) PayDividend(ctx context.Context, dividendID string, req dto.PayDividendRequest) (*domain.Entry, error) {
	if dividendID == "" {
		return nil, fmt.Errorf("%w: dividend ID is required", apperrors.ErrValidation)
	}
	dividendType := req.Type
	if dividendType == "" {
		dividendType = "quarterly"
	}

	amount, err := s.dividends.Compute(ctx, domain.DividendInput{
		DividendID:       dividendID,
		InvestorID:       req.InvestorID,
		InvestmentID:     req.InvestmentID,
		InvestmentAmount: req.InvestmentAmount,
		Type:             dividendType,
	})
	if err != nil {
		return nil, err
	}

	acc, err := s.account(ctx, req.InvestorID, domain.WalletTypeInvestor, req.Currency)
	if err != nil {
		return nil, err
	}

	entry, err := s.ledger.Credit(ctx, domain.OperationRequest{
		AccountID:      acc.AccountID,
		Amount:         amount,
		Kind:           domain.EntryKindDividendCredit,
		IdempotencyKey: DividendKey(dividendID),
		Metadata: map[string]any{
			"dividend_id":       dividendID,
			"investment_id":     req.InvestmentID,
			"investment_amount": req.InvestmentAmount.String(),
			"dividend_type":     dividendType,
		},
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *acc)
	return entry, nil
}

func (s *walletService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest) (*domain.Entry, error) {
	entry, err := s.ledger.Reverse(ctx, entryID, req.Reason)
	if err != nil {
		return nil, err
	}
	s.invalidateByID(ctx, entry.AccountID)
	return entry, nil
}

func (s *walletService) UpdateAccountStatus(ctx context.Context, accountID string, req dto.UpdateAccountStatusRequest) (*domain.Account, error) {
	acc, err := s.ledger.SetAccountStatus(ctx, accountID, req.Status, req.LockedUntil)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *acc)
	return acc, nil
}

func (s *walletService) ReplayAccount(ctx context.Context, accountID string) (*domain.ReplayResult, error) {
	return s.ledger.ReplayBalance(ctx, accountID)
}

// noopBalanceCache is used when no cache is configured; every read misses.
type noopBalanceCache struct{}

func (noopBalanceCache) GetAccount(context.Context, string, string) (*domain.Account, bool, error) {
	return nil, false, nil
}

func (noopBalanceCache) SetAccount(context.Context, domain.Account) error { return nil }

func (noopBalanceCache) Invalidate(context.Context, ...domain.Account) error { return nil }
