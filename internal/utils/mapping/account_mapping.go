package mapping

import (
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		OwnerRef:     d.OwnerRef,
		CurrencyCode: d.CurrencyCode,
		Balance:      d.Balance,
		Status:       string(d.Status),
		LockedUntil:  d.LockedUntil,
		EntryCount:   d.EntryCount,
		Timestamps:   ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		OwnerRef:     m.OwnerRef,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		Status:       domain.AccountStatus(m.Status),
		LockedUntil:  m.LockedUntil,
		EntryCount:   m.EntryCount,
		Timestamps:   ToDomainTimestamps(m.Timestamps),
	}
}
