package mapping

import (
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/models"
)

// ToModelAccountPin converts a domain AccountPin to a model AccountPin
func ToModelAccountPin(d domain.AccountPin) models.AccountPin {
	return models.AccountPin{
		AccountID:      d.AccountID,
		PinHash:        d.PinHash,
		FailedAttempts: d.FailedAttempts,
		Timestamps:     ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainAccountPin converts a model AccountPin to a domain AccountPin
func ToDomainAccountPin(m models.AccountPin) domain.AccountPin {
	return domain.AccountPin{
		AccountID:      m.AccountID,
		PinHash:        m.PinHash,
		FailedAttempts: m.FailedAttempts,
		Timestamps:     ToDomainTimestamps(m.Timestamps),
	}
}
