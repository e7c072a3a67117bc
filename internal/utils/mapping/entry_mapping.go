package mapping

import (
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry.
// A nil metadata map becomes an empty one since the column is NOT NULL.
func ToModelEntry(d domain.Entry) models.Entry {
	metadata := d.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	var failureReason *string
	if d.FailureReason != "" {
		reason := d.FailureReason
		failureReason = &reason
	}
	return models.Entry{
		EntryID:         d.EntryID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		BalanceAfter:    d.BalanceAfter,
		Kind:            string(d.Kind),
		IdempotencyKey:  d.IdempotencyKey,
		Status:          string(d.Status),
		Sequence:        d.Sequence,
		ReversesEntryID: d.ReversesEntryID,
		FailureReason:   failureReason,
		Metadata:        metadata,
		Timestamps:      ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	var failureReason string
	if m.FailureReason != nil {
		failureReason = *m.FailureReason
	}
	return domain.Entry{
		EntryID:         m.EntryID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		Kind:            domain.EntryKind(m.Kind),
		IdempotencyKey:  m.IdempotencyKey,
		Status:          domain.EntryStatus(m.Status),
		Sequence:        m.Sequence,
		ReversesEntryID: m.ReversesEntryID,
		FailureReason:   failureReason,
		Metadata:        m.Metadata,
		Timestamps:      ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainEntries converts a slice of model Entries to domain Entries
func ToDomainEntries(ms []models.Entry) []domain.Entry {
	entries := make([]domain.Entry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainEntry(m)
	}
	return entries
}
