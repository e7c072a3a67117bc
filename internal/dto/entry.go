package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID         string             `json:"entryID"`
	AccountID       string             `json:"accountID"`
	Amount          decimal.Decimal    `json:"amount"`
	BalanceAfter    *decimal.Decimal   `json:"balanceAfter,omitempty"`
	Kind            domain.EntryKind   `json:"kind"`
	Status          domain.EntryStatus `json:"status"`
	Sequence        *int64             `json:"sequence,omitempty"`
	ReversesEntryID *string            `json:"reversesEntryID,omitempty"`
	FailureReason   string             `json:"failureReason,omitempty"`
	Metadata        map[string]any     `json:"metadata,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		AccountID:       e.AccountID,
		Amount:          e.Amount,
		BalanceAfter:    e.BalanceAfter,
		Kind:            e.Kind,
		Status:          e.Status,
		Sequence:        e.Sequence,
		ReversesEntryID: e.ReversesEntryID,
		FailureReason:   e.FailureReason,
		Metadata:        e.Metadata,
		CreatedAt:       e.CreatedAt,
	}
}

// ToListEntryResponse converts a slice of domain.Entry to a slice of EntryResponse DTOs
func ToListEntryResponse(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesParams defines query parameters for listing wallet entries.
type ListEntriesParams struct {
	Kinds     []string   `form:"kind"`
	Statuses  []string   `form:"status"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string    `form:"nextToken"`
}

// ToEntryFilter converts the query parameters to a domain.EntryFilter
func (p ListEntriesParams) ToEntryFilter() domain.EntryFilter {
	filter := domain.EntryFilter{
		From:      p.From,
		To:        p.To,
		Limit:     p.Limit,
		NextToken: p.NextToken,
	}
	for _, k := range p.Kinds {
		filter.Kinds = append(filter.Kinds, domain.EntryKind(k))
	}
	for _, s := range p.Statuses {
		filter.Statuses = append(filter.Statuses, domain.EntryStatus(s))
	}
	return filter
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
