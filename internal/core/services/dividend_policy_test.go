package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRateDividendPolicy(t *testing.T) {
	policy := services.NewFixedRateDividendPolicy(dec("1.25"), 2)

	tests := []struct {
		name     string
		invested string
		want     string
		wantErr  error
	}{
		{"whole amount", "1000", "12.50", nil},
		{"rounds half up", "10.20", "0.13", nil},
		{"rounds down", "10.16", "0.13", nil},
		{"rounds to zero", "0.10", "", apperrors.ErrInvalidAmount},
		{"zero investment", "0", "", apperrors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Compute(context.Background(), domain.DividendInput{InvestmentAmount: dec(tt.invested)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got.String())
		})
	}
}
