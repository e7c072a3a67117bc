package domain

import "fmt"

// WalletType is the role a user's wallet serves on the platform.
type WalletType string

const (
	WalletTypeInvestor  WalletType = "investor"
	WalletTypeDeveloper WalletType = "developer"
)

// IsValid reports whether t is a known wallet type.
func (t WalletType) IsValid() bool {
	return t == WalletTypeInvestor || t == WalletTypeDeveloper
}

// OwnerRef builds the ledger owner reference for a user's wallet.
func (t WalletType) OwnerRef(userID string) string {
	return fmt.Sprintf("%s:%s", t, userID)
}

// Wallet is an account as seen by its owner.
type Wallet struct {
	Type    WalletType
	UserID  string
	Account Account
}
