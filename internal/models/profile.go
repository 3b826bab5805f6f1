package models

import "github.com/shopspring/decimal"

// Profile is a named money pool with a running balance.
//
// Balance is derived but stored: it always equals OpeningBalance plus the sum
// of the balances of every Transaction referencing the profile. Only the
// ledger writes it.
type Profile struct {
	Base
	UserID         string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string          `gorm:"not null;size:64" json:"name"`
	Description    string          `gorm:"size:64;not null;default:''" json:"description"`
	OpeningBalance decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"opening_balance"`
	Balance        decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"balance"`
}
