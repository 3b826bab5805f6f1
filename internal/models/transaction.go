package models

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo database

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a signed monetary entry against one profile and one
// category. A positive Balance is a credit, a negative one a debit.
//
// ProfileID and CategoryID are bare references; use TransactionDetail when
// the referenced entities are needed.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index;index:idx_transactions_user_profile,priority:1;index:idx_transactions_user_category,priority:1" json:"user_id"`
	ProfileID   string          `gorm:"type:uuid;not null;index:idx_transactions_user_profile,priority:2" json:"profile_id"`
	CategoryID  string          `gorm:"type:uuid;not null;index:idx_transactions_user_category,priority:2" json:"category_id"`
	Description string          `gorm:"size:64;not null;default:''" json:"description"`
	Balance     decimal.Decimal `gorm:"type:text;not null" json:"balance"`
	Date        time.Time       `gorm:"not null" json:"date"`
	TimeZone    string          `gorm:"size:64;not null;default:'UTC'" json:"time_zone"`
}

// BeforeSave records the zone of Date so it survives the round trip through
// the store, which only keeps the instant. Dates are stored in UTC so they
// sort the same on every driver.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.TimeZone = ZoneName(t.Date)
	t.Date = t.Date.UTC()
	return nil
}

// AfterSave puts Date back into its recorded zone.
func (t *Transaction) AfterSave(tx *gorm.DB) error {
	t.Date = t.Date.In(LoadZone(t.TimeZone))
	return nil
}

// AfterFind restores Date into the zone it was recorded in.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Date = t.Date.In(LoadZone(t.TimeZone))
	return nil
}

// TransactionDetail is a transaction with its profile and category resolved.
type TransactionDetail struct {
	Transaction
	Profile  Profile  `gorm:"foreignKey:ProfileID" json:"profile"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

// TableName maps TransactionDetail onto the transactions table.
func (TransactionDetail) TableName() string {
	return "transactions"
}

// ZoneName returns the IANA name of t's location, or its fixed offset as
// "+hh:mm" when the location has no portable name.
func ZoneName(t time.Time) string {
	name := t.Location().String()
	if name != "" && name != "Local" {
		return name
	}
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}

// LoadZone is the inverse of ZoneName. Unknown names resolve to UTC.
func LoadZone(name string) *time.Location {
	if len(name) == 6 && (name[0] == '+' || name[0] == '-') {
		var hours, minutes int
		if _, err := fmt.Sscanf(name[1:], "%02d:%02d", &hours, &minutes); err == nil {
			offset := hours*3600 + minutes*60
			if name[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(name, offset)
		}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
