package models

// Category represents a user-defined label for classifying transactions
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null;size:64" json:"name"`
}
