package models

// User represents the user model in the database. Usernames are unique and
// compared case-sensitively.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
