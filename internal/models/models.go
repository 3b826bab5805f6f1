// Package models defines the persisted entities of pocketledger.
package models

// All returns every model with a table, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Category{},
		&Transaction{},
		&AuditLog{},
	}
}
