package services

import (
	"context"
	"encoding/json"

	"pocketledger/internal/events"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"

	"gorm.io/gorm"
)

// auditService handles audit log recording. Request-level entries come
// from the handlers through Log; the balance effect of every committed
// ledger operation arrives as an event through Publish.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// NewLedgerAuditor returns a publisher that records each ledger event in the
// audit log with the resulting profile balances.
func NewLedgerAuditor(db *gorm.DB) events.Publisher {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if changes != nil {
		entry.Changes = marshalChanges(action, changes)
	}
	if err := s.create(ctx, entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// Publish implements events.Publisher.
func (s *auditService) Publish(ctx context.Context, event events.Event) error {
	changes := map[string]interface{}{"balances": event.Balances}
	if event.RemovedTransactions > 0 {
		changes["removed_transactions"] = event.RemovedTransactions
	}
	return s.create(ctx, &models.AuditLog{
		UserID:       event.UserID,
		Action:       event.Type,
		ResourceType: events.ResourceType(event.Type),
		ResourceID:   event.ResourceID,
		Changes:      marshalChanges(event.Type, changes),
	})
}

// Close implements events.Publisher.
func (s *auditService) Close() error { return nil }

func (s *auditService) create(ctx context.Context, entry *models.AuditLog) error {
	// The request may already be cancelled once the response is written.
	return s.db.WithContext(context.WithoutCancel(ctx)).Create(entry).Error
}

func marshalChanges(action string, changes map[string]interface{}) string {
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
