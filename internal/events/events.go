// Package events announces committed ledger changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pocketledger/internal/uuid"

	"github.com/shopspring/decimal"
)

// Event types. They double as AMQP routing keys.
const (
	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
	ProfileDeleted     = "profile.deleted"
	CategoryDeleted    = "category.deleted"
)

// Balance is a profile balance as of the event.
type Balance struct {
	ProfileID string          `json:"profile_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// Event describes one committed ledger operation.
type Event struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	UserID              string    `json:"user_id"`
	ResourceID          string    `json:"resource_id"`
	Balances            []Balance `json:"balances"`
	RemovedTransactions int64     `json:"removed_transactions,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// New creates an event of the given type stamped with a fresh id and the
// current time.
func New(eventType, userID, resourceID string, balances []Balance) Event {
	if balances == nil {
		balances = []Balance{}
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		ResourceID: resourceID,
		Balances:   balances,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events. Publishing happens after the change has
// committed, so a failed publish never undoes the change.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

// Fanout delivers every event to each of its publishers. A failing publisher
// does not stop delivery to the others.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Publisher.
func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResourceType is the kind of entity an event type is about.
func ResourceType(eventType string) string {
	kind, _, _ := strings.Cut(eventType, ".")
	return kind
}
