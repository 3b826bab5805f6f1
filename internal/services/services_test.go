package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/repository"
	"pocketledger/internal/testutil"

	"gorm.io/gorm"
)

var ctx = context.Background()

// recorder is an events.Publisher that keeps what it was given.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last(t *testing.T) events.Event {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatal("expected a published event")
	}
	return r.events[len(r.events)-1]
}

type stack struct {
	db           *gorm.DB
	publisher    *recorder
	users        UserServicer
	profiles     ProfileServicer
	categories   CategoryServicer
	transactions TransactionServicer
	summary      SummaryServicer
	audit        AuditServicer
}

func newStack(t *testing.T) *stack {
	t.Helper()

	db := testutil.SetupTestDB(t)
	pub := &recorder{}
	l := ledger.New(db)
	profiles := repository.NewProfiles(db)
	categories := repository.NewCategories(db)
	transactions := repository.NewTransactions(db)

	return &stack{
		db:           db,
		publisher:    pub,
		users:        NewUserService(repository.NewUsers(db), 4),
		profiles:     NewProfileService(profiles, l, pub),
		categories:   NewCategoryService(categories, l, pub),
		transactions: NewTransactionService(transactions, l, pub),
		summary:      NewSummaryService(profiles, categories, transactions, l),
		audit:        NewAuditService(db),
	}
}

var errBroker = errors.New("broker down")
