package services

import (
	"context"
	"time"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
	"pocketledger/internal/repository"
)

// transactionService handles transaction-related business logic. Every
// write goes through the ledger.
type transactionService struct {
	transactions *repository.Transactions
	ledger       *ledger.Ledger
	publisher    events.Publisher
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(transactions *repository.Transactions, l *ledger.Ledger, publisher events.Publisher) TransactionServicer {
	return &transactionService{transactions: transactions, ledger: l, publisher: publisher}
}

func (s *transactionService) prepare(ownerID string, entry *ledger.Entry) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkDescription(entry.Description); err != nil {
		return err
	}
	if err := checkAmount("amount", entry.Balance); err != nil {
		return err
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	return nil
}

// CreateTransaction records a transaction and updates its profile's balance.
func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, entry ledger.Entry) (*models.Transaction, error) {
	if err := s.prepare(ownerID, &entry); err != nil {
		return nil, err
	}

	res, err := s.ledger.AddTransaction(ctx, ownerID, entry)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, eventFor(events.TransactionCreated, ownerID, res.Transaction.ID, res))
	return res.Transaction, nil
}

// GetTransactions returns a page of the owner's transactions with their
// profile and category resolved.
func (s *transactionService) GetTransactions(ctx context.Context, ownerID string, filter repository.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionDetail], error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.transactions.FindPage(ctx, ownerID, filter, page)
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.TransactionDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.transactions.FindByIDWithReferences(ctx, ownerID, transactionID)
}

// UpdateTransaction replaces a transaction's fields and rebalances the
// affected profiles.
func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, entry ledger.Entry) (*models.Transaction, error) {
	if err := s.prepare(ownerID, &entry); err != nil {
		return nil, err
	}

	res, err := s.ledger.EditTransaction(ctx, ownerID, transactionID, entry)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, eventFor(events.TransactionUpdated, ownerID, res.Transaction.ID, res))
	return res.Transaction, nil
}

// DeleteTransaction removes a transaction and reverses it on its profile.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}

	res, err := s.ledger.DeleteTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, eventFor(events.TransactionDeleted, ownerID, transactionID, res))
	return nil
}
