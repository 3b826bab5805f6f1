package services

import (
	"context"

	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// summaryService builds read-only reports.
type summaryService struct {
	profiles     *repository.Profiles
	categories   *repository.Categories
	transactions *repository.Transactions
	ledger       *ledger.Ledger
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(profiles *repository.Profiles, categories *repository.Categories, transactions *repository.Transactions, l *ledger.Ledger) SummaryServicer {
	return &summaryService{profiles: profiles, categories: categories, transactions: transactions, ledger: l}
}

// GetSummary returns every profile's balance and every category's running
// total. The three reads run concurrently and are not a single snapshot.
func (s *summaryService) GetSummary(ctx context.Context, ownerID string) (*Summary, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	var (
		profiles     []models.Profile
		categories   []models.Category
		transactions []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.FindAllByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.FindAllByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.FindAllByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Total:      decimal.Zero,
		Profiles:   make([]ProfileSummary, 0, len(profiles)),
		Categories: make([]CategorySummary, 0, len(categories)),
	}
	for _, p := range profiles {
		summary.Total = summary.Total.Add(p.Balance)
		summary.Profiles = append(summary.Profiles, ProfileSummary{ProfileID: p.ID, Name: p.Name, Balance: p.Balance})
	}

	totals := make(map[string]*CategorySummary, len(categories))
	for _, c := range categories {
		totals[c.ID] = &CategorySummary{CategoryID: c.ID, Name: c.Name, Total: decimal.Zero}
	}
	for _, tx := range transactions {
		// A category created or deleted between the reads is skipped.
		if cs, ok := totals[tx.CategoryID]; ok {
			cs.Total = cs.Total.Add(tx.Balance)
			cs.TransactionCount++
		}
	}
	for _, c := range categories {
		summary.Categories = append(summary.Categories, *totals[c.ID])
	}

	return summary, nil
}

// CheckLedger reports profiles whose stored balance disagrees with their
// transactions.
func (s *summaryService) CheckLedger(ctx context.Context, ownerID string) ([]ledger.Discrepancy, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.ledger.Check(ctx, ownerID)
}
