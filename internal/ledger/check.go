package ledger

import (
	"context"
	"sort"

	"pocketledger/internal/database"
	"pocketledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discrepancy is a profile whose stored balance disagrees with its
// transactions.
type Discrepancy struct {
	ProfileID string          `json:"profile_id"`
	Name      string          `json:"name"`
	Stored    decimal.Decimal `json:"stored"`
	Expected  decimal.Decimal `json:"expected"`
}

// Check recomputes every balance of the owner from its opening balance and
// transactions and reports the profiles that disagree, ordered by id. It
// reads one consistent snapshot and writes nothing.
func (l *Ledger) Check(ctx context.Context, ownerID string) ([]Discrepancy, error) {
	var (
		profiles []models.Profile
		txs      []models.Transaction
	)
	err := database.Atomic(ctx, l.db, func(tx *gorm.DB) error {
		var err error
		if profiles, err = l.profiles.WithTx(tx).FindAllByOwner(ctx, ownerID); err != nil {
			return err
		}
		txs, err = l.transactions.WithTx(tx).FindAllByOwner(ctx, ownerID)
		return err
	}, database.Snapshot)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(profiles))
	for _, tx := range txs {
		sums[tx.ProfileID] = sums[tx.ProfileID].Add(tx.Balance)
	}

	discrepancies := []Discrepancy{}
	for _, p := range profiles {
		expected := p.OpeningBalance.Add(sums[p.ID])
		if !p.Balance.Equal(expected) {
			discrepancies = append(discrepancies, Discrepancy{
				ProfileID: p.ID,
				Name:      p.Name,
				Stored:    p.Balance,
				Expected:  expected,
			})
		}
	}
	sort.Slice(discrepancies, func(i, j int) bool { return discrepancies[i].ProfileID < discrepancies[j].ProfileID })
	return discrepancies, nil
}
