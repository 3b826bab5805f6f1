package models

import "github.com/shopspring/decimal"

// Amounts are stored as numeric(20,4) on postgres and as text on sqlite.
const (
	AmountPrecision = 20
	AmountScale     = 4
)

// amountLimit is the smallest magnitude a stored amount cannot reach.
var amountLimit = decimal.New(1, AmountPrecision-AmountScale)

// AmountFitsScale reports whether d has at most AmountScale fractional digits.
func AmountFitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// AmountInRange reports whether d fits in the integer digits of a stored amount.
func AmountInRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(amountLimit)
}

// AmountLimit returns the exclusive bound on the magnitude of a stored amount.
func AmountLimit() decimal.Decimal {
	return amountLimit
}
