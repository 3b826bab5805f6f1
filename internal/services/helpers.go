package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"

	"github.com/shopspring/decimal"
)

// Field limits shared with the request validation layer.
const (
	maxNameLength        = 64
	maxDescriptionLength = 64
	maxAmountScale       = models.AmountScale
)

// requireOwner short-circuits every command issued without a session.
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// cleanName trims name and checks it is between 1 and maxNameLength characters.
func cleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must be at most %d characters", field, maxNameLength))
	}
	return name, nil
}

func checkDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	return nil
}

func checkAmount(field string, amount decimal.Decimal) error {
	if !models.AmountFitsScale(amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must have at most %d decimal places", field, maxAmountScale))
	}
	if !models.AmountInRange(amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must be less than %s in magnitude", field, models.AmountLimit()))
	}
	return nil
}

// publish announces a committed change. Failures are logged and dropped.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if err := publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Get().Warnw("failed to publish ledger event",
			"error", err,
			"event_id", event.ID,
			"type", event.Type,
			"user_id", event.UserID,
		)
	}
}

func eventFor(eventType, ownerID, resourceID string, res *ledger.Result) events.Event {
	balances := make([]events.Balance, 0, len(res.Balances))
	for _, b := range res.Balances {
		balances = append(balances, events.Balance{ProfileID: b.ProfileID, Balance: b.Balance})
	}
	event := events.New(eventType, ownerID, resourceID, balances)
	event.RemovedTransactions = res.RemovedTransactions
	return event
}
