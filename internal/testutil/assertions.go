package testutil

import (
	"errors"
	"testing"

	apperrors "pocketledger/internal/errors"

	"github.com/shopspring/decimal"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertReference checks that err is a REFERENCE_NOT_FOUND for the given kind.
func AssertReference(t *testing.T, err error, kind string) {
	t.Helper()

	AssertAppError(t, err, "REFERENCE_NOT_FOUND")
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Reference != kind {
		t.Errorf("expected reference %q, got %q", kind, appErr.Reference)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares a decimal with its expected string form exactly.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, got.String())
	}
}
