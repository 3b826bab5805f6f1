package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same sentinel", ErrProfileNotFound, ErrProfileNotFound, true},
		{"wrapped sentinel", Wrap(ErrConflict, fmt.Errorf("deadlock")), ErrConflict, true},
		{"re-messaged sentinel", WithMessage(ErrInvalidInput, "name is required"), ErrInvalidInput, true},
		{"fmt wrapped", fmt.Errorf("ledger: %w", ErrDataIntegrity), ErrDataIntegrity, true},
		{"different code", ErrProfileNotFound, ErrCategoryNotFound, false},
		{"same code different reference", ErrProfileReferenceNotFound, ErrCategoryReferenceNotFound, false},
		{"plain error", errors.New("boom"), ErrInternalServer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrStoreUnavailable, cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if err.StatusCode != ErrStoreUnavailable.StatusCode {
		t.Errorf("expected status %d, got %d", ErrStoreUnavailable.StatusCode, err.StatusCode)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Wrap(ErrConflict, errors.New("40001"))) {
		t.Error("conflict should be retryable")
	}
	if IsRetryable(ErrStoreUnavailable) {
		t.Error("store unavailable should not be retryable")
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("plain errors should not be retryable")
	}
}
