package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestLookupNotFoundError(t *testing.T) {
	err := NewLookupNotFoundError("9784063600568")

	want := "no catalog record found for ISBN 9784063600568"
	if err.Error() != want {
		t.Fatalf("Error message = %q, want %q", err.Error(), want)
	}

	if !IsLookupNotFound(err) {
		t.Fatalf("IsLookupNotFound returned false for LookupNotFoundError")
	}

	wrapped := fmt.Errorf("lookup failed: %w", err)
	if !IsLookupNotFound(wrapped) {
		t.Fatalf("IsLookupNotFound returned false for wrapped LookupNotFoundError")
	}

	if IsLookupNotFound(stdErrors.New("other")) {
		t.Fatalf("IsLookupNotFound returned true for unrelated error")
	}
}

func TestDuplicateRecordError(t *testing.T) {
	err := NewDuplicateRecordError("9784063600568")

	want := "record for ISBN 9784063600568 already exists"
	if err.Error() != want {
		t.Fatalf("Error message = %q, want %q", err.Error(), want)
	}

	if !IsDuplicateRecord(err) {
		t.Fatalf("IsDuplicateRecord returned false for DuplicateRecordError")
	}

	wrapped := fmt.Errorf("append failed: %w", err)
	if !IsDuplicateRecord(wrapped) {
		t.Fatalf("IsDuplicateRecord returned false for wrapped DuplicateRecordError")
	}
}

func TestStopProcessingError(t *testing.T) {
	err := NewStopProcessingError("user stopped")

	if err.Error() != "user stopped" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "user stopped")
	}

	if !IsStopProcessingError(err) {
		t.Fatalf("IsStopProcessingError returned false for StopProcessingError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	want := "too many requests (retry after 2m0s)"
	if err.Error() != want {
		t.Fatalf("Error message = %q, want %q", err.Error(), want)
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}
}

func TestRateLimitErrorZeroDuration(t *testing.T) {
	err := NewRateLimitError("rate limited")

	if err.Error() != "rate limited" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "rate limited")
	}
}
