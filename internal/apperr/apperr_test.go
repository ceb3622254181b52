package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	err := New(QuotaExceeded, "max shuffles reached")

	if !IsKind(err, QuotaExceeded) {
		t.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, NotFound) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(errors.New("plain"), QuotaExceeded) {
		t.Error("IsKind should not match an untyped error")
	}
	if IsKind(nil, QuotaExceeded) {
		t.Error("IsKind should not match nil")
	}
}

func TestIsKindWrapped(t *testing.T) {
	inner := New(InvalidState, "already completed")
	wrapped := fmt.Errorf("complete: %w", inner)

	if !IsKind(wrapped, InvalidState) {
		t.Error("IsKind should unwrap to the typed error")
	}
}

func TestKindOf(t *testing.T) {
	if k, ok := KindOf(New(Validation, "title is required")); !ok || k != Validation {
		t.Errorf("KindOf = (%v, %v), want (Validation, true)", k, ok)
	}
	if _, ok := KindOf(errors.New("db timeout")); ok {
		t.Error("plumbing errors must not report a kind")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(New(NotFound, "period not found")); got != "Error: period not found" {
		t.Errorf("Format = %q", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Unauthenticated: "unauthenticated",
		NotFound:        "not_found",
		QuotaExceeded:   "quota_exceeded",
		InvalidState:    "invalid_state",
		Validation:      "validation",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
