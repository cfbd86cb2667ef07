package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := (&DomainError{
		Category: ErrCatValidation,
		Code:     "CODE",
		Message:  "message",
	}).WithCause(cause)

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be unwrapped")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to match cause")
	}

	match := &DomainError{Category: ErrCatValidation, Code: "CODE"}
	if !errors.Is(err, match) {
		t.Fatalf("expected errors.Is to match category and code")
	}
}

func TestDomainError_ErrorString(t *testing.T) {
	plain := ErrValidation("C", "bad input")
	if got := plain.Error(); got != "[validation] C: bad input" {
		t.Fatalf("unexpected message: %q", got)
	}

	wrapped := ErrExecution("C", "failed").WithCause(errors.New("boom"))
	if got := wrapped.Error(); got != "[execution] C: failed (boom)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := &DomainError{Category: ErrCatExecution, Code: "X", Message: "msg"}
	err.WithDetail("k", "v")
	if err.Details == nil || err.Details["k"] != "v" {
		t.Fatalf("expected details to be set")
	}
}

func TestErrorFactories(t *testing.T) {
	if ErrValidation("C", "m").Retryable {
		t.Fatalf("validation should not be retryable")
	}
	if !ErrExecution("C", "m").Retryable {
		t.Fatalf("execution should be retryable")
	}
	if ErrNotFound("prefix", "x").Category != ErrCatNotFound {
		t.Fatalf("expected not_found category")
	}
}

func TestErrInvalidPrefix(t *testing.T) {
	err := ErrInvalidPrefix("/pfx", "/pfx/bin/wine")

	if !errors.Is(err, &DomainError{Category: ErrCatValidation, Code: CodeInvalidPrefix}) {
		t.Fatalf("expected invalid prefix code")
	}
	if err.Details["path"] != "/pfx/bin/wine" {
		t.Fatalf("expected path detail, got %v", err.Details)
	}
}

func TestErrSpawn(t *testing.T) {
	cause := errors.New("permission denied")
	err := ErrSpawn("/pfx/bin/wineserver", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if !IsCategory(err, ErrCatExecution) {
		t.Fatalf("expected execution category")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(ErrExecution("X", "m")) {
		t.Fatalf("expected retryable error")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatalf("expected non-domain error to be non-retryable")
	}
}

func TestGetCategory(t *testing.T) {
	if GetCategory(ErrValidation("X", "m")) != ErrCatValidation {
		t.Fatalf("expected validation category")
	}
	if GetCategory(errors.New("plain")) != ErrCatInternal {
		t.Fatalf("expected internal category for non-domain error")
	}
}

func TestIsExitError(t *testing.T) {
	err := fmt.Errorf("run: %w", &ExitError{Code: 3})
	code, ok := IsExitError(err)
	if !ok || code != 3 {
		t.Fatalf("expected exit code 3, got %d (%v)", code, ok)
	}
	if _, ok := IsExitError(errors.New("plain")); ok {
		t.Fatalf("plain error is not an exit error")
	}
}
