package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "application not found"},
			want: "application not found",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeProfileResolution, Message: "load candidate", Cause: errors.New("conn reset")},
			want: "load candidate: conn reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeTransientIO, "upload")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find the cause")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"unauthenticated", Unauthenticated("sign in"), IsUnauthenticated},
		{"forbidden", Forbiddenf("not owner of %s", "job-1"), IsForbidden},
		{"not found", NotFoundf("job %s", "job-1"), IsNotFound},
		{"already applied", AlreadyApplied("dup"), IsAlreadyApplied},
		{"invalid transition", InvalidTransitionf("%s -> %s", "accepted", "pending"), IsInvalidTransition},
		{"invalid state", InvalidState("inactive"), IsInvalidState},
		{"profile resolution", New(ErrCodeProfileResolution, "x"), IsProfileResolution},
		{"transient", New(ErrCodeTransientIO, "x"), IsTransientIO},
		{"conflict", Conflict("x"), IsConflict},
		{"validation", ValidationField("email", "bad"), IsValidation},
		{"wrapped", fmt.Errorf("apply: %w", AlreadyApplied("dup")), IsAlreadyApplied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate returned false for %v (code %q)", tt.err, GetCode(tt.err))
			}
		})
	}

	if IsNotFound(errors.New("plain")) {
		t.Errorf("plain error should not match")
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("phone", "bad")); got != "phone" {
		t.Errorf("GetField() = %q, want phone", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField() = %q, want empty", got)
	}
}

func TestCategoryOf_DistinctPerTaxonomyCode(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeUnauthenticated,
		ErrCodeForbidden,
		ErrCodeNotFound,
		ErrCodeAlreadyApplied,
		ErrCodeInvalidTransition,
		ErrCodeInvalidState,
		ErrCodeProfileResolution,
		ErrCodeTransientIO,
	}
	seen := map[Category]ErrorCode{}
	for _, code := range codes {
		c := CategoryOf(New(code, "x"))
		if prev, dup := seen[c]; dup {
			t.Fatalf("codes %q and %q share category %q", prev, code, c)
		}
		seen[c] = code
		if UserMessage(New(code, "x")) == "" {
			t.Errorf("missing message for %q", code)
		}
	}

	if CategoryOf(nil) != "" {
		t.Errorf("nil error should have no category")
	}
	if CategoryOf(errors.New("plain")) != CategoryUnknown {
		t.Errorf("plain error should be unknown")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(New(ErrCodeTransientIO, "x")) || !Retryable(New(ErrCodeProfileResolution, "x")) {
		t.Errorf("transient and profile resolution errors are retryable")
	}
	if Retryable(AlreadyApplied("x")) || Retryable(nil) {
		t.Errorf("already applied and nil are not retryable")
	}
}
