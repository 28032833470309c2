// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"not found", NotFound("gone"), KindNotFound},
		{"conflict", Conflict("dup"), KindConflict},
		{"precondition", Precondition("not yet"), KindPrecondition},
		{"persistence", Persistence(errors.New("io"), "write"), KindPersistence},
		{"plain error", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKindOfUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("inner"))
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("Expected KindNotFound through fmt.Errorf wrapping, got %v", KindOf(wrapped))
	}
}

func TestPersistencePreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence(cause, "failed to insert vote")

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the cause")
	}
	if err.Error() != "failed to insert vote: disk full" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestMessageFormatting(t *testing.T) {
	err := Validation("month must be YYYY-MM, got %q", "2026/01")
	want := `month must be YYYY-MM, got "2026/01"`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
