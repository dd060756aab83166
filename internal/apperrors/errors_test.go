package apperrors

import (
	"errors"
	"strings"
	"testing"
)

func TestWrappersMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", Validationf("bad input %d", 7), ErrValidation},
		{"authorization", Authorizationf("nope"), ErrAuthorization},
		{"not found", NotFoundf("comment %s", "abc"), ErrNotFound},
		{"conflict", Conflictf("duplicate"), ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Fatalf("%v does not match %v", tt.err, tt.sentinel)
			}
			for _, other := range []error{ErrValidation, ErrAuthorization, ErrNotFound, ErrConflict} {
				if other != tt.sentinel && errors.Is(tt.err, other) {
					t.Fatalf("%v unexpectedly matches %v", tt.err, other)
				}
			}
		})
	}
}

func TestWrappersCarryDetail(t *testing.T) {
	err := NotFoundf("comment %s not found", "c-42")
	if !strings.Contains(err.Error(), "c-42") {
		t.Fatalf("detail missing from %q", err.Error())
	}
}
