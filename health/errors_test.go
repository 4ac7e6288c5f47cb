package health

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrDuplicateCheck", ErrDuplicateCheck},
		{"ErrInvalidCheck", ErrInvalidCheck},
		{"ErrCheckNotFound", ErrCheckNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("%s is nil", tt.name)
			}

			if tt.err.Error() == "" {
				t.Errorf("%s has empty message", tt.name)
			}
		})
	}
}

func TestDuplicateCheckError_Is(t *testing.T) {
	var err error = &DuplicateCheckError{ID: "db"}

	if !errors.Is(err, ErrDuplicateCheck) {
		t.Error("DuplicateCheckError should match ErrDuplicateCheck")
	}
	if errors.Is(err, ErrInvalidCheck) {
		t.Error("DuplicateCheckError should not match ErrInvalidCheck")
	}
	if err.Error() != `health: check "db" already registered` {
		t.Errorf("Error() = %q", err.Error())
	}
}
