package application_test

import (
	"testing"

	"jobboard/internal/domain/application"
)

func TestParseStatus_ValidValues(t *testing.T) {
	for _, s := range []string{"PENDING", "ACCEPTED", "REJECTED"} {
		got, err := application.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"pending", "HIRED", ""} {
		if _, err := application.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}
