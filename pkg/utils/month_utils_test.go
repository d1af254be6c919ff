package utils

import (
	"fmt"
	"testing"
	"time"
)

func TestIsValidMonth(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"1999-06", true},
		{"2024-13", false},
		{"2024-00", false},
		{"2024-1", false},
		{"24-01", false},
		{"2024/01", false},
		{"2024-01-15", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidMonth(tt.input); got != tt.valid {
				t.Errorf("IsValidMonth(%q) = %v; want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestCurrentMonth(t *testing.T) {
	got := CurrentMonth()
	if !IsValidMonth(got) {
		t.Fatalf("CurrentMonth() = %q is not a valid month", got)
	}
	now := time.Now()
	want := fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
	if got != want {
		t.Errorf("CurrentMonth() = %q; want %q", got, want)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth("2024-06"); got != "June 2024" {
		t.Errorf("FormatMonth(2024-06) = %q; want %q", got, "June 2024")
	}
	if got := FormatMonth("garbage"); got != "garbage" {
		t.Errorf("FormatMonth passes malformed input through, got %q", got)
	}
}
