package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/gharfix/gharfix-ai-platform/internal/catalog"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "rohan sharma", "Rohan Sharma", false},
		{"already cased", "Rohan Sharma", "Rohan Sharma", false},
		{"with period", "dr. a. verma", "Dr. A. Verma", false},
		{"with apostrophe", "o'brien", "O'brien", false},
		{"command word list", "list all services", "", true},
		{"command word help", "help", "", true},
		{"command word price", "what is the price", "", true},
		{"too short", "a", "", true},
		{"too long", "abcdefghij abcdefghij abcdefghij abcdefghij abcdefghij", "", true},
		{"digits", "rohan123", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Name(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"plain", "9876543210", "9876543210", ""},
		{"with separators", "98765-43210", "9876543210", ""},
		{"with spaces", "98765 43210", "9876543210", ""},
		{"leading 6", "6123456789", "6123456789", ""},
		{"too short", "98765", "", "10 digits"},
		{"too long", "98765432101", "", "10 digits"},
		{"bad prefix", "1234567890", "", "start with 6, 7, 8 or 9"},
		{"letters only", "call me", "", "10 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Phone(%q) unexpected error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("Phone(%q) expected error containing %q, got none", tt.input, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Phone(%q) error = %q, want it to mention %q", tt.input, err.Error(), tt.wantErr)
			}
		})
	}
}

// TestPhone_ValidPrefixes covers every allowed leading digit.
func TestPhone_ValidPrefixes(t *testing.T) {
	for _, prefix := range []string{"6", "7", "8", "9"} {
		num := prefix + "876543210"
		got, err := Phone(num)
		if err != nil {
			t.Errorf("Phone(%q) unexpected error: %v", num, err)
		}
		if got != num {
			t.Errorf("Phone(%q) = %q, want digits unchanged", num, got)
		}
	}
}

func TestService(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact lowercase", "plumbing services", "Plumbing Services"},
		{"partial", "plumbing", "Plumbing Services"},
		{"sentence containing catalog name", "i want plumbing services today", "Plumbing Services"},
		{"electrician partial", "electrical", "Electrical Services"},
		{"mixed case", "MacBook repair", "MacBook Repair Services"},
		{"chef", "chef", "Ghar Chef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Service(tt.input, catalog.Services)
			if err != nil {
				t.Fatalf("Service(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Service(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestService_NotOffered(t *testing.T) {
	for _, input := range []string{"pet grooming", "rocket repair", ""} {
		_, err := Service(input, catalog.Services)
		if !errors.Is(err, ErrServiceNotOffered) {
			t.Errorf("Service(%q) error = %v, want ErrServiceNotOffered", input, err)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical city", "mumbai", "Mumbai", false},
		{"exact multiword city", "navi mumbai", "Navi Mumbai", false},
		{"city in sentence matches first catalog entry", "i live in mumbai", "Mumbai", false},
		{"unlisted area fuzzy accept", "andheri", "Andheri", false},
		{"digits rejected", "sector 9 rohini", "", true},
		{"fuzzy accept title cased", "andheri west", "Andheri West", false},
		{"non answer", "idk", "", true},
		{"non answer phrase", "not sure", "", true},
		{"too short", "ab", "", true},
		{"no letters", "123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Location(tt.input, catalog.Cities)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Location(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Location(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Round-trip: fuzzy-accepted locations come back title-cased even when
// submitted in all lowercase.
func TestLocation_FuzzyTitleCase(t *testing.T) {
	got, err := Location("koramangala fourth block", catalog.Cities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Koramangala Fourth Block" {
		t.Errorf("got %q, want %q", got, "Koramangala Fourth Block")
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("rohan  sharma"); got != "Rohan Sharma" {
		t.Errorf("TitleCase = %q", got)
	}
}
