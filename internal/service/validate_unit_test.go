//go:build unit

package service

import (
	"errors"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Ångström Über-Cool!", "angstrom-uber-cool"},
		{"Hello World-14:05:09", "hello-world-14-05-09"},
		{"  Sommarerbjudande på Rental Movies ", "sommarerbjudande-pa-rental-movies"},
		{"Blåbär och ölkorv", "blabar-och-olkorv"},
		{"--a  --  b--", "a-b"},
		{"Smørrebrød", "smorrebrod"},
		{"!!!", ""},
	}
	for _, tc := range testCases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	testCases := []struct {
		in    string
		valid bool
	}{
		{"", true},
		{"2024-02-29", true},
		{"2024-02-29 23:59:59", true},
		{"2024-02-30", false},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-02-29 24:00:00", false},
		{"2024-2-29", false},
		{"2024-02-29T10:00:00", false},
		{"yesterday", false},
	}
	for _, tc := range testCases {
		err := ValidateDate(tc.in)
		if (err == nil) != tc.valid {
			t.Errorf("ValidateDate(%q) = %v, want valid %v", tc.in, err, tc.valid)
		}
		var vErr *ValidationError
		if err != nil && !errors.As(err, &vErr) {
			t.Errorf("ValidateDate(%q) returned %T, want *ValidationError", tc.in, err)
		}
	}
}

func TestParsePublished(t *testing.T) {
	now := time.Date(2024, 3, 1, 13, 4, 5, 0, time.UTC)

	got, err := parsePublished("2024-02-29", now, testZone)
	if err != nil {
		t.Fatalf("parsePublished failed: %v", err)
	}
	if want := time.Date(2024, 2, 29, 13, 4, 5, 0, time.UTC); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	none, err := parsePublished("", now, testZone)
	if err != nil || none != nil {
		t.Errorf("expected nil for empty input, got %v, %v", none, err)
	}
}
