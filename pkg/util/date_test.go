package util

import (
	"testing"
	"time"
)

func TestParseTimeDate(t *testing.T) {
	got, ok := ParseTime("2024-03-01")
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, ok := ParseTime("not a date"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseTime(""); ok {
		t.Fatalf("expected failure for empty input")
	}
}

func TestMonthLabels(t *testing.T) {
	if got := MonthLabels("en")[1]; got != "Feb" {
		t.Fatalf("unexpected month %q", got)
	}
	if got := MonthLabels("xx")[1]; got != "Fév" {
		t.Fatalf("unexpected fallback month %q", got)
	}
	if n := len(MonthLabels("fr")); n != 12 {
		t.Fatalf("expected 12 months, got %d", n)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"centro-oeste": "Centro-oeste",
		"suco":         "Suco",
		"énergie":      "Énergie",
		"":             "",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
