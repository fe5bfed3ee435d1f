package util

import (
	"time"
)

// DateLayout is the ISO calendar date used by dashboard documents.
const DateLayout = "2006-01-02"

// ParseTime tries a calendar date, RFC3339 and RFC3339Nano. Returns (t, true)
// if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

var months = map[string][12]string{
	"fr": {"Jan", "Fév", "Mar", "Avr", "Mai", "Juin", "Juil", "Août", "Sep", "Oct", "Nov", "Déc"},
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// MonthLabels returns the short month names for lang, French by default.
func MonthLabels(lang string) []string {
	m, ok := months[lang]
	if !ok {
		m = months["fr"]
	}
	return m[:]
}
