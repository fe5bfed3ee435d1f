package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Capitalize upper-cases the first rune of an NFC-normalized label and leaves
// the rest untouched ("centro-oeste" becomes "Centro-oeste").
func Capitalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
